package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"

	DefaultCategoryColor = "#64748b"
)

var (
	ErrInvalidCategoryType = errors.New("invalid category type")

	hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Category labels transactions as income or expense. Its type decides
// whether a transaction contributes to budget spending, so the type is
// frozen once transactions or budgets reference the category.
type Category struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	CategoryType string         `gorm:"type:varchar(20);not null" json:"category_type"`
	Color        string         `gorm:"type:varchar(7);not null;default:'#64748b'" json:"color"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Category
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	c.UpdatedAt = time.Now()
	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if c.Name == "" {
		return errors.New("category name is required")
	}

	if len(c.Name) > 100 {
		return errors.New("category name too long")
	}

	if !IsValidCategoryType(c.CategoryType) {
		return ErrInvalidCategoryType
	}

	if !hexColorRegex.MatchString(c.Color) {
		return errors.New("color must be a hex value like #ff8800")
	}

	return nil
}

// IsExpense returns true for expense categories
func (c *Category) IsExpense() bool {
	return c.CategoryType == CategoryTypeExpense
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsValidCategoryType checks if the category type is valid
func IsValidCategoryType(categoryType string) bool {
	switch categoryType {
	case CategoryTypeIncome, CategoryTypeExpense:
		return true
	default:
		return false
	}
}
