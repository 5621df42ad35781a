package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidBudgetAmount = errors.New("budget amount must be positive")
	ErrInvalidBudgetMonth  = errors.New("budget month must be a YYYY-MM key")
	ErrNegativeSpent       = errors.New("budget spent cannot be negative")
)

// Budget is a monthly spending target for one category. Spent is a cached
// aggregate of the expense transactions in that category and month; it is
// maintained in the same commit as every transaction write and never drops
// below zero.
type Budget struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_budgets_user_category_month" json:"user_id"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_budgets_user_category_month" json:"category_id"`
	Month      string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_budgets_user_category_month" json:"month"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Spent      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"spent"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	b.UpdatedAt = time.Now()
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if b.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}

	if !IsValidMonthKey(b.Month) {
		return ErrInvalidBudgetMonth
	}

	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidBudgetAmount
	}

	if b.Spent.LessThan(decimal.Zero) {
		return ErrNegativeSpent
	}

	return nil
}

// AddSpent increments the spent accumulator, clamping at zero so that
// reversing a contribution recorded before the budget existed cannot drive
// it negative.
func (b *Budget) AddSpent(delta decimal.Decimal) {
	b.Spent = ClampSpent(b.Spent.Add(delta))
}

// Remaining returns the budget amount still unspent; negative when over budget.
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// IsOverspent returns true once spending exceeds the target amount
func (b *Budget) IsOverspent() bool {
	return b.Spent.GreaterThan(b.Amount)
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}

// ClampSpent floors a spent value at zero
func ClampSpent(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return v
}
