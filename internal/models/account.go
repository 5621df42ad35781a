package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeBank       = "bank"
	AccountTypeCash       = "cash"
	AccountTypeCredit     = "credit"
	AccountTypeInvestment = "investment"
	AccountTypeOther      = "other"
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account represents a money account. Balance is a cached aggregate:
// initial balance plus all income minus all expense transactions.
// Credit accounts routinely carry a negative balance, so no sign
// constraint is enforced.
type Account struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	AccountType string          `gorm:"type:varchar(20);not null" json:"account_type"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if a.Name == "" {
		return errors.New("account name is required")
	}

	if len(a.Name) > 100 {
		return errors.New("account name too long")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	return nil
}

// ApplyTransactionEffect adjusts the cached balance for a transaction of the
// given type: income adds, expense subtracts.
func (a *Account) ApplyTransactionEffect(transactionType string, amount decimal.Decimal) {
	a.Balance = a.Balance.Add(TransactionEffect(transactionType, amount))
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeBank, AccountTypeCash, AccountTypeCredit, AccountTypeInvestment, AccountTypeOther:
		return true
	default:
		return false
	}
}

// AllAccountTypes returns all valid account type constants
func AllAccountTypes() []string {
	return []string{
		AccountTypeBank,
		AccountTypeCash,
		AccountTypeCredit,
		AccountTypeInvestment,
		AccountTypeOther,
	}
}
