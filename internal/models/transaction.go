package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
)

// Transaction is a single money movement. The amount is always stored
// positive; the type carries the sign. The row is the source of truth the
// cached account balances and budget spent figures are derived from.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	TransactionType string          `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Account  Account  `gorm:"foreignKey:AccountID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if t.CategoryID == uuid.Nil {
		return errors.New("category ID is required")
	}

	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}

	return nil
}

// IsExpense returns true for expense transactions
func (t *Transaction) IsExpense() bool {
	return t.TransactionType == TransactionTypeExpense
}

// IsIncome returns true for income transactions
func (t *Transaction) IsIncome() bool {
	return t.TransactionType == TransactionTypeIncome
}

// BalanceEffect returns the signed contribution of this transaction to its
// account balance: +amount for income, -amount for expense.
func (t *Transaction) BalanceEffect() decimal.Decimal {
	return TransactionEffect(t.TransactionType, t.Amount)
}

// ExpenseContribution returns the amount this transaction adds to a budget's
// spent accumulator: the amount for expenses, zero for income.
func (t *Transaction) ExpenseContribution() decimal.Decimal {
	return ExpenseContribution(t.TransactionType, t.Amount)
}

// MonthKey returns the UTC budget month key of the transaction date.
func (t *Transaction) MonthKey() string {
	return MonthKeyForDate(t.Date)
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// Helper functions

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// TransactionEffect returns the signed balance effect of a transaction of
// the given type and positive amount.
func TransactionEffect(transactionType string, amount decimal.Decimal) decimal.Decimal {
	if transactionType == TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}

// ExpenseContribution returns the budget spending contribution of a
// transaction of the given type and positive amount.
func ExpenseContribution(transactionType string, amount decimal.Decimal) decimal.Decimal {
	if transactionType == TransactionTypeExpense {
		return amount
	}
	return decimal.Zero
}
