package dto

import "github.com/shopspring/decimal"

// CreateAccountRequest contains the payload for opening an account. Balance
// is the starting balance, not a transaction.
type CreateAccountRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	AccountType string          `json:"accountType" validate:"required,oneof=bank cash credit investment other"`
	Balance     decimal.Decimal `json:"balance"`
}

// UpdateAccountRequest contains the editable account fields. The cached
// balance is never edited directly; it only moves with transactions.
type UpdateAccountRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	AccountType string `json:"accountType" validate:"required,oneof=bank cash credit investment other"`
}
