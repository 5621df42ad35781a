package dto

import (
	"fintrack-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest contains the payload for recording a transaction.
// Date accepts "2006-01-02" or RFC 3339.
type CreateTransactionRequest struct {
	Type       string          `json:"type" validate:"required,oneof=income expense"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date" validate:"required"`
	CategoryID uuid.UUID       `json:"categoryId" validate:"required"`
	AccountID  uuid.UUID       `json:"accountId" validate:"required"`
	Notes      string          `json:"notes"`
}

// UpdateTransactionRequest is a full replacement payload; the transaction to
// replace is addressed by the id field in the body.
type UpdateTransactionRequest struct {
	ID         uuid.UUID       `json:"id" validate:"required"`
	Type       string          `json:"type" validate:"required,oneof=income expense"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date" validate:"required"`
	CategoryID uuid.UUID       `json:"categoryId" validate:"required"`
	AccountID  uuid.UUID       `json:"accountId" validate:"required"`
	Notes      string          `json:"notes"`
}

// DeleteTransactionRequest addresses the transaction to delete by body id
type DeleteTransactionRequest struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// TransactionListQuery contains the filter and pagination query parameters
// for listing transactions
type TransactionListQuery struct {
	AccountID  string `query:"accountId"`
	CategoryID string `query:"categoryId"`
	Type       string `query:"type"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	MinAmount  string `query:"minAmount"`
	MaxAmount  string `query:"maxAmount"`
	Offset     int    `query:"offset"`
	Limit      int    `query:"limit"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   PaginationInfo       `json:"pagination"`
}

// CreateTransactionResponse returns the recorded transaction together with
// the account it moved
type CreateTransactionResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
	Account     *models.Account     `json:"account"`
}

// UpdateTransactionResponse returns the replaced transaction
type UpdateTransactionResponse struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
}
