package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest contains the payload for creating a monthly budget
type CreateBudgetRequest struct {
	CategoryID uuid.UUID       `json:"categoryId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Month      string          `json:"month" validate:"required"`
}

// UpdateBudgetRequest contains the editable budget fields. Only the target
// amount can change; categoryId and month are accepted so an attempt to
// rewrite the key is rejected explicitly instead of silently ignored.
type UpdateBudgetRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *uuid.UUID      `json:"categoryId,omitempty"`
	Month      *string         `json:"month,omitempty"`
}
