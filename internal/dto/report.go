package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is one category's total within a report month
type CategoryTotal struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	Name         string          `json:"name"`
	CategoryType string          `json:"categoryType"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyReportEntry aggregates one month of activity
type MonthlyReportEntry struct {
	Month      string          `json:"month"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Net        decimal.Decimal `json:"net"`
	Categories []CategoryTotal `json:"categories"`
}

// MonthlyReportResponse covers the trailing report window, oldest month first
type MonthlyReportResponse struct {
	Months []MonthlyReportEntry `json:"months"`
}
