package dto

import (
	"fintrack-api/internal/models"

	"github.com/shopspring/decimal"
)

// DashboardResponse is the single-call payload backing the home screen
type DashboardResponse struct {
	TotalBalance       decimal.Decimal      `json:"totalBalance"`
	Accounts           []models.Account     `json:"accounts"`
	Categories         []models.Category    `json:"categories"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
}
