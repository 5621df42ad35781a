package services

import (
	"log/slog"
	"sort"
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultReportMonths = 12

// ReportService aggregates transactions into monthly income/expense totals
// broken down by category. Grouping happens in Go over one range query so
// the same code serves both the postgres and sqlite dialects.
type ReportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	logger          *slog.Logger
	now             func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	return &ReportService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// MonthlyReport returns the trailing window of monthly aggregates, oldest
// month first. Months without activity appear with zero totals.
func (s *ReportService) MonthlyReport(userID uuid.UUID, months int) (*dto.MonthlyReportResponse, error) {
	if months <= 0 {
		months = DefaultReportMonths
	}

	currentKey := models.MonthKeyForDate(s.now())

	// Walk back to the first month of the window
	keys := make([]string, months)
	keys[months-1] = currentKey
	for i := months - 2; i >= 0; i-- {
		prev, err := models.PreviousMonthKey(keys[i+1])
		if err != nil {
			return nil, err
		}
		keys[i] = prev
	}

	start, _, err := models.MonthBounds(keys[0])
	if err != nil {
		return nil, err
	}
	_, end, err := models.MonthBounds(currentKey)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByUserAndDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	categoryByID := make(map[uuid.UUID]models.Category, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	entries := make(map[string]*dto.MonthlyReportEntry, months)
	categoryTotals := make(map[string]map[uuid.UUID]decimal.Decimal, months)
	for _, key := range keys {
		entries[key] = &dto.MonthlyReportEntry{
			Month:   key,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		categoryTotals[key] = make(map[uuid.UUID]decimal.Decimal)
	}

	for _, transaction := range transactions {
		key := transaction.MonthKey()
		entry, ok := entries[key]
		if !ok {
			continue
		}

		if transaction.IsExpense() {
			entry.Expense = entry.Expense.Add(transaction.Amount)
		} else {
			entry.Income = entry.Income.Add(transaction.Amount)
		}

		totals := categoryTotals[key]
		totals[transaction.CategoryID] = totals[transaction.CategoryID].Add(transaction.Amount)
	}

	result := make([]dto.MonthlyReportEntry, 0, months)
	for _, key := range keys {
		entry := entries[key]
		entry.Net = entry.Income.Sub(entry.Expense)
		entry.Categories = buildCategoryTotals(categoryTotals[key], categoryByID)
		result = append(result, *entry)
	}

	return &dto.MonthlyReportResponse{Months: result}, nil
}

func buildCategoryTotals(totals map[uuid.UUID]decimal.Decimal, categoryByID map[uuid.UUID]models.Category) []dto.CategoryTotal {
	result := make([]dto.CategoryTotal, 0, len(totals))
	for categoryID, total := range totals {
		categoryTotal := dto.CategoryTotal{
			CategoryID: categoryID,
			Total:      total,
		}
		if category, ok := categoryByID[categoryID]; ok {
			categoryTotal.Name = category.Name
			categoryTotal.CategoryType = category.CategoryType
		}
		result = append(result, categoryTotal)
	}

	// Largest totals first, name as the tiebreak for stable output
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Name < result[j].Name
	})

	return result
}
