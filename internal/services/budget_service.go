package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetAlreadyExists = errors.New("budget for this category and month already exists")
	ErrBudgetKeyImmutable  = errors.New("budget category and month cannot be changed")
	ErrInvalidBudgetValue  = errors.New("budget amount must be positive")
)

// BudgetService handles monthly budget business logic
type BudgetService struct {
	budgetRepo      repositories.BudgetRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CreateBudget creates a monthly budget for a category. The spent
// accumulator is seeded from the expense transactions already recorded in
// that category and month, so a budget created late starts consistent
// instead of at zero.
func (s *BudgetService) CreateBudget(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidBudgetValue
	}

	if !models.IsValidMonthKey(req.Month) {
		return nil, models.ErrInvalidBudgetMonth
	}

	if _, err := s.categoryRepo.GetByIDForUser(req.CategoryID, userID); err != nil {
		return nil, err
	}

	exists, err := s.budgetRepo.ExistsForUserCategoryMonth(userID, req.CategoryID, req.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBudgetAlreadyExists
	}

	start, end, err := models.MonthBounds(req.Month)
	if err != nil {
		return nil, models.ErrInvalidBudgetMonth
	}

	spent, err := s.transactionRepo.SumExpensesByCategoryInRange(userID, req.CategoryID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to seed budget spent: %w", err)
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Amount:     req.Amount,
		Spent:      spent,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		// The unique index closes the check-then-create race
		if errors.Is(err, repositories.ErrBudgetExists) {
			return nil, ErrBudgetAlreadyExists
		}
		return nil, err
	}

	s.logger.Info("budget created",
		"budget_id", budget.ID,
		"user_id", userID,
		"month", budget.Month,
		"seeded_spent", budget.Spent)

	return budget, nil
}

// GetBudget retrieves one budget scoped to its owner
func (s *BudgetService) GetBudget(userID, budgetID uuid.UUID) (*models.Budget, error) {
	return s.budgetRepo.GetByIDForUser(budgetID, userID)
}

// GetUserBudgets lists the user's budgets, optionally for one month
func (s *BudgetService) GetUserBudgets(userID uuid.UUID, month string) ([]models.Budget, error) {
	if month != "" && !models.IsValidMonthKey(month) {
		return nil, models.ErrInvalidBudgetMonth
	}
	return s.budgetRepo.GetByUserID(userID, month)
}

// UpdateBudget changes the target amount. The (category, month) key is
// immutable; an attempt to rewrite it is rejected rather than ignored.
func (s *BudgetService) UpdateBudget(userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByIDForUser(budgetID, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != budget.CategoryID {
		return nil, ErrBudgetKeyImmutable
	}
	if req.Month != nil && *req.Month != budget.Month {
		return nil, ErrBudgetKeyImmutable
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidBudgetValue
	}

	if err := s.budgetRepo.UpdateAmount(budget.ID, req.Amount); err != nil {
		return nil, err
	}

	budget.Amount = req.Amount
	return budget, nil
}

// DeleteBudget removes a budget; its spent cache goes with it
func (s *BudgetService) DeleteBudget(userID, budgetID uuid.UUID) error {
	budget, err := s.budgetRepo.GetByIDForUser(budgetID, userID)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.Delete(budget.ID); err != nil {
		return err
	}

	s.logger.Info("budget deleted",
		"budget_id", budgetID,
		"user_id", userID,
		"month", budget.Month)

	return nil
}
