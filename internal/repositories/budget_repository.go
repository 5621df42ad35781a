package repositories

import (
	"errors"
	"fmt"
	"strings"

	"fintrack-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetExists   = errors.New("budget for this category and month already exists")
)

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget
func (r *budgetRepository) Create(budget *models.Budget) error {
	if err := r.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrBudgetExists
		}
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// GetByID retrieves a budget by ID
func (r *budgetRepository) GetByID(id uuid.UUID) (*models.Budget, error) {
	budget := &models.Budget{ID: id}
	if err := r.db.First(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// GetByIDForUser retrieves a budget by ID scoped to its owner
func (r *budgetRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// GetByUserID retrieves budgets for a user, optionally filtered to one month
func (r *budgetRepository) GetByUserID(userID uuid.UUID, month string) ([]models.Budget, error) {
	var budgets []models.Budget

	query := r.db.Where("user_id = ?", userID)
	if month != "" {
		query = query.Where("month = ?", month)
	}

	if err := query.Order("month DESC, created_at DESC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for user: %w", err)
	}
	return budgets, nil
}

// GetByUserCategoryMonth retrieves the budget for one (user, category, month) key
func (r *budgetRepository) GetByUserCategoryMonth(userID, categoryID uuid.UUID, month string) (*models.Budget, error) {
	var budget models.Budget
	if err := r.db.Where("user_id = ? AND category_id = ? AND month = ?",
		userID, categoryID, month).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

// ExistsForUserCategoryMonth checks whether a budget already covers the key
func (r *budgetRepository) ExistsForUserCategoryMonth(userID, categoryID uuid.UUID, month string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check budget existence: %w", err)
	}
	return count > 0, nil
}

// UpdateAmount updates the budget target amount. Category and month are
// immutable, and spent only moves through the ledger, so amount is the one
// editable column.
func (r *budgetRepository) UpdateAmount(id uuid.UUID, amount decimal.Decimal) error {
	result := r.db.Model(&models.Budget{ID: id}).Update("amount", amount)
	if result.Error != nil {
		return fmt.Errorf("failed to update budget amount: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// Delete soft deletes a budget
func (r *budgetRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Budget{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}
	return nil
}

// CountByCategoryID counts budgets referencing a category
func (r *budgetRepository) CountByCategoryID(categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Budget{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count budgets for category: %w", err)
	}
	return count, nil
}
