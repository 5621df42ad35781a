package repositories

import (
	"time"

	"fintrack-api/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateFields(userID uuid.UUID, fields map[string]interface{}) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uuid.UUID) error
	GetTotalBalanceByUserID(userID uuid.UUID) (decimal.Decimal, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Budget, error)
	GetByUserID(userID uuid.UUID, month string) ([]models.Budget, error)
	GetByUserCategoryMonth(userID, categoryID uuid.UUID, month string) (*models.Budget, error)
	ExistsForUserCategoryMonth(userID, categoryID uuid.UUID, month string) (bool, error)
	UpdateAmount(id uuid.UUID, amount decimal.Decimal) error
	Delete(id uuid.UUID) error
	CountByCategoryID(categoryID uuid.UUID) (int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error)
	GetWithFilters(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetRecentByUserID(userID uuid.UUID, limit int) ([]models.Transaction, error)
	GetByUserAndDateRange(userID uuid.UUID, start, end time.Time) ([]models.Transaction, error)
	SumExpensesByCategoryInRange(userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	CountByAccountID(accountID uuid.UUID) (int64, error)
	CountByCategoryID(categoryID uuid.UUID) (int64, error)
}

// LedgerRepositoryInterface applies a transaction unit of work: the row
// operation plus its account and budget cache adjustments in one commit.
type LedgerRepositoryInterface interface {
	Apply(mutation *models.LedgerMutation) error
}
