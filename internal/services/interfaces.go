package services

import (
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(userID uuid.UUID) (*models.User, error)
	UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(userID uuid.UUID, req *dto.ChangePasswordRequest) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// AccountServiceInterface defines account-related business operations
type AccountServiceInterface interface {
	CreateAccount(userID uuid.UUID, req *dto.CreateAccountRequest) (*models.Account, error)
	GetAccount(userID, accountID uuid.UUID) (*models.Account, error)
	GetUserAccounts(userID uuid.UUID) ([]models.Account, error)
	UpdateAccount(userID, accountID uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(userID, accountID uuid.UUID) error
}

// CategoryServiceInterface defines category-related business operations
type CategoryServiceInterface interface {
	CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error)
	GetCategory(userID, categoryID uuid.UUID) (*models.Category, error)
	GetUserCategories(userID uuid.UUID) ([]models.Category, error)
	UpdateCategory(userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(userID, categoryID uuid.UUID) error
}

// BudgetServiceInterface defines budget-related business operations
type BudgetServiceInterface interface {
	CreateBudget(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error)
	GetBudget(userID, budgetID uuid.UUID) (*models.Budget, error)
	GetUserBudgets(userID uuid.UUID, month string) ([]models.Budget, error)
	UpdateBudget(userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error)
	DeleteBudget(userID, budgetID uuid.UUID) error
}

// TransactionServiceInterface coordinates transaction writes with their
// balance and budget reconciliation
type TransactionServiceInterface interface {
	CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, *models.Account, error)
	UpdateTransaction(userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error)
	GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error)
	ListTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error)
}

// ReconcilerInterface builds the ledger mutation for each transaction write
type ReconcilerInterface interface {
	MutationForCreate(transaction *models.Transaction, budgetID uuid.UUID) *models.LedgerMutation
	MutationForEdit(oldTxn, newTxn *models.Transaction, oldBudgetID, newBudgetID uuid.UUID) *models.LedgerMutation
	MutationForDelete(transaction *models.Transaction, budgetID uuid.UUID) *models.LedgerMutation
}

// DashboardServiceInterface assembles the home-screen payload
type DashboardServiceInterface interface {
	GetDashboard(userID uuid.UUID) (*dto.DashboardResponse, error)
}

// ReportServiceInterface produces monthly aggregates
type ReportServiceInterface interface {
	MonthlyReport(userID uuid.UUID, months int) (*dto.MonthlyReportResponse, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}
