package services

import (
	"log/slog"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
)

const recentTransactionLimit = 10

// DashboardService assembles the single-call home-screen payload
type DashboardService struct {
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// GetDashboard returns the user's accounts, categories, recent transactions,
// and total balance across accounts
func (s *DashboardService) GetDashboard(userID uuid.UUID) (*dto.DashboardResponse, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactionRepo.GetRecentByUserID(userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	total, err := s.accountRepo.GetTotalBalanceByUserID(userID)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalBalance:       total,
		Accounts:           accounts,
		Categories:         categories,
		RecentTransactions: recent,
	}, nil
}
