package services

import (
	"errors"
	"log/slog"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrAccountInUse = errors.New("account has transactions and cannot be deleted")
)

// AccountService handles account business logic
type AccountService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CreateAccount opens an account with its starting balance
func (s *AccountService) CreateAccount(userID uuid.UUID, req *dto.CreateAccountRequest) (*models.Account, error) {
	account := &models.Account{
		UserID:      userID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     req.Balance,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		"account_id", account.ID,
		"user_id", userID,
		"type", account.AccountType)

	return account, nil
}

// GetAccount retrieves one account scoped to its owner
func (s *AccountService) GetAccount(userID, accountID uuid.UUID) (*models.Account, error) {
	return s.accountRepo.GetByIDForUser(accountID, userID)
}

// GetUserAccounts lists the user's accounts
func (s *AccountService) GetUserAccounts(userID uuid.UUID) ([]models.Account, error) {
	return s.accountRepo.GetByUserID(userID)
}

// UpdateAccount edits the account's name and type. The balance is a cache
// over transactions and never edited directly.
func (s *AccountService) UpdateAccount(userID, accountID uuid.UUID, req *dto.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.accountRepo.GetByIDForUser(accountID, userID)
	if err != nil {
		return nil, err
	}

	account.Name = req.Name
	account.AccountType = req.AccountType

	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount removes an account. Refused while transactions still
// reference it; deleting those rows without reversing balances elsewhere
// would break the ledger invariant.
func (s *AccountService) DeleteAccount(userID, accountID uuid.UUID) error {
	account, err := s.accountRepo.GetByIDForUser(accountID, userID)
	if err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByAccountID(account.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAccountInUse
	}

	if err := s.accountRepo.Delete(account.ID); err != nil {
		return err
	}

	s.logger.Info("account deleted",
		"account_id", accountID,
		"user_id", userID)

	return nil
}
