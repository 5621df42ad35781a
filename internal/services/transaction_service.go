package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransactionDate  = errors.New("invalid transaction date")
	ErrCategoryTypeMismatch    = errors.New("transaction type does not match category type")
	ErrInvalidTransactionValue = errors.New("transaction amount must be positive")
)

// transaction dates accepted on the wire
var transactionDateLayouts = []string{"2006-01-02", time.RFC3339}

// TransactionService coordinates transaction writes: it validates the
// payload against the user's accounts and categories, asks the reconciler
// for the ledger mutation, and hands it to the ledger repository for the
// atomic commit.
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	budgetRepo      repositories.BudgetRepositoryInterface
	ledgerRepo      repositories.LedgerRepositoryInterface
	reconciler      ReconcilerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	reconciler ReconcilerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		ledgerRepo:      ledgerRepo,
		reconciler:      reconciler,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateTransaction records a transaction and reconciles the account balance
// and any matching budget in the same commit. Returns the transaction and
// the account with its post-commit balance.
func (s *TransactionService) CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, *models.Account, error) {
	started := time.Now()

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, nil, err
	}

	if err := validateAmount(req.Amount); err != nil {
		return nil, nil, err
	}

	if _, err := s.accountRepo.GetByIDForUser(req.AccountID, userID); err != nil {
		return nil, nil, err
	}

	category, err := s.categoryRepo.GetByIDForUser(req.CategoryID, userID)
	if err != nil {
		return nil, nil, err
	}

	if category.CategoryType != req.Type {
		return nil, nil, ErrCategoryTypeMismatch
	}

	transaction := &models.Transaction{
		UserID:          userID,
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		TransactionType: req.Type,
		Amount:          req.Amount,
		Date:            date,
		Notes:           req.Notes,
	}

	budgetID, err := s.budgetIDFor(transaction)
	if err != nil {
		return nil, nil, err
	}

	mutation := s.reconciler.MutationForCreate(transaction, budgetID)
	if err := s.ledgerRepo.Apply(mutation); err != nil {
		s.recordOutcome("create", false, started)
		return nil, nil, err
	}

	account, err := s.accountRepo.GetByID(req.AccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload account: %w", err)
	}

	s.recordOutcome("create", true, started)
	s.logger.Info("transaction created",
		"transaction_id", transaction.ID,
		"user_id", userID,
		"type", transaction.TransactionType,
		"amount", transaction.Amount)

	return transaction, account, nil
}

// UpdateTransaction replaces a transaction and applies the corrective deltas
// to whichever accounts and budgets the old and new states touch.
func (s *TransactionService) UpdateTransaction(userID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	started := time.Now()

	oldTxn, err := s.transactionRepo.GetByIDForUser(req.ID, userID)
	if err != nil {
		return nil, err
	}

	date, err := parseTransactionDate(req.Date)
	if err != nil {
		return nil, err
	}

	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.GetByIDForUser(req.AccountID, userID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByIDForUser(req.CategoryID, userID)
	if err != nil {
		return nil, err
	}

	if category.CategoryType != req.Type {
		return nil, ErrCategoryTypeMismatch
	}

	newTxn := &models.Transaction{
		ID:              oldTxn.ID,
		UserID:          userID,
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		TransactionType: req.Type,
		Amount:          req.Amount,
		Date:            date,
		Notes:           req.Notes,
		CreatedAt:       oldTxn.CreatedAt,
	}

	oldBudgetID, err := s.budgetIDFor(oldTxn)
	if err != nil {
		return nil, err
	}

	newBudgetID, err := s.budgetIDFor(newTxn)
	if err != nil {
		return nil, err
	}

	mutation := s.reconciler.MutationForEdit(oldTxn, newTxn, oldBudgetID, newBudgetID)
	if err := s.ledgerRepo.Apply(mutation); err != nil {
		s.recordOutcome("update", false, started)
		return nil, err
	}

	s.recordOutcome("update", true, started)
	s.logger.Info("transaction updated",
		"transaction_id", newTxn.ID,
		"user_id", userID)

	return s.transactionRepo.GetByID(newTxn.ID)
}

// DeleteTransaction removes a transaction, reversing its balance and budget
// effects in the same commit. Returns the deleted record.
func (s *TransactionService) DeleteTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	started := time.Now()

	transaction, err := s.transactionRepo.GetByIDForUser(transactionID, userID)
	if err != nil {
		return nil, err
	}

	budgetID, err := s.budgetIDFor(transaction)
	if err != nil {
		return nil, err
	}

	mutation := s.reconciler.MutationForDelete(transaction, budgetID)
	if err := s.ledgerRepo.Apply(mutation); err != nil {
		s.recordOutcome("delete", false, started)
		return nil, err
	}

	s.recordOutcome("delete", true, started)
	s.logger.Info("transaction deleted",
		"transaction_id", transactionID,
		"user_id", userID)

	return transaction, nil
}

// GetTransaction retrieves one transaction scoped to its owner
func (s *TransactionService) GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	return s.transactionRepo.GetByIDForUser(transactionID, userID)
}

// ListTransactions retrieves a filtered, paginated transaction page
func (s *TransactionService) ListTransactions(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	return s.transactionRepo.GetWithFilters(userID, filters)
}

// budgetIDFor resolves the budget covering the transaction's category and
// month. Only expenses contribute to budgets, and a missing budget is not an
// error; both cases return uuid.Nil.
func (s *TransactionService) budgetIDFor(transaction *models.Transaction) (uuid.UUID, error) {
	if !transaction.IsExpense() {
		return uuid.Nil, nil
	}

	budget, err := s.budgetRepo.GetByUserCategoryMonth(transaction.UserID, transaction.CategoryID, transaction.MonthKey())
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}

	return budget.ID, nil
}

func (s *TransactionService) recordOutcome(operation string, success bool, started time.Time) {
	if s.metrics == nil {
		return
	}

	name := "transaction.processed.success"
	if !success {
		name = "transaction.processed.failed"
	}
	s.metrics.IncrementCounter(name, map[string]string{"operation": operation})
	s.metrics.RecordProcessingTime("transaction.processing", time.Since(started))
}

func parseTransactionDate(value string) (time.Time, error) {
	for _, layout := range transactionDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTransactionDate
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransactionValue
	}
	return nil
}
