package handlers

import (
	"fmt"
	"net/http"
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/errors"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"
	"fintrack-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction records a transaction and applies its balance and budget
// effects atomically
// @Summary Create transaction
// @Description Record an income or expense. The account balance and any matching budget's spent are updated in the same database transaction.
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.CreateTransactionResponse "Recorded transaction with the updated account"
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid amount or VALIDATION_006 - Invalid date"
// @Failure 422 {object} errors.ErrorResponse "TRANSACTION_004 - Type does not match category"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found or CATEGORY_001 - Category not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, account, err := h.transactionService.CreateTransaction(userID, &req)
	if err != nil {
		if mapped := mapTransactionError(c, err); mapped != nil {
			return mapped
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Message:     "Transaction created successfully",
		Transaction: transaction,
		Account:     account,
	})
}

// UpdateTransaction replaces a transaction and re-reconciles balances and
// budgets against the old version
// @Summary Update transaction
// @Description Replace a transaction addressed by the id in the request body. Old effects are reversed and new effects applied atomically, including account or month moves.
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateTransactionRequest true "Full replacement transaction, addressed by body id"
// @Success 200 {object} dto.UpdateTransactionResponse "Replaced transaction"
// @Failure 400 {object} errors.ErrorResponse "TRANSACTION_002 - Invalid amount or VALIDATION_006 - Invalid date"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, &req)
	if err != nil {
		if mapped := mapTransactionError(c, err); mapped != nil {
			return mapped
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.UpdateTransactionResponse{
		Message:     "Transaction updated successfully",
		Transaction: transaction,
	})
}

// DeleteTransaction removes a transaction and reverses its effects
// @Summary Delete transaction
// @Description Delete a transaction addressed by the id in the request body. The account balance and any matching budget's spent are restored.
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DeleteTransactionRequest true "Transaction id"
// @Success 200 {object} models.Transaction "The deleted transaction"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /transactions [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.DeleteTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.DeleteTransaction(userID, req.ID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// GetTransaction retrieves a specific transaction by ID
// @Summary Get transaction by ID
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Transaction ID (UUID)"
// @Success 200 {object} models.Transaction "Transaction"
// @Failure 404 {object} errors.ErrorResponse "TRANSACTION_001 - Transaction not found"
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Transaction ID must be a valid UUID"))
	}

	transaction, err := h.transactionService.GetTransaction(userID, transactionID)
	if err != nil {
		if err == repositories.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// ListTransactions retrieves paginated transaction history with filtering
// @Summary List transactions
// @Description Retrieve filtered transaction history, newest first, with offset pagination
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param accountId query string false "Filter by account ID (UUID)"
// @Param categoryId query string false "Filter by category ID (UUID)"
// @Param type query string false "Filter by transaction type" Enums(income, expense)
// @Param startDate query string false "Filter by start date (YYYY-MM-DD)"
// @Param endDate query string false "Filter by end date (YYYY-MM-DD)"
// @Param minAmount query string false "Filter by minimum amount"
// @Param maxAmount query string false "Filter by maximum amount"
// @Param offset query int false "Number of results to skip" default(0)
// @Param limit query int false "Number of results per page (max 100)" default(20)
// @Success 200 {object} dto.ListTransactionsResponse "Transactions with pagination"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid filter parameters"
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, err := parseTransactionFilters(c)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transactions, total, err := h.transactionService.ListTransactions(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: transactions,
		Pagination: dto.PaginationInfo{
			Total:  total,
			Offset: filters.Offset,
			Limit:  filters.Limit,
		},
	})
}

// mapTransactionError translates transaction service errors to API error
// responses; returns nil for unrecognized errors
func mapTransactionError(c echo.Context, err error) error {
	switch err {
	case repositories.ErrTransactionNotFound:
		return SendError(c, errors.TransactionNotFound)
	case repositories.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case repositories.ErrCategoryNotFound:
		return SendError(c, errors.CategoryNotFound)
	case services.ErrInvalidTransactionValue:
		return SendError(c, errors.TransactionInvalidAmount)
	case services.ErrInvalidTransactionDate:
		return SendError(c, errors.ValidationInvalidDate)
	case services.ErrCategoryTypeMismatch:
		return SendError(c, errors.TransactionValidationFailed,
			errors.WithDetails("Transaction type does not match category type"))
	}
	return nil
}

// parseTransactionFilters parses and validates transaction filter parameters
func parseTransactionFilters(c echo.Context) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{
		Offset: 0,
		Limit:  defaultPageLimit,
	}

	if accountIDStr := c.QueryParam("accountId"); accountIDStr != "" {
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			return filters, fmt.Errorf("invalid accountId, must be a UUID")
		}
		filters.AccountID = accountID
	}

	if categoryIDStr := c.QueryParam("categoryId"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			return filters, fmt.Errorf("invalid categoryId, must be a UUID")
		}
		filters.CategoryID = categoryID
	}

	if txnType := c.QueryParam("type"); txnType != "" {
		if txnType != models.TransactionTypeIncome && txnType != models.TransactionTypeExpense {
			return filters, fmt.Errorf("invalid type, must be 'income' or 'expense'")
		}
		filters.Type = txnType
	}

	if startDateStr := c.QueryParam("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid startDate format, use YYYY-MM-DD")
		}
		filters.StartDate = &startDate
	}

	if endDateStr := c.QueryParam("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return filters, fmt.Errorf("invalid endDate format, use YYYY-MM-DD")
		}
		// Set to end of day
		endOfDay := endDate.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filters.EndDate = &endOfDay
	}

	if minAmountStr := c.QueryParam("minAmount"); minAmountStr != "" {
		minAmount, err := decimal.NewFromString(minAmountStr)
		if err != nil {
			return filters, fmt.Errorf("invalid minAmount format")
		}
		filters.MinAmount = &minAmount
	}

	if maxAmountStr := c.QueryParam("maxAmount"); maxAmountStr != "" {
		maxAmount, err := decimal.NewFromString(maxAmountStr)
		if err != nil {
			return filters, fmt.Errorf("invalid maxAmount format")
		}
		filters.MaxAmount = &maxAmount
	}

	filters.Offset = getIntParam(c, "offset", 0)
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	limit := getIntParam(c, "limit", defaultPageLimit)
	if limit < 1 {
		return filters, fmt.Errorf("limit must be at least 1")
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	filters.Limit = limit

	return filters, nil
}
