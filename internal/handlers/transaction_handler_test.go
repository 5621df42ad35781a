package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"
	"fintrack-api/internal/services"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	echo    *echo.Echo
	handler *TransactionHandler

	user     *models.User
	account  *models.Account
	category *models.Category
	budget   *models.Budget
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Account{}, &models.Category{}, &models.Budget{}, &models.Transaction{})
	s.Require().NoError(err)

	s.db = db

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	transactionService := services.NewTransactionService(
		repositories.NewTransactionRepository(db),
		repositories.NewAccountRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewBudgetRepository(db),
		repositories.NewLedgerRepository(db),
		services.NewReconciler(),
		nil,
		log,
	)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.handler = NewTransactionHandler(transactionService)

	s.user = &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		Name:         gofakeit.Name(),
	}
	s.Require().NoError(db.Create(s.user).Error)

	s.account = &models.Account{
		UserID:      s.user.ID,
		Name:        "Checking",
		AccountType: models.AccountTypeBank,
		Balance:     decimal.NewFromInt(1000),
	}
	s.Require().NoError(db.Create(s.account).Error)

	s.category = &models.Category{
		UserID:       s.user.ID,
		Name:         "Groceries",
		CategoryType: models.CategoryTypeExpense,
	}
	s.Require().NoError(db.Create(s.category).Error)

	s.budget = &models.Budget{
		UserID:     s.user.ID,
		CategoryID: s.category.ID,
		Month:      "2025-06",
		Amount:     decimal.NewFromInt(500),
		Spent:      decimal.Zero,
	}
	s.Require().NoError(db.Create(s.budget).Error)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// newContext builds an authenticated request context for the handler under test
func (s *TransactionHandlerTestSuite) newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set("user_id", s.user.ID)
	return c, rec
}

func (s *TransactionHandlerTestSuite) createBody(amount int64) string {
	return fmt.Sprintf(`{"type":"expense","amount":%d,"date":"2025-06-15","categoryId":%q,"accountId":%q,"notes":"weekly shop"}`,
		amount, s.category.ID, s.account.ID)
}

func (s *TransactionHandlerTestSuite) reloadAccount() *models.Account {
	var account models.Account
	s.Require().NoError(s.db.First(&account, "id = ?", s.account.ID).Error)
	return &account
}

func (s *TransactionHandlerTestSuite) reloadBudget() *models.Budget {
	var budget models.Budget
	s.Require().NoError(s.db.First(&budget, "id = ?", s.budget.ID).Error)
	return &budget
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", s.createBody(150))

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.CreateTransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	s.Equal("Transaction created successfully", response.Message)
	s.Require().NotNil(response.Transaction)
	s.True(response.Transaction.Amount.Equal(decimal.NewFromInt(150)))

	// The response carries the post-commit balance
	s.Require().NotNil(response.Account)
	s.True(response.Account.Balance.Equal(decimal.NewFromInt(850)))

	s.True(s.reloadBudget().Spent.Equal(decimal.NewFromInt(150)))
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionRejectsTypeMismatch() {
	body := fmt.Sprintf(`{"type":"income","amount":100,"date":"2025-06-15","categoryId":%q,"accountId":%q}`,
		s.category.ID, s.account.ID)
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_004")

	s.True(s.reloadAccount().Balance.Equal(decimal.NewFromInt(1000)))
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionRejectsBadDate() {
	body := fmt.Sprintf(`{"type":"expense","amount":100,"date":"June 15th","categoryId":%q,"accountId":%q}`,
		s.category.ID, s.account.ID)
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "VALIDATION_006")
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionUnknownAccount() {
	body := fmt.Sprintf(`{"type":"expense","amount":100,"date":"2025-06-15","categoryId":%q,"accountId":%q}`,
		s.category.ID, uuid.New())
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "ACCOUNT_001")
}

func (s *TransactionHandlerTestSuite) TestUpdateTransactionByBodyID() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", s.createBody(150))
	s.Require().NoError(s.handler.CreateTransaction(c))
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created dto.CreateTransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	body := fmt.Sprintf(`{"id":%q,"type":"expense","amount":200,"date":"2025-06-15","categoryId":%q,"accountId":%q}`,
		created.Transaction.ID, s.category.ID, s.account.ID)
	c, rec = s.newContext(http.MethodPut, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.UpdateTransaction(c))
	s.Equal(http.StatusOK, rec.Code)

	var updated dto.UpdateTransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.True(updated.Transaction.Amount.Equal(decimal.NewFromInt(200)))

	s.True(s.reloadAccount().Balance.Equal(decimal.NewFromInt(800)))
	s.True(s.reloadBudget().Spent.Equal(decimal.NewFromInt(200)))
}

func (s *TransactionHandlerTestSuite) TestUpdateTransactionUnknownID() {
	body := fmt.Sprintf(`{"id":%q,"type":"expense","amount":200,"date":"2025-06-15","categoryId":%q,"accountId":%q}`,
		uuid.New(), s.category.ID, s.account.ID)
	c, rec := s.newContext(http.MethodPut, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.UpdateTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "TRANSACTION_001")
}

func (s *TransactionHandlerTestSuite) TestDeleteTransactionByBodyID() {
	c, rec := s.newContext(http.MethodPost, "/api/v1/transactions", s.createBody(150))
	s.Require().NoError(s.handler.CreateTransaction(c))

	var created dto.CreateTransactionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))

	body := fmt.Sprintf(`{"id":%q}`, created.Transaction.ID)
	c, rec = s.newContext(http.MethodDelete, "/api/v1/transactions", body)

	s.Require().NoError(s.handler.DeleteTransaction(c))
	s.Equal(http.StatusOK, rec.Code)

	// The deleted record is returned
	var deleted models.Transaction
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &deleted))
	s.Equal(created.Transaction.ID, deleted.ID)

	// Effects fully reversed
	s.True(s.reloadAccount().Balance.Equal(decimal.NewFromInt(1000)))
	s.True(s.reloadBudget().Spent.IsZero())
}

func (s *TransactionHandlerTestSuite) TestListTransactionsFiltersAndPaginates() {
	for i := 0; i < 5; i++ {
		transaction := &models.Transaction{
			UserID:          s.user.ID,
			AccountID:       s.account.ID,
			CategoryID:      s.category.ID,
			TransactionType: models.TransactionTypeExpense,
			Amount:          decimal.NewFromInt(int64(10 + i)),
			Date:            time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC),
		}
		s.Require().NoError(s.db.Create(transaction).Error)
	}

	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?limit=2&offset=0", "")

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ListTransactionsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))

	s.Len(response.Transactions, 2)
	s.Equal(int64(5), response.Pagination.Total)
	s.Equal(2, response.Pagination.Limit)
}

func (s *TransactionHandlerTestSuite) TestListTransactionsRejectsBadType() {
	c, rec := s.newContext(http.MethodGet, "/api/v1/transactions?type=transfer", "")

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *TransactionHandlerTestSuite) TestMissingUserContext() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
