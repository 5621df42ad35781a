package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service BudgetServiceInterface

	user     *models.User
	account  *models.Account
	category *models.Category
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Account{}, &models.Category{}, &models.Budget{}, &models.Transaction{})
	suite.Require().NoError(err)

	suite.db = db

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.service = NewBudgetService(
		repositories.NewBudgetRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewTransactionRepository(db),
		log,
	)

	suite.user = &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		Name:         gofakeit.Name(),
	}
	suite.Require().NoError(db.Create(suite.user).Error)

	suite.account = &models.Account{
		UserID:      suite.user.ID,
		Name:        "Checking",
		AccountType: models.AccountTypeBank,
	}
	suite.Require().NoError(db.Create(suite.account).Error)

	suite.category = &models.Category{
		UserID:       suite.user.ID,
		Name:         "Groceries",
		CategoryType: models.CategoryTypeExpense,
	}
	suite.Require().NoError(db.Create(suite.category).Error)
}

func (suite *BudgetServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *BudgetServiceTestSuite) createExpense(amount int64, date time.Time) {
	transaction := &models.Transaction{
		UserID:          suite.user.ID,
		AccountID:       suite.account.ID,
		CategoryID:      suite.category.ID,
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromInt(amount),
		Date:            date,
	}
	suite.Require().NoError(suite.db.Create(transaction).Error)
}

func (suite *BudgetServiceTestSuite) TestCreateBudgetEmptyMonth() {
	budget, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	suite.True(budget.Spent.IsZero())
	suite.True(budget.Amount.Equal(decimal.NewFromInt(500)))
}

func (suite *BudgetServiceTestSuite) TestCreateBudgetSeedsSpent() {
	suite.createExpense(40, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
	suite.createExpense(60, time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC))
	// Outside the month, must not count
	suite.createExpense(999, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	suite.createExpense(999, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))

	budget, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	suite.True(budget.Spent.Equal(decimal.NewFromInt(100)), "got %s", budget.Spent)
}

func (suite *BudgetServiceTestSuite) TestDuplicateBudgetRejected() {
	first, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(900),
		Month:      "2025-06",
	})
	suite.ErrorIs(err, ErrBudgetAlreadyExists)

	// The existing budget is untouched
	var stored models.Budget
	suite.Require().NoError(suite.db.First(&stored, "id = ?", first.ID).Error)
	suite.True(stored.Amount.Equal(decimal.NewFromInt(500)))
}

func (suite *BudgetServiceTestSuite) TestCreateBudgetValidation() {
	_, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(-5),
		Month:      "2025-06",
	})
	suite.ErrorIs(err, ErrInvalidBudgetValue)

	_, err = suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-13",
	})
	suite.ErrorIs(err, models.ErrInvalidBudgetMonth)

	_, err = suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: uuid.New(),
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.ErrorIs(err, repositories.ErrCategoryNotFound)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetAmount() {
	budget, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateBudget(suite.user.ID, budget.ID, &dto.UpdateBudgetRequest{
		Amount: decimal.NewFromInt(750),
	})
	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(750)))
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetKeyImmutable() {
	budget, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	otherCategory := uuid.New()
	_, err = suite.service.UpdateBudget(suite.user.ID, budget.ID, &dto.UpdateBudgetRequest{
		Amount:     decimal.NewFromInt(750),
		CategoryID: &otherCategory,
	})
	suite.ErrorIs(err, ErrBudgetKeyImmutable)

	otherMonth := "2025-07"
	_, err = suite.service.UpdateBudget(suite.user.ID, budget.ID, &dto.UpdateBudgetRequest{
		Amount: decimal.NewFromInt(750),
		Month:  &otherMonth,
	})
	suite.ErrorIs(err, ErrBudgetKeyImmutable)
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget() {
	budget, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteBudget(suite.user.ID, budget.ID))

	_, err = suite.service.GetBudget(suite.user.ID, budget.ID)
	suite.ErrorIs(err, repositories.ErrBudgetNotFound)
}

func (suite *BudgetServiceTestSuite) TestGetUserBudgetsByMonth() {
	_, err := suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(500),
		Month:      "2025-06",
	})
	suite.Require().NoError(err)

	_, err = suite.service.CreateBudget(suite.user.ID, &dto.CreateBudgetRequest{
		CategoryID: suite.category.ID,
		Amount:     decimal.NewFromInt(600),
		Month:      "2025-07",
	})
	suite.Require().NoError(err)

	budgets, err := suite.service.GetUserBudgets(suite.user.ID, "2025-06")
	suite.Require().NoError(err)
	suite.Len(budgets, 1)

	budgets, err = suite.service.GetUserBudgets(suite.user.ID, "")
	suite.Require().NoError(err)
	suite.Len(budgets, 2)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
