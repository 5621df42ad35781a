package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service DashboardServiceInterface

	user     *models.User
	category *models.Category
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Account{}, &models.Category{}, &models.Transaction{})
	suite.Require().NoError(err)

	suite.db = db

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.service = NewDashboardService(
		repositories.NewAccountRepository(db),
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

	suite.category = &models.Category{
		UserID:       suite.user.ID,
		Name:         "Groceries",
		CategoryType: models.CategoryTypeExpense,
	}
	suite.Require().NoError(db.Create(suite.category).Error)
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *DashboardServiceTestSuite) newAccount(name string, balance int64) *models.Account {
	account := &models.Account{
		UserID:      suite.user.ID,
		Name:        name,
		AccountType: models.AccountTypeBank,
		Balance:     decimal.NewFromInt(balance),
	}
	suite.Require().NoError(suite.db.Create(account).Error)
	return account
}

func (suite *DashboardServiceTestSuite) TestGetDashboardTotalsAcrossAccounts() {
	suite.newAccount("Checking", 1000)
	suite.newAccount("Savings", 250)

	dashboard, err := suite.service.GetDashboard(suite.user.ID)
	suite.Require().NoError(err)

	suite.True(dashboard.TotalBalance.Equal(decimal.NewFromInt(1250)))
	suite.Len(dashboard.Accounts, 2)
	suite.Len(dashboard.Categories, 1)
	suite.Empty(dashboard.RecentTransactions)
}

func (suite *DashboardServiceTestSuite) TestGetDashboardLimitsRecentTransactions() {
	account := suite.newAccount("Checking", 1000)

	for day := 1; day <= recentTransactionLimit+3; day++ {
		transaction := &models.Transaction{
			UserID:          suite.user.ID,
			AccountID:       account.ID,
			CategoryID:      suite.category.ID,
			TransactionType: models.TransactionTypeExpense,
			Amount:          decimal.NewFromInt(int64(day)),
			Date:            time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		}
		suite.Require().NoError(suite.db.Create(transaction).Error)
	}

	dashboard, err := suite.service.GetDashboard(suite.user.ID)
	suite.Require().NoError(err)

	suite.Len(dashboard.RecentTransactions, recentTransactionLimit)
	// Newest first
	suite.Equal(13, dashboard.RecentTransactions[0].Date.Day())
}

func (suite *DashboardServiceTestSuite) TestGetDashboardEmptyUser() {
	dashboard, err := suite.service.GetDashboard(suite.user.ID)
	suite.Require().NoError(err)

	suite.True(dashboard.TotalBalance.IsZero())
	suite.Empty(dashboard.Accounts)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
