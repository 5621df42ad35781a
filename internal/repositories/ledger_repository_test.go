package repositories

import (
	"testing"
	"time"

	"fintrack-api/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LedgerRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo LedgerRepositoryInterface

	user     *models.User
	account  *models.Account
	category *models.Category
	budget   *models.Budget
}

func (suite *LedgerRepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	err = db.AutoMigrate(&models.User{}, &models.Account{}, &models.Category{}, &models.Budget{}, &models.Transaction{})
	suite.Require().NoError(err)

	suite.db = db
	suite.repo = NewLedgerRepository(db)

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
		Balance:     decimal.NewFromInt(1000),
	}
	suite.Require().NoError(db.Create(suite.account).Error)

	suite.category = &models.Category{
		UserID:       suite.user.ID,
		Name:         "Groceries",
		CategoryType: models.CategoryTypeExpense,
	}
	suite.Require().NoError(db.Create(suite.category).Error)

	suite.budget = &models.Budget{
		UserID:     suite.user.ID,
		CategoryID: suite.category.ID,
		Month:      "2025-06",
		Amount:     decimal.NewFromInt(500),
		Spent:      decimal.NewFromInt(100),
	}
	suite.Require().NoError(db.Create(suite.budget).Error)
}

func (suite *LedgerRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (suite *LedgerRepositoryTestSuite) newExpense(amount int64) *models.Transaction {
	return &models.Transaction{
		UserID:          suite.user.ID,
		AccountID:       suite.account.ID,
		CategoryID:      suite.category.ID,
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromInt(amount),
		Date:            time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *LedgerRepositoryTestSuite) reloadAccount() *models.Account {
	var account models.Account
	suite.Require().NoError(suite.db.First(&account, "id = ?", suite.account.ID).Error)
	return &account
}

func (suite *LedgerRepositoryTestSuite) reloadBudget() *models.Budget {
	var budget models.Budget
	suite.Require().NoError(suite.db.First(&budget, "id = ?", suite.budget.ID).Error)
	return &budget
}

func (suite *LedgerRepositoryTestSuite) TestApplyNilMutation() {
	suite.NoError(suite.repo.Apply(nil))
	suite.NoError(suite.repo.Apply(&models.LedgerMutation{}))

	suite.True(suite.reloadAccount().Balance.Equal(decimal.NewFromInt(1000)))
	suite.True(suite.reloadBudget().Spent.Equal(decimal.NewFromInt(100)))
}

func (suite *LedgerRepositoryTestSuite) TestApplyInsertWithDeltas() {
	transaction := suite.newExpense(150)

	mutation := &models.LedgerMutation{Insert: transaction}
	mutation.AddAccountDelta(suite.account.ID, transaction.BalanceEffect())
	mutation.AddBudgetDelta(suite.budget.ID, transaction.ExpenseContribution())

	suite.NoError(suite.repo.Apply(mutation))

	var count int64
	suite.db.Model(&models.Transaction{}).Count(&count)
	suite.Equal(int64(1), count)

	suite.True(suite.reloadAccount().Balance.Equal(decimal.NewFromInt(850)))
	suite.True(suite.reloadBudget().Spent.Equal(decimal.NewFromInt(250)))
}

func (suite *LedgerRepositoryTestSuite) TestApplyUpdateRow() {
	transaction := suite.newExpense(150)
	suite.Require().NoError(suite.db.Create(transaction).Error)

	updated := *transaction
	updated.Amount = decimal.NewFromInt(200)
	updated.Notes = "corrected amount"

	mutation := &models.LedgerMutation{Update: &updated}
	mutation.AddAccountDelta(suite.account.ID, decimal.NewFromInt(-50))
	mutation.AddBudgetDelta(suite.budget.ID, decimal.NewFromInt(50))

	suite.NoError(suite.repo.Apply(mutation))

	var stored models.Transaction
	suite.Require().NoError(suite.db.First(&stored, "id = ?", transaction.ID).Error)
	suite.True(stored.Amount.Equal(decimal.NewFromInt(200)))
	suite.Equal("corrected amount", stored.Notes)

	suite.True(suite.reloadAccount().Balance.Equal(decimal.NewFromInt(950)))
	suite.True(suite.reloadBudget().Spent.Equal(decimal.NewFromInt(150)))
}

func (suite *LedgerRepositoryTestSuite) TestApplyDeleteReversesEffects() {
	transaction := suite.newExpense(150)
	suite.Require().NoError(suite.db.Create(transaction).Error)

	mutation := &models.LedgerMutation{DeleteID: transaction.ID}
	mutation.AddAccountDelta(suite.account.ID, transaction.BalanceEffect().Neg())
	mutation.AddBudgetDelta(suite.budget.ID, transaction.ExpenseContribution().Neg())

	suite.NoError(suite.repo.Apply(mutation))

	var count int64
	suite.db.Model(&models.Transaction{}).Where("id = ?", transaction.ID).Count(&count)
	suite.Equal(int64(0), count)

	suite.True(suite.reloadAccount().Balance.Equal(decimal.NewFromInt(1150)))
	suite.True(suite.reloadBudget().Spent.Equal(decimal.Zero))
}

func (suite *LedgerRepositoryTestSuite) TestApplyClampsSpentAtZero() {
	// Reversal larger than accumulated spending: the transaction predates
	// the budget, so its contribution was never counted.
	mutation := &models.LedgerMutation{}
	mutation.AddBudgetDelta(suite.budget.ID, decimal.NewFromInt(-400))

	suite.NoError(suite.repo.Apply(mutation))
	suite.True(suite.reloadBudget().Spent.Equal(decimal.Zero))
}

func (suite *LedgerRepositoryTestSuite) TestApplyUpdateMissingTransaction() {
	missing := suite.newExpense(25)
	missing.ID = uuid.New()

	mutation := &models.LedgerMutation{Update: missing}
	err := suite.repo.Apply(mutation)
	suite.ErrorIs(err, ErrTransactionNotFound)
}

func (suite *LedgerRepositoryTestSuite) TestApplyDeleteMissingTransaction() {
	mutation := &models.LedgerMutation{DeleteID: uuid.New()}
	err := suite.repo.Apply(mutation)
	suite.ErrorIs(err, ErrTransactionNotFound)
}

func (suite *LedgerRepositoryTestSuite) TestApplyMissingAccountRollsBack() {
	transaction := suite.newExpense(75)

	mutation := &models.LedgerMutation{Insert: transaction}
	mutation.AddAccountDelta(uuid.New(), decimal.NewFromInt(-75))

	err := suite.repo.Apply(mutation)
	suite.ErrorIs(err, ErrAccountNotFound)

	// The insert must not survive the failed delta
	var count int64
	suite.db.Model(&models.Transaction{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *LedgerRepositoryTestSuite) TestApplyMissingBudgetRollsBack() {
	transaction := suite.newExpense(75)

	mutation := &models.LedgerMutation{Insert: transaction}
	mutation.AddAccountDelta(suite.account.ID, decimal.NewFromInt(-75))
	mutation.AddBudgetDelta(uuid.New(), decimal.NewFromInt(75))

	err := suite.repo.Apply(mutation)
	suite.ErrorIs(err, ErrBudgetNotFound)

	var count int64
	suite.db.Model(&models.Transaction{}).Count(&count)
	suite.Equal(int64(0), count)
	suite.True(suite.reloadAccount().Balance.Equal(decimal.NewFromInt(1000)))
}

func (suite *LedgerRepositoryTestSuite) TestApplyMultipleAccountDeltas() {
	second := &models.Account{
		UserID:      suite.user.ID,
		Name:        "Savings",
		AccountType: models.AccountTypeBank,
		Balance:     decimal.NewFromInt(500),
	}
	suite.Require().NoError(suite.db.Create(second).Error)

	// Moving a transaction between accounts touches both balances
	mutation := &models.LedgerMutation{}
	mutation.AddAccountDelta(suite.account.ID, decimal.NewFromInt(150))
	mutation.AddAccountDelta(second.ID, decimal.NewFromInt(-150))

	suite.NoError(suite.repo.Apply(mutation))

	suite.True(suite.reloadAccount().Balance.Equal(decimal.NewFromInt(1150)))

	var reloaded models.Account
	suite.Require().NoError(suite.db.First(&reloaded, "id = ?", second.ID).Error)
	suite.True(reloaded.Balance.Equal(decimal.NewFromInt(350)))
}

func TestLedgerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerRepositoryTestSuite))
}
