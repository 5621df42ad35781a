package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	validUserID := uuid.New()

	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid bank account",
			account: Account{
				UserID:      validUserID,
				Name:        "Everyday Checking",
				AccountType: AccountTypeBank,
				Balance:     decimal.NewFromFloat(1000.50),
			},
			wantErr: false,
		},
		{
			name: "valid cash account",
			account: Account{
				UserID:      validUserID,
				Name:        "Wallet",
				AccountType: AccountTypeCash,
				Balance:     decimal.NewFromFloat(50.00),
			},
			wantErr: false,
		},
		{
			name: "credit account with negative balance",
			account: Account{
				UserID:      validUserID,
				Name:        "Visa",
				AccountType: AccountTypeCredit,
				Balance:     decimal.NewFromFloat(-432.10),
			},
			wantErr: false,
		},
		{
			name: "missing user ID",
			account: Account{
				Name:        "Everyday Checking",
				AccountType: AccountTypeBank,
			},
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name: "missing name",
			account: Account{
				UserID:      validUserID,
				AccountType: AccountTypeBank,
			},
			wantErr: true,
			errMsg:  "account name is required",
		},
		{
			name: "invalid account type",
			account: Account{
				UserID:      validUserID,
				Name:        "Everyday Checking",
				AccountType: "checking",
			},
			wantErr: true,
			errMsg:  "invalid account type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccount_ApplyTransactionEffect(t *testing.T) {
	account := Account{
		UserID:      uuid.New(),
		Name:        "Everyday Checking",
		AccountType: AccountTypeBank,
		Balance:     decimal.NewFromInt(1000),
	}

	account.ApplyTransactionEffect(TransactionTypeExpense, decimal.NewFromInt(150))
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(850)), "expense should subtract, got %s", account.Balance)

	account.ApplyTransactionEffect(TransactionTypeIncome, decimal.NewFromInt(300))
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1150)), "income should add, got %s", account.Balance)
}

func TestAccount_BalanceMayGoNegative(t *testing.T) {
	account := Account{
		UserID:      uuid.New(),
		Name:        "Wallet",
		AccountType: AccountTypeCash,
		Balance:     decimal.NewFromInt(10),
	}

	account.ApplyTransactionEffect(TransactionTypeExpense, decimal.NewFromInt(25))

	assert.True(t, account.Balance.Equal(decimal.NewFromInt(-15)))
	assert.NoError(t, account.Validate(), "negative balances are allowed")
}

func TestIsValidAccountType(t *testing.T) {
	for _, accountType := range AllAccountTypes() {
		assert.True(t, IsValidAccountType(accountType), "expected %s to be valid", accountType)
	}

	assert.False(t, IsValidAccountType("checking"))
	assert.False(t, IsValidAccountType(""))
	assert.False(t, IsValidAccountType("BANK"))
}
