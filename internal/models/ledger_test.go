package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLedgerMutation_AddAccountDelta_MergesSameAccount(t *testing.T) {
	accountID := uuid.New()
	var m LedgerMutation

	m.AddAccountDelta(accountID, decimal.NewFromInt(100))
	m.AddAccountDelta(accountID, decimal.NewFromInt(-30))

	assert.Len(t, m.AccountDeltas, 1)
	assert.True(t, m.AccountDeltas[0].Delta.Equal(decimal.NewFromInt(70)))
}

func TestLedgerMutation_AddAccountDelta_SkipsZero(t *testing.T) {
	var m LedgerMutation

	m.AddAccountDelta(uuid.New(), decimal.Zero)

	assert.Empty(t, m.AccountDeltas)
}

func TestLedgerMutation_AddAccountDelta_SeparateAccounts(t *testing.T) {
	var m LedgerMutation

	m.AddAccountDelta(uuid.New(), decimal.NewFromInt(100))
	m.AddAccountDelta(uuid.New(), decimal.NewFromInt(-100))

	assert.Len(t, m.AccountDeltas, 2)
}

func TestLedgerMutation_AddBudgetDelta(t *testing.T) {
	budgetID := uuid.New()
	var m LedgerMutation

	m.AddBudgetDelta(budgetID, decimal.NewFromInt(50))
	m.AddBudgetDelta(budgetID, decimal.NewFromInt(25))
	m.AddBudgetDelta(uuid.Nil, decimal.NewFromInt(10)) // no matching budget

	assert.Len(t, m.BudgetDeltas, 1)
	assert.True(t, m.BudgetDeltas[0].Delta.Equal(decimal.NewFromInt(75)))
}

func TestLedgerMutation_IsEmpty(t *testing.T) {
	var m LedgerMutation
	assert.True(t, m.IsEmpty())

	m.AddAccountDelta(uuid.New(), decimal.NewFromInt(1))
	assert.False(t, m.IsEmpty())
}
