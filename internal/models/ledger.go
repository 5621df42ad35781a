package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDelta is a signed adjustment to one account's cached balance.
type AccountDelta struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// BudgetDelta is a signed adjustment to one budget's spent accumulator.
// Spent is clamped at zero when the delta is applied.
type BudgetDelta struct {
	BudgetID uuid.UUID
	Delta    decimal.Decimal
}

// LedgerMutation is the unit of work for one transaction write: the row
// operation plus every cache adjustment it implies. Exactly one of Insert,
// Update, or DeleteID is set. The whole mutation commits atomically or not
// at all, which is what keeps balances and budgets in step with the rows.
type LedgerMutation struct {
	Insert   *Transaction
	Update   *Transaction
	DeleteID uuid.UUID

	AccountDeltas []AccountDelta
	BudgetDeltas  []BudgetDelta
}

// AddAccountDelta records a balance adjustment, merging with an existing
// delta for the same account so each row is locked and written once.
func (m *LedgerMutation) AddAccountDelta(accountID uuid.UUID, delta decimal.Decimal) {
	if delta.IsZero() {
		return
	}
	for i := range m.AccountDeltas {
		if m.AccountDeltas[i].AccountID == accountID {
			m.AccountDeltas[i].Delta = m.AccountDeltas[i].Delta.Add(delta)
			return
		}
	}
	m.AccountDeltas = append(m.AccountDeltas, AccountDelta{AccountID: accountID, Delta: delta})
}

// AddBudgetDelta records a spent adjustment, merging with an existing delta
// for the same budget.
func (m *LedgerMutation) AddBudgetDelta(budgetID uuid.UUID, delta decimal.Decimal) {
	if budgetID == uuid.Nil || delta.IsZero() {
		return
	}
	for i := range m.BudgetDeltas {
		if m.BudgetDeltas[i].BudgetID == budgetID {
			m.BudgetDeltas[i].Delta = m.BudgetDeltas[i].Delta.Add(delta)
			return
		}
	}
	m.BudgetDeltas = append(m.BudgetDeltas, BudgetDelta{BudgetID: budgetID, Delta: delta})
}

// IsEmpty reports whether the mutation carries no work at all.
func (m *LedgerMutation) IsEmpty() bool {
	return m.Insert == nil && m.Update == nil && m.DeleteID == uuid.Nil &&
		len(m.AccountDeltas) == 0 && len(m.BudgetDeltas) == 0
}
