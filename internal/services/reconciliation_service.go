package services

import (
	"fintrack-api/internal/models"

	"github.com/google/uuid"
)

// Reconciler turns each transaction write into the ledger mutation that
// keeps account balances and budget spent accumulators consistent with the
// transaction rows. It is pure delta arithmetic; the ledger repository
// applies the result atomically.
type Reconciler struct{}

// NewReconciler creates a reconciler
func NewReconciler() ReconcilerInterface {
	return &Reconciler{}
}

// MutationForCreate inserts the row, moves the account balance by the
// transaction's signed effect, and, when a budget covers the transaction's
// (category, month), adds the expense contribution to its spent. budgetID
// is uuid.Nil when no budget matches.
func (r *Reconciler) MutationForCreate(transaction *models.Transaction, budgetID uuid.UUID) *models.LedgerMutation {
	mutation := &models.LedgerMutation{Insert: transaction}
	mutation.AddAccountDelta(transaction.AccountID, transaction.BalanceEffect())
	mutation.AddBudgetDelta(budgetID, transaction.ExpenseContribution())
	return mutation
}

// MutationForEdit replaces the row and reconciles both axes independently:
// the old account loses the old effect and the new account gains the new
// effect, while the old budget loses the old expense contribution and the
// new budget gains the new one. When the account (or budget) is unchanged
// the two deltas merge into the single combined adjustment, so
// income→expense on one account becomes -old-new, expense→expense becomes
// old-new, and an unchanged budget moves by new-old.
func (r *Reconciler) MutationForEdit(oldTxn, newTxn *models.Transaction, oldBudgetID, newBudgetID uuid.UUID) *models.LedgerMutation {
	mutation := &models.LedgerMutation{Update: newTxn}

	mutation.AddAccountDelta(oldTxn.AccountID, oldTxn.BalanceEffect().Neg())
	mutation.AddAccountDelta(newTxn.AccountID, newTxn.BalanceEffect())

	mutation.AddBudgetDelta(oldBudgetID, oldTxn.ExpenseContribution().Neg())
	mutation.AddBudgetDelta(newBudgetID, newTxn.ExpenseContribution())

	return mutation
}

// MutationForDelete removes the row and reverses the creation effect
// exactly: the balance gets the negated effect back and any matching
// budget's spent drops by the expense contribution (clamped at zero when
// the contribution predates the budget).
func (r *Reconciler) MutationForDelete(transaction *models.Transaction, budgetID uuid.UUID) *models.LedgerMutation {
	mutation := &models.LedgerMutation{DeleteID: transaction.ID}
	mutation.AddAccountDelta(transaction.AccountID, transaction.BalanceEffect().Neg())
	mutation.AddBudgetDelta(budgetID, transaction.ExpenseContribution().Neg())
	return mutation
}
