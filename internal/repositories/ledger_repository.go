package repositories

import (
	"errors"
	"fmt"

	"fintrack-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ledgerRepository implements LedgerRepositoryInterface
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) LedgerRepositoryInterface {
	return &ledgerRepository{
		db: db,
	}
}

// Apply commits one ledger mutation atomically: the transaction row
// operation together with every account balance and budget spent
// adjustment it implies. Affected rows are locked before adjustment so
// concurrent mutations serialize per account and per budget. Any failure
// rolls back the whole unit.
func (r *ledgerRepository) Apply(mutation *models.LedgerMutation) error {
	if mutation == nil || mutation.IsEmpty() {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.applyRowOperation(tx, mutation); err != nil {
			return err
		}

		for _, delta := range mutation.AccountDeltas {
			if err := r.applyAccountDelta(tx, delta); err != nil {
				return err
			}
		}

		for _, delta := range mutation.BudgetDeltas {
			if err := r.applyBudgetDelta(tx, delta); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ledgerRepository) applyRowOperation(tx *gorm.DB, mutation *models.LedgerMutation) error {
	switch {
	case mutation.Insert != nil:
		if err := tx.Create(mutation.Insert).Error; err != nil {
			return fmt.Errorf("failed to insert transaction row: %w", err)
		}
	case mutation.Update != nil:
		result := tx.Model(&models.Transaction{}).
			Where("id = ?", mutation.Update.ID).
			Updates(map[string]interface{}{
				"account_id":       mutation.Update.AccountID,
				"category_id":      mutation.Update.CategoryID,
				"transaction_type": mutation.Update.TransactionType,
				"amount":           mutation.Update.Amount,
				"date":             mutation.Update.Date,
				"notes":            mutation.Update.Notes,
				"updated_at":       tx.NowFunc(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update transaction row: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
	case mutation.DeleteID != uuid.Nil:
		result := tx.Where("id = ?", mutation.DeleteID).Delete(&models.Transaction{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction row: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
	}

	return nil
}

func (r *ledgerRepository) applyAccountDelta(tx *gorm.DB, delta models.AccountDelta) error {
	account := &models.Account{ID: delta.AccountID}

	// Row-level locking prevents concurrent balance modifications
	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to lock account: %w", err)
	}

	newBalance := account.Balance.Add(delta.Delta)
	if err := tx.Model(account).Update("balance", newBalance).Error; err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	return nil
}

func (r *ledgerRepository) applyBudgetDelta(tx *gorm.DB, delta models.BudgetDelta) error {
	budget := &models.Budget{ID: delta.BudgetID}

	if err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("failed to lock budget: %w", err)
	}

	newSpent := models.ClampSpent(budget.Spent.Add(delta.Delta))
	if err := tx.Model(budget).Update("spent", newSpent).Error; err != nil {
		return fmt.Errorf("failed to update budget spent: %w", err)
	}

	return nil
}
