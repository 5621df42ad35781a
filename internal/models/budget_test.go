package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudget_Validate(t *testing.T) {
	validUserID := uuid.New()
	validCategoryID := uuid.New()

	tests := []struct {
		name    string
		budget  Budget
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid budget",
			budget: Budget{
				UserID:     validUserID,
				CategoryID: validCategoryID,
				Month:      "2026-03",
				Amount:     decimal.NewFromInt(500),
				Spent:      decimal.NewFromInt(120),
			},
			wantErr: false,
		},
		{
			name: "missing user ID",
			budget: Budget{
				CategoryID: validCategoryID,
				Month:      "2026-03",
				Amount:     decimal.NewFromInt(500),
			},
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name: "missing category ID",
			budget: Budget{
				UserID: validUserID,
				Month:  "2026-03",
				Amount: decimal.NewFromInt(500),
			},
			wantErr: true,
			errMsg:  "category ID is required",
		},
		{
			name: "malformed month key",
			budget: Budget{
				UserID:     validUserID,
				CategoryID: validCategoryID,
				Month:      "March 2026",
				Amount:     decimal.NewFromInt(500),
			},
			wantErr: true,
			errMsg:  "YYYY-MM",
		},
		{
			name: "month out of range",
			budget: Budget{
				UserID:     validUserID,
				CategoryID: validCategoryID,
				Month:      "2026-13",
				Amount:     decimal.NewFromInt(500),
			},
			wantErr: true,
			errMsg:  "YYYY-MM",
		},
		{
			name: "zero amount",
			budget: Budget{
				UserID:     validUserID,
				CategoryID: validCategoryID,
				Month:      "2026-03",
				Amount:     decimal.Zero,
			},
			wantErr: true,
			errMsg:  "budget amount must be positive",
		},
		{
			name: "negative spent",
			budget: Budget{
				UserID:     validUserID,
				CategoryID: validCategoryID,
				Month:      "2026-03",
				Amount:     decimal.NewFromInt(500),
				Spent:      decimal.NewFromInt(-1),
			},
			wantErr: true,
			errMsg:  "spent cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
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

func TestBudget_AddSpent(t *testing.T) {
	budget := Budget{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Month:      "2026-03",
		Amount:     decimal.NewFromInt(500),
		Spent:      decimal.NewFromInt(100),
	}

	budget.AddSpent(decimal.NewFromInt(50))
	assert.True(t, budget.Spent.Equal(decimal.NewFromInt(150)))

	budget.AddSpent(decimal.NewFromInt(-30))
	assert.True(t, budget.Spent.Equal(decimal.NewFromInt(120)))
}

func TestBudget_AddSpent_ClampsAtZero(t *testing.T) {
	// Reversing a contribution larger than the recorded spent, e.g. when the
	// transaction predates the budget, floors at zero instead of going negative.
	budget := Budget{
		UserID:     uuid.New(),
		CategoryID: uuid.New(),
		Month:      "2026-03",
		Amount:     decimal.NewFromInt(500),
		Spent:      decimal.NewFromInt(40),
	}

	budget.AddSpent(decimal.NewFromInt(-100))

	assert.True(t, budget.Spent.Equal(decimal.Zero))
}

func TestBudget_Remaining(t *testing.T) {
	budget := Budget{
		Amount: decimal.NewFromInt(500),
		Spent:  decimal.NewFromInt(120),
	}

	assert.True(t, budget.Remaining().Equal(decimal.NewFromInt(380)))
	assert.False(t, budget.IsOverspent())

	budget.Spent = decimal.NewFromInt(620)
	assert.True(t, budget.Remaining().Equal(decimal.NewFromInt(-120)))
	assert.True(t, budget.IsOverspent())
}

func TestClampSpent(t *testing.T) {
	assert.True(t, ClampSpent(decimal.NewFromInt(-5)).Equal(decimal.Zero))
	assert.True(t, ClampSpent(decimal.Zero).Equal(decimal.Zero))
	assert.True(t, ClampSpent(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}
