package accounting_test

import (
	"testing"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/rajabalanj/poultry-ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(debit, credit string) domain.JournalItem {
	return domain.JournalItem{AccountID: "acc", Debit: d(debit), Credit: d(credit)}
}

func TestValidateEntryItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []domain.JournalItem
		wantErr string
	}{
		{
			name:  "balanced entry passes",
			items: []domain.JournalItem{item("100", "0"), item("0", "100")},
		},
		{
			name:  "multi-leg balanced entry passes",
			items: []domain.JournalItem{item("100", "0"), item("0", "60"), item("0", "40")},
		},
		{
			name:    "empty entry rejected",
			items:   nil,
			wantErr: "at least one item",
		},
		{
			name:    "negative side rejected",
			items:   []domain.JournalItem{item("-10", "0"), item("0", "-10")},
			wantErr: "non-negative",
		},
		{
			name:    "two-sided item rejected before balance check",
			items:   []domain.JournalItem{item("100", "100")},
			wantErr: "both a debit and a credit",
		},
		{
			name:    "unbalanced entry rejected",
			items:   []domain.JournalItem{item("100", "0"), item("0", "90")},
			wantErr: "sum of debits must equal sum of credits",
		},
		{
			name:    "zero-amount entry rejected",
			items:   []domain.JournalItem{item("0", "0"), item("0", "0")},
			wantErr: "non-zero amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryItems(tt.items)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.True(t, d("10.57").Equal(accounting.RoundMoney(d("10.565"))))
	assert.True(t, d("10.56").Equal(accounting.RoundMoney(d("10.564"))))
}

func TestSignedBalance(t *testing.T) {
	balance := d("250")

	assert.True(t, d("250").Equal(accounting.SignedBalance(balance, domain.Asset)))
	assert.True(t, d("250").Equal(accounting.SignedBalance(balance, domain.Expense)))
	assert.True(t, d("-250").Equal(accounting.SignedBalance(balance, domain.Liability)))
	assert.True(t, d("-250").Equal(accounting.SignedBalance(balance, domain.Equity)))
	assert.True(t, d("-250").Equal(accounting.SignedBalance(balance, domain.Revenue)))
}
