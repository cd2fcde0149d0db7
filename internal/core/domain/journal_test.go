package domain_test

import (
	"testing"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeFromReference(t *testing.T) {
	tests := []struct {
		ref  string
		want domain.TransactionType
	}{
		{"PO-2025-001", domain.TxnPurchase},
		{"SO-42", domain.TxnSale},
		{"USAGE-7", domain.TxnUsage},
		{"EXP-12", domain.TxnExpense},
		{"", domain.TxnJournalEntry},
		{"ADJ-1", domain.TxnJournalEntry},
		{"po-1", domain.TxnJournalEntry},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.TransactionTypeFromReference(tt.ref))
		})
	}
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{
		Items: []domain.JournalItem{
			{Debit: d("100"), Credit: d("0")},
			{Debit: d("0"), Credit: d("60")},
			{Debit: d("0"), Credit: d("40")},
		},
	}

	assert.True(t, d("100").Equal(entry.TotalDebits()))
	assert.True(t, d("100").Equal(entry.TotalCredits()))
}

func TestJournalItem_SignedAmount(t *testing.T) {
	debit := domain.JournalItem{Debit: d("75"), Credit: d("0")}
	credit := domain.JournalItem{Debit: d("0"), Credit: d("75")}

	assert.True(t, d("75").Equal(debit.SignedAmount()))
	assert.True(t, d("-75").Equal(credit.SignedAmount()))
}
