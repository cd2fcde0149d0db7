package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single, balanced financial event composed of journal
// items. Entries are immutable once created; corrections are made by posting
// new entries, never by editing history.
type JournalEntry struct {
	EntryID           string    `json:"entryID"`
	TenantID          string    `json:"tenantID"`
	EntryDate         time.Time `json:"entryDate"`
	Description       string    `json:"description"`
	ReferenceDocument string    `json:"referenceDocument"`
	Items             []JournalItem
	AuditFields
}

// JournalItem is a single line of a journal entry affecting one account.
// Exactly one of Debit/Credit may be positive; never both.
type JournalItem struct {
	ItemID    string          `json:"itemID"`
	EntryID   string          `json:"entryID"`
	TenantID  string          `json:"tenantID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// SignedAmount is the debit-positive value of the item: debit - credit.
// Asset/Expense balances read naturally from this; Liability/Equity/Revenue
// callers negate it to get a credit-positive figure. One convention,
// applied everywhere.
func (i JournalItem) SignedAmount() decimal.Decimal {
	return i.Debit.Sub(i.Credit)
}

// TotalDebits sums the debit side of the entry's items.
func (e JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry's items.
func (e JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Credit)
	}
	return total
}

// TransactionType is the display label derived from a reference document
// prefix. It is a convenience for ledger views, not a modeled relationship.
type TransactionType string

const (
	TxnPurchase     TransactionType = "Purchase"
	TxnSale         TransactionType = "Sale"
	TxnUsage        TransactionType = "Usage"
	TxnExpense      TransactionType = "Expense"
	TxnJournalEntry TransactionType = "Journal Entry"
)

// TransactionTypeFromReference classifies a reference document by prefix.
// Unmatched or malformed references degrade to the generic label.
func TransactionTypeFromReference(ref string) TransactionType {
	switch {
	case strings.HasPrefix(ref, "PO-"):
		return TxnPurchase
	case strings.HasPrefix(ref, "SO-"):
		return TxnSale
	case strings.HasPrefix(ref, "USAGE-"):
		return TxnUsage
	case strings.HasPrefix(ref, "EXP-"):
		return TxnExpense
	default:
		return TxnJournalEntry
	}
}
