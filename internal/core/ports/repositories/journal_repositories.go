package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// JournalRepository persists journal entries and their items.
type JournalRepository interface {
	// SaveEntry writes the entry and all of its items atomically: either
	// every posting persists or none do.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, start, end *time.Time, limit, offset int) ([]domain.JournalEntry, error)
	// DeleteEntriesForTenant wipes a tenant's postings ahead of a ledger
	// rebuild from primary records.
	DeleteEntriesForTenant(ctx context.Context, tenantID string) error
}

// ReportingRepository answers aggregation queries over the posting log.
type ReportingRepository interface {
	// AccountBalance returns SUM(debit - credit) over the account's items
	// dated in [since, asOf]; since may be nil for an inception-to-date sum.
	AccountBalance(ctx context.Context, tenantID, accountID string, since *time.Time, asOf time.Time) (decimal.Decimal, error)
	// TypeBalance returns SUM(debit - credit) over all items whose account
	// has the given type, dated in [since, asOf].
	TypeBalance(ctx context.Context, tenantID string, accountType domain.AccountType, since *time.Time, asOf time.Time) (decimal.Decimal, error)
	// BalancesByAccount returns per-account SUM(debit - credit) for every
	// account of the given types with postings in [since, asOf].
	BalancesByAccount(ctx context.Context, tenantID string, accountTypes []domain.AccountType, since *time.Time, asOf time.Time) (map[domain.AccountType][]domain.AccountAmount, error)
	// LedgerRows returns the account's posting lines in (date, entry_id)
	// order for [start, end], without running balances.
	LedgerRows(ctx context.Context, tenantID, accountID string, start, end time.Time) ([]domain.GeneralLedgerRow, error)
	// MissingPostingCount counts business events dated in [start, end]
	// whose reference has no journal entry. These show up as a data
	// quality warning on the income statement.
	MissingPostingCount(ctx context.Context, tenantID string, start, end time.Time) (int, error)
}
