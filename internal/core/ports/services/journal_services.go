package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its items.
	GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries, optionally date-bounded.
	ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates and persists a balanced journal entry atomically.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// JournalCalculatorSvc defines balance calculations over posted entries
type JournalCalculatorSvc interface {
	// AccountBalance computes the debit-positive balance of an account as of a date.
	AccountBalance(ctx context.Context, tenantID string, accountID string, asOf time.Time) (decimal.Decimal, error)

	// GeneralLedger produces the account statement with opening and running balances.
	GeneralLedger(ctx context.Context, tenantID string, accountID string, start, end time.Time) (*domain.GeneralLedger, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalCalculatorSvc
}
