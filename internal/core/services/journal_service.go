package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/rajabalanj/poultry-ledger/internal/utils/accounting"
)

type JournalService struct {
	journalRepo   portsrepo.JournalRepository
	accountRepo   portsrepo.AccountRepository
	reportingRepo portsrepo.ReportingRepository
}

func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, reportingRepo portsrepo.ReportingRepository) *JournalService {
	return &JournalService{
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		reportingRepo: reportingRepo,
	}
}

// CreateEntry validates the request and persists the entry with its items
// in one transaction.
func (s *JournalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	entryID := uuid.NewString()
	items := make([]domain.JournalItem, len(req.Items))
	accountIDs := make([]string, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.JournalItem{
			ItemID:    uuid.NewString(),
			EntryID:   entryID,
			TenantID:  tenantID,
			AccountID: it.AccountID,
			Debit:     accounting.RoundMoney(it.Debit),
			Credit:    accounting.RoundMoney(it.Credit),
		}
		accountIDs[i] = it.AccountID
	}

	if err := accounting.ValidateEntryItems(items); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("account %s is inactive: %w", id, apperrors.ErrValidation)
		}
	}

	entry := domain.JournalEntry{
		EntryID:           entryID,
		TenantID:          tenantID,
		EntryDate:         req.EntryDate,
		Description:       req.Description,
		ReferenceDocument: req.ReferenceDocument,
		Items:             items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("reference", entry.ReferenceDocument),
		slog.String("total", entry.TotalDebits().String()),
	)
	return &entry, nil
}

func (s *JournalService) GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
}

func (s *JournalService) ListEntries(ctx context.Context, tenantID string, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListEntries(ctx, tenantID, params.StartDate, params.EndDate, params.Limit, params.Offset)
}

// AccountBalance computes the debit-positive balance of the account over
// all postings dated on or before asOf.
func (s *JournalService) AccountBalance(ctx context.Context, tenantID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return decimal.Zero, err
	}
	return s.reportingRepo.AccountBalance(ctx, tenantID, accountID, nil, asOf)
}

// GeneralLedger builds the account statement: opening balance from all
// postings before the window, then each line with a running balance in
// (date, entry id) order.
func (s *JournalService) GeneralLedger(ctx context.Context, tenantID string, accountID string, start, end time.Time) (*domain.GeneralLedger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	opening, err := s.reportingRepo.AccountBalance(ctx, tenantID, accountID, nil, start.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	rows, err := s.reportingRepo.LedgerRows(ctx, tenantID, accountID, start, end)
	if err != nil {
		logger.Error("Failed to load ledger rows", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	running := opening
	for i := range rows {
		running = running.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].Balance = running
		rows[i].TransactionType = domain.TransactionTypeFromReference(rows[i].Reference)
	}

	return &domain.GeneralLedger{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		AccountType:    account.AccountType,
		StartDate:      start,
		EndDate:        end,
		OpeningBalance: opening,
		Rows:           rows,
		ClosingBalance: running,
	}, nil
}
