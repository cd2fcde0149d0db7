package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
)

type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalRepository
	eventRepo     portsrepo.EventLogRepository
	settingsSvc   portssvc.SettingsSvc
	postingSvc    portssvc.PostingSvc
}

func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	journalRepo portsrepo.JournalRepository,
	eventRepo portsrepo.EventLogRepository,
	settingsSvc portssvc.SettingsSvc,
	postingSvc portssvc.PostingSvc,
) *ReportingService {
	return &ReportingService{
		reportingRepo: reportingRepo,
		journalRepo:   journalRepo,
		eventRepo:     eventRepo,
		settingsSvc:   settingsSvc,
		postingSvc:    postingSvc,
	}
}

// ProfitAndLoss builds the income statement for [start, end]. Revenue is
// reported credit-positive; the cost of goods sold is the designated COGS
// account's movement, and every other expense account is operating spend.
func (s *ReportingService) ProfitAndLoss(ctx context.Context, tenantID string, start, end time.Time) (*domain.ProfitAndLoss, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}

	cogsAccount, err := s.settingsSvc.AccountForRole(ctx, tenantID, domain.RoleCOGS)
	if err != nil {
		return nil, err
	}

	revenueDebit, err := s.reportingRepo.TypeBalance(ctx, tenantID, domain.Revenue, &start, end)
	if err != nil {
		return nil, err
	}
	revenue := revenueDebit.Neg()

	totalExpense, err := s.reportingRepo.TypeBalance(ctx, tenantID, domain.Expense, &start, end)
	if err != nil {
		return nil, err
	}

	cogs, err := s.reportingRepo.AccountBalance(ctx, tenantID, cogsAccount.AccountID, &start, end)
	if err != nil {
		return nil, err
	}

	byType, err := s.reportingRepo.BalancesByAccount(ctx, tenantID, []domain.AccountType{domain.Expense}, &start, end)
	if err != nil {
		return nil, err
	}
	breakdown := make([]domain.AccountAmount, 0, len(byType[domain.Expense]))
	for _, amt := range byType[domain.Expense] {
		if amt.AccountID == cogsAccount.AccountID {
			continue
		}
		breakdown = append(breakdown, amt)
	}

	missing, err := s.reportingRepo.MissingPostingCount(ctx, tenantID, start, end)
	if err != nil {
		logger.Warn("Failed to count missing postings", slog.String("error", err.Error()))
		missing = 0
	}

	operating := totalExpense.Sub(cogs)
	grossProfit := revenue.Sub(cogs)
	return &domain.ProfitAndLoss{
		StartDate:         start,
		EndDate:           end,
		Revenue:           revenue,
		COGS:              cogs,
		GrossProfit:       grossProfit,
		OperatingExpenses: operating,
		NetIncome:         grossProfit.Sub(operating),
		ExpenseBreakdown:  breakdown,
		MissingPostings:   missing,
	}, nil
}

// BalanceSheet reports financial position as of a date. Retained earnings
// is always derived from cumulative revenue and expense, never stored as
// account postings.
func (s *ReportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheet, error) {
	byType, err := s.reportingRepo.BalancesByAccount(ctx, tenantID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, nil, asOf)
	if err != nil {
		return nil, err
	}

	revenueDebit, err := s.reportingRepo.TypeBalance(ctx, tenantID, domain.Revenue, nil, asOf)
	if err != nil {
		return nil, err
	}
	expense, err := s.reportingRepo.TypeBalance(ctx, tenantID, domain.Expense, nil, asOf)
	if err != nil {
		return nil, err
	}
	retained := revenueDebit.Neg().Sub(expense)

	assets := byType[domain.Asset]
	liabilities := creditPositive(byType[domain.Liability])
	equity := creditPositive(byType[domain.Equity])

	totalAssets := sumAmounts(assets)
	totalLiabilities := sumAmounts(liabilities)
	totalEquity := sumAmounts(equity).Add(retained)

	return &domain.BalanceSheet{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		RetainedEarnings: retained,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
	}, nil
}

// RebuildLedger wipes the tenant's journal and re-posts it by replaying
// the business event log in arrival order. Events whose posting fails,
// typically from an unmapped account, are counted and skipped.
func (s *ReportingService) RebuildLedger(ctx context.Context, tenantID string, userID string) (*domain.RebuildSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.journalRepo.ListEntries(ctx, tenantID, nil, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.DeleteEntriesForTenant(ctx, tenantID); err != nil {
		logger.Error("Failed to clear journal for rebuild", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	events, err := s.eventRepo.ListEvents(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	summary := domain.RebuildSummary{EntriesDeleted: len(entries)}
	for _, event := range events {
		posted, err := s.postingSvc.ReplayEvent(ctx, tenantID, event)
		if err != nil {
			logger.Warn("Skipped event during rebuild",
				slog.String("event_id", event.EventID),
				slog.String("event_type", string(event.EventType)),
				slog.String("error", err.Error()),
			)
			summary.Skipped++
			continue
		}
		summary.EventsReplayed++
		summary.EntriesPosted += posted
	}

	logger.Info("Ledger rebuilt",
		slog.String("tenant_id", tenantID),
		slog.Int("entries_deleted", summary.EntriesDeleted),
		slog.Int("events_replayed", summary.EventsReplayed),
		slog.Int("skipped", summary.Skipped),
	)
	return &summary, nil
}

func creditPositive(in []domain.AccountAmount) []domain.AccountAmount {
	out := make([]domain.AccountAmount, len(in))
	for i, a := range in {
		a.NetAmount = a.NetAmount.Neg()
		out[i] = a
	}
	return out
}

func sumAmounts(in []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, a := range in {
		total = total.Add(a.NetAmount)
	}
	return total
}
