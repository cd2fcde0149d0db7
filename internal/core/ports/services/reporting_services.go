package services

import (
	"context"
	"time"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// ReportingSvc defines operations for generating financial reports
type ReportingSvc interface {
	// ProfitAndLoss generates an income statement for the period.
	ProfitAndLoss(ctx context.Context, tenantID string, start, end time.Time) (*domain.ProfitAndLoss, error)

	// BalanceSheet generates a balance sheet as of a date, with retained
	// earnings derived from cumulative revenue and expense.
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheet, error)

	// RebuildLedger deletes every journal entry of the tenant and re-posts
	// them from the source business records.
	RebuildLedger(ctx context.Context, tenantID string, userID string) (*domain.RebuildSummary, error)
}
