package repositories

import (
	"context"
	"time"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// EggRoomRepository persists the per-tenant egg stock chain.
type EggRoomRepository interface {
	FindReportByDate(ctx context.Context, tenantID string, date time.Time) (*domain.EggRoomReport, error)
	FindLatestReportBefore(ctx context.Context, tenantID string, date time.Time) (*domain.EggRoomReport, error)
	ListReports(ctx context.Context, tenantID string, start, end time.Time) ([]domain.EggRoomReport, error)
	SaveReport(ctx context.Context, report domain.EggRoomReport) error
	// UpdateReports commits a propagated window in one transaction,
	// guarding each row with its optimistic version. Returns
	// apperrors.ErrConflict when any row was changed underneath.
	UpdateReports(ctx context.Context, reports []domain.EggRoomReport) error
	DeleteReport(ctx context.Context, tenantID string, date time.Time) error
	// Baseline returns the tenant's configured opening stock and opening date.
	Baseline(ctx context.Context, tenantID string) (domain.EggChainBaseline, error)
}

// FlockRepository persists batches and their daily chain rows.
type FlockRepository interface {
	SaveBatch(ctx context.Context, batch domain.Batch) error
	UpdateBatch(ctx context.Context, batch domain.Batch) error
	FindBatchByID(ctx context.Context, tenantID, batchID string) (*domain.Batch, error)
	ListActiveBatches(ctx context.Context, tenantID string) ([]domain.Batch, error)
	// ListTenantsWithActiveBatches feeds the end-of-day sweep.
	ListTenantsWithActiveBatches(ctx context.Context) ([]string, error)

	FindRow(ctx context.Context, tenantID, batchID string, date time.Time) (*domain.DailyBatchRow, error)
	FindLatestRowBefore(ctx context.Context, tenantID, batchID string, date time.Time) (*domain.DailyBatchRow, error)
	ListRowsAfter(ctx context.Context, tenantID, batchID string, date time.Time) ([]domain.DailyBatchRow, error)
	ListRowsForDate(ctx context.Context, tenantID string, date time.Time) ([]domain.DailyBatchRow, error)
	SaveRow(ctx context.Context, row domain.DailyBatchRow) error
	// UpdateRows commits a propagated window in one transaction with
	// optimistic version checks; apperrors.ErrConflict on a stale row.
	UpdateRows(ctx context.Context, rows []domain.DailyBatchRow) error

	// SumProductionByDate re-sums per-day egg production across all batches
	// of the tenant for [start, end], keyed by domain.DateKey. This is the
	// authoritative inflow source for egg chain propagation.
	SumProductionByDate(ctx context.Context, tenantID string, start, end time.Time) (map[string]domain.EggStockLevels, error)
}
