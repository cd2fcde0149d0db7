package services

import (
	"context"
	"time"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

// EggRoomSvc manages the egg stock chain. Reads lazily materialize the
// requested day from the latest prior report; writes re-propagate every
// report from the edited day through today.
type EggRoomSvc interface {
	GetReport(ctx context.Context, tenantID string, date time.Time, userID string) (*domain.EggRoomReport, error)
	ListReports(ctx context.Context, tenantID string, start, end time.Time) ([]domain.EggRoomReport, error)
	UpdateReport(ctx context.Context, tenantID string, date time.Time, req dto.UpdateEggRoomReportRequest, userID string) (*domain.EggRoomReport, error)
	DeleteReport(ctx context.Context, tenantID string, date time.Time, userID string) error
	CurrentStock(ctx context.Context, tenantID string) (domain.EggStockLevels, error)

	// RefreshFrom re-propagates the chain from the given day through today.
	// Called after upstream production edits change a day's inflows.
	RefreshFrom(ctx context.Context, tenantID string, from time.Time) error
}

// FlockSvc manages batches and the daily flock chain.
type FlockSvc interface {
	CreateBatch(ctx context.Context, tenantID string, req dto.CreateBatchRequest, userID string) (*domain.Batch, error)
	GetBatch(ctx context.Context, tenantID string, batchID string) (*domain.Batch, error)
	ListActiveBatches(ctx context.Context, tenantID string) ([]domain.Batch, error)
	CloseBatch(ctx context.Context, tenantID string, batchID string, userID string) error

	// GetDailyRow returns the row for the date, deriving and persisting it
	// from the latest prior row when absent.
	GetDailyRow(ctx context.Context, tenantID string, batchID string, date time.Time, userID string) (*domain.DailyBatchRow, error)
	ListDailyRows(ctx context.Context, tenantID string, date time.Time, userID string) ([]domain.DailyBatchRow, error)

	// UpdateDailyRow applies the patch and re-propagates counts and ages
	// through today.
	UpdateDailyRow(ctx context.Context, tenantID string, batchID string, date time.Time, req dto.UpdateDailyRowRequest, userID string) (*domain.DailyBatchRow, error)

	// SnapshotToday materializes today's row for every active batch of every
	// tenant. Run by the end-of-day job.
	SnapshotToday(ctx context.Context) error
}

// StandardsSvc serves breed performance standards with a short-lived cache.
type StandardsSvc interface {
	Curve(ctx context.Context, tenantID string) (domain.StandardCurve, error)
	SaveStandard(ctx context.Context, tenantID string, req dto.SaveStandardRequest, userID string) (*domain.PerformanceStandard, error)
	ExpectedPerformance(ctx context.Context, tenantID string, batchID string, date time.Time) (*dto.ExpectedPerformance, error)
}
