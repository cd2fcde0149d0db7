package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
)

// FlockService maintains batches and the daily bird-count chain. Rows are
// materialized lazily on read and snapshotted nightly; count and age edits
// re-propagate every later row.
type FlockService struct {
	flockRepo  portsrepo.FlockRepository
	eggRoomSvc portssvc.EggRoomSvc
	now        func() time.Time
}

func NewFlockService(flockRepo portsrepo.FlockRepository, eggRoomSvc portssvc.EggRoomSvc) *FlockService {
	return &FlockService{
		flockRepo:  flockRepo,
		eggRoomSvc: eggRoomSvc,
		now:        time.Now,
	}
}

func (s *FlockService) CreateBatch(ctx context.Context, tenantID string, req dto.CreateBatchRequest, userID string) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAge(req.Age) {
		return nil, fmt.Errorf("age %s is not a week.day value with day in [1,7]: %w", req.Age.String(), apperrors.ErrValidation)
	}

	now := s.now()
	batch := domain.Batch{
		BatchID:      uuid.NewString(),
		TenantID:     tenantID,
		ShedNo:       req.ShedNo,
		BatchNo:      req.BatchNo,
		StartDate:    truncateDay(req.StartDate),
		Age:          req.Age,
		OpeningCount: req.OpeningCount,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.flockRepo.SaveBatch(ctx, batch); err != nil {
		logger.Error("Failed to save batch", slog.String("error", err.Error()), slog.String("batch_no", batch.BatchNo))
		return nil, err
	}

	logger.Info("Batch created", slog.String("batch_id", batch.BatchID), slog.Int("shed_no", batch.ShedNo))
	return &batch, nil
}

func (s *FlockService) GetBatch(ctx context.Context, tenantID string, batchID string) (*domain.Batch, error) {
	return s.flockRepo.FindBatchByID(ctx, tenantID, batchID)
}

func (s *FlockService) ListActiveBatches(ctx context.Context, tenantID string) ([]domain.Batch, error) {
	return s.flockRepo.ListActiveBatches(ctx, tenantID)
}

func (s *FlockService) CloseBatch(ctx context.Context, tenantID string, batchID string, userID string) error {
	batch, err := s.flockRepo.FindBatchByID(ctx, tenantID, batchID)
	if err != nil {
		return err
	}
	batch.IsActive = false
	batch.LastUpdatedAt = s.now()
	batch.LastUpdatedBy = userID
	return s.flockRepo.UpdateBatch(ctx, *batch)
}

// GetDailyRow returns the row for the date, deriving and persisting it from
// the chain when absent.
func (s *FlockService) GetDailyRow(ctx context.Context, tenantID string, batchID string, date time.Time, userID string) (*domain.DailyBatchRow, error) {
	date = truncateDay(date)
	if date.After(truncateDay(s.now())) {
		return nil, fmt.Errorf("cannot open a daily record for a future date: %w", apperrors.ErrValidation)
	}

	row, err := s.flockRepo.FindRow(ctx, tenantID, batchID, date)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	batch, err := s.flockRepo.FindBatchByID(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	if date.Before(truncateDay(batch.StartDate)) {
		return nil, fmt.Errorf("date precedes batch start %s: %w", domain.DateKey(batch.StartDate), apperrors.ErrValidation)
	}

	seed, err := s.seedBefore(ctx, tenantID, *batch, date)
	if err != nil {
		return nil, err
	}
	opening, age := seed.Derive(date)

	now := s.now()
	fresh := domain.DailyBatchRow{
		BatchID:      batch.BatchID,
		TenantID:     tenantID,
		ShedNo:       batch.ShedNo,
		BatchNo:      batch.BatchNo,
		BatchDate:    date,
		Age:          age,
		OpeningCount: opening,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.flockRepo.SaveRow(ctx, fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

// ListDailyRows materializes the date's row for every active batch.
func (s *FlockService) ListDailyRows(ctx context.Context, tenantID string, date time.Time, userID string) ([]domain.DailyBatchRow, error) {
	batches, err := s.flockRepo.ListActiveBatches(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.DailyBatchRow, 0, len(batches))
	for _, batch := range batches {
		row, err := s.GetDailyRow(ctx, tenantID, batch.BatchID, date, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrValidation) {
				// Batch not yet started on this date.
				continue
			}
			return nil, err
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

// UpdateDailyRow applies the patch and re-propagates opening counts and
// ages through every later row, then refreshes the egg chain whose inflows
// the edit may have changed.
func (s *FlockService) UpdateDailyRow(ctx context.Context, tenantID string, batchID string, date time.Time, req dto.UpdateDailyRowRequest, userID string) (*domain.DailyBatchRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	date = truncateDay(date)

	var updated *domain.DailyBatchRow
	for attempt := 0; ; attempt++ {
		row, err := s.GetDailyRow(ctx, tenantID, batchID, date, userID)
		if err != nil {
			return nil, err
		}
		applyFlockPatch(row, req)
		if row.ClosingCount() < 0 {
			return nil, fmt.Errorf("mortality and culls exceed opening count %d: %w", row.OpeningCount, apperrors.ErrValidation)
		}
		row.LastUpdatedAt = s.now()
		row.LastUpdatedBy = userID

		later, err := s.flockRepo.ListRowsAfter(ctx, tenantID, batchID, date)
		if err != nil {
			return nil, err
		}
		rewritten := domain.PropagateFlockChain(domain.SeedFromRow(*row), later)

		changed := make([]domain.DailyBatchRow, 0, len(rewritten)+1)
		changed = append(changed, *row)
		for i := range rewritten {
			if rewritten[i].OpeningCount != later[i].OpeningCount || !rewritten[i].Age.Equal(later[i].Age) {
				changed = append(changed, rewritten[i])
			}
		}

		err = s.flockRepo.UpdateRows(ctx, changed)
		if err == nil {
			updated = row
			break
		}
		if errors.Is(err, apperrors.ErrConflict) && attempt == 0 {
			logger.Warn("Flock chain propagation conflicted, retrying",
				slog.String("batch_id", batchID),
				slog.String("date", domain.DateKey(date)),
			)
			continue
		}
		return nil, err
	}

	if req.TableEggs != nil || req.Jumbo != nil || req.CR != nil {
		if err := s.eggRoomSvc.RefreshFrom(ctx, tenantID, date); err != nil {
			logger.Warn("Failed to refresh egg chain after production edit",
				slog.String("error", err.Error()),
				slog.String("date", domain.DateKey(date)),
			)
		}
	}
	return updated, nil
}

// SnapshotToday materializes today's row for every active batch of every
// tenant. Run by the end-of-day job.
func (s *FlockService) SnapshotToday(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	today := truncateDay(s.now())

	tenants, err := s.flockRepo.ListTenantsWithActiveBatches(ctx)
	if err != nil {
		return err
	}

	var failures int
	for _, tenantID := range tenants {
		batches, err := s.flockRepo.ListActiveBatches(ctx, tenantID)
		if err != nil {
			logger.Error("Failed to list batches for snapshot", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
			failures++
			continue
		}
		for _, batch := range batches {
			if _, err := s.GetDailyRow(ctx, tenantID, batch.BatchID, today, middleware.SystemUserID); err != nil {
				if errors.Is(err, apperrors.ErrValidation) {
					continue
				}
				logger.Error("Failed to snapshot batch",
					slog.String("error", err.Error()),
					slog.String("tenant_id", tenantID),
					slog.String("batch_id", batch.BatchID),
				)
				failures++
			}
		}
	}

	logger.Info("Daily snapshot complete", slog.Int("tenants", len(tenants)), slog.Int("failures", failures))
	if failures > 0 {
		return fmt.Errorf("daily snapshot had %d failures: %w", failures, apperrors.ErrInternal)
	}
	return nil
}

func (s *FlockService) seedBefore(ctx context.Context, tenantID string, batch domain.Batch, date time.Time) (domain.FlockSeed, error) {
	prev, err := s.flockRepo.FindLatestRowBefore(ctx, tenantID, batch.BatchID, date)
	if err == nil {
		return domain.SeedFromRow(*prev), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.FlockSeed{}, err
	}
	return domain.SeedFromBatch(batch), nil
}

func applyFlockPatch(r *domain.DailyBatchRow, req dto.UpdateDailyRowRequest) {
	if req.Mortality != nil {
		r.Mortality = *req.Mortality
	}
	if req.Culls != nil {
		r.Culls = *req.Culls
	}
	if req.TableEggs != nil {
		r.TableEggs = *req.TableEggs
	}
	if req.Jumbo != nil {
		r.Jumbo = *req.Jumbo
	}
	if req.CR != nil {
		r.CR = *req.CR
	}
}
