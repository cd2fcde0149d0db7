package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
)

// EggRoomService maintains the per-tenant egg stock chain. Every write
// recomputes the window from the edited day through today as pure data,
// then commits only the days whose stored fields changed.
type EggRoomService struct {
	eggRoomRepo portsrepo.EggRoomRepository
	flockRepo   portsrepo.FlockRepository
	now         func() time.Time
}

func NewEggRoomService(eggRoomRepo portsrepo.EggRoomRepository, flockRepo portsrepo.FlockRepository) *EggRoomService {
	return &EggRoomService{
		eggRoomRepo: eggRoomRepo,
		flockRepo:   flockRepo,
		now:         time.Now,
	}
}

// GetReport returns the report for the date, materializing it from the
// chain when absent. Future dates are rejected.
func (s *EggRoomService) GetReport(ctx context.Context, tenantID string, date time.Time, userID string) (*domain.EggRoomReport, error) {
	date = truncateDay(date)
	if date.After(truncateDay(s.now())) {
		return nil, fmt.Errorf("cannot open a report for a future date: %w", apperrors.ErrValidation)
	}

	report, err := s.eggRoomRepo.FindReportByDate(ctx, tenantID, date)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	seed, err := s.seedBefore(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	produced, err := s.flockRepo.SumProductionByDate(ctx, tenantID, date, date)
	if err != nil {
		return nil, err
	}
	prod := produced[domain.DateKey(date)]

	now := s.now()
	fresh := domain.EggRoomReport{
		TenantID:           tenantID,
		ReportDate:         date,
		TableReceived:      prod.Table,
		JumboReceived:      prod.Jumbo,
		GradeCShedReceived: prod.GradeC,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	fresh.SetOpening(seed)

	if err := s.eggRoomRepo.SaveReport(ctx, fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (s *EggRoomService) ListReports(ctx context.Context, tenantID string, start, end time.Time) ([]domain.EggRoomReport, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}
	return s.eggRoomRepo.ListReports(ctx, tenantID, truncateDay(start), truncateDay(end))
}

// UpdateReport patches the day's editable fields and re-propagates the
// chain from that day through today. A concurrent edit of any row in the
// window surfaces as apperrors.ErrConflict; propagation is retried once.
func (s *EggRoomService) UpdateReport(ctx context.Context, tenantID string, date time.Time, req dto.UpdateEggRoomReportRequest, userID string) (*domain.EggRoomReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	date = truncateDay(date)

	report, err := s.GetReport(ctx, tenantID, date, userID)
	if err != nil {
		return nil, err
	}
	applyEggRoomPatch(report, req)
	report.LastUpdatedAt = s.now()
	report.LastUpdatedBy = userID

	for attempt := 0; ; attempt++ {
		err = s.propagateFrom(ctx, tenantID, date, *report)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrConflict) && attempt == 0 {
			logger.Warn("Egg chain propagation conflicted, retrying", slog.String("date", domain.DateKey(date)))
			continue
		}
		return nil, err
	}

	return s.eggRoomRepo.FindReportByDate(ctx, tenantID, date)
}

// DeleteReport removes a day's report and re-propagates the window so the
// gap carries the balance forward.
func (s *EggRoomService) DeleteReport(ctx context.Context, tenantID string, date time.Time, userID string) error {
	date = truncateDay(date)
	if err := s.eggRoomRepo.DeleteReport(ctx, tenantID, date); err != nil {
		return err
	}
	return s.propagateFrom(ctx, tenantID, date, domain.EggRoomReport{})
}

// CurrentStock returns the chain's closing as of today.
func (s *EggRoomService) CurrentStock(ctx context.Context, tenantID string) (domain.EggStockLevels, error) {
	today := truncateDay(s.now())

	report, err := s.eggRoomRepo.FindReportByDate(ctx, tenantID, today)
	if err == nil {
		return report.Closing(), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.EggStockLevels{}, err
	}

	// No report today: carry the latest chain state forward through the gap.
	seed, since, err := s.seedAndStartBefore(ctx, tenantID, today.AddDate(0, 0, 1))
	if err != nil {
		return domain.EggStockLevels{}, err
	}
	produced, err := s.flockRepo.SumProductionByDate(ctx, tenantID, since, today)
	if err != nil {
		return domain.EggStockLevels{}, err
	}
	for day := since; !day.After(today); day = day.AddDate(0, 0, 1) {
		seed = seed.Add(produced[domain.DateKey(day)])
	}
	return seed, nil
}

// RefreshFrom re-propagates the chain from the given day through today,
// picking up changed production inflows. Retries once on a version conflict.
func (s *EggRoomService) RefreshFrom(ctx context.Context, tenantID string, from time.Time) error {
	from = truncateDay(from)
	err := s.propagateFrom(ctx, tenantID, from, domain.EggRoomReport{})
	if errors.Is(err, apperrors.ErrConflict) {
		err = s.propagateFrom(ctx, tenantID, from, domain.EggRoomReport{})
	}
	return err
}

// propagateFrom rewrites the chain from the given day through today.
// updated, when it names the same date, replaces the stored report inside
// the propagation window before derivation.
func (s *EggRoomService) propagateFrom(ctx context.Context, tenantID string, from time.Time, updated domain.EggRoomReport) error {
	today := truncateDay(s.now())
	if from.After(today) {
		return nil
	}

	seed, err := s.seedBefore(ctx, tenantID, from)
	if err != nil {
		return err
	}

	reports, err := s.eggRoomRepo.ListReports(ctx, tenantID, from, today)
	if err != nil {
		return err
	}
	for i := range reports {
		if domain.DateKey(reports[i].ReportDate) == domain.DateKey(updated.ReportDate) {
			updated.Version = reports[i].Version
			reports[i] = updated
		}
	}

	produced, err := s.flockRepo.SumProductionByDate(ctx, tenantID, from, today)
	if err != nil {
		return err
	}

	rewritten, _ := domain.PropagateEggChain(seed, from, today, reports, produced)

	// Commit only the rows whose stored fields actually moved.
	changed := make([]domain.EggRoomReport, 0, len(rewritten))
	for i := range rewritten {
		if !eggReportEqual(rewritten[i], reports[i]) || domain.DateKey(rewritten[i].ReportDate) == domain.DateKey(updated.ReportDate) {
			changed = append(changed, rewritten[i])
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return s.eggRoomRepo.UpdateReports(ctx, changed)
}

// seedBefore resolves the opening stock for day: the closing of the latest
// prior report carried across any gap, or the configured baseline.
func (s *EggRoomService) seedBefore(ctx context.Context, tenantID string, day time.Time) (domain.EggStockLevels, error) {
	seed, since, err := s.seedAndStartBefore(ctx, tenantID, day)
	if err != nil {
		return domain.EggStockLevels{}, err
	}
	if since.Equal(day) {
		return seed, nil
	}
	produced, err := s.flockRepo.SumProductionByDate(ctx, tenantID, since, day.AddDate(0, 0, -1))
	if err != nil {
		return domain.EggStockLevels{}, err
	}
	for gap := since; gap.Before(day); gap = gap.AddDate(0, 0, 1) {
		seed = seed.Add(produced[domain.DateKey(gap)])
	}
	return seed, nil
}

// seedAndStartBefore returns the last known chain state strictly before
// day and the first date not yet covered by it.
func (s *EggRoomService) seedAndStartBefore(ctx context.Context, tenantID string, day time.Time) (domain.EggStockLevels, time.Time, error) {
	prev, err := s.eggRoomRepo.FindLatestReportBefore(ctx, tenantID, day)
	if err == nil {
		return prev.Closing(), truncateDay(prev.ReportDate).AddDate(0, 0, 1), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.EggStockLevels{}, time.Time{}, err
	}

	baseline, err := s.eggRoomRepo.Baseline(ctx, tenantID)
	if err != nil {
		return domain.EggStockLevels{}, time.Time{}, err
	}
	return baseline.SeedFor(day), day, nil
}

func applyEggRoomPatch(r *domain.EggRoomReport, req dto.UpdateEggRoomReportRequest) {
	if req.TableTransfer != nil {
		r.TableTransfer = *req.TableTransfer
	}
	if req.TableDamage != nil {
		r.TableDamage = *req.TableDamage
	}
	if req.TableOut != nil {
		r.TableOut = *req.TableOut
	}
	if req.JumboTransfer != nil {
		r.JumboTransfer = *req.JumboTransfer
	}
	if req.JumboWaste != nil {
		r.JumboWaste = *req.JumboWaste
	}
	if req.JumboIn != nil {
		r.JumboIn = *req.JumboIn
	}
	if req.GradeCRoomReceived != nil {
		r.GradeCRoomReceived = *req.GradeCRoomReceived
	}
	if req.GradeCTransfer != nil {
		r.GradeCTransfer = *req.GradeCTransfer
	}
	if req.GradeCLabour != nil {
		r.GradeCLabour = *req.GradeCLabour
	}
	if req.GradeCWaste != nil {
		r.GradeCWaste = *req.GradeCWaste
	}
}

func eggReportEqual(a, b domain.EggRoomReport) bool {
	return a.Opening() == b.Opening() &&
		a.TableReceived == b.TableReceived &&
		a.JumboReceived == b.JumboReceived &&
		a.GradeCShedReceived == b.GradeCShedReceived
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
