package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
)

const standardsCacheSize = 128

// StandardsService serves breed performance curves through a TTL-bounded
// LRU cache. Curves change rarely but are read on every performance
// comparison, and a stale curve self-heals when the entry expires.
type StandardsService struct {
	standardsRepo portsrepo.StandardsRepository
	flockSvc      portssvc.FlockSvc
	cache         *expirable.LRU[string, domain.StandardCurve]
}

func NewStandardsService(standardsRepo portsrepo.StandardsRepository, flockSvc portssvc.FlockSvc, cacheTTL time.Duration) *StandardsService {
	return &StandardsService{
		standardsRepo: standardsRepo,
		flockSvc:      flockSvc,
		cache:         expirable.NewLRU[string, domain.StandardCurve](standardsCacheSize, nil, cacheTTL),
	}
}

// Curve returns the tenant's standard curve, from cache when fresh.
func (s *StandardsService) Curve(ctx context.Context, tenantID string) (domain.StandardCurve, error) {
	if curve, ok := s.cache.Get(tenantID); ok {
		return curve, nil
	}

	curve, err := s.standardsRepo.CurveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(tenantID, curve)
	return curve, nil
}

// SaveStandard upserts one week of the curve and invalidates the cache.
func (s *StandardsService) SaveStandard(ctx context.Context, tenantID string, req dto.SaveStandardRequest, userID string) (*domain.PerformanceStandard, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.HenDayPercent.IsNegative() || req.FeedGramsPerBird.IsNegative() {
		return nil, fmt.Errorf("standard values must be non-negative: %w", apperrors.ErrValidation)
	}

	standard := domain.PerformanceStandard{
		StandardID:       uuid.NewString(),
		TenantID:         tenantID,
		AgeWeeks:         req.AgeWeeks,
		HenDayPercent:    req.HenDayPercent,
		FeedGramsPerBird: req.FeedGramsPerBird,
	}
	if err := s.standardsRepo.SaveStandard(ctx, standard); err != nil {
		logger.Error("Failed to save performance standard", slog.String("error", err.Error()), slog.Int("age_weeks", req.AgeWeeks))
		return nil, err
	}

	s.cache.Remove(tenantID)
	return &standard, nil
}

// ExpectedPerformance compares a batch day's actual lay against the
// standard for its age.
func (s *StandardsService) ExpectedPerformance(ctx context.Context, tenantID string, batchID string, date time.Time) (*dto.ExpectedPerformance, error) {
	row, err := s.flockSvc.GetDailyRow(ctx, tenantID, batchID, date, middleware.SystemUserID)
	if err != nil {
		return nil, err
	}

	curve, err := s.Curve(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	standardHenDay := curve.HenDayAt(row.Age)
	actual := row.HenDayPercent()
	return &dto.ExpectedPerformance{
		BatchID:        batchID,
		Date:           domain.DateKey(row.BatchDate),
		AgeWeeks:       domain.AgeWeeks(row.Age),
		StandardHenDay: standardHenDay,
		ActualHenDay:   actual,
		ExpectedFeedKg: curve.FeedKgFor(row.Age, row.OpeningCount),
		BirdCount:      row.OpeningCount,
		BelowStandard:  actual.LessThan(standardHenDay),
	}, nil
}
