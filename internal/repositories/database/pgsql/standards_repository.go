package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

type PgxStandardsRepository struct {
	pool *pgxpool.Pool
}

func newPgxStandardsRepository(pool *pgxpool.Pool) portsrepo.StandardsRepository {
	return &PgxStandardsRepository{pool: pool}
}

var _ portsrepo.StandardsRepository = (*PgxStandardsRepository)(nil)

func (r *PgxStandardsRepository) CurveForTenant(ctx context.Context, tenantID string) (domain.StandardCurve, error) {
	query := `
		SELECT standard_id, tenant_id, age_weeks, hen_day_percent, feed_grams_per_bird
		FROM performance_standards
		WHERE tenant_id = $1
		ORDER BY age_weeks;
	`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance standards for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	curve := domain.StandardCurve{}
	for rows.Next() {
		var s domain.PerformanceStandard
		if err := rows.Scan(&s.StandardID, &s.TenantID, &s.AgeWeeks, &s.HenDayPercent, &s.FeedGramsPerBird); err != nil {
			return nil, fmt.Errorf("failed to scan performance standard row: %w", err)
		}
		curve[s.AgeWeeks] = s
	}
	return curve, rows.Err()
}

func (r *PgxStandardsRepository) SaveStandard(ctx context.Context, standard domain.PerformanceStandard) error {
	query := `
		INSERT INTO performance_standards (standard_id, tenant_id, age_weeks, hen_day_percent, feed_grams_per_bird)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id, age_weeks) DO UPDATE SET
			hen_day_percent = EXCLUDED.hen_day_percent,
			feed_grams_per_bird = EXCLUDED.feed_grams_per_bird;
	`
	_, err := r.pool.Exec(ctx, query,
		standard.StandardID,
		standard.TenantID,
		standard.AgeWeeks,
		standard.HenDayPercent,
		standard.FeedGramsPerBird,
	)
	if err != nil {
		return fmt.Errorf("failed to save performance standard week %d: %w", standard.AgeWeeks, err)
	}
	return nil
}
