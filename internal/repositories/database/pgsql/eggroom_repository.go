package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

const eggReportColumns = `tenant_id, report_date,
	table_opening, table_received, table_transfer, table_damage, table_out,
	jumbo_opening, jumbo_received, jumbo_transfer, jumbo_waste, jumbo_in,
	grade_c_opening, grade_c_shed_received, grade_c_room_received, grade_c_transfer, grade_c_labour, grade_c_waste,
	version, created_at, created_by, last_updated_at, last_updated_by`

type PgxEggRoomRepository struct {
	BaseRepository
}

func newPgxEggRoomRepository(pool *pgxpool.Pool) portsrepo.EggRoomRepository {
	return &PgxEggRoomRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EggRoomRepository = (*PgxEggRoomRepository)(nil)

func scanEggReport(row pgx.Row) (domain.EggRoomReport, error) {
	var r domain.EggRoomReport
	err := row.Scan(
		&r.TenantID,
		&r.ReportDate,
		&r.TableOpening,
		&r.TableReceived,
		&r.TableTransfer,
		&r.TableDamage,
		&r.TableOut,
		&r.JumboOpening,
		&r.JumboReceived,
		&r.JumboTransfer,
		&r.JumboWaste,
		&r.JumboIn,
		&r.GradeCOpening,
		&r.GradeCShedReceived,
		&r.GradeCRoomReceived,
		&r.GradeCTransfer,
		&r.GradeCLabour,
		&r.GradeCWaste,
		&r.Version,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	return r, err
}

func (r *PgxEggRoomRepository) FindReportByDate(ctx context.Context, tenantID string, date time.Time) (*domain.EggRoomReport, error) {
	query := `SELECT ` + eggReportColumns + ` FROM egg_room_reports WHERE tenant_id = $1 AND report_date = $2;`
	report, err := scanEggReport(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find egg room report for %s: %w", domain.DateKey(date), err)
	}
	return &report, nil
}

func (r *PgxEggRoomRepository) FindLatestReportBefore(ctx context.Context, tenantID string, date time.Time) (*domain.EggRoomReport, error) {
	query := `
		SELECT ` + eggReportColumns + ` FROM egg_room_reports
		WHERE tenant_id = $1 AND report_date < $2
		ORDER BY report_date DESC
		LIMIT 1;
	`
	report, err := scanEggReport(r.Pool.QueryRow(ctx, query, tenantID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find egg room report before %s: %w", domain.DateKey(date), err)
	}
	return &report, nil
}

func (r *PgxEggRoomRepository) ListReports(ctx context.Context, tenantID string, start, end time.Time) ([]domain.EggRoomReport, error) {
	query := `
		SELECT ` + eggReportColumns + ` FROM egg_room_reports
		WHERE tenant_id = $1 AND report_date BETWEEN $2 AND $3
		ORDER BY report_date;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query egg room reports: %w", err)
	}
	defer rows.Close()

	reports := []domain.EggRoomReport{}
	for rows.Next() {
		report, err := scanEggReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan egg room report row: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *PgxEggRoomRepository) SaveReport(ctx context.Context, report domain.EggRoomReport) error {
	query := `
		INSERT INTO egg_room_reports (` + eggReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (tenant_id, report_date) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query, eggReportArgs(report)...)
	if err != nil {
		return fmt.Errorf("failed to save egg room report for %s: %w", domain.DateKey(report.ReportDate), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("egg room report for %s already exists: %w", domain.DateKey(report.ReportDate), apperrors.ErrDuplicate)
	}
	return nil
}

// UpdateReports commits a propagated window atomically. Each row's version
// guards against concurrent propagation: a row changed underneath fails the
// whole batch with apperrors.ErrConflict.
func (r *PgxEggRoomRepository) UpdateReports(ctx context.Context, reports []domain.EggRoomReport) error {
	if len(reports) == 0 {
		return nil
	}
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, report := range reports {
			tag, err := tx.Exec(ctx, `
				UPDATE egg_room_reports SET
					table_opening = $3, table_received = $4, table_transfer = $5, table_damage = $6, table_out = $7,
					jumbo_opening = $8, jumbo_received = $9, jumbo_transfer = $10, jumbo_waste = $11, jumbo_in = $12,
					grade_c_opening = $13, grade_c_shed_received = $14, grade_c_room_received = $15,
					grade_c_transfer = $16, grade_c_labour = $17, grade_c_waste = $18,
					version = version + 1, last_updated_at = $19, last_updated_by = $20
				WHERE tenant_id = $1 AND report_date = $2 AND version = $21;
			`,
				report.TenantID,
				report.ReportDate,
				report.TableOpening,
				report.TableReceived,
				report.TableTransfer,
				report.TableDamage,
				report.TableOut,
				report.JumboOpening,
				report.JumboReceived,
				report.JumboTransfer,
				report.JumboWaste,
				report.JumboIn,
				report.GradeCOpening,
				report.GradeCShedReceived,
				report.GradeCRoomReceived,
				report.GradeCTransfer,
				report.GradeCLabour,
				report.GradeCWaste,
				report.LastUpdatedAt,
				report.LastUpdatedBy,
				report.Version,
			)
			if err != nil {
				return fmt.Errorf("failed to update egg room report for %s: %w", domain.DateKey(report.ReportDate), err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("egg room report for %s changed concurrently: %w", domain.DateKey(report.ReportDate), apperrors.ErrConflict)
			}
		}
		return nil
	})
}

func (r *PgxEggRoomRepository) DeleteReport(ctx context.Context, tenantID string, date time.Time) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM egg_room_reports WHERE tenant_id = $1 AND report_date = $2;`, tenantID, date)
	if err != nil {
		return fmt.Errorf("failed to delete egg room report for %s: %w", domain.DateKey(date), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Baseline reads the tenant's configured opening stock; a missing row means
// an empty room.
func (r *PgxEggRoomRepository) Baseline(ctx context.Context, tenantID string) (domain.EggChainBaseline, error) {
	query := `
		SELECT table_opening, jumbo_opening, grade_c_opening, opening_date
		FROM egg_room_baselines
		WHERE tenant_id = $1;
	`
	var baseline domain.EggChainBaseline
	err := r.Pool.QueryRow(ctx, query, tenantID).Scan(
		&baseline.Opening.Table,
		&baseline.Opening.Jumbo,
		&baseline.Opening.GradeC,
		&baseline.OpeningDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EggChainBaseline{}, nil
		}
		return domain.EggChainBaseline{}, fmt.Errorf("failed to read egg room baseline for tenant %s: %w", tenantID, err)
	}
	return baseline, nil
}

func eggReportArgs(r domain.EggRoomReport) []any {
	return []any{
		r.TenantID,
		r.ReportDate,
		r.TableOpening,
		r.TableReceived,
		r.TableTransfer,
		r.TableDamage,
		r.TableOut,
		r.JumboOpening,
		r.JumboReceived,
		r.JumboTransfer,
		r.JumboWaste,
		r.JumboIn,
		r.GradeCOpening,
		r.GradeCShedReceived,
		r.GradeCRoomReceived,
		r.GradeCTransfer,
		r.GradeCLabour,
		r.GradeCWaste,
		r.Version,
		r.CreatedAt,
		r.CreatedBy,
		r.LastUpdatedAt,
		r.LastUpdatedBy,
	}
}
