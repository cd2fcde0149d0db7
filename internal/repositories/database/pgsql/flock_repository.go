package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

const batchColumns = `batch_id, tenant_id, shed_no, batch_no, start_date, age, opening_count, is_active, created_at, created_by, last_updated_at, last_updated_by`

const dailyRowColumns = `batch_id, tenant_id, shed_no, batch_no, batch_date, age, opening_count, mortality, culls, table_eggs, jumbo, cr, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxFlockRepository struct {
	BaseRepository
}

func newPgxFlockRepository(pool *pgxpool.Pool) portsrepo.FlockRepository {
	return &PgxFlockRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.FlockRepository = (*PgxFlockRepository)(nil)

func scanBatch(row pgx.Row) (domain.Batch, error) {
	var b domain.Batch
	err := row.Scan(
		&b.BatchID,
		&b.TenantID,
		&b.ShedNo,
		&b.BatchNo,
		&b.StartDate,
		&b.Age,
		&b.OpeningCount,
		&b.IsActive,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

func scanDailyRow(row pgx.Row) (domain.DailyBatchRow, error) {
	var r domain.DailyBatchRow
	err := row.Scan(
		&r.BatchID,
		&r.TenantID,
		&r.ShedNo,
		&r.BatchNo,
		&r.BatchDate,
		&r.Age,
		&r.OpeningCount,
		&r.Mortality,
		&r.Culls,
		&r.TableEggs,
		&r.Jumbo,
		&r.CR,
		&r.Version,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	return r, err
}

func (r *PgxFlockRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		batch.BatchID,
		batch.TenantID,
		batch.ShedNo,
		batch.BatchNo,
		batch.StartDate,
		batch.Age,
		batch.OpeningCount,
		batch.IsActive,
		batch.CreatedAt,
		batch.CreatedBy,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("batch %q already exists: %w", batch.BatchNo, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save batch %s: %w", batch.BatchID, err)
	}
	return nil
}

func (r *PgxFlockRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	query := `
		UPDATE batches
		SET shed_no = $3, batch_no = $4, age = $5, opening_count = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND batch_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		batch.TenantID,
		batch.BatchID,
		batch.ShedNo,
		batch.BatchNo,
		batch.Age,
		batch.OpeningCount,
		batch.IsActive,
		batch.LastUpdatedAt,
		batch.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update batch %s: %w", batch.BatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFlockRepository) FindBatchByID(ctx context.Context, tenantID, batchID string) (*domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE tenant_id = $1 AND batch_id = $2;`
	batch, err := scanBatch(r.Pool.QueryRow(ctx, query, tenantID, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}
	return &batch, nil
}

func (r *PgxFlockRepository) ListActiveBatches(ctx context.Context, tenantID string) ([]domain.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE tenant_id = $1 AND is_active = TRUE ORDER BY shed_no;`
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active batches for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	batches := []domain.Batch{}
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

func (r *PgxFlockRepository) ListTenantsWithActiveBatches(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT tenant_id FROM batches WHERE is_active = TRUE ORDER BY tenant_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants with active batches: %w", err)
	}
	defer rows.Close()

	tenants := []string{}
	for rows.Next() {
		var tenantID string
		if err := rows.Scan(&tenantID); err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		tenants = append(tenants, tenantID)
	}
	return tenants, rows.Err()
}

func (r *PgxFlockRepository) FindRow(ctx context.Context, tenantID, batchID string, date time.Time) (*domain.DailyBatchRow, error) {
	query := `SELECT ` + dailyRowColumns + ` FROM daily_batch_rows WHERE tenant_id = $1 AND batch_id = $2 AND batch_date = $3;`
	row, err := scanDailyRow(r.Pool.QueryRow(ctx, query, tenantID, batchID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily row for batch %s on %s: %w", batchID, domain.DateKey(date), err)
	}
	return &row, nil
}

func (r *PgxFlockRepository) FindLatestRowBefore(ctx context.Context, tenantID, batchID string, date time.Time) (*domain.DailyBatchRow, error) {
	query := `
		SELECT ` + dailyRowColumns + ` FROM daily_batch_rows
		WHERE tenant_id = $1 AND batch_id = $2 AND batch_date < $3
		ORDER BY batch_date DESC
		LIMIT 1;
	`
	row, err := scanDailyRow(r.Pool.QueryRow(ctx, query, tenantID, batchID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily row before %s for batch %s: %w", domain.DateKey(date), batchID, err)
	}
	return &row, nil
}

func (r *PgxFlockRepository) ListRowsAfter(ctx context.Context, tenantID, batchID string, date time.Time) ([]domain.DailyBatchRow, error) {
	query := `
		SELECT ` + dailyRowColumns + ` FROM daily_batch_rows
		WHERE tenant_id = $1 AND batch_id = $2 AND batch_date > $3
		ORDER BY batch_date;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, batchID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily rows after %s for batch %s: %w", domain.DateKey(date), batchID, err)
	}
	defer rows.Close()

	return collectDailyRows(rows)
}

func (r *PgxFlockRepository) ListRowsForDate(ctx context.Context, tenantID string, date time.Time) ([]domain.DailyBatchRow, error) {
	query := `
		SELECT ` + dailyRowColumns + ` FROM daily_batch_rows
		WHERE tenant_id = $1 AND batch_date = $2
		ORDER BY shed_no;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily rows for %s: %w", domain.DateKey(date), err)
	}
	defer rows.Close()

	return collectDailyRows(rows)
}

func (r *PgxFlockRepository) SaveRow(ctx context.Context, row domain.DailyBatchRow) error {
	query := `
		INSERT INTO daily_batch_rows (` + dailyRowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (batch_id, batch_date) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		row.BatchID,
		row.TenantID,
		row.ShedNo,
		row.BatchNo,
		row.BatchDate,
		row.Age,
		row.OpeningCount,
		row.Mortality,
		row.Culls,
		row.TableEggs,
		row.Jumbo,
		row.CR,
		row.Version,
		row.CreatedAt,
		row.CreatedBy,
		row.LastUpdatedAt,
		row.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save daily row for batch %s on %s: %w", row.BatchID, domain.DateKey(row.BatchDate), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("daily row for batch %s on %s already exists: %w", row.BatchID, domain.DateKey(row.BatchDate), apperrors.ErrDuplicate)
	}
	return nil
}

// UpdateRows commits a propagated window atomically with per-row version
// guards, failing the batch with apperrors.ErrConflict on a stale row.
func (r *PgxFlockRepository) UpdateRows(ctx context.Context, rows []domain.DailyBatchRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		for _, row := range rows {
			tag, err := tx.Exec(ctx, `
				UPDATE daily_batch_rows SET
					age = $3, opening_count = $4, mortality = $5, culls = $6,
					table_eggs = $7, jumbo = $8, cr = $9,
					version = version + 1, last_updated_at = $10, last_updated_by = $11
				WHERE batch_id = $1 AND batch_date = $2 AND version = $12;
			`,
				row.BatchID,
				row.BatchDate,
				row.Age,
				row.OpeningCount,
				row.Mortality,
				row.Culls,
				row.TableEggs,
				row.Jumbo,
				row.CR,
				row.LastUpdatedAt,
				row.LastUpdatedBy,
				row.Version,
			)
			if err != nil {
				return fmt.Errorf("failed to update daily row for batch %s on %s: %w", row.BatchID, domain.DateKey(row.BatchDate), err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("daily row for batch %s on %s changed concurrently: %w", row.BatchID, domain.DateKey(row.BatchDate), apperrors.ErrConflict)
			}
		}
		return nil
	})
}

// SumProductionByDate re-sums egg production across all batches per day.
// This is the authoritative inflow source for egg chain propagation.
func (r *PgxFlockRepository) SumProductionByDate(ctx context.Context, tenantID string, start, end time.Time) (map[string]domain.EggStockLevels, error) {
	query := `
		SELECT batch_date, COALESCE(SUM(table_eggs), 0), COALESCE(SUM(jumbo), 0), COALESCE(SUM(cr), 0)
		FROM daily_batch_rows
		WHERE tenant_id = $1 AND batch_date BETWEEN $2 AND $3
		GROUP BY batch_date;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum egg production: %w", err)
	}
	defer rows.Close()

	produced := map[string]domain.EggStockLevels{}
	for rows.Next() {
		var date time.Time
		var levels domain.EggStockLevels
		if err := rows.Scan(&date, &levels.Table, &levels.Jumbo, &levels.GradeC); err != nil {
			return nil, fmt.Errorf("failed to scan production row: %w", err)
		}
		produced[domain.DateKey(date)] = levels
	}
	return produced, rows.Err()
}

func collectDailyRows(rows pgx.Rows) ([]domain.DailyBatchRow, error) {
	out := []domain.DailyBatchRow{}
	for rows.Next() {
		row, err := scanDailyRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
