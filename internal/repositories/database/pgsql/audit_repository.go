package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) Append(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_log (audit_id, tenant_id, entity, record_id, change_type, action, old_value, new_value, changed_by, note, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::jsonb, NULLIF($8, '')::jsonb, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		record.AuditID,
		record.TenantID,
		record.Entity,
		record.RecordID,
		record.ChangeType,
		record.Action,
		record.OldValue,
		record.NewValue,
		record.ChangedBy,
		record.Note,
		record.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record for %s/%s: %w", record.Entity, record.RecordID, err)
	}
	return nil
}

func (r *PgxAuditRepository) ListByEntity(ctx context.Context, tenantID, entity, recordID string, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT audit_id, tenant_id, entity, record_id, change_type, action,
			COALESCE(old_value::text, ''), COALESCE(new_value::text, ''), changed_by, note, changed_at
		FROM audit_log
		WHERE tenant_id = $1 AND entity = $2 AND record_id = $3
		ORDER BY changed_at DESC
		LIMIT $4;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, entity, recordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records for %s/%s: %w", entity, recordID, err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var rec domain.AuditRecord
		err := rows.Scan(
			&rec.AuditID,
			&rec.TenantID,
			&rec.Entity,
			&rec.RecordID,
			&rec.ChangeType,
			&rec.Action,
			&rec.OldValue,
			&rec.NewValue,
			&rec.ChangedBy,
			&rec.Note,
			&rec.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit record row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
