package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

type PgxEventLogRepository struct {
	pool *pgxpool.Pool
}

func newPgxEventLogRepository(pool *pgxpool.Pool) portsrepo.EventLogRepository {
	return &PgxEventLogRepository{pool: pool}
}

var _ portsrepo.EventLogRepository = (*PgxEventLogRepository)(nil)

func (r *PgxEventLogRepository) AppendEvent(ctx context.Context, event domain.PostedEvent) error {
	query := `
		INSERT INTO event_log (event_id, tenant_id, event_type, reference, occurred_at, payload, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		event.EventID,
		event.TenantID,
		event.EventType,
		event.Reference,
		event.OccurredAt,
		event.Payload,
		event.CreatedAt,
		event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to append event %s: %w", event.EventID, err)
	}
	return nil
}

func (r *PgxEventLogRepository) ListEvents(ctx context.Context, tenantID string) ([]domain.PostedEvent, error) {
	query := `
		SELECT event_id, tenant_id, event_type, reference, occurred_at, payload, created_at, created_by
		FROM event_log
		WHERE tenant_id = $1
		ORDER BY created_at, event_id;
	`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event log for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	events := []domain.PostedEvent{}
	for rows.Next() {
		var event domain.PostedEvent
		err := rows.Scan(
			&event.EventID,
			&event.TenantID,
			&event.EventType,
			&event.Reference,
			&event.OccurredAt,
			&event.Payload,
			&event.CreatedAt,
			&event.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
