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

const entryColumns = `entry_id, tenant_id, entry_date, description, reference_document, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveEntry writes the entry header and batches the item inserts inside one
// transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_entries (`+entryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			entry.EntryID,
			entry.TenantID,
			entry.EntryDate,
			entry.Description,
			entry.ReferenceDocument,
			entry.CreatedAt,
			entry.CreatedBy,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
		}

		batch := &pgx.Batch{}
		for _, item := range entry.Items {
			batch.Queue(`
				INSERT INTO journal_items (item_id, entry_id, tenant_id, account_id, debit, credit)
				VALUES ($1, $2, $3, $4, $5, $6);
			`, item.ItemID, item.EntryID, item.TenantID, item.AccountID, item.Debit, item.Credit)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()
		for range entry.Items {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert journal item for entry %s: %w", entry.EntryID, err)
			}
		}
		return nil
	})
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`

	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, tenantID, entryID).Scan(
		&entry.EntryID,
		&entry.TenantID,
		&entry.EntryDate,
		&entry.Description,
		&entry.ReferenceDocument,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	items, err := r.itemsForEntries(ctx, tenantID, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Items = items[entryID]
	return &entry, nil
}

func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, start, end *time.Time, limit, offset int) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	args := []any{tenantID}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += ` ORDER BY entry_date DESC, entry_id DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	for rows.Next() {
		var entry domain.JournalEntry
		err := rows.Scan(
			&entry.EntryID,
			&entry.TenantID,
			&entry.EntryDate,
			&entry.Description,
			&entry.ReferenceDocument,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.itemsForEntries(ctx, tenantID, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Items = items[entries[i].EntryID]
	}
	return entries, nil
}

func (r *PgxJournalRepository) DeleteEntriesForTenant(ctx context.Context, tenantID string) error {
	return r.WithinTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE tenant_id = $1;`, tenantID); err != nil {
			return fmt.Errorf("failed to delete journal items for tenant %s: %w", tenantID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id = $1;`, tenantID); err != nil {
			return fmt.Errorf("failed to delete journal entries for tenant %s: %w", tenantID, err)
		}
		return nil
	})
}

func (r *PgxJournalRepository) itemsForEntries(ctx context.Context, tenantID string, entryIDs []string) (map[string][]domain.JournalItem, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalItem{}, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, entry_id, tenant_id, account_id, debit, credit
		FROM journal_items
		WHERE tenant_id = $1 AND entry_id = ANY($2)
		ORDER BY item_id;
	`, tenantID, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]domain.JournalItem, len(entryIDs))
	for rows.Next() {
		var item domain.JournalItem
		if err := rows.Scan(&item.ItemID, &item.EntryID, &item.TenantID, &item.AccountID, &item.Debit, &item.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		items[item.EntryID] = append(items[item.EntryID], item)
	}
	return items, rows.Err()
}
