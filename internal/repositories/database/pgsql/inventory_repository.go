package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

const itemColumns = `item_id, tenant_id, name, unit, category, current_stock, average_cost, reorder_level, version, created_at, created_by, last_updated_at, last_updated_by`

type PgxInventoryRepository struct {
	BaseRepository
}

func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

func scanItem(row pgx.Row) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.TenantID,
		&item.Name,
		&item.Unit,
		&item.Category,
		&item.CurrentStock,
		&item.AverageCost,
		&item.ReorderLevel,
		&item.Version,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.TenantID,
		item.Name,
		item.Unit,
		item.Category,
		item.CurrentStock,
		item.AverageCost,
		item.ReorderLevel,
		item.Version,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("inventory item %q already exists: %w", item.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save inventory item %s: %w", item.ItemID, err)
	}
	return nil
}

func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, tenantID, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND item_id = $2;`
	item, err := scanItem(r.Pool.QueryRow(ctx, query, tenantID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	return &item, nil
}

func (r *PgxInventoryRepository) FindItemByName(ctx context.Context, tenantID, name string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND name = $2;`
	item, err := scanItem(r.Pool.QueryRow(ctx, query, tenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %q: %w", name, err)
	}
	return &item, nil
}

func (r *PgxInventoryRepository) ListItems(ctx context.Context, tenantID string, limit, offset int) ([]domain.InventoryItem, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// MutateItem locks the row with SELECT ... FOR UPDATE, applies fn, and
// writes the result back before releasing the lock. Concurrent mutations of
// the same item serialize on the row lock, so the read-modify-write cannot
// lose updates.
func (r *PgxInventoryRepository) MutateItem(ctx context.Context, tenantID, itemID string, fn func(item *domain.InventoryItem) error) (*domain.InventoryItem, error) {
	var mutated domain.InventoryItem
	err := r.WithinTx(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE tenant_id = $1 AND item_id = $2 FOR UPDATE;`
		item, err := scanItem(tx.QueryRow(ctx, query, tenantID, itemID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock inventory item %s: %w", itemID, err)
		}

		if err := fn(&item); err != nil {
			return err
		}
		item.Version++

		_, err = tx.Exec(ctx, `
			UPDATE inventory_items SET
				name = $3, unit = $4, category = $5,
				current_stock = $6, average_cost = $7, reorder_level = $8,
				version = $9, last_updated_at = $10, last_updated_by = $11
			WHERE tenant_id = $1 AND item_id = $2;
		`,
			tenantID,
			itemID,
			item.Name,
			item.Unit,
			item.Category,
			item.CurrentStock,
			item.AverageCost,
			item.ReorderLevel,
			item.Version,
			item.LastUpdatedAt,
			item.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update inventory item %s: %w", itemID, err)
		}
		mutated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &mutated, nil
}
