package repositories

import (
	"context"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// InventoryRepository persists cost-bearing stock items.
type InventoryRepository interface {
	SaveItem(ctx context.Context, item domain.InventoryItem) error
	FindItemByID(ctx context.Context, tenantID, itemID string) (*domain.InventoryItem, error)
	FindItemByName(ctx context.Context, tenantID, name string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, tenantID string, limit, offset int) ([]domain.InventoryItem, error)
	// MutateItem runs fn on the item inside a transaction that holds an
	// exclusive row lock for the duration of the read-modify-write, then
	// persists the mutated item. This is the only write path for stock and
	// average cost, preventing lost updates under concurrent requests.
	MutateItem(ctx context.Context, tenantID, itemID string, fn func(item *domain.InventoryItem) error) (*domain.InventoryItem, error)
}

// AuditRepository is the best-effort sink for mutation observations.
type AuditRepository interface {
	Append(ctx context.Context, record domain.AuditRecord) error
	ListByEntity(ctx context.Context, tenantID, entity, recordID string, limit int) ([]domain.AuditRecord, error)
}

// StandardsRepository persists breed performance reference curves.
type StandardsRepository interface {
	CurveForTenant(ctx context.Context, tenantID string) (domain.StandardCurve, error)
	SaveStandard(ctx context.Context, standard domain.PerformanceStandard) error
}
