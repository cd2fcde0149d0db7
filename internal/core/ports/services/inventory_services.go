package services

import (
	"context"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
)

// InventoryReaderSvc defines read operations for inventory items
type InventoryReaderSvc interface {
	GetItemByID(ctx context.Context, tenantID string, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, tenantID string, params dto.ListItemsParams) ([]domain.InventoryItem, error)
}

// InventoryWriterSvc defines stock mutations. ReceiveStock is the only
// path that moves the average cost; consumption and reversal adjust
// quantity alone.
type InventoryWriterSvc interface {
	CreateItem(ctx context.Context, tenantID string, req dto.CreateItemRequest, userID string) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, tenantID string, itemID string, req dto.UpdateItemRequest, userID string) (*domain.InventoryItem, error)

	// ReceiveStock adds quantity at a unit cost and folds it into the
	// moving average.
	ReceiveStock(ctx context.Context, tenantID string, req dto.StockReceiptRequest, userID string) (*domain.InventoryItem, error)

	// ConsumeStock removes quantity at the current average cost.
	ConsumeStock(ctx context.Context, tenantID string, req dto.StockConsumptionRequest, userID string) (*domain.InventoryItem, error)

	// ReturnStock puts previously consumed quantity back without touching
	// the average cost.
	ReturnStock(ctx context.Context, tenantID string, req dto.StockReturnRequest, userID string) (*domain.InventoryItem, error)
}

// InventorySvcFacade combines all inventory service interfaces
type InventorySvcFacade interface {
	InventoryReaderSvc
	InventoryWriterSvc
}
