package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
)

// CreateItemRequest defines the data needed to create an inventory item.
type CreateItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	Category     string          `json:"category"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
}

// UpdateItemRequest defines mutable item fields. Stock and average cost
// change only through the stock operations.
type UpdateItemRequest struct {
	Name         *string          `json:"name"`
	Unit         *string          `json:"unit"`
	Category     *string          `json:"category"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel"`
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	Category *string `form:"category"`
	Limit    int     `form:"limit,default=100"`
	Offset   int     `form:"offset,default=0"`
}

// StockReceiptRequest adds stock at a unit cost.
type StockReceiptRequest struct {
	ItemID    string          `json:"itemID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"required"`
	Reference string          `json:"reference"`
}

// StockConsumptionRequest removes stock at the current average cost.
type StockConsumptionRequest struct {
	ItemID     string          `json:"itemID" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	ChangeType string          `json:"changeType"`
	Reference  string          `json:"reference"`
}

// StockReturnRequest puts consumed stock back without moving the average.
type StockReturnRequest struct {
	ItemID    string          `json:"itemID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Reference string          `json:"reference"`
}

// InventoryItemResponse mirrors domain.InventoryItem.
type InventoryItemResponse struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	AverageCost   decimal.Decimal `json:"averageCost"`
	ReorderLevel  decimal.Decimal `json:"reorderLevel"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:        item.ItemID,
		Name:          item.Name,
		Unit:          item.Unit,
		Category:      item.Category,
		CurrentStock:  item.CurrentStock,
		AverageCost:   item.AverageCost,
		ReorderLevel:  item.ReorderLevel,
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToListInventoryItemResponse converts items to response DTOs.
func ToListInventoryItemResponse(items []domain.InventoryItem) []InventoryItemResponse {
	res := make([]InventoryItemResponse, len(items))
	for i := range items {
		res[i] = ToInventoryItemResponse(&items[i])
	}
	return res
}
