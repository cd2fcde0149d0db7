package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajabalanj/poultry-ledger/internal/apperrors"
	"github.com/rajabalanj/poultry-ledger/internal/core/domain"
	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/rajabalanj/poultry-ledger/internal/utils/accounting"
)

type InventoryService struct {
	inventoryRepo portsrepo.InventoryRepository
	auditRepo     portsrepo.AuditRepository
	// eggStockTolerance lets egg grades dip below zero by this many units,
	// absorbing grading drift between the egg room and sales records.
	eggStockTolerance decimal.Decimal
}

func NewInventoryService(inventoryRepo portsrepo.InventoryRepository, auditRepo portsrepo.AuditRepository, eggStockTolerance decimal.Decimal) *InventoryService {
	return &InventoryService{
		inventoryRepo:     inventoryRepo,
		auditRepo:         auditRepo,
		eggStockTolerance: eggStockTolerance,
	}
}

func (s *InventoryService) CreateItem(ctx context.Context, tenantID string, req dto.CreateItemRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.inventoryRepo.FindItemByName(ctx, tenantID, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("inventory item %q already exists: %w", req.Name, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	item := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		TenantID:     tenantID,
		Name:         req.Name,
		Unit:         req.Unit,
		Category:     req.Category,
		CurrentStock: decimal.Zero,
		AverageCost:  decimal.Zero,
		ReorderLevel: req.ReorderLevel,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		logger.Error("Failed to save inventory item", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	s.audit(ctx, tenantID, item.ItemID, string(domain.StockChangeAdjustment), domain.AuditCreate, nil, &item, userID, "item created")
	logger.Info("Inventory item created", slog.String("item_id", item.ItemID), slog.String("name", item.Name))
	return &item, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, tenantID string, itemID string, req dto.UpdateItemRequest, userID string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.MutateItem(ctx, tenantID, itemID, func(item *domain.InventoryItem) error {
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.ReorderLevel != nil {
			item.ReorderLevel = *req.ReorderLevel
		}
		item.LastUpdatedAt = time.Now()
		item.LastUpdatedBy = userID
		return nil
	})
}

func (s *InventoryService) GetItemByID(ctx context.Context, tenantID string, itemID string) (*domain.InventoryItem, error) {
	return s.inventoryRepo.FindItemByID(ctx, tenantID, itemID)
}

func (s *InventoryService) ListItems(ctx context.Context, tenantID string, params dto.ListItemsParams) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItems(ctx, tenantID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	if params.Category == nil {
		return items, nil
	}
	filtered := items[:0]
	for _, item := range items {
		if item.Category == *params.Category {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// ReceiveStock adds quantity at a unit cost under the row lock. This is
// the only operation that moves the average cost.
func (s *InventoryService) ReceiveStock(ctx context.Context, tenantID string, req dto.StockReceiptRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	qty := accounting.RoundQuantity(req.Quantity)
	if !qty.IsPositive() {
		return nil, fmt.Errorf("receipt quantity must be positive: %w", apperrors.ErrValidation)
	}
	if req.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost must be non-negative: %w", apperrors.ErrValidation)
	}

	var before domain.InventoryItem
	item, err := s.inventoryRepo.MutateItem(ctx, tenantID, req.ItemID, func(item *domain.InventoryItem) error {
		before = *item
		item.AverageCost = domain.NextAverageCost(item.CurrentStock, item.AverageCost, qty, req.UnitCost)
		item.CurrentStock = accounting.RoundQuantity(item.CurrentStock.Add(qty))
		item.LastUpdatedAt = time.Now()
		item.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, tenantID, item.ItemID, string(domain.StockChangePurchase), domain.AuditUpdate, &before, item, userID, req.Reference)
	logger.Info("Stock received",
		slog.String("item_id", item.ItemID),
		slog.String("quantity", qty.String()),
		slog.String("average_cost", item.AverageCost.String()),
	)
	return item, nil
}

// ConsumeStock removes quantity at the prevailing average cost. Egg grades
// may run negative within the configured tolerance; everything else must
// have the stock on hand.
func (s *InventoryService) ConsumeStock(ctx context.Context, tenantID string, req dto.StockConsumptionRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	qty := accounting.RoundQuantity(req.Quantity)
	if !qty.IsPositive() {
		return nil, fmt.Errorf("consumption quantity must be positive: %w", apperrors.ErrValidation)
	}

	changeType := req.ChangeType
	if changeType == "" {
		changeType = string(domain.StockChangeUsage)
	}

	var before domain.InventoryItem
	item, err := s.inventoryRepo.MutateItem(ctx, tenantID, req.ItemID, func(item *domain.InventoryItem) error {
		before = *item
		remaining := item.CurrentStock.Sub(qty)
		floor := decimal.Zero
		if domain.IsEggItem(item.Name) {
			floor = s.eggStockTolerance.Neg()
		}
		if remaining.LessThan(floor) {
			return fmt.Errorf("insufficient stock for %q: have %s, need %s: %w",
				item.Name, item.CurrentStock.String(), qty.String(), apperrors.ErrValidation)
		}
		item.CurrentStock = accounting.RoundQuantity(remaining)
		item.LastUpdatedAt = time.Now()
		item.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, tenantID, item.ItemID, changeType, domain.AuditUpdate, &before, item, userID, req.Reference)
	logger.Info("Stock consumed", slog.String("item_id", item.ItemID), slog.String("quantity", qty.String()))
	return item, nil
}

// ReturnStock restores previously consumed quantity. The average cost is
// deliberately left where it is: averaging is not invertible.
func (s *InventoryService) ReturnStock(ctx context.Context, tenantID string, req dto.StockReturnRequest, userID string) (*domain.InventoryItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	qty := accounting.RoundQuantity(req.Quantity)
	if !qty.IsPositive() {
		return nil, fmt.Errorf("return quantity must be positive: %w", apperrors.ErrValidation)
	}

	var before domain.InventoryItem
	item, err := s.inventoryRepo.MutateItem(ctx, tenantID, req.ItemID, func(item *domain.InventoryItem) error {
		before = *item
		item.CurrentStock = accounting.RoundQuantity(item.CurrentStock.Add(qty))
		item.LastUpdatedAt = time.Now()
		item.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, tenantID, item.ItemID, string(domain.StockChangeUsageReversal), domain.AuditUpdate, &before, item, userID, req.Reference)
	logger.Info("Stock returned", slog.String("item_id", item.ItemID), slog.String("quantity", qty.String()))
	return item, nil
}

func (s *InventoryService) audit(ctx context.Context, tenantID, itemID, changeType string, action domain.AuditAction, before, after *domain.InventoryItem, userID, note string) {
	record := domain.AuditRecord{
		AuditID:    uuid.NewString(),
		TenantID:   tenantID,
		Entity:     "inventory_item",
		RecordID:   itemID,
		ChangeType: changeType,
		Action:     action,
		ChangedBy:  userID,
		Note:       note,
		ChangedAt:  time.Now(),
	}
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			record.OldValue = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			record.NewValue = string(a)
		}
	}
	if err := s.auditRepo.Append(ctx, record); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to append audit record",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID),
		)
	}
}
