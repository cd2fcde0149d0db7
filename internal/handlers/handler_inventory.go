package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inventoryHandler handles HTTP requests related to inventory items.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{
		inventoryService: inventoryService,
	}
}

// registerInventoryRoutes registers routes related to inventory.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("/items", h.createItem)
		inventory.GET("/items", h.listItems)
		inventory.GET("/items/:itemID", h.getItem)
		inventory.PUT("/items/:itemID", h.updateItem)

		inventory.POST("/stock/receive", h.receiveStock)
		inventory.POST("/stock/consume", h.consumeStock)
		inventory.POST("/stock/return", h.returnStock)
	}
}

func (h *inventoryHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.inventoryService.CreateItem(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create item")
		return
	}

	logger.Info("Inventory item created", slog.String("item_id", item.ItemID))
	c.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for listItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	items, err := h.inventoryService.ListItems(c.Request.Context(), tenantID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.ToListInventoryItemResponse(items)})
}

func (h *inventoryHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.inventoryService.GetItemByID(c.Request.Context(), tenantID, itemID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve item")
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itemID := c.Param("itemID")

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), tenantID, itemID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update item")
		return
	}

	logger.Info("Inventory item updated", slog.String("item_id", itemID))
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) receiveStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StockReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for receiveStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.inventoryService.ReceiveStock(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to receive stock")
		return
	}

	logger.Info("Stock received", slog.String("item_id", req.ItemID), slog.String("quantity", req.Quantity.String()))
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) consumeStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StockConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for consumeStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.inventoryService.ConsumeStock(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to consume stock")
		return
	}

	logger.Info("Stock consumed", slog.String("item_id", req.ItemID), slog.String("quantity", req.Quantity.String()))
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

func (h *inventoryHandler) returnStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StockReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for returnStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	item, err := h.inventoryService.ReturnStock(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to return stock")
		return
	}

	logger.Info("Stock returned", slog.String("item_id", req.ItemID), slog.String("quantity", req.Quantity.String()))
	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}
