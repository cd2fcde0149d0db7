package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler accepts business events and turns them into stock moves
// and journal entries through the posting service.
type eventHandler struct {
	postingService portssvc.PostingSvc
}

func newEventHandler(postingService portssvc.PostingSvc) *eventHandler {
	return &eventHandler{
		postingService: postingService,
	}
}

// registerEventRoutes registers the business event posting routes.
func registerEventRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvc) {
	h := newEventHandler(postingService)

	events := rg.Group("/events")
	{
		events.POST("/purchase-receipts", h.postPurchaseReceipt)
		events.POST("/purchase-payments", h.postPurchasePayment)
		events.POST("/sale-invoices", h.postSaleInvoice)
		events.POST("/sale-payments", h.postSalePayment)
		events.POST("/operational-expenses", h.postOperationalExpense)
		events.POST("/composition-usages", h.postCompositionUsage)
		events.POST("/composition-usages/revert", h.revertCompositionUsage)
	}
}

func (h *eventHandler) postPurchaseReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PurchaseReceiptEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postPurchaseReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.postingService.PostPurchaseReceipt(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post purchase receipt")
		return
	}

	logger.Info("Purchase receipt posted", slog.String("order_number", req.OrderNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *eventHandler) postPurchasePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PurchasePaymentEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postPurchasePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.postingService.PostPurchasePayment(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post purchase payment")
		return
	}

	logger.Info("Purchase payment posted", slog.String("order_number", req.OrderNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *eventHandler) postSaleInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaleInvoiceEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postSaleInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entries, err := h.postingService.PostSaleInvoice(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post sale invoice")
		return
	}

	logger.Info("Sale invoice posted",
		slog.String("order_number", req.OrderNumber),
		slog.Int("entries", len(entries)))
	c.JSON(http.StatusCreated, gin.H{"entries": dto.ToListJournalEntryResponse(entries)})
}

func (h *eventHandler) postSalePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SalePaymentEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postSalePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.postingService.PostSalePayment(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post sale payment")
		return
	}

	logger.Info("Sale payment posted", slog.String("order_number", req.OrderNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *eventHandler) postOperationalExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OperationalExpenseEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postOperationalExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.postingService.PostOperationalExpense(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post operational expense")
		return
	}

	logger.Info("Operational expense posted", slog.String("expense_id", req.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *eventHandler) postCompositionUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CompositionUsageEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postCompositionUsage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.postingService.PostCompositionUsage(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post composition usage")
		return
	}

	logger.Info("Composition usage posted", slog.String("usage_id", req.UsageID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// revertCompositionUsage restores consumed stock. No journal entry is
// posted for a reversal.
func (h *eventHandler) revertCompositionUsage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UsageReversalEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for revertCompositionUsage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.postingService.RevertCompositionUsage(c.Request.Context(), tenantID, req, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to revert composition usage")
		return
	}

	logger.Info("Composition usage reverted", slog.String("usage_id", req.UsageID))
	c.Status(http.StatusNoContent)
}
