package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// flockHandler handles HTTP requests for batches and the daily flock chain.
type flockHandler struct {
	flockService portssvc.FlockSvc
}

func newFlockHandler(flockService portssvc.FlockSvc) *flockHandler {
	return &flockHandler{
		flockService: flockService,
	}
}

// registerFlockRoutes registers routes related to flock batches.
func registerFlockRoutes(rg *gin.RouterGroup, flockService portssvc.FlockSvc) {
	h := newFlockHandler(flockService)

	batches := rg.Group("/batches")
	{
		batches.POST("", h.createBatch)
		batches.GET("", h.listActiveBatches)
		batches.GET("/daily", h.listDailyRows)
		batches.GET("/:batchID", h.getBatch)
		batches.POST("/:batchID/close", h.closeBatch)
		batches.GET("/:batchID/rows/:date", h.getDailyRow)
		batches.PUT("/:batchID/rows/:date", h.updateDailyRow)
	}
}

func (h *flockHandler) createBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	batch, err := h.flockService.CreateBatch(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create batch")
		return
	}

	logger.Info("Batch created", slog.String("batch_id", batch.BatchID), slog.Int("shed_no", batch.ShedNo))
	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch))
}

func (h *flockHandler) listActiveBatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	batches, err := h.flockService.ListActiveBatches(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list batches")
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": dto.ToListBatchResponse(batches)})
}

func (h *flockHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	batch, err := h.flockService.GetBatch(c.Request.Context(), tenantID, batchID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve batch")
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

func (h *flockHandler) closeBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.flockService.CloseBatch(c.Request.Context(), tenantID, batchID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to close batch")
		return
	}

	logger.Info("Batch closed", slog.String("batch_id", batchID))
	c.Status(http.StatusNoContent)
}

// listDailyRows returns the rows of every active batch for a date,
// deriving missing rows from their predecessors.
func (h *flockHandler) listDailyRows(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	dateStr := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		logger.Warn("Invalid date parameter", slog.String("date", dateStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	rows, err := h.flockService.ListDailyRows(c.Request.Context(), tenantID, date, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list daily rows")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": dto.ToListDailyBatchRowResponse(rows)})
}

func (h *flockHandler) getDailyRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	date, ok := dateParam(c)
	if !ok {
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	row, err := h.flockService.GetDailyRow(c.Request.Context(), tenantID, batchID, date, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve daily row")
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyBatchRowResponse(row))
}

func (h *flockHandler) updateDailyRow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req dto.UpdateDailyRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateDailyRow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	row, err := h.flockService.UpdateDailyRow(c.Request.Context(), tenantID, batchID, date, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update daily row")
		return
	}

	logger.Info("Daily row updated",
		slog.String("batch_id", batchID),
		slog.String("batch_date", c.Param("date")))
	c.JSON(http.StatusOK, dto.ToDailyBatchRowResponse(row))
}
