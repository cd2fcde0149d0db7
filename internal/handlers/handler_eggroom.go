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

// eggRoomHandler handles HTTP requests for the egg room stock chain.
type eggRoomHandler struct {
	eggRoomService portssvc.EggRoomSvc
}

func newEggRoomHandler(eggRoomService portssvc.EggRoomSvc) *eggRoomHandler {
	return &eggRoomHandler{
		eggRoomService: eggRoomService,
	}
}

// registerEggRoomRoutes registers routes related to egg room reports.
func registerEggRoomRoutes(rg *gin.RouterGroup, eggRoomService portssvc.EggRoomSvc) {
	h := newEggRoomHandler(eggRoomService)

	eggRoom := rg.Group("/egg-room")
	{
		eggRoom.GET("/reports", h.listReports)
		eggRoom.GET("/reports/:date", h.getReport)
		eggRoom.PUT("/reports/:date", h.updateReport)
		eggRoom.DELETE("/reports/:date", h.deleteReport)
		eggRoom.GET("/stock", h.currentStock)
	}
}

// dateParam parses the :date path segment as YYYY-MM-DD.
func dateParam(c *gin.Context) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func (h *eggRoomHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

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

	report, err := h.eggRoomService.GetReport(c.Request.Context(), tenantID, date, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve egg room report")
		return
	}

	c.JSON(http.StatusOK, dto.ToEggRoomReportResponse(report))
}

func (h *eggRoomHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid period parameters for listReports", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required as YYYY-MM-DD"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reports, err := h.eggRoomService.ListReports(c.Request.Context(), tenantID, params.StartDate, params.EndDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list egg room reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": dto.ToListEggRoomReportResponse(reports)})
}

func (h *eggRoomHandler) updateReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req dto.UpdateEggRoomReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	report, err := h.eggRoomService.UpdateReport(c.Request.Context(), tenantID, date, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update egg room report")
		return
	}

	logger.Info("Egg room report updated", slog.String("report_date", c.Param("date")))
	c.JSON(http.StatusOK, dto.ToEggRoomReportResponse(report))
}

func (h *eggRoomHandler) deleteReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

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

	if err := h.eggRoomService.DeleteReport(c.Request.Context(), tenantID, date, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete egg room report")
		return
	}

	logger.Info("Egg room report deleted", slog.String("report_date", c.Param("date")))
	c.Status(http.StatusNoContent)
}

func (h *eggRoomHandler) currentStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stock, err := h.eggRoomService.CurrentStock(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute current egg stock")
		return
	}

	c.JSON(http.StatusOK, dto.ToEggStockResponse(stock))
}
