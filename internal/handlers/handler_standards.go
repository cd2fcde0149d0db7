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

// standardsHandler handles HTTP requests for breed performance standards.
type standardsHandler struct {
	standardsService portssvc.StandardsSvc
}

func newStandardsHandler(standardsService portssvc.StandardsSvc) *standardsHandler {
	return &standardsHandler{
		standardsService: standardsService,
	}
}

// registerStandardsRoutes registers routes related to performance standards.
func registerStandardsRoutes(rg *gin.RouterGroup, standardsService portssvc.StandardsSvc) {
	h := newStandardsHandler(standardsService)

	standards := rg.Group("/standards")
	{
		standards.GET("", h.getCurve)
		standards.PUT("", h.saveStandard)
		standards.GET("/expected/:batchID", h.expectedPerformance)
	}
}

func (h *standardsHandler) getCurve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	curve, err := h.standardsService.Curve(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve standards")
		return
	}

	c.JSON(http.StatusOK, gin.H{"standards": curve})
}

func (h *standardsHandler) saveStandard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveStandardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for saveStandard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	standard, err := h.standardsService.SaveStandard(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to save standard")
		return
	}

	logger.Info("Performance standard saved", slog.Int("age_weeks", standard.AgeWeeks))
	c.JSON(http.StatusOK, standard)
}

// expectedPerformance compares a batch day against the standard curve.
func (h *standardsHandler) expectedPerformance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

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

	performance, err := h.standardsService.ExpectedPerformance(c.Request.Context(), tenantID, batchID, date)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute expected performance")
		return
	}

	c.JSON(http.StatusOK, performance)
}
