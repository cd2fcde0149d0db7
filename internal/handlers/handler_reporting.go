package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/rajabalanj/poultry-ledger/internal/core/ports/services"
	"github.com/rajabalanj/poultry-ledger/internal/dto"
	"github.com/rajabalanj/poultry-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	journalService   portssvc.JournalCalculatorSvc
}

func newReportingHandler(rs portssvc.ReportingSvc, js portssvc.JournalCalculatorSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		journalService:   js,
	}
}

// registerReportingRoutes registers routes related to financial reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc, journalService portssvc.JournalCalculatorSvc) {
	h := newReportingHandler(reportingService, journalService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.POST("/rebuild-ledger", h.rebuildLedger)
	}

	// The general ledger is an account statement rather than a summary
	// report, but it shares the reporting query surface.
	rg.GET("/general-ledger", h.getGeneralLedger)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid period parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate are required as YYYY-MM-DD"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), tenantID, params.StartDate, params.EndDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate profit and loss")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid asOf parameter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf is required as YYYY-MM-DD"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, params.AsOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid general ledger parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID, startDate and endDate are required"})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ledger, err := h.journalService.GeneralLedger(c.Request.Context(), tenantID, params.AccountID, params.StartDate, params.EndDate)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate general ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToGeneralLedgerResponse(ledger))
}

// rebuildLedger wipes the tenant's journal and re-posts it from the
// recorded business events.
func (h *reportingHandler) rebuildLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	summary, err := h.reportingService.RebuildLedger(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to rebuild ledger")
		return
	}

	logger.Info("Ledger rebuilt",
		slog.Int("entries_deleted", summary.EntriesDeleted),
		slog.Int("entries_posted", summary.EntriesPosted),
		slog.Int("skipped", summary.Skipped))
	c.JSON(http.StatusOK, dto.ToRebuildSummaryResponse(summary))
}
