package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/TyroGames/api-sub001/internal/core/ports/services"
	"github.com/TyroGames/api-sub001/internal/dto"
	"github.com/TyroGames/api-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the accounting reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// parseDateRange reads the required from/to query parameters.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing 'from' date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing 'to' date, expected YYYY-MM-DD")
	}
	return from, to, nil
}

// getLibroMayor godoc
// @Summary Get the libro mayor for an account
// @Description Returns opening balance, ordered movements with running balances, and closing balance over a date range
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Param   fiscalPeriodID query string false "Restrict to one fiscal period"
// @Success 200 {object} dto.LibroMayorResponse "The account ledger"
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/libro-mayor/{accountID} [get]
func (h *reportingHandler) getLibroMayor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	from, to, err := parseDateRange(c)
	if err != nil {
		logger.Warn("Invalid date range for libro mayor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fiscalPeriodID *string
	if raw := c.Query("fiscalPeriodID"); raw != "" {
		fiscalPeriodID = &raw
	}

	report, err := h.reportingService.GetLibroMayor(c.Request.Context(), accountID, from, to, fiscalPeriodID)
	if err != nil {
		respondWithServiceError(c, err, "Failed to build libro mayor")
		return
	}

	c.JSON(http.StatusOK, dto.ToLibroMayorResponse(report, from, to))
}

// getBalanceComprobacion godoc
// @Summary Get the balance de comprobación
// @Description Aggregates posted movements per account over a date range into the trial balance with its correctness check
// @Tags reports
// @Produce  json
// @Param   from query string true "Start date (YYYY-MM-DD)"
// @Param   to query string true "End date (YYYY-MM-DD)"
// @Param   fiscalPeriodID query string false "Restrict to one fiscal period"
// @Param   includeZeroBalances query bool false "Include postable accounts without movements"
// @Success 200 {object} dto.BalanceComprobacionResponse "The trial balance"
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Router /reports/balance-comprobacion [get]
func (h *reportingHandler) getBalanceComprobacion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseDateRange(c)
	if err != nil {
		logger.Warn("Invalid date range for balance de comprobación", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fiscalPeriodID *string
	if raw := c.Query("fiscalPeriodID"); raw != "" {
		fiscalPeriodID = &raw
	}
	includeZeroBalances := c.Query("includeZeroBalances") == "true"

	report, err := h.reportingService.GetBalanceComprobacion(c.Request.Context(), from, to, fiscalPeriodID, includeZeroBalances)
	if err != nil {
		respondWithServiceError(c, err, "Failed to build balance de comprobación")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceComprobacionResponse(report, from, to))
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	handler := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/libro-mayor/:accountID", handler.getLibroMayor)
		reports.GET("/balance-comprobacion", handler.getBalanceComprobacion)
	}
}
