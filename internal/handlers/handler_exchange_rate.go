package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	rateSync            portssvc.RateSyncSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, rs portssvc.RateSyncSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		rateSync:            rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, rateSync portssvc.RateSyncSvc) {
	h := newExchangeRateHandler(exchangeRateService, rateSync)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.POST("/sync", h.syncNow)
		exchangeRates.GET("/sync/status", h.syncStatus)
		exchangeRates.GET("/:code", h.getExchangeRate)
		exchangeRates.PUT("/:code", h.setManualRate)
		exchangeRates.DELETE("/:code/manual", h.clearManualRate)
	}
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Every stored rate relative to the base currency, with the time of the last automatic sync
// @Tags exchange rates
// @Produce json
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	ctx := c.Request.Context()
	rates, err := h.exchangeRateService.ListRates(ctx)
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}
	lastSync, err := h.exchangeRateService.GetLastSyncTime(ctx)
	if err != nil {
		respondError(c, err, "Failed to read last sync time")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates, h.exchangeRateService.BaseCurrency(), lastSync))
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the latest rate for a currency against the base currency
// @Tags exchange rates
// @Produce json
// @Param code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid currency code format"
// @Failure 422 {object} ErrorResponse "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{code} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate, h.exchangeRateService.BaseCurrency()))
}

// setManualRate godoc
// @Summary Set a manual exchange rate
// @Description Stores a manual override. Automatic syncs leave it alone until the override is cleared.
// @Tags exchange rates
// @Accept json
// @Produce json
// @Param code path string true "Currency Code (3 letters)"
// @Param rate body dto.SetExchangeRateRequest true "Units of the currency per 1 unit of base"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Rate must be positive"
// @Security BearerAuth
// @Router /exchange-rates/{code} [put]
func (h *exchangeRateHandler) setManualRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}

	code := c.Param("code")
	rate, err := h.exchangeRateService.SetRate(c.Request.Context(), code, req.Rate, true)
	if err != nil {
		respondError(c, err, "Failed to set exchange rate")
		return
	}
	logger.Info("Manual exchange rate set", slog.String("currency", rate.CurrencyCode), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate, h.exchangeRateService.BaseCurrency()))
}

// clearManualRate godoc
// @Summary Clear a manual override
// @Description The rate stays in place but the next automatic sync may overwrite it
// @Tags exchange rates
// @Param code path string true "Currency Code (3 letters)"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{code}/manual [delete]
func (h *exchangeRateHandler) clearManualRate(c *gin.Context) {
	if err := h.exchangeRateService.ClearManualOverride(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, err, "Failed to clear manual override")
		return
	}
	c.Status(http.StatusNoContent)
}

// syncNow godoc
// @Summary Sync exchange rates now
// @Description Runs one sync cycle against the rate provider. Answers 409 when a cycle is already running.
// @Tags exchange rates
// @Produce json
// @Success 200 {object} domain.SyncReport
// @Failure 409 {object} ErrorResponse "Sync already in progress"
// @Failure 502 {object} ErrorResponse "Rate provider failed"
// @Security BearerAuth
// @Router /exchange-rates/sync [post]
func (h *exchangeRateHandler) syncNow(c *gin.Context) {
	report, err := h.rateSync.SyncNow(c.Request.Context())
	if err != nil {
		respondError(c, err, "Exchange rate sync failed")
		return
	}
	if report.Outcome == domain.SyncSkipped {
		respondError(c, fmt.Errorf("%w: started at %s", apperrors.ErrSyncInProgress, report.StartedAt.Format("15:04:05")), "Sync skipped")
		return
	}
	c.JSON(http.StatusOK, report)
}

// syncStatus godoc
// @Summary Rate sync status
// @Tags exchange rates
// @Produce json
// @Success 200 {object} domain.SyncStatus
// @Security BearerAuth
// @Router /exchange-rates/sync/status [get]
func (h *exchangeRateHandler) syncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.rateSync.Status())
}
