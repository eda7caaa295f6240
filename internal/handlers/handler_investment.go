package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// investmentHandler handles holdings and their market-data refresh.
type investmentHandler struct {
	investmentService portssvc.InvestmentSvcFacade
}

func registerInvestmentRoutes(rg *gin.RouterGroup, investmentService portssvc.InvestmentSvcFacade) {
	h := &investmentHandler{investmentService: investmentService}

	investments := rg.Group("/investments")
	{
		investments.POST("", h.createInvestment)
		investments.GET("", h.listInvestments)
		investments.POST("/refresh-prices", h.refreshPrices)
		investments.GET("/:id", h.getInvestment)
		investments.PUT("/:id", h.updateInvestment)
		investments.DELETE("/:id", h.deleteInvestment)
	}
}

// createInvestment godoc
// @Summary Add a holding
// @Tags investments
// @Accept json
// @Produce json
// @Param investment body dto.CreateInvestmentRequest true "Holding details"
// @Success 201 {object} dto.InvestmentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /investments [post]
func (h *investmentHandler) createInvestment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInvestmentRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.investmentService.CreateInvestment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create investment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvestmentResponse(inv))
}

// listInvestments godoc
// @Summary List holdings
// @Tags investments
// @Produce json
// @Success 200 {array} dto.InvestmentResponse
// @Security BearerAuth
// @Router /investments [get]
func (h *investmentHandler) listInvestments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListRecordsParams
	if !bindQuery(c, &params) {
		return
	}
	investments, err := h.investmentService.ListInvestments(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list investments")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestmentResponses(investments))
}

// @Summary Get a holding
// @Tags investments
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} dto.InvestmentResponse
// @Security BearerAuth
// @Router /investments/{id} [get]
func (h *investmentHandler) getInvestment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	inv, err := h.investmentService.GetInvestment(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve investment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestmentResponse(inv))
}

// @Summary Update a holding
// @Tags investments
// @Accept json
// @Produce json
// @Param id path string true "Investment ID"
// @Param investment body dto.UpdateInvestmentRequest true "Fields to change"
// @Success 200 {object} dto.InvestmentResponse
// @Security BearerAuth
// @Router /investments/{id} [put]
func (h *investmentHandler) updateInvestment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateInvestmentRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.investmentService.UpdateInvestment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update investment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvestmentResponse(inv))
}

// @Summary Delete a holding
// @Tags investments
// @Param id path string true "Investment ID"
// @Success 204
// @Security BearerAuth
// @Router /investments/{id} [delete]
func (h *investmentHandler) deleteInvestment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.investmentService.DeleteInvestment(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete investment")
		return
	}
	c.Status(http.StatusNoContent)
}

// refreshPrices godoc
// @Summary Refresh market prices
// @Description Reprices every holding one provider call at a time. Individual failures are tallied, not fatal.
// @Tags investments
// @Produce json
// @Success 200 {object} domain.PriceRefreshResult
// @Failure 502 {object} ErrorResponse "Market data provider unavailable"
// @Security BearerAuth
// @Router /investments/refresh-prices [post]
func (h *investmentHandler) refreshPrices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	result, err := h.investmentService.RefreshPrices(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to refresh prices")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Prices refreshed",
		slog.Int("updated", result.Updated), slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}
