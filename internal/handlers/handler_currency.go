package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// currencyHandler exposes the converter.
type currencyHandler struct {
	converter portssvc.ConverterSvc
}

func registerCurrencyRoutes(rg *gin.RouterGroup, converter portssvc.ConverterSvc) {
	h := &currencyHandler{converter: converter}
	rg.GET("/currencies/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount
// @Description Converts through the base currency using the latest stored rates
// @Tags currencies
// @Produce json
// @Param amount query string true "Decimal amount"
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "No rate for one of the currencies"
// @Security BearerAuth
// @Router /currencies/convert [get]
func (h *currencyHandler) convert(c *gin.Context) {
	var params dto.ConvertParams
	if !bindQuery(c, &params) {
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be a decimal number"})
		return
	}

	source, err := domain.NewMoney(amount, strings.ToUpper(params.From))
	if err != nil {
		respondError(c, err, "Invalid source currency")
		return
	}

	converted, err := h.converter.ConvertMoney(c.Request.Context(), source, strings.ToUpper(params.To))
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ConversionResponse{
		From:         dto.ToMoneyResponse(source),
		To:           dto.ToMoneyResponse(converted),
		BaseCurrency: h.converter.BaseCurrency(),
	})
}
