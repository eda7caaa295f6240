package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc) {
	h := &dashboardHandler{dashboardService: dashboardService}
	rg.GET("/dashboard/summary", h.getSummary)
}

// getSummary godoc
// @Summary Dashboard summary
// @Description Totals and breakdowns in the base currency. Income and expenses honour the period; savings and holdings are current snapshots.
// @Tags dashboard
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "A record's currency has no exchange rate"
// @Security BearerAuth
// @Router /dashboard/summary [get]
func (h *dashboardHandler) getSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListRecordsParams
	if !bindQuery(c, &params) {
		return
	}
	period, err := params.DateRange()
	if err != nil {
		respondError(c, err, "Invalid period")
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), userID, period)
	if err != nil {
		respondError(c, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}
