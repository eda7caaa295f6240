package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type savingHandler struct {
	savingService portssvc.SavingSvcFacade
}

func registerSavingRoutes(rg *gin.RouterGroup, savingService portssvc.SavingSvcFacade) {
	h := &savingHandler{savingService: savingService}

	savings := rg.Group("/savings")
	{
		savings.POST("", h.createSaving)
		savings.GET("", h.listSavings)
		savings.GET("/:id", h.getSaving)
		savings.PUT("/:id", h.updateSaving)
		savings.POST("/:id/contributions", h.addContribution)
		savings.DELETE("/:id", h.deleteSaving)
	}
}

// createSaving godoc
// @Summary Create a savings goal
// @Tags savings
// @Accept json
// @Produce json
// @Param saving body dto.CreateSavingRequest true "Saving details"
// @Success 201 {object} dto.SavingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings [post]
func (h *savingHandler) createSaving(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSavingRequest
	if !bindJSON(c, &req) {
		return
	}
	saving, err := h.savingService.CreateSaving(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create saving")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSavingResponse(saving))
}

// listSavings godoc
// @Summary List savings goals
// @Tags savings
// @Produce json
// @Success 200 {array} dto.SavingResponse
// @Security BearerAuth
// @Router /savings [get]
func (h *savingHandler) listSavings(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListRecordsParams
	if !bindQuery(c, &params) {
		return
	}
	savings, err := h.savingService.ListSavings(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list savings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingResponses(savings))
}

// getSaving godoc
// @Summary Get a savings goal
// @Tags savings
// @Produce json
// @Param id path string true "Saving ID"
// @Success 200 {object} dto.SavingResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings/{id} [get]
func (h *savingHandler) getSaving(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	saving, err := h.savingService.GetSaving(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve saving")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingResponse(saving))
}

// updateSaving godoc
// @Summary Update a savings goal
// @Description The goal keeps its currency; use contributions to move money in or out
// @Tags savings
// @Accept json
// @Produce json
// @Param id path string true "Saving ID"
// @Param saving body dto.UpdateSavingRequest true "Fields to change"
// @Success 200 {object} dto.SavingResponse
// @Security BearerAuth
// @Router /savings/{id} [put]
func (h *savingHandler) updateSaving(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSavingRequest
	if !bindJSON(c, &req) {
		return
	}
	saving, err := h.savingService.UpdateSaving(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update saving")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingResponse(saving))
}

// addContribution godoc
// @Summary Contribute to a savings goal
// @Description A negative amount withdraws. The contribution must be in the goal's currency.
// @Tags savings
// @Accept json
// @Produce json
// @Param id path string true "Saving ID"
// @Param contribution body dto.ContributionRequest true "Contribution"
// @Success 200 {object} dto.SavingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Currency mismatch"
// @Security BearerAuth
// @Router /savings/{id}/contributions [post]
func (h *savingHandler) addContribution(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContributionRequest
	if !bindJSON(c, &req) {
		return
	}
	saving, err := h.savingService.AddContribution(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingResponse(saving))
}

// deleteSaving godoc
// @Summary Delete a savings goal
// @Tags savings
// @Param id path string true "Saving ID"
// @Success 204
// @Security BearerAuth
// @Router /savings/{id} [delete]
func (h *savingHandler) deleteSaving(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.savingService.DeleteSaving(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete saving")
		return
	}
	c.Status(http.StatusNoContent)
}
