package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

// EstimateHandler serves estimates together with their sections and line
// items. Totals are derived, every child write returns after the cascade.
type EstimateHandler struct {
	service service.EstimateService
	log     *logger.Logger
}

func NewEstimateHandler(service service.EstimateService, log *logger.Logger) *EstimateHandler {
	return &EstimateHandler{service: service, log: log}
}

// @Summary Create estimate
// @Tags Estimates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateEstimateRequest true "Estimate"
// @Success 201 {object} estimate.Estimate
// @Router /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var req dto.CreateEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateEstimate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	resp, err := h.service.GetEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListEstimates(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) UpdateEstimate(c *gin.Context) {
	var req dto.UpdateEstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateEstimate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateSection(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *EstimateHandler) ListSections(c *gin.Context) {
	resp, err := h.service.ListSections(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) UpdateSection(c *gin.Context) {
	var req dto.UpdateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateSection(c.Request.Context(), c.Param("section_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) DeleteSection(c *gin.Context) {
	if err := h.service.DeleteSection(c.Request.Context(), c.Param("section_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Add line item
// @Description Add a line item to a section. Section and estimate totals are recalculated.
// @Tags Estimates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param section_id path string true "Section ID"
// @Param request body dto.CreateLineItemRequest true "Line item"
// @Success 201 {object} estimate.LineItem
// @Router /estimate-sections/{section_id}/line-items [post]
func (h *EstimateHandler) CreateLineItem(c *gin.Context) {
	var req dto.CreateLineItemRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateLineItem(c.Request.Context(), c.Param("section_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *EstimateHandler) ListLineItems(c *gin.Context) {
	resp, err := h.service.ListLineItems(c.Request.Context(), c.Param("section_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) UpdateLineItem(c *gin.Context) {
	var req dto.UpdateLineItemRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateLineItem(c.Request.Context(), c.Param("line_item_id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *EstimateHandler) DeleteLineItem(c *gin.Context) {
	if err := h.service.DeleteLineItem(c.Request.Context(), c.Param("line_item_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
