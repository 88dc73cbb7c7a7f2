package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type SubmittalHandler struct {
	service service.SubmittalService
	log     *logger.Logger
}

func NewSubmittalHandler(service service.SubmittalService, log *logger.Logger) *SubmittalHandler {
	return &SubmittalHandler{service: service, log: log}
}

func (h *SubmittalHandler) CreateSubmittal(c *gin.Context) {
	var req dto.CreateSubmittalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateSubmittal(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SubmittalHandler) GetSubmittal(c *gin.Context) {
	runAction(c, h.service.GetSubmittal)
}

func (h *SubmittalHandler) ListSubmittals(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListSubmittals(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SubmittalHandler) SubmitSubmittal(c *gin.Context) {
	runAction(c, h.service.SubmitSubmittal)
}

// @Summary Review submittal
// @Description Record the reviewer's outcome on a submitted submittal
// @Tags Submittals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Submittal ID"
// @Param request body dto.ReviewSubmittalRequest true "Review"
// @Success 200 {object} submittal.Submittal
// @Router /submittals/{id}/review [post]
func (h *SubmittalHandler) ReviewSubmittal(c *gin.Context) {
	var req dto.ReviewSubmittalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ReviewSubmittal(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
