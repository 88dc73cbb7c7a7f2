package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type RFIHandler struct {
	service service.RFIService
	log     *logger.Logger
}

func NewRFIHandler(service service.RFIService, log *logger.Logger) *RFIHandler {
	return &RFIHandler{service: service, log: log}
}

func (h *RFIHandler) CreateRFI(c *gin.Context) {
	var req dto.CreateRFIRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateRFI(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *RFIHandler) GetRFI(c *gin.Context) {
	runAction(c, h.service.GetRFI)
}

func (h *RFIHandler) ListRFIs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListRFIs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RFIHandler) AnswerRFI(c *gin.Context) {
	var req dto.AnswerRFIRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.AnswerRFI(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *RFIHandler) CloseRFI(c *gin.Context) {
	runAction(c, h.service.CloseRFI)
}

func (h *RFIHandler) ReopenRFI(c *gin.Context) {
	runAction(c, h.service.ReopenRFI)
}
