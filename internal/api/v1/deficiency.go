package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type DeficiencyHandler struct {
	service service.DeficiencyService
	log     *logger.Logger
}

func NewDeficiencyHandler(service service.DeficiencyService, log *logger.Logger) *DeficiencyHandler {
	return &DeficiencyHandler{service: service, log: log}
}

func (h *DeficiencyHandler) CreateDeficiency(c *gin.Context) {
	var req dto.CreateDeficiencyRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateDeficiency(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DeficiencyHandler) GetDeficiency(c *gin.Context) {
	runAction(c, h.service.GetDeficiency)
}

func (h *DeficiencyHandler) ListDeficiencies(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListDeficiencies(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DeficiencyHandler) StartDeficiency(c *gin.Context) {
	runAction(c, h.service.StartDeficiency)
}

func (h *DeficiencyHandler) ResolveDeficiency(c *gin.Context) {
	runAction(c, h.service.ResolveDeficiency)
}

func (h *DeficiencyHandler) VerifyDeficiency(c *gin.Context) {
	runAction(c, h.service.VerifyDeficiency)
}

func (h *DeficiencyHandler) ReopenDeficiency(c *gin.Context) {
	runAction(c, h.service.ReopenDeficiency)
}
