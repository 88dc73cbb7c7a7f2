package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

type ModuleHandler struct {
	service service.ModuleService
	log     *logger.Logger
}

func NewModuleHandler(service service.ModuleService, log *logger.Logger) *ModuleHandler {
	return &ModuleHandler{service: service, log: log}
}

// @Summary List modules
// @Description List every module with its activation state for the organization
// @Tags Modules
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ListModulesResponse
// @Router /modules [get]
func (h *ModuleHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ModuleHandler) Activate(c *gin.Context) {
	resp, err := h.service.Activate(c.Request.Context(), types.ModuleKey(c.Param("key")))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ModuleHandler) Deactivate(c *gin.Context) {
	resp, err := h.service.Deactivate(c.Request.Context(), types.ModuleKey(c.Param("key")))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
