package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type SafetyIncidentHandler struct {
	service service.SafetyIncidentService
	log     *logger.Logger
}

func NewSafetyIncidentHandler(service service.SafetyIncidentService, log *logger.Logger) *SafetyIncidentHandler {
	return &SafetyIncidentHandler{service: service, log: log}
}

// @Summary Report safety incident
// @Description Report an incident. OSHA recordable incidents are logged as elevated and notify the project manager.
// @Tags Safety
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.ReportIncidentRequest true "Incident"
// @Success 201 {object} incident.SafetyIncident
// @Router /incidents [post]
func (h *SafetyIncidentHandler) ReportIncident(c *gin.Context) {
	var req dto.ReportIncidentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ReportIncident(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *SafetyIncidentHandler) GetIncident(c *gin.Context) {
	runAction(c, h.service.GetIncident)
}

func (h *SafetyIncidentHandler) ListIncidents(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SafetyIncidentHandler) InvestigateIncident(c *gin.Context) {
	runAction(c, h.service.InvestigateIncident)
}

func (h *SafetyIncidentHandler) CloseIncident(c *gin.Context) {
	runAction(c, h.service.CloseIncident)
}
