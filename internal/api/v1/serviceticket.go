package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type ServiceTicketHandler struct {
	service service.ServiceTicketService
	log     *logger.Logger
}

func NewServiceTicketHandler(service service.ServiceTicketService, log *logger.Logger) *ServiceTicketHandler {
	return &ServiceTicketHandler{service: service, log: log}
}

func (h *ServiceTicketHandler) CreateServiceTicket(c *gin.Context) {
	var req dto.CreateServiceTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateServiceTicket(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ServiceTicketHandler) GetServiceTicket(c *gin.Context) {
	runAction(c, h.service.GetServiceTicket)
}

func (h *ServiceTicketHandler) ListServiceTickets(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListServiceTickets(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign service ticket
// @Description Assign a technician. Reassigning an assigned ticket keeps its status.
// @Tags Service
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Ticket ID"
// @Param request body dto.AssignServiceTicketRequest true "Assignee"
// @Success 200 {object} serviceticket.ServiceTicket
// @Router /service-tickets/{id}/assign [post]
func (h *ServiceTicketHandler) AssignServiceTicket(c *gin.Context) {
	var req dto.AssignServiceTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.AssignServiceTicket(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ServiceTicketHandler) StartServiceTicket(c *gin.Context) {
	runAction(c, h.service.StartServiceTicket)
}

func (h *ServiceTicketHandler) CompleteServiceTicket(c *gin.Context) {
	runAction(c, h.service.CompleteServiceTicket)
}

func (h *ServiceTicketHandler) CloseServiceTicket(c *gin.Context) {
	runAction(c, h.service.CloseServiceTicket)
}

func (h *ServiceTicketHandler) CancelServiceTicket(c *gin.Context) {
	runAction(c, h.service.CancelServiceTicket)
}
