package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

// BillingHandler receives subscription changes from the billing provider
type BillingHandler struct {
	service service.OrganizationService
	log     *logger.Logger
}

func NewBillingHandler(service service.OrganizationService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

// @Summary Billing webhook
// @Description Apply a subscription status change. Authenticated with the X-Billing-Secret header.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param request body dto.BillingEventRequest true "Billing event"
// @Success 200 {object} organization.Organization
// @Failure 401 {object} ierr.ErrorResponse
// @Router /webhooks/billing [post]
func (h *BillingHandler) HandleEvent(c *gin.Context) {
	var req dto.BillingEventRequest
	if !bindJSON(c, &req) {
		return
	}

	h.log.Infow("received billing event",
		"event_id", req.EventID,
		"organization_id", req.OrganizationID,
		"status", req.Status,
	)

	resp, err := h.service.HandleBillingEvent(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
