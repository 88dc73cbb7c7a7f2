package v1

import (
	"net/http"

	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service service.ActivityService
	log     *logger.Logger
}

func NewActivityHandler(service service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, log: log}
}

// @Summary Activity feed
// @Description List the organization's activity log, newest first
// @Tags Activity
// @Produce json
// @Security ApiKeyAuth
// @Param filter query types.ActivityFilter false "Filter"
// @Success 200 {object} dto.ListActivitiesResponse
// @Router /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	filter := types.NewActivityFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
