package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type DailyLogHandler struct {
	service service.DailyLogService
	log     *logger.Logger
}

func NewDailyLogHandler(service service.DailyLogService, log *logger.Logger) *DailyLogHandler {
	return &DailyLogHandler{service: service, log: log}
}

func (h *DailyLogHandler) CreateDailyLog(c *gin.Context) {
	var req dto.CreateDailyLogRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateDailyLog(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DailyLogHandler) GetDailyLog(c *gin.Context) {
	runAction(c, h.service.GetDailyLog)
}

func (h *DailyLogHandler) ListDailyLogs(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListDailyLogs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Submit daily log
// @Description Submit a daily log for approval. The project manager is notified.
// @Tags Daily Logs
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Daily log ID"
// @Success 200 {object} dailylog.DailyLog
// @Failure 409 {object} ierr.ErrorResponse
// @Router /daily-logs/{id}/submit [post]
func (h *DailyLogHandler) SubmitDailyLog(c *gin.Context) {
	runAction(c, h.service.SubmitDailyLog)
}

func (h *DailyLogHandler) ApproveDailyLog(c *gin.Context) {
	runAction(c, h.service.ApproveDailyLog)
}

func (h *DailyLogHandler) RejectDailyLog(c *gin.Context) {
	runAction(c, h.service.RejectDailyLog)
}
