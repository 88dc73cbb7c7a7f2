package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type PayrollRunHandler struct {
	service service.PayrollRunService
	log     *logger.Logger
}

func NewPayrollRunHandler(service service.PayrollRunService, log *logger.Logger) *PayrollRunHandler {
	return &PayrollRunHandler{service: service, log: log}
}

// @Summary Create payroll run
// @Tags Payroll
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreatePayrollRunRequest true "Pay period"
// @Success 201 {object} payroll.Run
// @Router /payroll-runs [post]
func (h *PayrollRunHandler) CreateRun(c *gin.Context) {
	var req dto.CreatePayrollRunRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateRun(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PayrollRunHandler) GetRun(c *gin.Context) {
	runAction(c, h.service.GetRun)
}

func (h *PayrollRunHandler) ListRuns(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListRuns(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PayrollRunHandler) ProcessRun(c *gin.Context) {
	runAction(c, h.service.ProcessRun)
}

func (h *PayrollRunHandler) ApproveRun(c *gin.Context) {
	runAction(c, h.service.ApproveRun)
}

func (h *PayrollRunHandler) MarkRunPaid(c *gin.Context) {
	runAction(c, h.service.MarkRunPaid)
}

func (h *PayrollRunHandler) CancelRun(c *gin.Context) {
	runAction(c, h.service.CancelRun)
}
