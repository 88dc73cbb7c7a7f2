package v1

import (
	"context"
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/approval"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type ClientApprovalHandler struct {
	service service.ClientApprovalService
	log     *logger.Logger
}

func NewClientApprovalHandler(service service.ClientApprovalService, log *logger.Logger) *ClientApprovalHandler {
	return &ClientApprovalHandler{service: service, log: log}
}

func (h *ClientApprovalHandler) CreateApproval(c *gin.Context) {
	var req dto.CreateClientApprovalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateApproval(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ClientApprovalHandler) GetApproval(c *gin.Context) {
	runAction(c, h.service.GetApproval)
}

func (h *ClientApprovalHandler) ListApprovals(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListApprovals(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ClientApprovalHandler) decide(c *gin.Context, decide func(ctx context.Context, id string, req *dto.DecisionRequest) (*approval.ClientApproval, error)) {
	// the note is optional, so is the body
	var req dto.DecisionRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	resp, err := decide(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ClientApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, h.service.Approve)
}

func (h *ClientApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}
