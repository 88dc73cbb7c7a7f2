package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	service service.ProposalService
	log     *logger.Logger
}

func NewProposalHandler(service service.ProposalService, log *logger.Logger) *ProposalHandler {
	return &ProposalHandler{service: service, log: log}
}

// @Summary Create proposal
// @Description Create a draft proposal from an estimate, snapshotting its total
// @Tags Proposals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateProposalRequest true "Proposal"
// @Success 201 {object} proposal.Proposal
// @Router /proposals [post]
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var req dto.CreateProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateProposal(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ProposalHandler) GetProposal(c *gin.Context) {
	runAction(c, h.service.GetProposal)
}

func (h *ProposalHandler) ListProposals(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListProposals(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProposalHandler) SendProposal(c *gin.Context) {
	runAction(c, h.service.SendProposal)
}

func (h *ProposalHandler) MarkViewed(c *gin.Context) {
	runAction(c, h.service.MarkViewed)
}

// @Summary Sign proposal
// @Description Record the client signature. The estimate owner is notified.
// @Tags Proposals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Proposal ID"
// @Param request body dto.SignProposalRequest true "Signature"
// @Success 200 {object} proposal.Proposal
// @Failure 409 {object} ierr.ErrorResponse
// @Router /proposals/{id}/sign [post]
func (h *ProposalHandler) SignProposal(c *gin.Context) {
	var req dto.SignProposalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.SignProposal(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProposalHandler) DeclineProposal(c *gin.Context) {
	runAction(c, h.service.DeclineProposal)
}
