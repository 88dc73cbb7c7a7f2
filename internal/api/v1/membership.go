package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	service service.MembershipService
	log     *logger.Logger
}

func NewMembershipHandler(service service.MembershipService, log *logger.Logger) *MembershipHandler {
	return &MembershipHandler{service: service, log: log}
}

func (h *MembershipHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Invite member
// @Description Invite a user by email. The invitation token is returned once.
// @Tags Members
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.InviteMemberRequest true "Invitation"
// @Success 201 {object} dto.InviteMemberResponse
// @Router /members/invitations [post]
func (h *MembershipHandler) Invite(c *gin.Context) {
	var req dto.InviteMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Invite(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Accept is not organization scoped, the invitation names the organization
func (h *MembershipHandler) Accept(c *gin.Context) {
	var req dto.AcceptInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Accept(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MembershipHandler) ChangeRole(c *gin.Context) {
	var req dto.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ChangeRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MembershipHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
