package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	service service.OrganizationService
	log     *logger.Logger
}

func NewOrganizationHandler(service service.OrganizationService, log *logger.Logger) *OrganizationHandler {
	return &OrganizationHandler{service: service, log: log}
}

// @Summary Create organization
// @Description Create an organization owned by the caller
// @Tags Organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateOrganizationRequest true "Organization"
// @Success 201 {object} dto.OrganizationResponse
// @Router /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List my organizations
// @Tags Organizations
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.OrganizationResponse
// @Router /organizations [get]
func (h *OrganizationHandler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	var req dto.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Archive organization
// @Description Owner only. Archived organizations reject every scoped request.
// @Tags Organizations
// @Security ApiKeyAuth
// @Param id path string true "Organization ID"
// @Success 204
// @Router /organizations/{id} [delete]
func (h *OrganizationHandler) Archive(c *gin.Context) {
	if err := h.service.Archive(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Switch organization
// @Description Remember the organization as the caller's default and issue a token scoped to it
// @Tags Organizations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SwitchOrganizationRequest true "Target organization"
// @Success 200 {object} dto.AuthResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /organizations/switch [post]
func (h *OrganizationHandler) Switch(c *gin.Context) {
	var req dto.SwitchOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Switch(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
