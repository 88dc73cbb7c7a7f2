package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type WarrantyClaimHandler struct {
	service service.WarrantyClaimService
	log     *logger.Logger
}

func NewWarrantyClaimHandler(service service.WarrantyClaimService, log *logger.Logger) *WarrantyClaimHandler {
	return &WarrantyClaimHandler{service: service, log: log}
}

func (h *WarrantyClaimHandler) CreateClaim(c *gin.Context) {
	var req dto.CreateWarrantyClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateClaim(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *WarrantyClaimHandler) GetClaim(c *gin.Context) {
	runAction(c, h.service.GetClaim)
}

func (h *WarrantyClaimHandler) ListClaims(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListClaims(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *WarrantyClaimHandler) ReviewClaim(c *gin.Context) {
	runAction(c, h.service.ReviewClaim)
}

func (h *WarrantyClaimHandler) ApproveClaim(c *gin.Context) {
	runAction(c, h.service.ApproveClaim)
}

func (h *WarrantyClaimHandler) DenyClaim(c *gin.Context) {
	runAction(c, h.service.DenyClaim)
}

func (h *WarrantyClaimHandler) ResolveClaim(c *gin.Context) {
	var req dto.ResolveWarrantyClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.ResolveClaim(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
