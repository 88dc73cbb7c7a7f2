package v1

import (
	"net/http"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/service"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service service.DocumentService
	log     *logger.Logger
}

func NewDocumentHandler(service service.DocumentService, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{service: service, log: log}
}

// @Summary Register document
// @Description Register an uploaded file. Images get a thumbnail generation job.
// @Tags Documents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} document.Document
// @Router /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateDocument(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	runAction(c, h.service.GetDocument)
}

func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.ListDocuments(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *DocumentHandler) ArchiveDocument(c *gin.Context) {
	runAction(c, h.service.ArchiveDocument)
}

func (h *DocumentHandler) RestoreDocument(c *gin.Context) {
	runAction(c, h.service.RestoreDocument)
}
