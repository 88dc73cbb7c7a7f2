package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/document"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

// CreateDocumentRequest registers an uploaded file; the bytes are already in storage
type CreateDocumentRequest struct {
	ProjectID   *string `json:"project_id,omitempty"`
	Name        string  `json:"name" validate:"required,max=255"`
	ContentType string  `json:"content_type" validate:"required,max=100"`
	SizeBytes   int64   `json:"size_bytes" validate:"min=0"`
	StorageKey  string  `json:"storage_key" validate:"required,max=1024"`
}

type ListDocumentsResponse = types.ListResponse[*document.Document]

func (r *CreateDocumentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateDocumentRequest) ToDocument(ctx context.Context) *document.Document {
	return &document.Document{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		ProjectID:   r.ProjectID,
		Name:        r.Name,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		StorageKey:  r.StorageKey,
		Status:      types.StatusActive,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
