package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/approval"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateClientApprovalRequest struct {
	ProjectID     string  `json:"project_id" validate:"required"`
	Title         string  `json:"title" validate:"required,max=255"`
	Description   string  `json:"description"`
	RequestedFrom *string `json:"requested_from,omitempty"`
}

// DecisionRequest carries an optional note with an approve or reject decision
type DecisionRequest struct {
	Note *string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

type ListClientApprovalsResponse = types.ListResponse[*approval.ClientApproval]

func (r *CreateClientApprovalRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientApprovalRequest) ToClientApproval(ctx context.Context) *approval.ClientApproval {
	return &approval.ClientApproval{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT_APPROVAL),
		ProjectID:     r.ProjectID,
		Title:         r.Title,
		Description:   r.Description,
		RequestedFrom: r.RequestedFrom,
		Status:        types.ClientApprovalStatusPending,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *DecisionRequest) Validate() error {
	return validator.ValidateRequest(r)
}
