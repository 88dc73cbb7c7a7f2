package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/warranty"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateWarrantyClaimRequest struct {
	ProjectID   string `json:"project_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
}

type ResolveWarrantyClaimRequest struct {
	Resolution string `json:"resolution" validate:"required"`
}

type ListWarrantyClaimsResponse = types.ListResponse[*warranty.Claim]

func (r *CreateWarrantyClaimRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateWarrantyClaimRequest) ToClaim(ctx context.Context) *warranty.Claim {
	return &warranty.Claim{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_WARRANTY_CLAIM),
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Status:      types.WarrantyClaimStatusSubmitted,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

func (r *ResolveWarrantyClaimRequest) Validate() error {
	return validator.ValidateRequest(r)
}
