package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/deficiency"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateDeficiencyRequest struct {
	ProjectID   string                   `json:"project_id" validate:"required"`
	Title       string                   `json:"title" validate:"required,max=255"`
	Description string                   `json:"description"`
	Location    string                   `json:"location" validate:"omitempty,max=255"`
	Severity    types.DeficiencySeverity `json:"severity" validate:"required,oneof=low medium high critical"`
	AssignedTo  *string                  `json:"assigned_to,omitempty"`
}

type ListDeficienciesResponse = types.ListResponse[*deficiency.Deficiency]

func (r *CreateDeficiencyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateDeficiencyRequest) ToDeficiency(ctx context.Context) *deficiency.Deficiency {
	return &deficiency.Deficiency{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEFICIENCY),
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Severity:    r.Severity,
		AssignedTo:  r.AssignedTo,
		Status:      types.DeficiencyStatusOpen,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}
