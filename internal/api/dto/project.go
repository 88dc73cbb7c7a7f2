package dto

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/domain/project"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateProjectRequest struct {
	Name       string     `json:"name" validate:"required,max=255"`
	Code       string     `json:"code" validate:"omitempty,max=50"`
	ClientName string     `json:"client_name" validate:"omitempty,max=255"`
	Address    string     `json:"address" validate:"omitempty,max=500"`
	ManagerID  *string    `json:"manager_id,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

type UpdateProjectRequest struct {
	Name       *string              `json:"name" validate:"omitempty,min=1,max=255"`
	ClientName *string              `json:"client_name" validate:"omitempty,max=255"`
	Address    *string              `json:"address" validate:"omitempty,max=500"`
	ManagerID  *string              `json:"manager_id,omitempty"`
	StartDate  *time.Time           `json:"start_date,omitempty"`
	EndDate    *time.Time           `json:"end_date,omitempty"`
	Status     *types.ProjectStatus `json:"status,omitempty"`
}

type ListProjectsResponse = types.ListResponse[*project.Project]

func ValidateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ierr.NewError("end date before start date").
			WithHint("End date must not be before the start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateProjectRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return ValidateDateRange(r.StartDate, r.EndDate)
}

func (r *CreateProjectRequest) ToProject(ctx context.Context) *project.Project {
	return &project.Project{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROJECT),
		Name:       r.Name,
		Code:       r.Code,
		ClientName: r.ClientName,
		Address:    r.Address,
		ManagerID:  r.ManagerID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Status:     types.ProjectStatusActive,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateProjectRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		if err := types.ProjectWorkflow.Validate(types.EntityTypeProject, *r.Status); err != nil {
			return err
		}
	}
	return ValidateDateRange(r.StartDate, r.EndDate)
}
