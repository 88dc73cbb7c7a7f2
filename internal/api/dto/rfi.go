package dto

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/domain/rfi"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateRFIRequest struct {
	ProjectID  string     `json:"project_id" validate:"required"`
	Subject    string     `json:"subject" validate:"required,max=255"`
	Question   string     `json:"question" validate:"required"`
	AssignedTo *string    `json:"assigned_to,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

type AnswerRFIRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type ListRFIsResponse = types.ListResponse[*rfi.RFI]

func (r *CreateRFIRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateRFIRequest) ToRFI(ctx context.Context) *rfi.RFI {
	return &rfi.RFI{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RFI),
		ProjectID:  r.ProjectID,
		Number:     types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RFI),
		Subject:    r.Subject,
		Question:   r.Question,
		AssignedTo: r.AssignedTo,
		DueDate:    r.DueDate,
		Status:     types.RFIStatusOpen,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

func (r *AnswerRFIRequest) Validate() error {
	return validator.ValidateRequest(r)
}
