package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/submittal"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
	"github.com/samber/lo"
)

type CreateSubmittalRequest struct {
	ProjectID   string  `json:"project_id" validate:"required"`
	Title       string  `json:"title" validate:"required,max=255"`
	SpecSection string  `json:"spec_section" validate:"omitempty,max=50"`
	ReviewerID  *string `json:"reviewer_id,omitempty"`
}

type ReviewSubmittalRequest struct {
	Outcome types.SubmittalStatus `json:"outcome" validate:"required"`
	Notes   *string               `json:"notes,omitempty"`
}

type ListSubmittalsResponse = types.ListResponse[*submittal.Submittal]

func (r *CreateSubmittalRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateSubmittalRequest) ToSubmittal(ctx context.Context) *submittal.Submittal {
	return &submittal.Submittal{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBMITTAL),
		ProjectID:   r.ProjectID,
		Number:      types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_SUBMITTAL),
		Title:       r.Title,
		SpecSection: r.SpecSection,
		ReviewerID:  r.ReviewerID,
		Status:      types.SubmittalStatusDraft,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

func (r *ReviewSubmittalRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if !lo.Contains(types.SubmittalReviewOutcomes, r.Outcome) {
		return ierr.NewError("invalid review outcome").
			WithHint("Review outcome must be approved, approved_as_noted, revise_resubmit or rejected").
			WithReportableDetails(map[string]any{
				"outcome":          r.Outcome,
				"allowed_outcomes": types.SubmittalReviewOutcomes,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
