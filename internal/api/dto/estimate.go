package dto

import (
	"context"

	"github.com/buildline/buildline/internal/domain/estimate"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateEstimateRequest struct {
	ProjectID     string           `json:"project_id" validate:"required"`
	Name          string           `json:"name" validate:"required,max=255"`
	AssignedTo    *string          `json:"assigned_to,omitempty"`
	MarkupPercent *decimal.Decimal `json:"markup_percent,omitempty"`
}

type UpdateEstimateRequest struct {
	Name          *string               `json:"name" validate:"omitempty,min=1,max=255"`
	AssignedTo    *string               `json:"assigned_to,omitempty"`
	MarkupPercent *decimal.Decimal      `json:"markup_percent,omitempty"`
	Status        *types.EstimateStatus `json:"status,omitempty"`
}

type CreateSectionRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

type UpdateSectionRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,min=0"`
}

type CreateLineItemRequest struct {
	Description string          `json:"description" validate:"required,max=1000"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"omitempty,max=20"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

type UpdateLineItemRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=1000"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Unit        *string          `json:"unit" validate:"omitempty,max=20"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
}

type ListEstimatesResponse = types.ListResponse[*estimate.Estimate]

type ListSectionsResponse = types.ListResponse[*estimate.Section]

type ListLineItemsResponse = types.ListResponse[*estimate.LineItem]

func nonNegative(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return ierr.NewErrorf("%s must not be negative", field).
			WithHintf("%s must not be negative", field).
			WithReportableDetails(map[string]any{field: d.String()}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *CreateEstimateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return nonNegative("markup_percent", r.MarkupPercent)
}

func (r *CreateEstimateRequest) ToEstimate(ctx context.Context) *estimate.Estimate {
	markup := decimal.Zero
	if r.MarkupPercent != nil {
		markup = *r.MarkupPercent
	}
	return &estimate.Estimate{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ESTIMATE),
		ProjectID:     r.ProjectID,
		Name:          r.Name,
		AssignedTo:    r.AssignedTo,
		MarkupPercent: markup,
		Subtotal:      decimal.Zero,
		MarkupAmount:  decimal.Zero,
		Total:         decimal.Zero,
		Status:        types.EstimateStatusDraft,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateEstimateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		if err := types.EstimateWorkflow.Validate(types.EntityTypeEstimate, *r.Status); err != nil {
			return err
		}
	}
	return nonNegative("markup_percent", r.MarkupPercent)
}

func (r *CreateSectionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateSectionRequest) ToSection(ctx context.Context, estimateID string) *estimate.Section {
	return &estimate.Section{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ESTIMATE_SECTION),
		EstimateID: estimateID,
		Name:       r.Name,
		SortOrder:  r.SortOrder,
		Total:      decimal.Zero,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateSectionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateLineItemRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := nonNegative("quantity", &r.Quantity); err != nil {
		return err
	}
	return nonNegative("unit_cost", &r.UnitCost)
}

func (r *CreateLineItemRequest) ToLineItem(ctx context.Context, section *estimate.Section) *estimate.LineItem {
	item := &estimate.LineItem{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM),
		EstimateID:  section.EstimateID,
		SectionID:   section.ID,
		Description: r.Description,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		UnitCost:    r.UnitCost,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	item.ComputeTotal()
	return item
}

func (r *UpdateLineItemRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := nonNegative("quantity", r.Quantity); err != nil {
		return err
	}
	return nonNegative("unit_cost", r.UnitCost)
}
