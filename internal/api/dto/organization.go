package dto

import (
	"github.com/buildline/buildline/internal/domain/organization"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateOrganizationRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

type SwitchOrganizationRequest struct {
	OrganizationID string `json:"organization_id" validate:"required"`
}

// BillingEventRequest is what the billing provider posts when a subscription changes
type BillingEventRequest struct {
	OrganizationID string                   `json:"organization_id" validate:"required"`
	Status         types.SubscriptionStatus `json:"status" validate:"required"`
	Plan           *types.SubscriptionPlan  `json:"plan,omitempty"`
	EventID        string                   `json:"event_id,omitempty"`
}

// OrganizationResponse includes the caller's role when listed for a user
type OrganizationResponse struct {
	*organization.Organization
	Role types.Role `json:"role,omitempty"`
}

func (r *CreateOrganizationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *UpdateOrganizationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *SwitchOrganizationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *BillingEventRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	if r.Plan != nil {
		return r.Plan.Validate()
	}
	return nil
}
