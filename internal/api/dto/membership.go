package dto

import (
	"github.com/buildline/buildline/internal/domain/membership"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type InviteMemberRequest struct {
	Email string     `json:"email" validate:"required,email"`
	Role  types.Role `json:"role" validate:"required,role"`
}

// InviteMemberResponse returns the token once so it can be delivered out of band
type InviteMemberResponse struct {
	*membership.Membership
	InvitationToken string `json:"invitation_token"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" validate:"required"`
}

type ChangeRoleRequest struct {
	Role types.Role `json:"role" validate:"required,role"`
}

type MembershipResponse struct {
	*membership.Membership
}

type ListMembershipsResponse = types.ListResponse[*MembershipResponse]

func (r *InviteMemberRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Role == types.RoleOwner {
		return ierr.NewError("cannot invite an owner").
			WithHint("An organization has exactly one owner").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *AcceptInvitationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *ChangeRoleRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Role == types.RoleOwner {
		return ierr.NewError("cannot grant owner").
			WithHint("Ownership cannot be granted by a role change").
			Mark(ierr.ErrValidation)
	}
	return nil
}
