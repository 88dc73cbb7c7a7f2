package service

import (
	"context"
	"strings"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/membership"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/types"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type MembershipService interface {
	List(ctx context.Context) (*dto.ListMembershipsResponse, error)
	Invite(ctx context.Context, req *dto.InviteMemberRequest) (*dto.InviteMemberResponse, error)
	// Accept binds the caller to the invitation carrying token
	Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*membership.Membership, error)
	ChangeRole(ctx context.Context, id string, req *dto.ChangeRoleRequest) (*membership.Membership, error)
	Deactivate(ctx context.Context, id string) error
}

type membershipService struct {
	ServiceParams
	dispatcher *Dispatcher
}

func NewMembershipService(params ServiceParams, dispatcher *Dispatcher) MembershipService {
	return &membershipService{
		ServiceParams: params,
		dispatcher:    dispatcher,
	}
}

func (s *membershipService) List(ctx context.Context) (*dto.ListMembershipsResponse, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}

	items, err := s.MembershipRepo.ListByOrganization(ctx, types.GetOrganizationID(ctx))
	if err != nil {
		return nil, err
	}

	resp := lo.Map(items, func(m *membership.Membership, _ int) *dto.MembershipResponse {
		return &dto.MembershipResponse{Membership: m}
	})
	return types.NewListResponse(resp, len(resp), len(resp), 0), nil
}

func (s *membershipService) Invite(ctx context.Context, req *dto.InviteMemberRequest) (*dto.InviteMemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}

	orgID := types.GetOrganizationID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	token := uuid.NewString()
	invite := membership.NewInvitation(orgID, email, req.Role, token, types.GetUserID(ctx))

	if err := s.MembershipRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeMembership,
		EntityID:    invite.ID,
		Category:    types.ActivityCategoryMembership,
		Action:      "membership.invited",
		Description: email + " invited as " + string(req.Role),
		Metadata:    types.Metadata{"email": email, "role": string(req.Role)},
	})
	s.dispatcher.EnqueueNotification(ctx, types.JobSendInvitationEmail, jobs.Payload{
		EntityID: invite.ID,
		Email:    email,
		Subject:  "You have been invited to join an organization",
		Data: map[string]interface{}{
			"organization_id":  orgID,
			"role":             string(req.Role),
			"invitation_token": token,
		},
	})

	return &dto.InviteMemberResponse{Membership: invite, InvitationToken: token}, nil
}

func (s *membershipService) Accept(ctx context.Context, req *dto.AcceptInvitationRequest) (*membership.Membership, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	userID := types.GetUserID(ctx)

	invite, err := s.MembershipRepo.GetByInvitationToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if !invite.IsPending() {
		return nil, ierr.NewError("invitation already used").
			WithHint("This invitation has already been accepted").
			Mark(ierr.ErrInvalidOperation)
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if invite.InvitedEmail == nil || !strings.EqualFold(*invite.InvitedEmail, u.Email) {
		return nil, ierr.NewError("invitation email mismatch").
			WithHint("This invitation was sent to a different email address").
			Mark(ierr.ErrPermissionDenied)
	}

	// memberships are written in the organization that issued the invitation
	ctx = types.SetOrganizationID(ctx, invite.OrganizationID)
	if _, err := s.MembershipRepo.GetActive(ctx, invite.OrganizationID, userID); err == nil {
		return nil, ierr.NewError("already a member").
			WithHint("You are already a member of this organization").
			Mark(ierr.ErrAlreadyExists)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	invite.UserID = lo.ToPtr(userID)
	invite.Active = true
	invite.AcceptedAt = &now
	invite.InvitationToken = nil
	invite.UpdatedAt = now
	invite.UpdatedBy = userID

	if err := s.MembershipRepo.Update(ctx, invite); err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeMembership,
		EntityID:    invite.ID,
		Category:    types.ActivityCategoryMembership,
		Action:      "membership.accepted",
		Description: u.Email + " joined as " + string(invite.Role),
	})
	return invite, nil
}

func (s *membershipService) ChangeRole(ctx context.Context, id string, req *dto.ChangeRoleRequest) (*membership.Membership, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m, err := s.getInOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Role == types.RoleOwner {
		return nil, ownerProtected()
	}

	old := m.Role
	m.Role = req.Role
	m.UpdatedAt = time.Now().UTC()
	m.UpdatedBy = types.GetUserID(ctx)
	if err := s.MembershipRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.invalidateRole(ctx, m)

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeMembership,
		EntityID:    m.ID,
		Category:    types.ActivityCategoryMembership,
		Action:      "membership.role_changed",
		Description: "Role changed from " + string(old) + " to " + string(m.Role),
		Metadata:    types.Metadata{"old_role": string(old), "new_role": string(m.Role)},
	})
	return m, nil
}

func (s *membershipService) Deactivate(ctx context.Context, id string) error {
	m, err := s.getInOrganization(ctx, id)
	if err != nil {
		return err
	}
	if m.Role == types.RoleOwner {
		return ownerProtected()
	}
	if !m.Active && !m.IsPending() {
		return nil
	}

	m.Active = false
	m.InvitationToken = nil
	m.UpdatedAt = time.Now().UTC()
	m.UpdatedBy = types.GetUserID(ctx)
	if err := s.MembershipRepo.Update(ctx, m); err != nil {
		return err
	}
	s.invalidateRole(ctx, m)

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeMembership,
		EntityID:    m.ID,
		Category:    types.ActivityCategoryMembership,
		Action:      "membership.deactivated",
		Description: "Membership deactivated",
		Severity:    types.ActivitySeverityElevated,
	})
	return nil
}

func (s *membershipService) invalidateRole(ctx context.Context, m *membership.Membership) {
	if m.UserID != nil {
		s.RBAC.InvalidateMember(ctx, m.OrganizationID, *m.UserID)
	}
}

func (s *membershipService) getInOrganization(ctx context.Context, id string) (*membership.Membership, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	m, err := s.MembershipRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OrganizationID != types.GetOrganizationID(ctx) {
		return nil, ierr.NewError("membership not found").
			WithHintf("Membership %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return m, nil
}

func ownerProtected() error {
	return ierr.NewError("owner membership is protected").
		WithHint("The organization owner cannot be demoted or removed").
		Mark(ierr.ErrInvalidOperation)
}
