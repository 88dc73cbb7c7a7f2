package service

import (
	"testing"

	"github.com/buildline/buildline/internal/api/dto"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/suite"
)

type MembershipServiceSuite struct {
	ServiceSuite
	service MembershipService
}

func TestMembershipService(t *testing.T) {
	suite.Run(t, new(MembershipServiceSuite))
}

func (s *MembershipServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewMembershipService(s.params, s.dispatcher)
}

func (s *MembershipServiceSuite) invite(email string, role types.Role) *dto.InviteMemberResponse {
	resp, err := s.service.Invite(s.GetContext(), &dto.InviteMemberRequest{Email: email, Role: role})
	s.Require().NoError(err)
	return resp
}

func (s *MembershipServiceSuite) TestInviteAndAccept() {
	resp := s.invite("Estimator@Example.com", types.RoleEstimator)
	s.NotEmpty(resp.InvitationToken)

	payloads := s.payloads(types.JobSendInvitationEmail)
	s.Require().Len(payloads, 1)
	s.Equal("estimator@example.com", payloads[0].Email)
	s.Equal(resp.InvitationToken, payloads[0].Data["invitation_token"])

	// the invitee signs in to their own organization first
	s.SeedOrganization("org_home", "estimator", types.SubscriptionStatusActive)
	invitee := testutil.WithOrganization(s.GetContext(), "org_home", "estimator")

	m, err := s.service.Accept(invitee, &dto.AcceptInvitationRequest{Token: resp.InvitationToken})
	s.Require().NoError(err)
	s.True(m.Active)
	s.Equal(testutil.DefaultOrganizationID, m.OrganizationID)
	s.Nil(m.InvitationToken)

	role, ok := s.GetRBAC().MemberRole(s.GetContext(), "estimator", testutil.DefaultOrganizationID)
	s.True(ok)
	s.Equal(types.RoleEstimator, role)

	_, err = s.service.Accept(invitee, &dto.AcceptInvitationRequest{Token: resp.InvitationToken})
	s.True(ierr.IsNotFound(err))
}

func (s *MembershipServiceSuite) TestAcceptWithWrongEmail() {
	resp := s.invite("someone@example.com", types.RoleAdmin)
	stranger := s.SeedMember("org_stranger", "stranger", types.RoleOwner)

	_, err := s.service.Accept(stranger, &dto.AcceptInvitationRequest{Token: resp.InvitationToken})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *MembershipServiceSuite) TestCannotInviteOwner() {
	_, err := s.service.Invite(s.GetContext(), &dto.InviteMemberRequest{Email: "x@example.com", Role: types.RoleOwner})
	s.True(ierr.IsValidation(err))
}

func (s *MembershipServiceSuite) TestOwnerIsProtected() {
	list, err := s.service.List(s.GetContext())
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	owner := list.Items[0]

	_, err = s.service.ChangeRole(s.GetContext(), owner.ID, &dto.ChangeRoleRequest{Role: types.RoleAdmin})
	s.True(ierr.IsInvalidOperation(err))

	err = s.service.Deactivate(s.GetContext(), owner.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *MembershipServiceSuite) TestChangeRoleAndDeactivate() {
	s.SeedMember(testutil.DefaultOrganizationID, "user_field", types.RoleFieldWorker)
	m, err := s.GetStores().MembershipRepo.GetActive(s.GetContext(), testutil.DefaultOrganizationID, "user_field")
	s.Require().NoError(err)

	updated, err := s.service.ChangeRole(s.GetContext(), m.ID, &dto.ChangeRoleRequest{Role: types.RoleProjectManager})
	s.Require().NoError(err)
	s.Equal(types.RoleProjectManager, updated.Role)

	s.Require().NoError(s.service.Deactivate(s.GetContext(), m.ID))
	s.False(s.GetRBAC().IsOrgMember(s.GetContext(), "user_field", testutil.DefaultOrganizationID))
	s.Len(s.elevated(m.ID), 1)
}

func (s *MembershipServiceSuite) TestForeignMembershipIsHidden() {
	s.SeedOrganization("org_rival", "user_rival", types.SubscriptionStatusActive)
	rival := testutil.WithOrganization(s.GetContext(), "org_rival", "user_rival")
	m, err := s.GetStores().MembershipRepo.GetActive(rival, "org_rival", "user_rival")
	s.Require().NoError(err)

	_, err = s.service.ChangeRole(s.GetContext(), m.ID, &dto.ChangeRoleRequest{Role: types.RoleAdmin})
	s.True(ierr.IsNotFound(err))
}

func (s *MembershipServiceSuite) TestRoleChangeTakesEffectImmediately() {
	ctx := s.GetContext()
	orgID := testutil.DefaultOrganizationID
	s.SeedMember(orgID, "user_est", types.RoleEstimator)

	// first check caches the role
	s.True(s.GetRBAC().HasMinimumRole(ctx, "user_est", orgID, types.RoleEstimator))

	m, err := s.GetStores().MembershipRepo.GetActive(ctx, orgID, "user_est")
	s.Require().NoError(err)
	_, err = s.service.ChangeRole(ctx, m.ID, &dto.ChangeRoleRequest{Role: types.RoleReadOnly})
	s.Require().NoError(err)

	s.False(s.GetRBAC().HasMinimumRole(ctx, "user_est", orgID, types.RoleEstimator))
	role, ok := s.GetRBAC().MemberRole(ctx, "user_est", orgID)
	s.True(ok)
	s.Equal(types.RoleReadOnly, role)

	s.Require().NoError(s.service.Deactivate(ctx, m.ID))
	s.False(s.GetRBAC().IsOrgMember(ctx, "user_est", orgID))
}
