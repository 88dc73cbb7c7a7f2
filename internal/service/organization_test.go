package service

import (
	"testing"

	"github.com/buildline/buildline/internal/api/dto"
	authProvider "github.com/buildline/buildline/internal/auth"
	"github.com/buildline/buildline/internal/cache"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type OrganizationServiceSuite struct {
	ServiceSuite
	service OrganizationService
}

func TestOrganizationService(t *testing.T) {
	suite.Run(t, new(OrganizationServiceSuite))
}

func (s *OrganizationServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewOrganizationService(s.params, s.dispatcher)
}

func (s *OrganizationServiceSuite) TestCreateMakesCallerOwner() {
	ctx := s.GetContext()

	resp, err := s.service.Create(ctx, &dto.CreateOrganizationRequest{Name: "Second Shop"})
	s.Require().NoError(err)
	s.Equal(types.RoleOwner, resp.Role)
	s.Equal(types.SubscriptionStatusTrialing, resp.SubscriptionStatus)

	role, ok := s.GetRBAC().MemberRole(ctx, testutil.DefaultUserID, resp.ID)
	s.True(ok)
	s.Equal(types.RoleOwner, role)

	mine, err := s.service.ListMine(ctx)
	s.Require().NoError(err)
	s.Len(mine, 2)
}

func (s *OrganizationServiceSuite) TestGetRequiresMembership() {
	s.SeedOrganization("org_rival", "user_rival", types.SubscriptionStatusActive)

	_, err := s.service.Get(s.GetContext(), "org_rival")
	s.True(ierr.IsPermissionDenied(err))

	resp, err := s.service.Get(s.GetContext(), testutil.DefaultOrganizationID)
	s.Require().NoError(err)
	s.Equal(types.RoleOwner, resp.Role)
}

func (s *OrganizationServiceSuite) TestUpdateRequiresAdmin() {
	pm := s.SeedMember(testutil.DefaultOrganizationID, "user_pm", types.RoleProjectManager)

	_, err := s.service.Update(pm, testutil.DefaultOrganizationID, &dto.UpdateOrganizationRequest{Name: lo.ToPtr("Renamed")})
	s.True(ierr.IsPermissionDenied(err))

	org, err := s.service.Update(s.GetContext(), testutil.DefaultOrganizationID, &dto.UpdateOrganizationRequest{Name: lo.ToPtr("Renamed")})
	s.Require().NoError(err)
	s.Equal("Renamed", org.Name)
}

func (s *OrganizationServiceSuite) TestSwitchIssuesScopedToken() {
	ctx := s.GetContext()
	s.SeedOrganization("org_second", "user_second_owner", types.SubscriptionStatusActive)
	s.SeedMember("org_second", testutil.DefaultUserID, types.RoleEstimator)

	resp, err := s.service.Switch(ctx, &dto.SwitchOrganizationRequest{OrganizationID: "org_second"})
	s.Require().NoError(err)
	s.Equal("org_second", resp.OrganizationID)

	claims, err := authProvider.NewProvider(s.GetConfig()).ValidateToken(ctx, resp.Token)
	s.Require().NoError(err)
	s.Equal(testutil.DefaultUserID, claims.UserID)
	s.Equal("org_second", claims.OrganizationID)

	u, err := s.GetStores().UserRepo.GetByID(ctx, testutil.DefaultUserID)
	s.Require().NoError(err)
	s.Equal("org_second", lo.FromPtr(u.LastActiveOrganizationID))
}

func (s *OrganizationServiceSuite) TestSwitchToForeignOrganization() {
	s.SeedOrganization("org_rival", "user_rival", types.SubscriptionStatusActive)

	_, err := s.service.Switch(s.GetContext(), &dto.SwitchOrganizationRequest{OrganizationID: "org_rival"})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *OrganizationServiceSuite) TestArchiveIsOwnerOnly() {
	admin := s.SeedMember(testutil.DefaultOrganizationID, "user_admin", types.RoleAdmin)

	err := s.service.Archive(admin, testutil.DefaultOrganizationID)
	s.True(ierr.IsPermissionDenied(err))

	s.Require().NoError(s.service.Archive(s.GetContext(), testutil.DefaultOrganizationID))
	s.Len(s.elevated(testutil.DefaultOrganizationID), 1)

	_, err = s.service.Update(s.GetContext(), testutil.DefaultOrganizationID, &dto.UpdateOrganizationRequest{Name: lo.ToPtr("Too late")})
	s.True(ierr.IsInvalidOperation(err))
}

func (s *OrganizationServiceSuite) TestBillingEventRecordsSubscriptionChange() {
	ctx := s.GetContext()
	key := cache.GenerateKey(cache.PrefixOrganization, testutil.DefaultOrganizationID)
	_, err := s.service.Get(ctx, testutil.DefaultOrganizationID)
	s.Require().NoError(err)
	_, cached := s.GetCache().Get(ctx, key)
	s.Require().True(cached)

	org, err := s.service.HandleBillingEvent(ctx, &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatusPastDue,
		EventID:        "evt_1",
	})
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, org.SubscriptionStatus)

	_, cached = s.GetCache().Get(ctx, key)
	s.False(cached)

	logs := s.activities(testutil.DefaultOrganizationID)
	s.Require().Len(logs, 1)
	s.Equal("subscription.past_due", logs[0].Action)
	s.Equal(types.ActivityCategorySubscription, logs[0].Category)
	s.Equal(types.ActivitySeverityElevated, logs[0].Severity)
	s.Nil(logs[0].ActorID)
	s.Equal(string(types.SubscriptionStatusActive), logs[0].Metadata["old_status"])
}

func (s *OrganizationServiceSuite) TestRepeatedBillingEventIsQuiet() {
	ctx := s.GetContext()
	req := &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatusActive,
		Plan:           lo.ToPtr(types.SubscriptionPlanProfessional),
	}

	org, err := s.service.HandleBillingEvent(ctx, req)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionPlanProfessional, org.Plan)
	s.Empty(s.activities(testutil.DefaultOrganizationID))
}

func (s *OrganizationServiceSuite) TestReplayedBillingEventIsIgnored() {
	ctx := s.GetContext()

	_, err := s.service.HandleBillingEvent(ctx, &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatusPastDue,
		EventID:        "evt_replayed",
	})
	s.Require().NoError(err)

	// same delivery id with a different body is treated as the same delivery
	org, err := s.service.HandleBillingEvent(ctx, &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatusActive,
		EventID:        "evt_replayed",
	})
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, org.SubscriptionStatus)
	s.Len(s.activities(testutil.DefaultOrganizationID), 1)

	org, err = s.service.HandleBillingEvent(ctx, &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatusActive,
		EventID:        "evt_next",
	})
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusActive, org.SubscriptionStatus)
	s.Len(s.activities(testutil.DefaultOrganizationID), 2)
}

func (s *OrganizationServiceSuite) TestBillingEventValidation() {
	_, err := s.service.HandleBillingEvent(s.GetContext(), &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatus("frozen"),
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.HandleBillingEvent(s.GetContext(), &dto.BillingEventRequest{
		OrganizationID: "org_missing",
		Status:         types.SubscriptionStatusActive,
	})
	s.True(ierr.IsNotFound(err))
}
