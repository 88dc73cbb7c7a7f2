package service

import (
	"testing"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/activity"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ModuleServiceSuite struct {
	ServiceSuite
	service ModuleService
}

func TestModuleService(t *testing.T) {
	suite.Run(t, new(ModuleServiceSuite))
}

func (s *ModuleServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewModuleService(s.params, s.dispatcher)
}

func (s *ModuleServiceSuite) TestActivateGrantsAccess() {
	ctx := s.GetContext()
	rbac := s.GetRBAC()

	// warm the module cache so activation has to invalidate it
	s.False(rbac.HasModuleAccess(ctx, testutil.DefaultOrganizationID, types.ModuleEstimating))

	resp, err := s.service.Activate(ctx, types.ModuleEstimating)
	s.Require().NoError(err)
	s.True(resp.Active)
	s.True(rbac.HasModuleAccess(ctx, testutil.DefaultOrganizationID, types.ModuleEstimating))

	_, err = s.service.Deactivate(ctx, types.ModuleEstimating)
	s.Require().NoError(err)
	s.False(rbac.HasModuleAccess(ctx, testutil.DefaultOrganizationID, types.ModuleEstimating))

	actions := lo.Map(s.GetStores().ActivityRepo.All(), func(l *activity.Log, _ int) string { return l.Action })
	s.Equal([]string{"module.activated", "module.deactivated"}, actions)
}

func (s *ModuleServiceSuite) TestActivateTwiceIsNoop() {
	ctx := s.GetContext()

	_, err := s.service.Activate(ctx, types.ModulePayroll)
	s.Require().NoError(err)
	_, err = s.service.Activate(ctx, types.ModulePayroll)
	s.Require().NoError(err)
	s.Len(s.GetStores().ActivityRepo.All(), 1)
}

func (s *ModuleServiceSuite) TestAlwaysActiveModulesCannotToggle() {
	_, err := s.service.Deactivate(s.GetContext(), types.ModuleProjects)
	s.True(ierr.IsInvalidOperation(err))
	s.True(s.GetRBAC().HasModuleAccess(s.GetContext(), testutil.DefaultOrganizationID, types.ModuleProjects))
}

func (s *ModuleServiceSuite) TestUnknownModule() {
	_, err := s.service.Activate(s.GetContext(), types.ModuleKey("telepathy"))
	s.True(ierr.IsValidation(err))
}

func (s *ModuleServiceSuite) TestList() {
	ctx := s.GetContext()
	_, err := s.service.Activate(ctx, types.ModuleFieldOps)
	s.Require().NoError(err)

	resp, err := s.service.List(ctx)
	s.Require().NoError(err)
	s.Len(resp.Items, len(types.Modules))

	byKey := lo.KeyBy(resp.Items, func(m *dto.ModuleResponse) types.ModuleKey { return m.Key })
	s.True(byKey[types.ModuleProjects].AlwaysActive)
	s.True(byKey[types.ModuleProjects].Active)
	s.True(byKey[types.ModuleFieldOps].Active)
	s.False(byKey[types.ModuleCRM].Active)
}

func (s *ModuleServiceSuite) TestModulesAreTenantScoped() {
	_, err := s.service.Activate(s.GetContext(), types.ModuleCRM)
	s.Require().NoError(err)

	s.SeedOrganization("org_rival", "user_rival", types.SubscriptionStatusActive)
	rival := testutil.WithOrganization(s.GetContext(), "org_rival", "user_rival")
	s.False(s.GetRBAC().HasModuleAccess(rival, "org_rival", types.ModuleCRM))
}
