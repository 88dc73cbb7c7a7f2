package rbac_test

import (
	"context"
	"testing"

	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/domain/activemodule"
	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/project"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/suite"
)

type RBACSuite struct {
	suite.Suite
	ctx         context.Context
	memberships *testutil.InMemoryMembershipStore
	modules     *testutil.InMemoryActiveModuleStore
	service     *rbac.RBACService
}

func TestRBAC(t *testing.T) {
	suite.Run(t, new(RBACSuite))
}

func (s *RBACSuite) SetupTest() {
	s.ctx = context.Background()
	s.memberships = testutil.NewInMemoryMembershipStore()
	s.modules = testutil.NewInMemoryActiveModuleStore()
	s.service = rbac.NewRBACService(
		s.memberships,
		s.modules,
		cache.NewInMemoryCache(config.GetDefaultConfig()),
		logger.NewNoop(),
	)
}

func (s *RBACSuite) member(orgID, userID string, role types.Role, active bool) {
	m := membership.NewOwner(orgID, userID)
	m.Role = role
	m.Active = active
	s.Require().NoError(s.memberships.Create(s.ctx, m))
}

func (s *RBACSuite) TestRoleMonotonicity() {
	for _, held := range types.Roles {
		userID := "user_" + held.String()
		s.member("org_a", userID, held, true)

		for _, required := range types.Roles {
			s.Equal(held.Level() >= required.Level(),
				s.service.HasMinimumRole(s.ctx, userID, "org_a", required),
				"%s against %s", held, required)
		}
	}
}

func (s *RBACSuite) TestInactiveOrForeignMembershipGrantsNothing() {
	s.member("org_a", "user_1", types.RoleOwner, false)
	s.member("org_b", "user_2", types.RoleOwner, true)

	s.False(s.service.HasMinimumRole(s.ctx, "user_1", "org_a", types.RoleReadOnly))
	s.False(s.service.IsOrgMember(s.ctx, "user_2", "org_a"))
	s.True(s.service.IsOrgOwner(s.ctx, "user_2", "org_b"))

	err := s.service.Authorize(s.ctx, "user_2", "org_a", types.RoleReadOnly)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *RBACSuite) TestAdminHelpers() {
	s.member("org_a", "admin", types.RoleAdmin, true)
	s.member("org_a", "pm", types.RoleProjectManager, true)

	s.True(s.service.IsOrgAdmin(s.ctx, "admin", "org_a"))
	s.False(s.service.IsOrgOwner(s.ctx, "admin", "org_a"))
	s.False(s.service.IsOrgAdmin(s.ctx, "pm", "org_a"))
}

func (s *RBACSuite) TestModuleGate() {
	ctx := types.SetOrganizationID(s.ctx, "org_a")

	s.True(s.service.HasModuleAccess(ctx, "org_a", types.ModuleProjects))
	s.True(s.service.HasModuleAccess(ctx, "org_a", types.ModuleDocuments))
	s.False(s.service.HasModuleAccess(ctx, "org_a", types.ModuleEstimating))
	s.True(ierr.IsPermissionDenied(s.service.AuthorizeModule(ctx, "org_a", types.ModuleEstimating)))

	s.Require().NoError(s.modules.Upsert(ctx, &activemodule.ActiveModule{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVE_MODULE),
		ModuleKey: types.ModuleEstimating,
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}))

	// still cached until invalidated
	s.False(s.service.HasModuleAccess(ctx, "org_a", types.ModuleEstimating))
	s.service.InvalidateModules(ctx, "org_a")
	s.True(s.service.HasModuleAccess(ctx, "org_a", types.ModuleEstimating))

	// activation is per organization
	s.False(s.service.HasModuleAccess(types.SetOrganizationID(s.ctx, "org_b"), "org_b", types.ModuleEstimating))
}

func (s *RBACSuite) TestCanAccessObject() {
	s.member("org_a", "user_1", types.RoleProjectManager, true)

	own := &project.Project{ID: "proj_1", BaseModel: types.BaseModel{OrganizationID: "org_a"}}
	foreign := &project.Project{ID: "proj_2", BaseModel: types.BaseModel{OrganizationID: "org_b"}}

	s.True(s.service.CanAccessObject(s.ctx, "user_1", "org_a", own, types.RoleFieldWorker))
	s.False(s.service.CanAccessObject(s.ctx, "user_1", "org_a", own, types.RoleAdmin))
	s.False(s.service.CanAccessObject(s.ctx, "user_1", "org_a", foreign, types.RoleReadOnly))

	// no organization attribute: role check only
	s.True(s.service.CanAccessObject(s.ctx, "user_1", "org_a", struct{}{}, types.RoleProjectManager))
	s.True(ierr.IsPermissionDenied(s.service.AuthorizeObject(s.ctx, "user_1", "org_a", foreign, types.RoleReadOnly)))
}

func (s *RBACSuite) TestParseAndListRoles() {
	r, err := rbac.ParseRole("estimator")
	s.NoError(err)
	s.Equal(types.RoleEstimator, r)

	_, err = rbac.ParseRole("superuser")
	s.True(ierr.IsValidation(err))

	roles := rbac.ListRoles()
	s.Len(roles, 7)
	s.Equal(types.RoleReadOnly, roles[0].ID)
	s.Equal(7, roles[6].Level)
}

func (s *RBACSuite) TestMemberRoleIsCachedUntilInvalidated() {
	s.member("org_a", "user_1", types.RoleEstimator, true)

	role, ok := s.service.MemberRole(s.ctx, "user_1", "org_a")
	s.Require().True(ok)
	s.Equal(types.RoleEstimator, role)

	m, err := s.memberships.GetActive(s.ctx, "org_a", "user_1")
	s.Require().NoError(err)
	m.Role = types.RoleReadOnly
	s.Require().NoError(s.memberships.Update(s.ctx, m))

	s.True(s.service.HasMinimumRole(s.ctx, "user_1", "org_a", types.RoleEstimator))

	s.service.InvalidateMember(s.ctx, "org_a", "user_1")
	s.False(s.service.HasMinimumRole(s.ctx, "user_1", "org_a", types.RoleEstimator))
	role, ok = s.service.MemberRole(s.ctx, "user_1", "org_a")
	s.True(ok)
	s.Equal(types.RoleReadOnly, role)
}

func (s *RBACSuite) TestNonMembershipIsNotCached() {
	s.False(s.service.IsOrgMember(s.ctx, "user_1", "org_a"))

	s.member("org_a", "user_1", types.RoleFieldWorker, true)
	s.True(s.service.IsOrgMember(s.ctx, "user_1", "org_a"))
}
