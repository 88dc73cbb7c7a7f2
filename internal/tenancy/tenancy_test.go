package tenancy

import (
	"context"
	"testing"
	"time"

	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/user"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ResolverSuite struct {
	suite.Suite
	ctx         context.Context
	users       *testutil.InMemoryUserStore
	memberships *testutil.InMemoryMembershipStore
	resolver    *Resolver
	user        *user.User
}

func TestResolver(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = testutil.NewInMemoryUserStore()
	s.memberships = testutil.NewInMemoryMembershipStore()
	s.resolver = NewResolver(s.users, s.memberships, logger.NewNoop())

	s.user = user.NewUser("pm@example.com", "Pat")
	s.Require().NoError(s.users.Create(s.ctx, s.user))
}

func (s *ResolverSuite) join(orgID string, age time.Duration) *membership.Membership {
	m := membership.NewOwner(orgID, s.user.ID)
	m.CreatedAt = time.Now().UTC().Add(-age)
	s.Require().NoError(s.memberships.Create(s.ctx, m))
	return m
}

func (s *ResolverSuite) prefer(orgID string) {
	s.user.LastActiveOrganizationID = lo.ToPtr(orgID)
	s.Require().NoError(s.users.Update(s.ctx, s.user))
}

func (s *ResolverSuite) TestExplicitOrganizationWins() {
	s.join("org_a", time.Hour)
	s.prefer("org_a")

	orgID, err := s.resolver.Resolve(s.ctx, s.user.ID, "org_b")
	s.NoError(err)
	s.Equal("org_b", orgID)
}

func (s *ResolverSuite) TestPreferenceUsedWhileStillMember() {
	s.join("org_a", 2*time.Hour)
	s.join("org_b", time.Hour)
	s.prefer("org_b")

	orgID, err := s.resolver.Resolve(s.ctx, s.user.ID, "")
	s.NoError(err)
	s.Equal("org_b", orgID)
}

func (s *ResolverSuite) TestStalePreferenceFallsBackToOldestMembership() {
	s.join("org_a", 2*time.Hour)
	s.join("org_b", time.Hour)
	gone := s.join("org_c", 3*time.Hour)
	gone.Active = false
	s.Require().NoError(s.memberships.Update(s.ctx, gone))
	s.prefer("org_c")

	orgID, err := s.resolver.Resolve(s.ctx, s.user.ID, "")
	s.NoError(err)
	s.Equal("org_a", orgID)
}

func (s *ResolverSuite) TestNoMembershipIsNoOrganizationContext() {
	_, err := s.resolver.Resolve(s.ctx, s.user.ID, "")
	s.True(ierr.IsNoOrganizationContext(err))

	_, err = s.resolver.Resolve(s.ctx, "", "")
	s.True(ierr.IsNoOrganizationContext(err))
}

func (s *ResolverSuite) TestRunAsScopesContext() {
	db := testutil.NewMockPostgresClient(logger.NewNoop())
	ctx := types.SetOrganizationID(s.ctx, "org_a")

	var seen string
	err := RunAs(ctx, db, "org_b", func(ctx context.Context) error {
		seen = types.GetOrganizationID(ctx)
		return nil
	})
	s.NoError(err)
	s.Equal("org_b", seen)
	s.Equal("org_a", types.GetOrganizationID(ctx))
	s.EqualValues(1, db.TxCount())

	err = RunAs(ctx, db, "", func(context.Context) error { return nil })
	s.True(ierr.IsNoOrganizationContext(err))
}
