package service

import (
	"context"
	"testing"

	"github.com/buildline/buildline/internal/api/dto"
	authProvider "github.com/buildline/buildline/internal/auth"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	ServiceSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.service = NewAuthService(s.params, s.dispatcher)
}

func (s *AuthServiceSuite) signUp(email string) *dto.AuthResponse {
	resp, err := s.service.SignUp(context.Background(), &dto.SignUpRequest{
		Email:            email,
		Password:         "correct-horse-battery",
		Name:             "Pat Builder",
		OrganizationName: "Pat Builds",
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceSuite) TestSignUpCreatesOwnedOrganization() {
	resp := s.signUp("Pat@Example.com")
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.OrganizationID)

	ctx := testutil.WithOrganization(context.Background(), resp.OrganizationID, resp.UserID)
	role, ok := s.GetRBAC().MemberRole(ctx, resp.UserID, resp.OrganizationID)
	s.True(ok)
	s.Equal(types.RoleOwner, role)

	org, err := s.GetStores().OrganizationRepo.Get(ctx, resp.OrganizationID)
	s.Require().NoError(err)
	s.Equal(types.SubscriptionStatusTrialing, org.SubscriptionStatus)

	claims, err := authProvider.NewProvider(s.GetConfig()).ValidateToken(ctx, resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.UserID, claims.UserID)
	s.Equal(resp.OrganizationID, claims.OrganizationID)

	payloads := s.payloads(types.JobSendVerificationEmail)
	s.Require().Len(payloads, 1)
	s.Equal("pat@example.com", payloads[0].Email)
	s.Equal([]string{"organization.created"}, s.actions(resp.OrganizationID))
}

func (s *AuthServiceSuite) TestSignUpDuplicateEmail() {
	s.signUp("dup@example.com")

	_, err := s.service.SignUp(context.Background(), &dto.SignUpRequest{
		Email:            "DUP@example.com",
		Password:         "another-password",
		OrganizationName: "Second",
	})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestSignUpValidation() {
	_, err := s.service.SignUp(context.Background(), &dto.SignUpRequest{
		Email:            "not-an-email",
		Password:         "short",
		OrganizationName: "Nope",
	})
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogin() {
	signed := s.signUp("login@example.com")

	resp, err := s.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "login@example.com",
		Password: "correct-horse-battery",
	})
	s.Require().NoError(err)
	s.Equal(signed.UserID, resp.UserID)
	s.Equal(signed.OrganizationID, resp.OrganizationID)

	_, err = s.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	s.True(ierr.IsUnauthorized(err))

	_, err = s.service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-it-is",
	})
	s.True(ierr.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestMeListsOrganizations() {
	signed := s.signUp("me@example.com")
	ctx := testutil.WithOrganization(context.Background(), signed.OrganizationID, signed.UserID)

	me, err := s.service.Me(ctx)
	s.Require().NoError(err)
	s.Equal("me@example.com", me.Email)
	s.Require().Len(me.Organizations, 1)
	s.Equal(types.RoleOwner, me.Organizations[0].Role)

	_, err = s.service.Me(context.Background())
	s.True(ierr.IsUnauthorized(err))
}
