package service

import (
	"context"
	"strings"

	"github.com/buildline/buildline/internal/api/dto"
	authProvider "github.com/buildline/buildline/internal/auth"
	"github.com/buildline/buildline/internal/domain/auth"
	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/organization"
	"github.com/buildline/buildline/internal/domain/user"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tenancy"
	"github.com/buildline/buildline/internal/types"
)

type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Me returns the caller together with every organization they belong to
	Me(ctx context.Context) (*dto.UserResponse, error)
}

type authService struct {
	ServiceParams
	dispatcher   *Dispatcher
	resolver     *tenancy.Resolver
	authProvider authProvider.Provider
}

func NewAuthService(params ServiceParams, dispatcher *Dispatcher) AuthService {
	return &authService{
		ServiceParams: params,
		dispatcher:    dispatcher,
		resolver:      tenancy.NewResolver(params.UserRepo, params.MembershipRepo, params.Logger),
		authProvider:  authProvider.NewProvider(params.Config),
	}
}

// SignUp creates a user together with their first organization and owner membership
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			WithReportableDetails(map[string]interface{}{
				"email": email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	u := user.NewUser(email, req.Name)
	org := organization.New(req.OrganizationName, u.ID)
	u.LastActiveOrganizationID = &org.ID

	authResponse, err := s.authProvider.SignUp(ctx, authProvider.AuthRequest{
		UserID:         u.ID,
		OrganizationID: org.ID,
		Email:          email,
		Password:       req.Password,
	})
	if err != nil {
		return nil, err
	}

	ctx = types.SetUserID(types.SetOrganizationID(ctx, org.ID), u.ID)
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.UserRepo.Create(ctx, u); err != nil {
			return err
		}
		if err := s.AuthRepo.CreateAuth(ctx, auth.NewAuth(u.ID, s.authProvider.GetProvider(), authResponse.ProviderToken)); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create authentication record").
				Mark(ierr.ErrDatabase)
		}
		if err := s.OrganizationRepo.Create(ctx, org); err != nil {
			return err
		}
		return s.MembershipRepo.Create(ctx, membership.NewOwner(org.ID, u.ID))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user signed up",
		"user_id", u.ID,
		"organization_id", org.ID,
	)

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeOrganization,
		EntityID:    org.ID,
		Category:    types.ActivityCategoryCreated,
		Action:      "organization.created",
		Description: "Organization " + org.Name + " created",
	})
	s.dispatcher.EnqueueNotification(ctx, types.JobSendVerificationEmail, jobs.Payload{
		EntityID:     u.ID,
		RecipientIDs: []string{u.ID},
		Email:        u.Email,
		Subject:      "Verify your email",
	})

	return &dto.AuthResponse{
		Token:          authResponse.AuthToken,
		UserID:         u.ID,
		OrganizationID: org.ID,
	}, nil
}

// Login authenticates a user. The token carries the organization the user
// would land in; a user without any membership gets a token without one.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	authRecord, err := s.AuthRepo.GetAuthByUserID(ctx, u.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	orgID, err := s.resolver.Resolve(ctx, u.ID, req.OrganizationID)
	if err != nil && !ierr.IsNoOrganizationContext(err) {
		return nil, err
	}

	authResponse, err := s.authProvider.Login(ctx, authProvider.AuthRequest{
		UserID:         u.ID,
		OrganizationID: orgID,
		Email:          u.Email,
		Password:       req.Password,
	}, authRecord)
	if err != nil {
		return nil, err
	}

	if authResponse.ID != u.ID {
		return nil, ierr.NewError("user mismatch").
			WithHint("Invalid email or password").
			WithReportableDetails(map[string]interface{}{
				"user_id": u.ID,
			}).
			Mark(ierr.ErrUnauthorized)
	}

	return &dto.AuthResponse{
		Token:          authResponse.AuthToken,
		UserID:         u.ID,
		OrganizationID: orgID,
	}, nil
}

func (s *authService) Me(ctx context.Context) (*dto.UserResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("no user in context").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthorized)
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orgs, err := organizationsOf(ctx, s.ServiceParams, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u, Organizations: orgs}, nil
}

func invalidCredentials() error {
	return ierr.NewError("invalid credentials").
		WithHint("Invalid email or password").
		Mark(ierr.ErrUnauthorized)
}
