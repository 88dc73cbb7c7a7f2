package auth

import (
	"context"

	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/domain/auth"
	"github.com/buildline/buildline/internal/types"
)

type AuthRequest struct {
	UserID         string
	OrganizationID string
	Email          string
	Password       string
}

type AuthResponse struct {
	ProviderToken string
	AuthToken     string
	ID            string
}

type Provider interface {
	GetProvider() types.AuthProvider
	// SignUp prepares the credential to store for a new user
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error)
	// IssueToken signs a session token carrying the organization hint
	IssueToken(userID, organizationID string) (string, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewPasswordAuth(cfg)
}
