package auth

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/domain/auth"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type passwordAuth struct {
	AuthConfig config.AuthConfig
}

func NewPasswordAuth(cfg *config.Configuration) *passwordAuth {
	return &passwordAuth{
		AuthConfig: cfg.Auth,
	}
}

func (p *passwordAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderPassword
}

func (p *passwordAuth) SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error) {
	if req.Password == "" {
		return nil, ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	authToken, err := p.IssueToken(req.UserID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ProviderToken: string(hashedPassword),
		AuthToken:     authToken,
		ID:            req.UserID,
	}, nil
}

func (p *passwordAuth) Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(userAuthInfo.Token), []byte(req.Password)); err != nil {
		return nil, ierr.NewError("invalid password").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}

	authToken, err := p.IssueToken(userAuthInfo.UserID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ProviderToken: userAuthInfo.Token,
		AuthToken:     authToken,
		ID:            userAuthInfo.UserID,
	}, nil
}

func (p *passwordAuth) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims := &auth.Claims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", token.Header["alg"]).
				WithHint("Invalid token").
				Mark(ierr.ErrUnauthorized)
		}
		return []byte(p.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}

	if !parsedToken.Valid || claims.UserID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Invalid token").
			Mark(ierr.ErrUnauthorized)
	}

	return claims, nil
}

func (p *passwordAuth) IssueToken(userID, organizationID string) (string, error) {
	ttl := p.AuthConfig.TokenTTL
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	now := time.Now()

	claims := auth.Claims{
		UserID:         userID,
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.AuthConfig.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}
