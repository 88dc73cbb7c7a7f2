package auth

import (
	"context"
	"testing"
	"time"

	"github.com/buildline/buildline/internal/config"
	domainAuth "github.com/buildline/buildline/internal/domain/auth"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(ttl time.Duration) Provider {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTL = ttl
	return NewProvider(cfg)
}

func TestPasswordAuth_SignUpThenLogin(t *testing.T) {
	p := newTestProvider(time.Hour)
	ctx := context.Background()

	resp, err := p.SignUp(ctx, AuthRequest{UserID: "user_1", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", resp.ProviderToken)

	stored := domainAuth.NewAuth("user_1", types.AuthProviderPassword, resp.ProviderToken)

	login, err := p.Login(ctx, AuthRequest{Password: "s3cret-pass", OrganizationID: "org_1"}, stored)
	require.NoError(t, err)

	claims, err := p.ValidateToken(ctx, login.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.UserID)
	assert.Equal(t, "org_1", claims.OrganizationID)

	_, err = p.Login(ctx, AuthRequest{Password: "wrong-pass"}, stored)
	assert.True(t, ierr.IsUnauthorized(err))
}

func TestPasswordAuth_RejectsExpiredAndForeignTokens(t *testing.T) {
	ctx := context.Background()

	expired, err := newTestProvider(-time.Minute).IssueToken("user_1", "")
	require.NoError(t, err)
	_, err = newTestProvider(time.Hour).ValidateToken(ctx, expired)
	assert.True(t, ierr.IsUnauthorized(err))

	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "other-secret"
	foreign, err := NewProvider(cfg).IssueToken("user_1", "")
	require.NoError(t, err)
	_, err = newTestProvider(time.Hour).ValidateToken(ctx, foreign)
	assert.True(t, ierr.IsUnauthorized(err))
}
