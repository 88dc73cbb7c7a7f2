package postgres

import (
	"context"

	"github.com/buildline/buildline/internal/domain/auth"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

type authRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewAuthRepository(db *postgres.DB, logger *logger.Logger) auth.Repository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	if err := validateProvider(a.Provider); err != nil {
		return err
	}

	query := `INSERT INTO auths (user_id, provider, token, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, a.UserID, a.Provider, a.Token, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return wrapError(err, types.EntityTypeUser, "create auth", a.UserID)
	}
	return nil
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	query := `SELECT user_id, provider, token, status, created_at, updated_at FROM auths WHERE user_id = $1`
	var a auth.Auth
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &a, query, userID); err != nil {
		return nil, wrapError(err, types.EntityTypeUser, "get auth", userID)
	}
	return &a, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	if err := validateProvider(a.Provider); err != nil {
		return err
	}

	query := `UPDATE auths SET provider = $1, token = $2, status = $3, updated_at = $4 WHERE user_id = $5`
	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, a.Provider, a.Token, a.Status, a.UpdatedAt, a.UserID)
	if err != nil {
		return wrapError(err, types.EntityTypeUser, "update auth", a.UserID)
	}
	return nil
}

// only self-managed providers are stored here
func validateProvider(provider types.AuthProvider) error {
	if provider != types.AuthProviderPassword {
		return ierr.NewError("invalid auth provider").
			WithHint("Unsupported authentication provider").
			WithReportableDetails(map[string]any{"provider": provider}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
