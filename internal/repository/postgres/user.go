package postgres

import (
	"context"

	"github.com/buildline/buildline/internal/domain/user"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

const userColumns = `id, email, name, last_active_organization_id, email_verified, status, created_at, updated_at`

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, name, last_active_organization_id, email_verified, status, created_at, updated_at)
		VALUES (:id, :email, :name, :last_active_organization_id, :email_verified, :status, :created_at, :updated_at)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u); err != nil {
		return wrapError(err, types.EntityTypeUser, "create", u.ID)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id); err != nil {
		return nil, wrapError(err, types.EntityTypeUser, "get", id)
	}
	return &u, nil
}

// GetByEmail is used by login and invitation acceptance, before any organization is known
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, email); err != nil {
		return nil, wrapError(err, types.EntityTypeUser, "get", email)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET name = :name, last_active_organization_id = :last_active_organization_id,
			email_verified = :email_verified, status = :status, updated_at = :updated_at
		WHERE id = :id`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u); err != nil {
		return wrapError(err, types.EntityTypeUser, "update", u.ID)
	}
	return nil
}
