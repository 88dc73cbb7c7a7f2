package postgres

import (
	"context"

	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

const membershipColumns = `id, organization_id, user_id, role, active, invitation_token, invited_email, accepted_at, created_at, updated_at, created_by, updated_by`

// membershipRepository queries are filtered by organization or user explicitly:
// resolving the tenant itself needs memberships across organizations.
type membershipRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewMembershipRepository(db *postgres.DB, logger *logger.Logger) membership.Repository {
	return &membershipRepository{db: db, logger: logger}
}

func (r *membershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES (:id, :organization_id, :user_id, :role, :active, :invitation_token, :invited_email, :accepted_at,
			:created_at, :updated_at, :created_by, :updated_by)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, m); err != nil {
		return wrapError(err, types.EntityTypeMembership, "create", m.ID)
	}
	return nil
}

func (r *membershipRepository) get(ctx context.Context, key string, query string, args ...interface{}) (*membership.Membership, error) {
	var m membership.Membership
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &m, query, args...); err != nil {
		return nil, wrapError(err, types.EntityTypeMembership, "get", key)
	}
	return &m, nil
}

func (r *membershipRepository) Get(ctx context.Context, id string) (*membership.Membership, error) {
	return r.get(ctx, id, `SELECT `+membershipColumns+` FROM memberships WHERE id = $1`, id)
}

func (r *membershipRepository) GetActive(ctx context.Context, orgID, userID string) (*membership.Membership, error) {
	return r.get(ctx, orgID+"/"+userID,
		`SELECT `+membershipColumns+` FROM memberships WHERE organization_id = $1 AND user_id = $2 AND active = true`,
		orgID, userID)
}

func (r *membershipRepository) GetByInvitationToken(ctx context.Context, token string) (*membership.Membership, error) {
	return r.get(ctx, "invitation",
		`SELECT `+membershipColumns+` FROM memberships WHERE invitation_token = $1`, token)
}

func (r *membershipRepository) ListActiveByUser(ctx context.Context, userID string) ([]*membership.Membership, error) {
	memberships := make([]*membership.Membership, 0)
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND active = true ORDER BY created_at ASC`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &memberships, query, userID); err != nil {
		return nil, wrapError(err, types.EntityTypeMembership, "list", userID)
	}
	return memberships, nil
}

func (r *membershipRepository) ListByOrganization(ctx context.Context, orgID string) ([]*membership.Membership, error) {
	memberships := make([]*membership.Membership, 0)
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE organization_id = $1 ORDER BY created_at ASC`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &memberships, query, orgID); err != nil {
		return nil, wrapError(err, types.EntityTypeMembership, "list", orgID)
	}
	return memberships, nil
}

func (r *membershipRepository) Update(ctx context.Context, m *membership.Membership) error {
	query := `
		UPDATE memberships SET user_id = :user_id, role = :role, active = :active, invitation_token = :invitation_token,
			accepted_at = :accepted_at, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id AND organization_id = :organization_id`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, m); err != nil {
		return wrapError(err, types.EntityTypeMembership, "update", m.ID)
	}
	return nil
}
