package postgres

import (
	"context"
	"database/sql"

	"github.com/buildline/buildline/internal/domain/organization"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
	"github.com/jmoiron/sqlx"
)

const organizationColumns = `id, name, slug, plan, subscription_status, owner_id, status, created_at, updated_at, created_by, updated_by`

type organizationRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return &organizationRepository{db: db, logger: logger}
}

func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES (:id, :name, :slug, :plan, :subscription_status, :owner_id, :status, :created_at, :updated_at, :created_by, :updated_by)`

	r.logger.Debugw("creating organization", "organization_id", org.ID, "slug", org.Slug)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, org); err != nil {
		return wrapError(err, types.EntityTypeOrganization, "create", org.ID)
	}
	return nil
}

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	var org organization.Organization
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &org, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, organization.NewOrganizationNotFoundError(id)
		}
		return nil, wrapError(err, types.EntityTypeOrganization, "get", id)
	}
	return &org, nil
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	var org organization.Organization
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &org, query, slug); err != nil {
		return nil, wrapError(err, types.EntityTypeOrganization, "get", slug)
	}
	return &org, nil
}

func (r *organizationRepository) ListByIDs(ctx context.Context, ids []string) ([]*organization.Organization, error) {
	orgs := make([]*organization.Organization, 0, len(ids))
	if len(ids) == 0 {
		return orgs, nil
	}

	query, args, err := sqlx.In(`SELECT `+organizationColumns+` FROM organizations WHERE id IN (?) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, wrapError(err, types.EntityTypeOrganization, "list", "")
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &orgs, query, args...); err != nil {
		return nil, wrapError(err, types.EntityTypeOrganization, "list", "")
	}
	return orgs, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	query := `
		UPDATE organizations SET name = :name, plan = :plan, subscription_status = :subscription_status,
			owner_id = :owner_id, status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, org)
	if err != nil {
		return wrapError(err, types.EntityTypeOrganization, "update", org.ID)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return organization.NewOrganizationNotFoundError(org.ID)
	}
	return nil
}

// PriorState returns the persisted subscription status
func (r *organizationRepository) PriorState(ctx context.Context, id string) (string, error) {
	var state string
	query := `SELECT subscription_status FROM organizations WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &state, query, id); err != nil {
		return "", wrapError(err, types.EntityTypeOrganization, "prior state", id)
	}
	return state, nil
}
