package postgres

import (
	"context"
	"fmt"

	"github.com/buildline/buildline/internal/domain/activity"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

const activityTable = "activity_logs"

const activitySelect = `SELECT id, organization_id, project_id, actor_id, entity_type, entity_id, category, action,
	description, severity, metadata, created_at FROM activity_logs`

type activityRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return &activityRepository{db: db, logger: logger}
}

func (r *activityRepository) Create(ctx context.Context, log *activity.Log) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	if log.OrganizationID == "" {
		log.OrganizationID = types.GetOrganizationID(ctx)
	}
	if log.OrganizationID != types.GetOrganizationID(ctx) {
		return ierr.NewError("activity belongs to another organization").
			WithHint("Activity could not be recorded").
			Mark(ierr.ErrPermissionDenied)
	}

	query := `
		INSERT INTO activity_logs (id, organization_id, project_id, actor_id, entity_type, entity_id, category, action,
			description, severity, metadata, created_at)
		VALUES (:id, :organization_id, :project_id, :actor_id, :entity_type, :entity_id, :category, :action,
			:description, :severity, :metadata, :created_at)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, log); err != nil {
		return wrapError(err, types.EntityTypeActivity, "create", log.ID)
	}
	return nil
}

func (r *activityRepository) scope(ctx context.Context, filter *types.ActivityFilter) (*postgres.Scope, error) {
	scope, err := postgres.ScopeQuery(ctx, activityTable)
	if err != nil {
		return nil, err
	}
	return scope.
		WhereIf(filter.ProjectID != "", "project_id = ?", filter.ProjectID).
		WhereIf(filter.EntityType != "", "entity_type = ?", filter.EntityType).
		WhereIf(filter.EntityID != "", "entity_id = ?", filter.EntityID).
		WhereIf(filter.Category != "", "category = ?", filter.Category).
		WhereIf(filter.Severity != "", "severity = ?", filter.Severity), nil
}

func (r *activityRepository) List(ctx context.Context, filter *types.ActivityFilter) ([]*activity.Log, error) {
	if filter == nil {
		filter = types.NewActivityFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	scope, err := r.scope(ctx, filter)
	if err != nil {
		return nil, err
	}

	suffix := fmt.Sprintf("ORDER BY created_at %s", filter.GetOrder())
	var suffixArgs []interface{}
	if !filter.IsUnlimited() {
		suffix += " LIMIT ? OFFSET ?"
		suffixArgs = append(suffixArgs, filter.GetLimit(), filter.GetOffset())
	}
	query, args := scope.Build(activitySelect, suffix, suffixArgs...)

	logs := make([]*activity.Log, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, wrapError(err, types.EntityTypeActivity, "list", "")
	}
	return logs, nil
}

func (r *activityRepository) Count(ctx context.Context, filter *types.ActivityFilter) (int, error) {
	if filter == nil {
		filter = types.NewActivityFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	scope, err := r.scope(ctx, filter)
	if err != nil {
		return 0, err
	}
	query, args := scope.Build("SELECT COUNT(*) FROM "+activityTable, "")

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, types.EntityTypeActivity, "count", "")
	}
	return count, nil
}
