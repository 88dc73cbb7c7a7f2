package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/buildline/buildline/internal/domain"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const pgUniqueViolation = "23505"

// immutable columns are written on insert only
var immutableColumns = []string{"id", "organization_id", "created_at", "created_by"}

// tenantRepo implements domain.Repository for any organization-owned model.
// P is the pointer type of T so records can be scanned into freshly allocated values.
type tenantRepo[T any, P interface {
	*T
	domain.Record
}] struct {
	db      *postgres.DB
	logger  *logger.Logger
	table   string
	entity  types.EntityType
	columns []string

	selectSQL string
	insertSQL string
	updateSQL string
}

func newTenantRepo[T any, P interface {
	*T
	domain.Record
}](db *postgres.DB, logger *logger.Logger, table string, entity types.EntityType, columns ...string) *tenantRepo[T, P] {
	mutable := lo.Without(columns, immutableColumns...)
	sets := lo.Map(mutable, func(c string, _ int) string { return c + " = :" + c })
	params := lo.Map(columns, func(c string, _ int) string { return ":" + c })

	return &tenantRepo[T, P]{
		db:        db,
		logger:    logger,
		table:     table,
		entity:    entity,
		columns:   columns,
		selectSQL: fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(params, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = :id AND organization_id = :organization_id", table, strings.Join(sets, ", ")),
	}
}

func (r *tenantRepo[T, P]) hasColumn(name string) bool {
	return lo.Contains(r.columns, name)
}

// owned rejects writes of records that belong to another organization than the context
func (r *tenantRepo[T, P]) owned(ctx context.Context, record P) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	if record.GetOrganizationID() != types.GetOrganizationID(ctx) {
		return ierr.NewErrorf("%s %s belongs to another organization", r.entity, record.GetID()).
			WithHintf("%s not found", r.entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *tenantRepo[T, P]) Create(ctx context.Context, record *T) error {
	p := P(record)
	if err := r.owned(ctx, p); err != nil {
		return err
	}

	r.logger.Debugw("creating record",
		"table", r.table,
		"id", p.GetID(),
		"organization_id", p.GetOrganizationID(),
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, r.insertSQL, record); err != nil {
		return r.wrap(err, "create", p.GetID())
	}
	return nil
}

func (r *tenantRepo[T, P]) Get(ctx context.Context, id string) (*T, error) {
	scope, err := postgres.ScopeQuery(ctx, r.table)
	if err != nil {
		return nil, err
	}
	query, args := scope.Where("id = ?", id).Build(r.selectSQL, "")

	var record T
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &record, query, args...); err != nil {
		return nil, r.wrap(err, "get", id)
	}
	return &record, nil
}

func (r *tenantRepo[T, P]) filterScope(ctx context.Context, filter *types.QueryFilter) (*postgres.Scope, error) {
	scope, err := postgres.ScopeQuery(ctx, r.table)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return scope, nil
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return scope.
		WhereIf(filter.ProjectID != "" && r.hasColumn("project_id"), "project_id = ?", filter.ProjectID).
		WhereIf(filter.Status != "" && r.hasColumn("status"), "status = ?", filter.Status), nil
}

func (r *tenantRepo[T, P]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	scope, err := r.filterScope(ctx, filter)
	if err != nil {
		return nil, err
	}

	// sort and order are whitelisted by the filter
	suffix := fmt.Sprintf("ORDER BY %s %s", filter.GetSort(), filter.GetOrder())
	var suffixArgs []interface{}
	if !filter.IsUnlimited() {
		suffix += " LIMIT ? OFFSET ?"
		suffixArgs = append(suffixArgs, filter.GetLimit(), filter.GetOffset())
	}
	query, args := scope.Build(r.selectSQL, suffix, suffixArgs...)

	records := make([]*T, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &records, query, args...); err != nil {
		return nil, r.wrap(err, "list", "")
	}
	return records, nil
}

func (r *tenantRepo[T, P]) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	scope, err := r.filterScope(ctx, filter)
	if err != nil {
		return 0, err
	}
	query, args := scope.Build("SELECT COUNT(*) FROM "+r.table, "")

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, r.wrap(err, "count", "")
	}
	return count, nil
}

func (r *tenantRepo[T, P]) Update(ctx context.Context, record *T) error {
	p := P(record)
	if err := r.owned(ctx, p); err != nil {
		return err
	}

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, r.updateSQL, record)
	if err != nil {
		return r.wrap(err, "update", p.GetID())
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return r.wrap(sql.ErrNoRows, "update", p.GetID())
	}
	return nil
}

// PriorState reads the persisted status without loading the whole row
func (r *tenantRepo[T, P]) PriorState(ctx context.Context, id string) (string, error) {
	scope, err := postgres.ScopeQuery(ctx, r.table)
	if err != nil {
		return "", err
	}
	query, args := scope.Where("id = ?", id).Build("SELECT status FROM "+r.table, "")

	var state string
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &state, query, args...); err != nil {
		return "", r.wrap(err, "prior state", id)
	}
	return state, nil
}

func (r *tenantRepo[T, P]) Delete(ctx context.Context, id string) error {
	scope, err := postgres.ScopeQuery(ctx, r.table)
	if err != nil {
		return err
	}
	query, args := scope.Where("id = ?", id).Build("DELETE FROM "+r.table, "")

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return r.wrap(err, "delete", id)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return r.wrap(sql.ErrNoRows, "delete", id)
	}
	return nil
}

// listWhere returns every record matching cond in the context organization
func (r *tenantRepo[T, P]) listWhere(ctx context.Context, orderBy string, cond string, args ...interface{}) ([]*T, error) {
	scope, err := postgres.ScopeQuery(ctx, r.table)
	if err != nil {
		return nil, err
	}
	query, queryArgs := scope.Where(cond, args...).Build(r.selectSQL, "ORDER BY "+orderBy)

	records := make([]*T, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &records, query, queryArgs...); err != nil {
		return nil, r.wrap(err, "list", "")
	}
	return records, nil
}

func (r *tenantRepo[T, P]) wrap(err error, op, id string) error {
	return wrapError(err, r.entity, op, id)
}

func wrapError(err error, entity types.EntityType, op, id string) error {
	if ierr.IsNoOrganizationContext(err) {
		return err
	}
	if err == sql.ErrNoRows {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(map[string]any{
				"entity_type": entity,
				"id":          id,
			}).
			Mark(ierr.ErrNotFound)
	}
	var pqErr *pq.Error
	if ierr.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(map[string]any{
				"entity_type": entity,
				"constraint":  pqErr.Constraint,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return ierr.WithError(err).
		WithMessagef("failed to %s %s", op, entity).
		WithHintf("Failed to %s %s", op, entity).
		Mark(ierr.ErrDatabase)
}
