package postgres

import (
	"context"

	"github.com/buildline/buildline/internal/domain/activemodule"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

const activeModuleTable = "active_modules"

type activeModuleRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewActiveModuleRepository(db *postgres.DB, logger *logger.Logger) activemodule.Repository {
	return &activeModuleRepository{db: db, logger: logger}
}

const activeModuleSelect = `SELECT id, module_key, active, organization_id, created_at, updated_at, created_by, updated_by FROM active_modules`

func (r *activeModuleRepository) Get(ctx context.Context, key types.ModuleKey) (*activemodule.ActiveModule, error) {
	scope, err := postgres.ScopeQuery(ctx, activeModuleTable)
	if err != nil {
		return nil, err
	}
	query, args := scope.Where("module_key = ?", key).Build(activeModuleSelect, "")

	var m activemodule.ActiveModule
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &m, query, args...); err != nil {
		return nil, wrapError(err, types.EntityTypeModule, "get", string(key))
	}
	return &m, nil
}

func (r *activeModuleRepository) List(ctx context.Context) ([]*activemodule.ActiveModule, error) {
	scope, err := postgres.ScopeQuery(ctx, activeModuleTable)
	if err != nil {
		return nil, err
	}
	query, args := scope.Build(activeModuleSelect, "ORDER BY module_key ASC")

	modules := make([]*activemodule.ActiveModule, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &modules, query, args...); err != nil {
		return nil, wrapError(err, types.EntityTypeModule, "list", "")
	}
	return modules, nil
}

// Upsert relies on the unique (organization_id, module_key) index
func (r *activeModuleRepository) Upsert(ctx context.Context, m *activemodule.ActiveModule) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	m.OrganizationID = types.GetOrganizationID(ctx)

	query := `
		INSERT INTO active_modules (id, module_key, active, organization_id, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :module_key, :active, :organization_id, :created_at, :updated_at, :created_by, :updated_by)
		ON CONFLICT (organization_id, module_key)
		DO UPDATE SET active = EXCLUDED.active, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, m); err != nil {
		return wrapError(err, types.EntityTypeModule, "upsert", string(m.ModuleKey))
	}
	return nil
}
