package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/activemodule"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type ModuleService interface {
	List(ctx context.Context) (*dto.ListModulesResponse, error)
	Activate(ctx context.Context, key types.ModuleKey) (*dto.ModuleResponse, error)
	Deactivate(ctx context.Context, key types.ModuleKey) (*dto.ModuleResponse, error)
}

type moduleService struct {
	ServiceParams
	dispatcher *Dispatcher
}

func NewModuleService(params ServiceParams, dispatcher *Dispatcher) ModuleService {
	return &moduleService{
		ServiceParams: params,
		dispatcher:    dispatcher,
	}
}

// List reports every known module for the organization, always-active ones included
func (s *moduleService) List(ctx context.Context) (*dto.ListModulesResponse, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.ActiveModuleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := lo.SliceToMap(rows, func(m *activemodule.ActiveModule) (types.ModuleKey, bool) {
		return m.ModuleKey, m.Active
	})

	items := lo.Map(types.Modules, func(key types.ModuleKey, _ int) *dto.ModuleResponse {
		return &dto.ModuleResponse{
			Key:          key,
			Active:       key.IsAlwaysActive() || active[key],
			AlwaysActive: key.IsAlwaysActive(),
		}
	})
	return &dto.ListModulesResponse{Items: items}, nil
}

func (s *moduleService) Activate(ctx context.Context, key types.ModuleKey) (*dto.ModuleResponse, error) {
	return s.setActive(ctx, key, true)
}

func (s *moduleService) Deactivate(ctx context.Context, key types.ModuleKey) (*dto.ModuleResponse, error) {
	return s.setActive(ctx, key, false)
}

func (s *moduleService) setActive(ctx context.Context, key types.ModuleKey, active bool) (*dto.ModuleResponse, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	if key.IsAlwaysActive() {
		return nil, ierr.NewError("module is always active").
			WithHintf("The %s module cannot be switched off or on", key).
			WithReportableDetails(map[string]interface{}{
				"module_key": key,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	row, err := s.ActiveModuleRepo.Get(ctx, key)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if row == nil {
		row = &activemodule.ActiveModule{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVE_MODULE),
			ModuleKey: key,
		}
		row.AssignOnCreate(ctx)
	} else if row.Active == active {
		return &dto.ModuleResponse{Key: key, Active: active}, nil
	}

	row.Active = active
	row.Touch(ctx)
	if err := s.ActiveModuleRepo.Upsert(ctx, row); err != nil {
		return nil, err
	}

	orgID := types.GetOrganizationID(ctx)
	s.RBAC.InvalidateModules(ctx, orgID)

	action := lo.Ternary(active, "module.activated", "module.deactivated")
	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeModule,
		EntityID:    row.ID,
		Category:    types.ActivityCategoryModule,
		Action:      action,
		Description: string(key) + lo.Ternary(active, " activated", " deactivated"),
		Metadata:    types.Metadata{"module_key": string(key)},
	})

	s.Logger.Infow("module toggled",
		"organization_id", orgID,
		"module_key", key,
		"active", active,
	)
	return &dto.ModuleResponse{Key: key, Active: active}, nil
}
