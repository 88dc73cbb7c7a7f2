package testutil

import (
	"context"

	"github.com/buildline/buildline/internal/domain/activemodule"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

// InMemoryActiveModuleStore implements activemodule.Repository
type InMemoryActiveModuleStore struct {
	*InMemoryStore[*activemodule.ActiveModule]
}

func NewInMemoryActiveModuleStore() *InMemoryActiveModuleStore {
	return &InMemoryActiveModuleStore{InMemoryStore: NewInMemoryStore[*activemodule.ActiveModule]()}
}

func moduleKey(orgID string, key types.ModuleKey) string {
	return orgID + "/" + string(key)
}

func (s *InMemoryActiveModuleStore) Get(ctx context.Context, key types.ModuleKey) (*activemodule.ActiveModule, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	m, err := s.InMemoryStore.Get(ctx, moduleKey(types.GetOrganizationID(ctx), key))
	if err != nil {
		return nil, ierr.NewErrorf("module %s not activated", key).
			WithHint("module not found").
			Mark(ierr.ErrNotFound)
	}
	c := *m
	return &c, nil
}

func (s *InMemoryActiveModuleStore) List(ctx context.Context) ([]*activemodule.ActiveModule, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, m *activemodule.ActiveModule, _ interface{}) bool {
		return CheckOrganizationFilter(ctx, m.OrganizationID)
	}, func(a, b *activemodule.ActiveModule) bool {
		return a.ModuleKey < b.ModuleKey
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(m *activemodule.ActiveModule, _ int) *activemodule.ActiveModule {
		c := *m
		return &c
	}), nil
}

func (s *InMemoryActiveModuleStore) Upsert(ctx context.Context, m *activemodule.ActiveModule) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	c := *m
	c.OrganizationID = types.GetOrganizationID(ctx)
	m.OrganizationID = c.OrganizationID

	id := moduleKey(c.OrganizationID, c.ModuleKey)
	if err := s.InMemoryStore.Update(ctx, id, &c); err != nil {
		return s.InMemoryStore.Create(ctx, id, &c)
	}
	return nil
}
