package testutil

import (
	"context"
	"sync"

	"github.com/buildline/buildline/internal/domain"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
)

// InMemoryTenantStore implements domain.TrackedRepository for any organization-owned
// model with the same scoping rules as the postgres repositories.
type InMemoryTenantStore[T any, P interface {
	*T
	domain.Record
}] struct {
	*InMemoryStore[P]
	entity types.EntityType

	mu       sync.Mutex
	failNext error
}

func NewInMemoryTenantStore[T any, P interface {
	*T
	domain.Record
}](entity types.EntityType) *InMemoryTenantStore[T, P] {
	return &InMemoryTenantStore[T, P]{
		InMemoryStore: NewInMemoryStore[P](),
		entity:        entity,
	}
}

// FailNextWrite makes the next Create, Update or Delete return err
func (s *InMemoryTenantStore[T, P]) FailNextWrite(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

func (s *InMemoryTenantStore[T, P]) takeFailure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.failNext
	s.failNext = nil
	return err
}

func clone[T any, P interface {
	*T
	domain.Record
}](record P) P {
	if record == nil {
		return nil
	}
	c := *(*T)(record)
	return P(&c)
}

func (s *InMemoryTenantStore[T, P]) owned(ctx context.Context, record P) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	if record.GetOrganizationID() != types.GetOrganizationID(ctx) {
		return ierr.NewErrorf("%s %s belongs to another organization", s.entity, record.GetID()).
			WithHintf("%s not found", s.entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryTenantStore[T, P]) notFound(id string) error {
	return ierr.NewErrorf("%s %s not found", s.entity, id).
		WithHintf("%s not found", s.entity).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryTenantStore[T, P]) Create(ctx context.Context, record *T) error {
	p := P(record)
	if err := s.owned(ctx, p); err != nil {
		return err
	}
	if err := s.takeFailure(); err != nil {
		return err
	}
	return s.InMemoryStore.Create(ctx, p.GetID(), clone[T, P](p))
}

func (s *InMemoryTenantStore[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	item, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckOrganizationFilter(ctx, item.GetOrganizationID()) {
		return nil, s.notFound(id)
	}
	return (*T)(clone[T, P](item)), nil
}

func (s *InMemoryTenantStore[T, P]) matches(ctx context.Context, item P, f interface{}) bool {
	if !CheckOrganizationFilter(ctx, item.GetOrganizationID()) {
		return false
	}
	filter, ok := f.(*types.QueryFilter)
	if !ok || filter == nil {
		return true
	}
	if filter.ProjectID != "" {
		scoped, ok := any(item).(interface{ GetProjectID() string })
		if !ok || scoped.GetProjectID() != filter.ProjectID {
			return false
		}
	}
	if filter.Status != "" {
		tracked, ok := any(item).(interface{ TrackedState() string })
		if !ok || tracked.TrackedState() != filter.Status {
			return false
		}
	}
	return true
}

func (s *InMemoryTenantStore[T, P]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = types.NewNoLimitQueryFilter()
	}
	items, err := s.InMemoryStore.List(ctx, filter, s.matches, func(a, b P) bool {
		return a.GetID() < b.GetID()
	})
	if err != nil {
		return nil, err
	}
	result := make([]*T, 0, len(items))
	for _, item := range items {
		result = append(result, (*T)(clone[T, P](item)))
	}
	return result, nil
}

func (s *InMemoryTenantStore[T, P]) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, filter, s.matches)
}

func (s *InMemoryTenantStore[T, P]) Update(ctx context.Context, record *T) error {
	p := P(record)
	if err := s.owned(ctx, p); err != nil {
		return err
	}
	if err := s.takeFailure(); err != nil {
		return err
	}
	existing, err := s.InMemoryStore.Get(ctx, p.GetID())
	if err != nil || existing.GetOrganizationID() != p.GetOrganizationID() {
		return s.notFound(p.GetID())
	}
	return s.InMemoryStore.Update(ctx, p.GetID(), clone[T, P](p))
}

func (s *InMemoryTenantStore[T, P]) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.takeFailure(); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

// PriorState returns the stored status of a tracked record
func (s *InMemoryTenantStore[T, P]) PriorState(ctx context.Context, id string) (string, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	tracked, ok := any(P(record)).(interface{ TrackedState() string })
	if !ok {
		return "", ierr.NewErrorf("%s is not tracked", s.entity).Mark(ierr.ErrInvalidOperation)
	}
	return tracked.TrackedState(), nil
}

// ListWhere returns the records of the context organization that satisfy keep
func (s *InMemoryTenantStore[T, P]) ListWhere(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	all, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	result := make([]*T, 0, len(all))
	for _, record := range all {
		if keep(record) {
			result = append(result, record)
		}
	}
	return result, nil
}
