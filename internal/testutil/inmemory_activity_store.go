package testutil

import (
	"context"

	"github.com/buildline/buildline/internal/domain/activity"
	"github.com/buildline/buildline/internal/types"
)

// InMemoryActivityStore implements activity.Repository
type InMemoryActivityStore struct {
	*InMemoryStore[*activity.Log]
}

func NewInMemoryActivityStore() *InMemoryActivityStore {
	return &InMemoryActivityStore{InMemoryStore: NewInMemoryStore[*activity.Log]()}
}

func activityFilterFn(ctx context.Context, l *activity.Log, f interface{}) bool {
	if !CheckOrganizationFilter(ctx, l.OrganizationID) {
		return false
	}
	filter, ok := f.(*types.ActivityFilter)
	if !ok || filter == nil {
		return true
	}
	if filter.QueryFilter != nil && filter.ProjectID != "" && (l.ProjectID == nil || *l.ProjectID != filter.ProjectID) {
		return false
	}
	if filter.EntityType != "" && l.EntityType != filter.EntityType {
		return false
	}
	if filter.EntityID != "" && l.EntityID != filter.EntityID {
		return false
	}
	if filter.Category != "" && l.Category != filter.Category {
		return false
	}
	if filter.Severity != "" && l.Severity != filter.Severity {
		return false
	}
	return true
}

func (s *InMemoryActivityStore) Create(ctx context.Context, l *activity.Log) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	if l.OrganizationID == "" {
		l.OrganizationID = types.GetOrganizationID(ctx)
	}
	c := *l
	return s.InMemoryStore.Create(ctx, l.ID, &c)
}

func (s *InMemoryActivityStore) List(ctx context.Context, filter *types.ActivityFilter) ([]*activity.Log, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = types.NewActivityFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	desc := filter.GetOrder() == types.OrderDesc
	return s.InMemoryStore.List(ctx, filter, activityFilterFn, func(a, b *activity.Log) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return (a.ID > b.ID) == desc
		}
		return a.CreatedAt.After(b.CreatedAt) == desc
	})
}

func (s *InMemoryActivityStore) Count(ctx context.Context, filter *types.ActivityFilter) (int, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return 0, err
	}
	return s.InMemoryStore.Count(ctx, filter, activityFilterFn)
}

// All returns every stored entry regardless of organization
func (s *InMemoryActivityStore) All() []*activity.Log {
	items, _ := s.InMemoryStore.List(context.Background(), nil, nil, func(a, b *activity.Log) bool {
		return a.ID < b.ID
	})
	return items
}
