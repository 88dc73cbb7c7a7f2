package testutil

import (
	"context"

	"github.com/buildline/buildline/internal/domain/organization"
	"github.com/samber/lo"
)

// InMemoryOrganizationStore implements organization.Repository
type InMemoryOrganizationStore struct {
	*InMemoryStore[*organization.Organization]
}

func NewInMemoryOrganizationStore() *InMemoryOrganizationStore {
	return &InMemoryOrganizationStore{InMemoryStore: NewInMemoryStore[*organization.Organization]()}
}

func copyOrganization(o *organization.Organization) *organization.Organization {
	c := *o
	return &c
}

func (s *InMemoryOrganizationStore) Create(ctx context.Context, o *organization.Organization) error {
	return s.InMemoryStore.Create(ctx, o.ID, copyOrganization(o))
}

func (s *InMemoryOrganizationStore) Get(ctx context.Context, id string) (*organization.Organization, error) {
	o, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, organization.NewOrganizationNotFoundError(id)
	}
	return copyOrganization(o), nil
}

func (s *InMemoryOrganizationStore) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	orgs, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, o *organization.Organization, _ interface{}) bool {
		return o.Slug == slug
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, organization.NewOrganizationNotFoundError(slug)
	}
	return copyOrganization(orgs[0]), nil
}

func (s *InMemoryOrganizationStore) ListByIDs(ctx context.Context, ids []string) ([]*organization.Organization, error) {
	orgs, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, o *organization.Organization, _ interface{}) bool {
		return lo.Contains(ids, o.ID)
	}, func(a, b *organization.Organization) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(orgs, func(o *organization.Organization, _ int) *organization.Organization {
		return copyOrganization(o)
	}), nil
}

func (s *InMemoryOrganizationStore) Update(ctx context.Context, o *organization.Organization) error {
	if err := s.InMemoryStore.Update(ctx, o.ID, copyOrganization(o)); err != nil {
		return organization.NewOrganizationNotFoundError(o.ID)
	}
	return nil
}

func (s *InMemoryOrganizationStore) PriorState(ctx context.Context, id string) (string, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return string(o.SubscriptionStatus), nil
}
