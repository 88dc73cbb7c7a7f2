package testutil

import (
	"context"

	"github.com/buildline/buildline/internal/domain/membership"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/samber/lo"
)

// InMemoryMembershipStore implements membership.Repository
type InMemoryMembershipStore struct {
	*InMemoryStore[*membership.Membership]
}

func NewInMemoryMembershipStore() *InMemoryMembershipStore {
	return &InMemoryMembershipStore{InMemoryStore: NewInMemoryStore[*membership.Membership]()}
}

func copyMembership(m *membership.Membership) *membership.Membership {
	c := *m
	return &c
}

func membershipNotFound() error {
	return ierr.NewError("membership not found").
		WithHint("membership not found").
		Mark(ierr.ErrNotFound)
}

func byCreatedAt(a, b *membership.Membership) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID < b.ID
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func (s *InMemoryMembershipStore) find(ctx context.Context, keep func(*membership.Membership) bool) ([]*membership.Membership, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, m *membership.Membership, _ interface{}) bool {
		return keep(m)
	}, byCreatedAt)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(m *membership.Membership, _ int) *membership.Membership {
		return copyMembership(m)
	}), nil
}

func (s *InMemoryMembershipStore) Create(ctx context.Context, m *membership.Membership) error {
	if m.Active && m.UserID != nil {
		if _, err := s.GetActive(ctx, m.OrganizationID, *m.UserID); err == nil {
			return ierr.NewError("active membership already exists").
				WithHint("User is already a member of this organization").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Create(ctx, m.ID, copyMembership(m))
}

func (s *InMemoryMembershipStore) Get(ctx context.Context, id string) (*membership.Membership, error) {
	m, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, membershipNotFound()
	}
	return copyMembership(m), nil
}

func (s *InMemoryMembershipStore) GetActive(ctx context.Context, orgID, userID string) (*membership.Membership, error) {
	found, err := s.find(ctx, func(m *membership.Membership) bool {
		return m.Active && m.OrganizationID == orgID && m.HeldBy(userID)
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, membershipNotFound()
	}
	return found[0], nil
}

func (s *InMemoryMembershipStore) GetByInvitationToken(ctx context.Context, token string) (*membership.Membership, error) {
	found, err := s.find(ctx, func(m *membership.Membership) bool {
		return m.InvitationToken != nil && *m.InvitationToken == token
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, membershipNotFound()
	}
	return found[0], nil
}

func (s *InMemoryMembershipStore) ListActiveByUser(ctx context.Context, userID string) ([]*membership.Membership, error) {
	return s.find(ctx, func(m *membership.Membership) bool {
		return m.Active && m.HeldBy(userID)
	})
}

func (s *InMemoryMembershipStore) ListByOrganization(ctx context.Context, orgID string) ([]*membership.Membership, error) {
	return s.find(ctx, func(m *membership.Membership) bool {
		return m.OrganizationID == orgID
	})
}

func (s *InMemoryMembershipStore) Update(ctx context.Context, m *membership.Membership) error {
	if err := s.InMemoryStore.Update(ctx, m.ID, copyMembership(m)); err != nil {
		return membershipNotFound()
	}
	return nil
}
