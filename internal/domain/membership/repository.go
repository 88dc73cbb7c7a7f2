package membership

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, m *Membership) error
	Get(ctx context.Context, id string) (*Membership, error)
	// GetActive returns the active membership of userID in orgID or ErrNotFound
	GetActive(ctx context.Context, orgID, userID string) (*Membership, error)
	GetByInvitationToken(ctx context.Context, token string) (*Membership, error)
	// ListActiveByUser returns the user's active memberships, oldest first
	ListActiveByUser(ctx context.Context, userID string) ([]*Membership, error)
	ListByOrganization(ctx context.Context, orgID string) ([]*Membership, error)
	Update(ctx context.Context, m *Membership) error
}
