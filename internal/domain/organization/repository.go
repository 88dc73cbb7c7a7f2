package organization

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, org *Organization) error
	Get(ctx context.Context, id string) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	// ListByIDs returns the organizations among ids, oldest first
	ListByIDs(ctx context.Context, ids []string) ([]*Organization, error)
	Update(ctx context.Context, org *Organization) error
	PriorState(ctx context.Context, id string) (string, error)
}
