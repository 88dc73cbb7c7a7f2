package domain

import (
	"context"

	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
)

// Record is implemented by the pointer type of every organization-owned model
type Record interface {
	GetID() string
	GetOrganizationID() string
}

// Repository is the storage contract shared by organization-owned models.
// Implementations confine every call to the organization on the context.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)
	Count(ctx context.Context, filter *types.QueryFilter) (int, error)
	Update(ctx context.Context, record *T) error
}

// TrackedRepository also exposes the persisted status for transition tracking
type TrackedRepository[T any] interface {
	Repository[T]
	tracker.CapturesPriorState
}
