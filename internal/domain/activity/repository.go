package activity

import (
	"context"

	"github.com/buildline/buildline/internal/types"
)

// Repository is append-only
type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, filter *types.ActivityFilter) ([]*Log, error)
	Count(ctx context.Context, filter *types.ActivityFilter) (int, error)
}
