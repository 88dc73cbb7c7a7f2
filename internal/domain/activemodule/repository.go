package activemodule

import (
	"context"

	"github.com/buildline/buildline/internal/types"
)

type Repository interface {
	// Get returns the row for key in the context organization or ErrNotFound
	Get(ctx context.Context, key types.ModuleKey) (*ActiveModule, error)
	List(ctx context.Context) ([]*ActiveModule, error)
	// Upsert creates or updates the row for the module key
	Upsert(ctx context.Context, m *ActiveModule) error
}
