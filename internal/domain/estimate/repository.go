package estimate

import (
	"context"

	"github.com/buildline/buildline/internal/domain"
)

type Repository interface {
	domain.TrackedRepository[Estimate]
}

type SectionRepository interface {
	domain.Repository[Section]
	ListByEstimate(ctx context.Context, estimateID string) ([]*Section, error)
	Delete(ctx context.Context, id string) error
}

type LineItemRepository interface {
	domain.Repository[LineItem]
	ListBySection(ctx context.Context, sectionID string) ([]*LineItem, error)
	Delete(ctx context.Context, id string) error
}
