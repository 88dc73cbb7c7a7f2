package service

import (
	"context"

	"github.com/buildline/buildline/internal/domain"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
)

// trackedRecord is the pointer type of an organization-owned model with a workflow status
type trackedRecord interface {
	domain.Record
	tracker.Trackable
	AssignOnCreate(ctx context.Context)
	Touch(ctx context.Context)
}

// trackedStore is the shared persistence path of every workflow entity: each
// save goes through the status tracker inside one transaction.
type trackedStore[T any, P interface {
	*T
	trackedRecord
}] struct {
	params  ServiceParams
	entity  types.EntityType
	repo    domain.TrackedRepository[T]
	tracker *tracker.Tracker[P]
}

func newTrackedStore[T any, P interface {
	*T
	trackedRecord
}](params ServiceParams, entity types.EntityType, repo domain.TrackedRepository[T], emitter tracker.EmitsTransition[P]) *trackedStore[T, P] {
	return &trackedStore[T, P]{
		params:  params,
		entity:  entity,
		repo:    repo,
		tracker: tracker.New[P](entity, repo, emitter, params.Logger),
	}
}

func (s *trackedStore[T, P]) create(ctx context.Context, record P) error {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return err
	}
	record.AssignOnCreate(ctx)

	return s.params.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.tracker.Create(tracker.WithStash(ctx), record, func(ctx context.Context) error {
			return s.repo.Create(ctx, (*T)(record))
		})
	})
}

func (s *trackedStore[T, P]) get(ctx context.Context, id string) (P, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return P(record), nil
}

// update loads the record, applies mutate and saves it through the tracker
func (s *trackedStore[T, P]) update(ctx context.Context, id string, mutate func(ctx context.Context, record P) error) (P, error) {
	var saved P
	err := s.params.DB.WithTx(ctx, func(ctx context.Context) error {
		ctx = tracker.WithStash(ctx)

		record, err := s.get(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(ctx, record); err != nil {
			return err
		}
		record.Touch(ctx)

		if err := s.tracker.Update(ctx, record, func(ctx context.Context) error {
			return s.repo.Update(ctx, (*T)(record))
		}); err != nil {
			return err
		}
		saved = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *trackedStore[T, P]) list(ctx context.Context, filter *types.QueryFilter) (*types.ListResponse[P], error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]P, len(items))
	for i, item := range items {
		records[i] = P(item)
	}
	return types.NewListResponse(records, total, filter.GetLimit(), filter.GetOffset()), nil
}

// moveTo checks the workflow and sets *status to to
func moveTo[S ~string](entity types.EntityType, workflow types.Workflow[S], status *S, to S) error {
	if err := workflow.Check(entity, *status, to); err != nil {
		return err
	}
	*status = to
	return nil
}

// requireProject fails with ErrNotFound unless the project exists in the organization on ctx
func requireProject(ctx context.Context, params ServiceParams, projectID string) error {
	_, err := params.ProjectRepo.Get(ctx, projectID)
	return err
}
