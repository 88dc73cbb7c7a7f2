package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/types"
)

type ActivityService interface {
	List(ctx context.Context, filter *types.ActivityFilter) (*dto.ListActivitiesResponse, error)
}

type activityService struct {
	ServiceParams
}

func NewActivityService(params ServiceParams) ActivityService {
	return &activityService{ServiceParams: params}
}

// List returns the feed of the organization on ctx, newest first by default
func (s *activityService) List(ctx context.Context, filter *types.ActivityFilter) (*dto.ListActivitiesResponse, error) {
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = types.NewActivityFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.ActivityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ActivityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset()), nil
}
