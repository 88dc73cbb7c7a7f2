package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/submittal"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type SubmittalService interface {
	CreateSubmittal(ctx context.Context, req *dto.CreateSubmittalRequest) (*submittal.Submittal, error)
	GetSubmittal(ctx context.Context, id string) (*submittal.Submittal, error)
	ListSubmittals(ctx context.Context, filter *types.QueryFilter) (*dto.ListSubmittalsResponse, error)
	SubmitSubmittal(ctx context.Context, id string) (*submittal.Submittal, error)
	ReviewSubmittal(ctx context.Context, id string, req *dto.ReviewSubmittalRequest) (*submittal.Submittal, error)
}

type submittalService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[submittal.Submittal, *submittal.Submittal]
}

func NewSubmittalService(params ServiceParams, dispatcher *Dispatcher) SubmittalService {
	s := &submittalService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[submittal.Submittal](params, types.EntityTypeSubmittal, params.SubmittalRepo, s)
	return s
}

func (s *submittalService) CreateSubmittal(ctx context.Context, req *dto.CreateSubmittalRequest) (*submittal.Submittal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	sub := req.ToSubmittal(ctx)
	if err := s.store.create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *submittalService) GetSubmittal(ctx context.Context, id string) (*submittal.Submittal, error) {
	return s.store.get(ctx, id)
}

func (s *submittalService) ListSubmittals(ctx context.Context, filter *types.QueryFilter) (*dto.ListSubmittalsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *submittalService) SubmitSubmittal(ctx context.Context, id string) (*submittal.Submittal, error) {
	return s.store.update(ctx, id, func(ctx context.Context, sub *submittal.Submittal) error {
		if err := moveTo(types.EntityTypeSubmittal, types.SubmittalWorkflow, &sub.Status, types.SubmittalStatusSubmitted); err != nil {
			return err
		}
		sub.SubmittedAt = lo.ToPtr(time.Now().UTC())
		sub.ReviewedAt = nil
		return nil
	})
}

func (s *submittalService) ReviewSubmittal(ctx context.Context, id string, req *dto.ReviewSubmittalRequest) (*submittal.Submittal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.update(ctx, id, func(ctx context.Context, sub *submittal.Submittal) error {
		if err := moveTo(types.EntityTypeSubmittal, types.SubmittalWorkflow, &sub.Status, req.Outcome); err != nil {
			return err
		}
		sub.ReviewNotes = req.Notes
		sub.ReviewedAt = lo.ToPtr(time.Now().UTC())
		sub.ReviewerID = lo.ToPtr(types.GetUserID(ctx))
		return nil
	})
}

// OnTransition tells the author about every review decision
func (s *submittalService) OnTransition(ctx context.Context, sub *submittal.Submittal, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, sub.ProjectID, types.ActivitySeverityInfo, "")

	if t.Created || !lo.Contains(types.SubmittalReviewOutcomes, types.SubmittalStatus(t.NewState)) {
		return
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifySubmittalReviewed, jobs.Payload{
		EntityID:     sub.ID,
		ProjectID:    sub.ProjectID,
		RecipientIDs: []string{sub.CreatedBy},
		Subject:      sub.Number + " reviewed: " + t.NewState,
		Data: map[string]interface{}{
			"submittal_id": sub.ID,
			"outcome":      t.NewState,
		},
	})
}
