package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/rfi"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type RFIService interface {
	CreateRFI(ctx context.Context, req *dto.CreateRFIRequest) (*rfi.RFI, error)
	GetRFI(ctx context.Context, id string) (*rfi.RFI, error)
	ListRFIs(ctx context.Context, filter *types.QueryFilter) (*dto.ListRFIsResponse, error)
	AnswerRFI(ctx context.Context, id string, req *dto.AnswerRFIRequest) (*rfi.RFI, error)
	CloseRFI(ctx context.Context, id string) (*rfi.RFI, error)
	ReopenRFI(ctx context.Context, id string) (*rfi.RFI, error)
}

type rfiService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[rfi.RFI, *rfi.RFI]
}

func NewRFIService(params ServiceParams, dispatcher *Dispatcher) RFIService {
	s := &rfiService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[rfi.RFI](params, types.EntityTypeRFI, params.RFIRepo, s)
	return s
}

func (s *rfiService) CreateRFI(ctx context.Context, req *dto.CreateRFIRequest) (*rfi.RFI, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	r := req.ToRFI(ctx)
	if err := s.store.create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *rfiService) GetRFI(ctx context.Context, id string) (*rfi.RFI, error) {
	return s.store.get(ctx, id)
}

func (s *rfiService) ListRFIs(ctx context.Context, filter *types.QueryFilter) (*dto.ListRFIsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *rfiService) AnswerRFI(ctx context.Context, id string, req *dto.AnswerRFIRequest) (*rfi.RFI, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.update(ctx, id, func(ctx context.Context, r *rfi.RFI) error {
		if err := moveTo(types.EntityTypeRFI, types.RFIWorkflow, &r.Status, types.RFIStatusAnswered); err != nil {
			return err
		}
		r.Answer = lo.ToPtr(req.Answer)
		r.AnsweredAt = lo.ToPtr(time.Now().UTC())
		r.AnsweredBy = lo.ToPtr(types.GetUserID(ctx))
		return nil
	})
}

func (s *rfiService) CloseRFI(ctx context.Context, id string) (*rfi.RFI, error) {
	return s.store.update(ctx, id, func(ctx context.Context, r *rfi.RFI) error {
		return moveTo(types.EntityTypeRFI, types.RFIWorkflow, &r.Status, types.RFIStatusClosed)
	})
}

// ReopenRFI clears the previous answer so the RFI can be answered again
func (s *rfiService) ReopenRFI(ctx context.Context, id string) (*rfi.RFI, error) {
	return s.store.update(ctx, id, func(ctx context.Context, r *rfi.RFI) error {
		if err := moveTo(types.EntityTypeRFI, types.RFIWorkflow, &r.Status, types.RFIStatusOpen); err != nil {
			return err
		}
		r.Answer = nil
		r.AnsweredAt = nil
		r.AnsweredBy = nil
		return nil
	})
}

func (s *rfiService) OnTransition(ctx context.Context, r *rfi.RFI, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, r.ProjectID, types.ActivitySeverityInfo, "")

	if t.Created || t.NewState != string(types.RFIStatusAnswered) {
		return
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifyRFIAnswered, jobs.Payload{
		EntityID:     r.ID,
		ProjectID:    r.ProjectID,
		RecipientIDs: []string{r.CreatedBy},
		Subject:      r.Number + " answered: " + r.Subject,
		Data: map[string]interface{}{
			"rfi_id": r.ID,
			"number": r.Number,
		},
	})
}
