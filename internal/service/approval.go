package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/approval"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type ClientApprovalService interface {
	CreateApproval(ctx context.Context, req *dto.CreateClientApprovalRequest) (*approval.ClientApproval, error)
	GetApproval(ctx context.Context, id string) (*approval.ClientApproval, error)
	ListApprovals(ctx context.Context, filter *types.QueryFilter) (*dto.ListClientApprovalsResponse, error)
	Approve(ctx context.Context, id string, req *dto.DecisionRequest) (*approval.ClientApproval, error)
	Reject(ctx context.Context, id string, req *dto.DecisionRequest) (*approval.ClientApproval, error)
}

type clientApprovalService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[approval.ClientApproval, *approval.ClientApproval]
}

func NewClientApprovalService(params ServiceParams, dispatcher *Dispatcher) ClientApprovalService {
	s := &clientApprovalService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[approval.ClientApproval](params, types.EntityTypeClientApproval, params.ClientApprovalRepo, s)
	return s
}

func (s *clientApprovalService) CreateApproval(ctx context.Context, req *dto.CreateClientApprovalRequest) (*approval.ClientApproval, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	a := req.ToClientApproval(ctx)
	if err := s.store.create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *clientApprovalService) GetApproval(ctx context.Context, id string) (*approval.ClientApproval, error) {
	return s.store.get(ctx, id)
}

func (s *clientApprovalService) ListApprovals(ctx context.Context, filter *types.QueryFilter) (*dto.ListClientApprovalsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *clientApprovalService) Approve(ctx context.Context, id string, req *dto.DecisionRequest) (*approval.ClientApproval, error) {
	return s.decide(ctx, id, types.ClientApprovalStatusApproved, req)
}

func (s *clientApprovalService) Reject(ctx context.Context, id string, req *dto.DecisionRequest) (*approval.ClientApproval, error) {
	return s.decide(ctx, id, types.ClientApprovalStatusRejected, req)
}

func (s *clientApprovalService) decide(ctx context.Context, id string, to types.ClientApprovalStatus, req *dto.DecisionRequest) (*approval.ClientApproval, error) {
	if req == nil {
		req = &dto.DecisionRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.update(ctx, id, func(ctx context.Context, a *approval.ClientApproval) error {
		if err := moveTo(types.EntityTypeClientApproval, types.ClientApprovalWorkflow, &a.Status, to); err != nil {
			return err
		}
		a.DecidedBy = lo.ToPtr(types.GetUserID(ctx))
		a.DecidedAt = lo.ToPtr(time.Now().UTC())
		a.DecisionNote = req.Note
		return nil
	})
}

// OnTransition tells the requester about the client's decision
func (s *clientApprovalService) OnTransition(ctx context.Context, a *approval.ClientApproval, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, a.ProjectID, types.ActivitySeverityInfo, "")

	if t.Created {
		return
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifyClientApproval, jobs.Payload{
		EntityID:     a.ID,
		ProjectID:    a.ProjectID,
		RecipientIDs: []string{a.CreatedBy},
		Subject:      "Client " + t.NewState + ": " + a.Title,
		Data: map[string]interface{}{
			"client_approval_id": a.ID,
			"decision":           t.NewState,
		},
	})
}
