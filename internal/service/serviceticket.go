package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/serviceticket"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type ServiceTicketService interface {
	CreateServiceTicket(ctx context.Context, req *dto.CreateServiceTicketRequest) (*serviceticket.ServiceTicket, error)
	GetServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error)
	ListServiceTickets(ctx context.Context, filter *types.QueryFilter) (*dto.ListServiceTicketsResponse, error)
	// AssignServiceTicket also reassigns a ticket that is already assigned
	AssignServiceTicket(ctx context.Context, id string, req *dto.AssignServiceTicketRequest) (*serviceticket.ServiceTicket, error)
	StartServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error)
	CompleteServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error)
	CloseServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error)
	CancelServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error)
}

type serviceTicketService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[serviceticket.ServiceTicket, *serviceticket.ServiceTicket]
}

func NewServiceTicketService(params ServiceParams, dispatcher *Dispatcher) ServiceTicketService {
	s := &serviceTicketService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[serviceticket.ServiceTicket](params, types.EntityTypeServiceTicket, params.ServiceTicketRepo, s)
	return s
}

func (s *serviceTicketService) CreateServiceTicket(ctx context.Context, req *dto.CreateServiceTicketRequest) (*serviceticket.ServiceTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ProjectID != nil {
		if err := requireProject(ctx, s.ServiceParams, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	t := req.ToServiceTicket(ctx)
	if err := s.store.create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *serviceTicketService) GetServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error) {
	return s.store.get(ctx, id)
}

func (s *serviceTicketService) ListServiceTickets(ctx context.Context, filter *types.QueryFilter) (*dto.ListServiceTicketsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *serviceTicketService) AssignServiceTicket(ctx context.Context, id string, req *dto.AssignServiceTicketRequest) (*serviceticket.ServiceTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.update(ctx, id, func(ctx context.Context, t *serviceticket.ServiceTicket) error {
		if err := moveTo(types.EntityTypeServiceTicket, types.ServiceTicketWorkflow, &t.Status, types.ServiceTicketStatusAssigned); err != nil {
			return err
		}
		t.AssignedTo = lo.ToPtr(req.AssigneeID)
		return nil
	})
}

func (s *serviceTicketService) StartServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error) {
	return s.move(ctx, id, types.ServiceTicketStatusInProgress)
}

func (s *serviceTicketService) CompleteServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error) {
	return s.store.update(ctx, id, func(ctx context.Context, t *serviceticket.ServiceTicket) error {
		if err := moveTo(types.EntityTypeServiceTicket, types.ServiceTicketWorkflow, &t.Status, types.ServiceTicketStatusCompleted); err != nil {
			return err
		}
		t.CompletedAt = lo.ToPtr(time.Now().UTC())
		return nil
	})
}

func (s *serviceTicketService) CloseServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error) {
	return s.move(ctx, id, types.ServiceTicketStatusClosed)
}

func (s *serviceTicketService) CancelServiceTicket(ctx context.Context, id string) (*serviceticket.ServiceTicket, error) {
	return s.move(ctx, id, types.ServiceTicketStatusCanceled)
}

func (s *serviceTicketService) move(ctx context.Context, id string, to types.ServiceTicketStatus) (*serviceticket.ServiceTicket, error) {
	return s.store.update(ctx, id, func(ctx context.Context, t *serviceticket.ServiceTicket) error {
		return moveTo(types.EntityTypeServiceTicket, types.ServiceTicketWorkflow, &t.Status, to)
	})
}

func (s *serviceTicketService) OnTransition(ctx context.Context, t *serviceticket.ServiceTicket, tr tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, tr, t.GetProjectID(), types.ActivitySeverityInfo, "")

	if tr.Created || tr.NewState != string(types.ServiceTicketStatusCompleted) {
		return
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifyServiceTicketComplete, jobs.Payload{
		EntityID:     t.ID,
		ProjectID:    t.GetProjectID(),
		RecipientIDs: []string{t.CreatedBy},
		Subject:      "Service ticket " + t.Number + " completed",
		Data: map[string]interface{}{
			"service_ticket_id": t.ID,
			"customer_name":     t.CustomerName,
		},
	})
}
