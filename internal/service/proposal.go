package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/proposal"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type ProposalService interface {
	CreateProposal(ctx context.Context, req *dto.CreateProposalRequest) (*proposal.Proposal, error)
	GetProposal(ctx context.Context, id string) (*proposal.Proposal, error)
	ListProposals(ctx context.Context, filter *types.QueryFilter) (*dto.ListProposalsResponse, error)
	SendProposal(ctx context.Context, id string) (*proposal.Proposal, error)
	MarkViewed(ctx context.Context, id string) (*proposal.Proposal, error)
	SignProposal(ctx context.Context, id string, req *dto.SignProposalRequest) (*proposal.Proposal, error)
	DeclineProposal(ctx context.Context, id string) (*proposal.Proposal, error)
}

type proposalService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[proposal.Proposal, *proposal.Proposal]
}

func NewProposalService(params ServiceParams, dispatcher *Dispatcher) ProposalService {
	s := &proposalService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[proposal.Proposal](params, types.EntityTypeProposal, params.ProposalRepo, s)
	return s
}

// CreateProposal snapshots the estimate total as the proposal amount
func (s *proposalService) CreateProposal(ctx context.Context, req *dto.CreateProposalRequest) (*proposal.Proposal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	est, err := s.EstimateRepo.Get(ctx, req.EstimateID)
	if err != nil {
		return nil, err
	}

	p := &proposal.Proposal{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROPOSAL),
		EstimateID: est.ID,
		ProjectID:  est.ProjectID,
		Number:     types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PROPOSAL),
		Title:      req.Title,
		Amount:     est.Total,
		Status:     types.ProposalStatusDraft,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if err := s.store.create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *proposalService) GetProposal(ctx context.Context, id string) (*proposal.Proposal, error) {
	return s.store.get(ctx, id)
}

func (s *proposalService) ListProposals(ctx context.Context, filter *types.QueryFilter) (*dto.ListProposalsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *proposalService) SendProposal(ctx context.Context, id string) (*proposal.Proposal, error) {
	return s.move(ctx, id, types.ProposalStatusSent, func(p *proposal.Proposal, now time.Time) {
		p.SentAt = &now
	})
}

// MarkViewed is idempotent: a proposal already viewed stays as it is
func (s *proposalService) MarkViewed(ctx context.Context, id string) (*proposal.Proposal, error) {
	return s.store.update(ctx, id, func(ctx context.Context, p *proposal.Proposal) error {
		if p.Status == types.ProposalStatusViewed {
			return nil
		}
		if err := types.ProposalWorkflow.Check(types.EntityTypeProposal, p.Status, types.ProposalStatusViewed); err != nil {
			return err
		}
		p.Status = types.ProposalStatusViewed
		p.ViewedAt = lo.ToPtr(time.Now().UTC())
		return nil
	})
}

func (s *proposalService) SignProposal(ctx context.Context, id string, req *dto.SignProposalRequest) (*proposal.Proposal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.move(ctx, id, types.ProposalStatusSigned, func(p *proposal.Proposal, now time.Time) {
		p.SignedAt = &now
		p.SignerName = lo.ToPtr(req.SignerName)
	})
}

func (s *proposalService) DeclineProposal(ctx context.Context, id string) (*proposal.Proposal, error) {
	return s.move(ctx, id, types.ProposalStatusDeclined, nil)
}

func (s *proposalService) move(ctx context.Context, id string, to types.ProposalStatus, apply func(p *proposal.Proposal, now time.Time)) (*proposal.Proposal, error) {
	return s.store.update(ctx, id, func(ctx context.Context, p *proposal.Proposal) error {
		if err := types.ProposalWorkflow.Check(types.EntityTypeProposal, p.Status, to); err != nil {
			return err
		}
		p.Status = to
		if apply != nil {
			apply(p, time.Now().UTC())
		}
		return nil
	})
}

// OnTransition notifies the estimator once a proposal is signed
func (s *proposalService) OnTransition(ctx context.Context, p *proposal.Proposal, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, p.ProjectID, types.ActivitySeverityInfo, "")

	if t.Created || t.NewState != string(types.ProposalStatusSigned) {
		return
	}

	est, err := s.EstimateRepo.Get(ctx, p.EstimateID)
	if err != nil {
		s.Logger.Errorw("failed to load estimate for signed proposal",
			"proposal_id", p.ID,
			"estimate_id", p.EstimateID,
			"error", err,
		)
		return
	}

	payload := jobs.Payload{
		EntityID:  p.ID,
		ProjectID: p.ProjectID,
		Subject:   "Proposal " + p.Number + " signed",
		Data: map[string]interface{}{
			"proposal_id": p.ID,
			"estimate_id": p.EstimateID,
			"amount":      p.Amount.StringFixed(2),
		},
	}
	if est.AssignedTo != nil {
		payload.RecipientIDs = []string{*est.AssignedTo}
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifyProposalSigned, payload)
}
