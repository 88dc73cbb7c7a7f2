package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/warranty"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type WarrantyClaimService interface {
	CreateClaim(ctx context.Context, req *dto.CreateWarrantyClaimRequest) (*warranty.Claim, error)
	GetClaim(ctx context.Context, id string) (*warranty.Claim, error)
	ListClaims(ctx context.Context, filter *types.QueryFilter) (*dto.ListWarrantyClaimsResponse, error)
	ReviewClaim(ctx context.Context, id string) (*warranty.Claim, error)
	ApproveClaim(ctx context.Context, id string) (*warranty.Claim, error)
	DenyClaim(ctx context.Context, id string) (*warranty.Claim, error)
	ResolveClaim(ctx context.Context, id string, req *dto.ResolveWarrantyClaimRequest) (*warranty.Claim, error)
}

type warrantyClaimService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[warranty.Claim, *warranty.Claim]
}

func NewWarrantyClaimService(params ServiceParams, dispatcher *Dispatcher) WarrantyClaimService {
	s := &warrantyClaimService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[warranty.Claim](params, types.EntityTypeWarrantyClaim, params.WarrantyClaimRepo, s)
	return s
}

func (s *warrantyClaimService) CreateClaim(ctx context.Context, req *dto.CreateWarrantyClaimRequest) (*warranty.Claim, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	c := req.ToClaim(ctx)
	if err := s.store.create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *warrantyClaimService) GetClaim(ctx context.Context, id string) (*warranty.Claim, error) {
	return s.store.get(ctx, id)
}

func (s *warrantyClaimService) ListClaims(ctx context.Context, filter *types.QueryFilter) (*dto.ListWarrantyClaimsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *warrantyClaimService) ReviewClaim(ctx context.Context, id string) (*warranty.Claim, error) {
	return s.move(ctx, id, types.WarrantyClaimStatusUnderReview)
}

func (s *warrantyClaimService) ApproveClaim(ctx context.Context, id string) (*warranty.Claim, error) {
	return s.move(ctx, id, types.WarrantyClaimStatusApproved)
}

func (s *warrantyClaimService) DenyClaim(ctx context.Context, id string) (*warranty.Claim, error) {
	return s.move(ctx, id, types.WarrantyClaimStatusDenied)
}

func (s *warrantyClaimService) ResolveClaim(ctx context.Context, id string, req *dto.ResolveWarrantyClaimRequest) (*warranty.Claim, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.store.update(ctx, id, func(ctx context.Context, c *warranty.Claim) error {
		if err := moveTo(types.EntityTypeWarrantyClaim, types.WarrantyClaimWorkflow, &c.Status, types.WarrantyClaimStatusResolved); err != nil {
			return err
		}
		c.Resolution = lo.ToPtr(req.Resolution)
		return nil
	})
}

func (s *warrantyClaimService) move(ctx context.Context, id string, to types.WarrantyClaimStatus) (*warranty.Claim, error) {
	return s.store.update(ctx, id, func(ctx context.Context, c *warranty.Claim) error {
		return moveTo(types.EntityTypeWarrantyClaim, types.WarrantyClaimWorkflow, &c.Status, to)
	})
}

func (s *warrantyClaimService) OnTransition(ctx context.Context, c *warranty.Claim, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, c.ProjectID, types.ActivitySeverityInfo, "")
}
