package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/estimate"
	"github.com/buildline/buildline/internal/recalc"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

// EstimateService manages estimates and their sections and line items. Every
// child write re-derives the affected section and estimate in the same transaction.
type EstimateService interface {
	CreateEstimate(ctx context.Context, req *dto.CreateEstimateRequest) (*estimate.Estimate, error)
	GetEstimate(ctx context.Context, id string) (*estimate.Estimate, error)
	ListEstimates(ctx context.Context, filter *types.QueryFilter) (*dto.ListEstimatesResponse, error)
	UpdateEstimate(ctx context.Context, id string, req *dto.UpdateEstimateRequest) (*estimate.Estimate, error)

	CreateSection(ctx context.Context, estimateID string, req *dto.CreateSectionRequest) (*estimate.Section, error)
	ListSections(ctx context.Context, estimateID string) (*dto.ListSectionsResponse, error)
	UpdateSection(ctx context.Context, id string, req *dto.UpdateSectionRequest) (*estimate.Section, error)
	DeleteSection(ctx context.Context, id string) error

	CreateLineItem(ctx context.Context, sectionID string, req *dto.CreateLineItemRequest) (*estimate.LineItem, error)
	ListLineItems(ctx context.Context, sectionID string) (*dto.ListLineItemsResponse, error)
	UpdateLineItem(ctx context.Context, id string, req *dto.UpdateLineItemRequest) (*estimate.LineItem, error)
	DeleteLineItem(ctx context.Context, id string) error
}

type estimateService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[estimate.Estimate, *estimate.Estimate]
}

func NewEstimateService(params ServiceParams, dispatcher *Dispatcher) EstimateService {
	s := &estimateService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[estimate.Estimate](params, types.EntityTypeEstimate, params.EstimateRepo, s)
	return s
}

func (s *estimateService) CreateEstimate(ctx context.Context, req *dto.CreateEstimateRequest) (*estimate.Estimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.ProjectRepo.Get(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	e := req.ToEstimate(ctx)
	if err := s.store.create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *estimateService) GetEstimate(ctx context.Context, id string) (*estimate.Estimate, error) {
	return s.store.get(ctx, id)
}

func (s *estimateService) ListEstimates(ctx context.Context, filter *types.QueryFilter) (*dto.ListEstimatesResponse, error) {
	return s.store.list(ctx, filter)
}

// UpdateEstimate applies header changes. A markup change re-derives the totals.
func (s *estimateService) UpdateEstimate(ctx context.Context, id string, req *dto.UpdateEstimateRequest) (*estimate.Estimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		updated       *estimate.Estimate
		markupChanged bool
	)
	err := s.Recalc.Cascade(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.store.update(ctx, id, func(ctx context.Context, e *estimate.Estimate) error {
			if req.Status != nil && *req.Status != e.Status {
				if err := types.EstimateWorkflow.Check(types.EntityTypeEstimate, e.Status, *req.Status); err != nil {
					return err
				}
				e.Status = *req.Status
			}
			if req.Name != nil {
				e.Name = *req.Name
			}
			if req.AssignedTo != nil {
				e.AssignedTo = req.AssignedTo
			}
			if req.MarkupPercent != nil && !req.MarkupPercent.Equal(e.MarkupPercent) {
				e.MarkupPercent = *req.MarkupPercent
				markupChanged = true
			}
			return nil
		})
		return err
	}, func() []recalc.Target {
		if !markupChanged {
			return nil
		}
		return []recalc.Target{s.estimateTarget(id)}
	})
	if err != nil {
		return nil, err
	}
	if markupChanged {
		return s.store.get(ctx, id)
	}
	return updated, nil
}

func (s *estimateService) OnTransition(ctx context.Context, e *estimate.Estimate, t tracker.Transition) {
	s.dispatcher.RecordTransition(ctx, t, e.ProjectID, types.ActivitySeverityInfo, "")
}

func (s *estimateService) CreateSection(ctx context.Context, estimateID string, req *dto.CreateSectionRequest) (*estimate.Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}

	section := req.ToSection(ctx, estimateID)
	err := s.Recalc.Cascade(ctx, func(ctx context.Context) error {
		if _, err := s.EstimateRepo.Get(ctx, estimateID); err != nil {
			return err
		}
		return s.SectionRepo.Create(ctx, section)
	}, func() []recalc.Target {
		return []recalc.Target{s.estimateTarget(estimateID)}
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

func (s *estimateService) ListSections(ctx context.Context, estimateID string) (*dto.ListSectionsResponse, error) {
	if _, err := s.EstimateRepo.Get(ctx, estimateID); err != nil {
		return nil, err
	}
	items, err := s.SectionRepo.ListByEstimate(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(items, len(items), len(items), 0), nil
}

func (s *estimateService) UpdateSection(ctx context.Context, id string, req *dto.UpdateSectionRequest) (*estimate.Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var section *estimate.Section
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		section, err = s.SectionRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			section.Name = *req.Name
		}
		if req.SortOrder != nil {
			section.SortOrder = *req.SortOrder
		}
		section.Touch(ctx)
		return s.SectionRepo.Update(ctx, section)
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes the section with its line items and re-derives the estimate
func (s *estimateService) DeleteSection(ctx context.Context, id string) error {
	var estimateID string
	return s.Recalc.Cascade(ctx, func(ctx context.Context) error {
		section, err := s.SectionRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		estimateID = section.EstimateID

		items, err := s.LineItemRepo.ListBySection(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := s.LineItemRepo.Delete(ctx, item.ID); err != nil {
				return err
			}
		}
		return s.SectionRepo.Delete(ctx, id)
	}, func() []recalc.Target {
		return []recalc.Target{s.estimateTarget(estimateID)}
	})
}

func (s *estimateService) CreateLineItem(ctx context.Context, sectionID string, req *dto.CreateLineItemRequest) (*estimate.LineItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateOrganizationContext(ctx); err != nil {
		return nil, err
	}

	var item *estimate.LineItem
	err := s.Recalc.Cascade(ctx, func(ctx context.Context) error {
		section, err := s.SectionRepo.Get(ctx, sectionID)
		if err != nil {
			return err
		}
		item = req.ToLineItem(ctx, section)
		return s.LineItemRepo.Create(ctx, item)
	}, func() []recalc.Target {
		return s.lineItemTargets(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *estimateService) ListLineItems(ctx context.Context, sectionID string) (*dto.ListLineItemsResponse, error) {
	if _, err := s.SectionRepo.Get(ctx, sectionID); err != nil {
		return nil, err
	}
	items, err := s.LineItemRepo.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(items, len(items), len(items), 0), nil
}

func (s *estimateService) UpdateLineItem(ctx context.Context, id string, req *dto.UpdateLineItemRequest) (*estimate.LineItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var item *estimate.LineItem
	err := s.Recalc.Cascade(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.LineItemRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.UnitCost != nil {
			item.UnitCost = *req.UnitCost
		}
		item.ComputeTotal()
		item.Touch(ctx)
		return s.LineItemRepo.Update(ctx, item)
	}, func() []recalc.Target {
		return s.lineItemTargets(item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *estimateService) DeleteLineItem(ctx context.Context, id string) error {
	var item *estimate.LineItem
	return s.Recalc.Cascade(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.LineItemRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		return s.LineItemRepo.Delete(ctx, id)
	}, func() []recalc.Target {
		return s.lineItemTargets(item)
	})
}

// lineItemTargets settles the section before the estimate that sums it
func (s *estimateService) lineItemTargets(item *estimate.LineItem) []recalc.Target {
	if item == nil {
		return nil
	}
	return []recalc.Target{
		{
			EntityType:   types.EntityTypeSection,
			ParentID:     item.SectionID,
			Recalculator: recalc.RecalculatorFunc(s.recalculateSection),
		},
		s.estimateTarget(item.EstimateID),
	}
}

func (s *estimateService) estimateTarget(estimateID string) recalc.Target {
	return recalc.Target{
		EntityType:   types.EntityTypeEstimate,
		ParentID:     estimateID,
		Recalculator: recalc.RecalculatorFunc(s.recalculateEstimate),
	}
}

func (s *estimateService) recalculateSection(ctx context.Context, sectionID string) error {
	section, err := s.SectionRepo.Get(ctx, sectionID)
	if err != nil {
		return err
	}
	items, err := s.LineItemRepo.ListBySection(ctx, sectionID)
	if err != nil {
		return err
	}

	section.Total, section.ItemCount = estimate.SectionTotals(items)
	section.Touch(ctx)
	return s.SectionRepo.Update(ctx, section)
}

func (s *estimateService) recalculateEstimate(ctx context.Context, estimateID string) error {
	e, err := s.EstimateRepo.Get(ctx, estimateID)
	if err != nil {
		return err
	}
	sections, err := s.SectionRepo.ListByEstimate(ctx, estimateID)
	if err != nil {
		return err
	}

	previous := e.Total
	e.Subtotal, e.MarkupAmount, e.Total = estimate.EstimateTotals(sections, e.MarkupPercent)
	e.Touch(ctx)
	if err := s.EstimateRepo.Update(ctx, e); err != nil {
		return err
	}

	if !previous.Equal(e.Total) {
		s.Logger.Debugw("estimate recalculated",
			"estimate_id", e.ID,
			"organization_id", e.OrganizationID,
			"subtotal", e.Subtotal.StringFixed(2),
			"markup_amount", e.MarkupAmount.StringFixed(2),
			"total", e.Total.StringFixed(2),
			"sections", len(sections),
			"line_items", lo.SumBy(sections, func(sec *estimate.Section) int { return sec.ItemCount }),
		)
	}
	return nil
}
