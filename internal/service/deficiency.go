package service

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/deficiency"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
)

type DeficiencyService interface {
	CreateDeficiency(ctx context.Context, req *dto.CreateDeficiencyRequest) (*deficiency.Deficiency, error)
	GetDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error)
	ListDeficiencies(ctx context.Context, filter *types.QueryFilter) (*dto.ListDeficienciesResponse, error)
	StartDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error)
	ResolveDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error)
	VerifyDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error)
	ReopenDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error)
}

type deficiencyService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[deficiency.Deficiency, *deficiency.Deficiency]
}

func NewDeficiencyService(params ServiceParams, dispatcher *Dispatcher) DeficiencyService {
	s := &deficiencyService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[deficiency.Deficiency](params, types.EntityTypeDeficiency, params.DeficiencyRepo, s)
	return s
}

func (s *deficiencyService) CreateDeficiency(ctx context.Context, req *dto.CreateDeficiencyRequest) (*deficiency.Deficiency, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	d := req.ToDeficiency(ctx)
	if err := s.store.create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deficiencyService) GetDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error) {
	return s.store.get(ctx, id)
}

func (s *deficiencyService) ListDeficiencies(ctx context.Context, filter *types.QueryFilter) (*dto.ListDeficienciesResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *deficiencyService) StartDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error) {
	return s.move(ctx, id, types.DeficiencyStatusInProgress)
}

func (s *deficiencyService) ResolveDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error) {
	return s.move(ctx, id, types.DeficiencyStatusResolved)
}

func (s *deficiencyService) VerifyDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error) {
	return s.move(ctx, id, types.DeficiencyStatusVerified)
}

// ReopenDeficiency sends a resolved item back when the fix is not accepted
func (s *deficiencyService) ReopenDeficiency(ctx context.Context, id string) (*deficiency.Deficiency, error) {
	return s.move(ctx, id, types.DeficiencyStatusOpen)
}

func (s *deficiencyService) move(ctx context.Context, id string, to types.DeficiencyStatus) (*deficiency.Deficiency, error) {
	return s.store.update(ctx, id, func(ctx context.Context, d *deficiency.Deficiency) error {
		return moveTo(types.EntityTypeDeficiency, types.DeficiencyWorkflow, &d.Status, to)
	})
}

// OnTransition logs critical deficiencies at elevated severity on every change
func (s *deficiencyService) OnTransition(ctx context.Context, d *deficiency.Deficiency, t tracker.Transition) {
	severity := types.ActivitySeverityInfo
	if d.IsCritical() {
		severity = types.ActivitySeverityElevated
	}

	if !t.Created {
		s.dispatcher.RecordTransition(ctx, t, d.ProjectID, severity, "")
		return
	}
	s.dispatcher.RecordActivity(ctx, ActivityParams{
		ProjectID:   d.ProjectID,
		EntityType:  types.EntityTypeDeficiency,
		EntityID:    d.ID,
		Category:    types.ActivityCategoryQuality,
		Action:      "deficiency.created",
		Description: string(d.Severity) + " deficiency logged: " + d.Title,
		Severity:    severity,
		Metadata: types.Metadata{
			"severity":   string(d.Severity),
			"location":   d.Location,
			"new_status": t.NewState,
		},
	})
}
