package service

import (
	"context"
	"fmt"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/domain/incident"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
)

type SafetyIncidentService interface {
	ReportIncident(ctx context.Context, req *dto.ReportIncidentRequest) (*incident.SafetyIncident, error)
	GetIncident(ctx context.Context, id string) (*incident.SafetyIncident, error)
	ListIncidents(ctx context.Context, filter *types.QueryFilter) (*dto.ListIncidentsResponse, error)
	InvestigateIncident(ctx context.Context, id string) (*incident.SafetyIncident, error)
	CloseIncident(ctx context.Context, id string) (*incident.SafetyIncident, error)
}

type safetyIncidentService struct {
	ServiceParams
	dispatcher *Dispatcher
	store      *trackedStore[incident.SafetyIncident, *incident.SafetyIncident]
}

func NewSafetyIncidentService(params ServiceParams, dispatcher *Dispatcher) SafetyIncidentService {
	s := &safetyIncidentService{ServiceParams: params, dispatcher: dispatcher}
	s.store = newTrackedStore[incident.SafetyIncident](params, types.EntityTypeSafetyIncident, params.IncidentRepo, s)
	return s
}

func (s *safetyIncidentService) ReportIncident(ctx context.Context, req *dto.ReportIncidentRequest) (*incident.SafetyIncident, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireProject(ctx, s.ServiceParams, req.ProjectID); err != nil {
		return nil, err
	}

	i := req.ToIncident(ctx)
	if err := s.store.create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *safetyIncidentService) GetIncident(ctx context.Context, id string) (*incident.SafetyIncident, error) {
	return s.store.get(ctx, id)
}

func (s *safetyIncidentService) ListIncidents(ctx context.Context, filter *types.QueryFilter) (*dto.ListIncidentsResponse, error) {
	return s.store.list(ctx, filter)
}

func (s *safetyIncidentService) InvestigateIncident(ctx context.Context, id string) (*incident.SafetyIncident, error) {
	return s.store.update(ctx, id, func(ctx context.Context, i *incident.SafetyIncident) error {
		return moveTo(types.EntityTypeSafetyIncident, types.IncidentWorkflow, &i.Status, types.IncidentStatusInvestigating)
	})
}

func (s *safetyIncidentService) CloseIncident(ctx context.Context, id string) (*incident.SafetyIncident, error) {
	return s.store.update(ctx, id, func(ctx context.Context, i *incident.SafetyIncident) error {
		return moveTo(types.EntityTypeSafetyIncident, types.IncidentWorkflow, &i.Status, types.IncidentStatusClosed)
	})
}

// OnTransition escalates OSHA reportable incidents when they are reported
func (s *safetyIncidentService) OnTransition(ctx context.Context, i *incident.SafetyIncident, t tracker.Transition) {
	if !t.Created {
		s.dispatcher.RecordTransition(ctx, t, i.ProjectID, types.ActivitySeverityInfo, "")
		return
	}

	severity := types.ActivitySeverityInfo
	if i.OSHAReportable {
		severity = types.ActivitySeverityElevated
	}
	s.dispatcher.RecordActivity(ctx, ActivityParams{
		ProjectID:   i.ProjectID,
		EntityType:  types.EntityTypeSafetyIncident,
		EntityID:    i.ID,
		Category:    types.ActivityCategorySafety,
		Action:      "safety_incident.reported",
		Description: fmt.Sprintf("%s safety incident reported: %s", i.Severity, i.Title),
		Severity:    severity,
		Metadata: types.Metadata{
			"severity":        string(i.Severity),
			"osha_reportable": i.OSHAReportable,
			"new_status":      t.NewState,
		},
	})

	if !i.OSHAReportable {
		return
	}
	s.dispatcher.EnqueueNotification(ctx, types.JobNotifySafetyIncident, jobs.Payload{
		EntityID:  i.ID,
		ProjectID: i.ProjectID,
		Subject:   "OSHA reportable incident: " + i.Title,
		Data: map[string]interface{}{
			"incident_id": i.ID,
			"severity":    string(i.Severity),
			"occurred_at": i.OccurredAt,
		},
	})
}
