package dto

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/domain/incident"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
)

type ReportIncidentRequest struct {
	ProjectID      string                 `json:"project_id" validate:"required"`
	Title          string                 `json:"title" validate:"required,max=255"`
	Description    string                 `json:"description"`
	OccurredAt     time.Time              `json:"occurred_at" validate:"required"`
	Severity       types.IncidentSeverity `json:"severity" validate:"required,oneof=minor moderate serious fatal"`
	OSHAReportable bool                   `json:"osha_reportable"`
}

type ListIncidentsResponse = types.ListResponse[*incident.SafetyIncident]

func (r *ReportIncidentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *ReportIncidentRequest) ToIncident(ctx context.Context) *incident.SafetyIncident {
	return &incident.SafetyIncident{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SAFETY_INCIDENT),
		ProjectID:      r.ProjectID,
		Title:          r.Title,
		Description:    r.Description,
		OccurredAt:     r.OccurredAt.UTC(),
		Severity:       r.Severity,
		OSHAReportable: r.OSHAReportable,
		Status:         types.IncidentStatusOpen,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}
