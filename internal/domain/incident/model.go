package incident

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

// SafetyIncident is a reported safety event on a project
type SafetyIncident struct {
	ID             string                 `db:"id" json:"id"`
	ProjectID      string                 `db:"project_id" json:"project_id"`
	Title          string                 `db:"title" json:"title"`
	Description    string                 `db:"description" json:"description"`
	OccurredAt     time.Time              `db:"occurred_at" json:"occurred_at"`
	Severity       types.IncidentSeverity `db:"severity" json:"severity"`
	OSHAReportable bool                   `db:"osha_reportable" json:"osha_reportable"`
	Status         types.IncidentStatus   `db:"status" json:"status"`
	types.BaseModel
}

func (i *SafetyIncident) GetID() string        { return i.ID }
func (i *SafetyIncident) GetProjectID() string { return i.ProjectID }
func (i *SafetyIncident) TrackingID() string   { return i.ID }
func (i *SafetyIncident) TrackedState() string { return string(i.Status) }
