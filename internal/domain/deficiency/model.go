package deficiency

import (
	"github.com/buildline/buildline/internal/types"
)

// Deficiency is a punch-list or quality item that must be fixed and verified
type Deficiency struct {
	ID          string                   `db:"id" json:"id"`
	ProjectID   string                   `db:"project_id" json:"project_id"`
	Title       string                   `db:"title" json:"title"`
	Description string                   `db:"description" json:"description"`
	Location    string                   `db:"location" json:"location"`
	Severity    types.DeficiencySeverity `db:"severity" json:"severity"`
	AssignedTo  *string                  `db:"assigned_to" json:"assigned_to,omitempty"`
	Status      types.DeficiencyStatus   `db:"status" json:"status"`
	types.BaseModel
}

func (d *Deficiency) GetID() string        { return d.ID }
func (d *Deficiency) GetProjectID() string { return d.ProjectID }
func (d *Deficiency) TrackingID() string   { return d.ID }
func (d *Deficiency) TrackedState() string { return string(d.Status) }

func (d *Deficiency) IsCritical() bool {
	return d.Severity == types.DeficiencySeverityCritical
}
