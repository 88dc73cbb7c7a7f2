package approval

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

// ClientApproval is a decision requested from the client through the portal
type ClientApproval struct {
	ID            string                     `db:"id" json:"id"`
	ProjectID     string                     `db:"project_id" json:"project_id"`
	Title         string                     `db:"title" json:"title"`
	Description   string                     `db:"description" json:"description"`
	RequestedFrom *string                    `db:"requested_from" json:"requested_from,omitempty"`
	DecidedBy     *string                    `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt     *time.Time                 `db:"decided_at" json:"decided_at,omitempty"`
	DecisionNote  *string                    `db:"decision_note" json:"decision_note,omitempty"`
	Status        types.ClientApprovalStatus `db:"status" json:"status"`
	types.BaseModel
}

func (a *ClientApproval) GetID() string        { return a.ID }
func (a *ClientApproval) GetProjectID() string { return a.ProjectID }
func (a *ClientApproval) TrackingID() string   { return a.ID }
func (a *ClientApproval) TrackedState() string { return string(a.Status) }
