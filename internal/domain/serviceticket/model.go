package serviceticket

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

type ServiceTicket struct {
	ID           string                    `db:"id" json:"id"`
	Number       string                    `db:"number" json:"number"`
	ProjectID    *string                   `db:"project_id" json:"project_id,omitempty"`
	CustomerName string                    `db:"customer_name" json:"customer_name"`
	Description  string                    `db:"description" json:"description"`
	Priority     string                    `db:"priority" json:"priority"`
	AssignedTo   *string                   `db:"assigned_to" json:"assigned_to,omitempty"`
	CompletedAt  *time.Time                `db:"completed_at" json:"completed_at,omitempty"`
	Status       types.ServiceTicketStatus `db:"status" json:"status"`
	types.BaseModel
}

func (t *ServiceTicket) GetID() string        { return t.ID }
func (t *ServiceTicket) TrackingID() string   { return t.ID }
func (t *ServiceTicket) TrackedState() string { return string(t.Status) }

func (t *ServiceTicket) GetProjectID() string {
	if t.ProjectID == nil {
		return ""
	}
	return *t.ProjectID
}
