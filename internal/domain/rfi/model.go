package rfi

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

// RFI is a request for information raised on a project
type RFI struct {
	ID         string          `db:"id" json:"id"`
	ProjectID  string          `db:"project_id" json:"project_id"`
	Number     string          `db:"number" json:"number"`
	Subject    string          `db:"subject" json:"subject"`
	Question   string          `db:"question" json:"question"`
	Answer     *string         `db:"answer" json:"answer,omitempty"`
	AssignedTo *string         `db:"assigned_to" json:"assigned_to,omitempty"`
	DueDate    *time.Time      `db:"due_date" json:"due_date,omitempty"`
	AnsweredAt *time.Time      `db:"answered_at" json:"answered_at,omitempty"`
	AnsweredBy *string         `db:"answered_by" json:"answered_by,omitempty"`
	Status     types.RFIStatus `db:"status" json:"status"`
	types.BaseModel
}

func (r *RFI) GetID() string        { return r.ID }
func (r *RFI) GetProjectID() string { return r.ProjectID }
func (r *RFI) TrackingID() string   { return r.ID }
func (r *RFI) TrackedState() string { return string(r.Status) }
