package submittal

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

type Submittal struct {
	ID          string                `db:"id" json:"id"`
	ProjectID   string                `db:"project_id" json:"project_id"`
	Number      string                `db:"number" json:"number"`
	Title       string                `db:"title" json:"title"`
	SpecSection string                `db:"spec_section" json:"spec_section"`
	ReviewerID  *string               `db:"reviewer_id" json:"reviewer_id,omitempty"`
	ReviewNotes *string               `db:"review_notes" json:"review_notes,omitempty"`
	SubmittedAt *time.Time            `db:"submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time            `db:"reviewed_at" json:"reviewed_at,omitempty"`
	Status      types.SubmittalStatus `db:"status" json:"status"`
	types.BaseModel
}

func (s *Submittal) GetID() string        { return s.ID }
func (s *Submittal) GetProjectID() string { return s.ProjectID }
func (s *Submittal) TrackingID() string   { return s.ID }
func (s *Submittal) TrackedState() string { return string(s.Status) }
