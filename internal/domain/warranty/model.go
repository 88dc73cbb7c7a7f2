package warranty

import (
	"github.com/buildline/buildline/internal/types"
)

type Claim struct {
	ID          string                    `db:"id" json:"id"`
	ProjectID   string                    `db:"project_id" json:"project_id"`
	Title       string                    `db:"title" json:"title"`
	Description string                    `db:"description" json:"description"`
	Resolution  *string                   `db:"resolution" json:"resolution,omitempty"`
	Status      types.WarrantyClaimStatus `db:"status" json:"status"`
	types.BaseModel
}

func (c *Claim) GetID() string        { return c.ID }
func (c *Claim) GetProjectID() string { return c.ProjectID }
func (c *Claim) TrackingID() string   { return c.ID }
func (c *Claim) TrackedState() string { return string(c.Status) }
