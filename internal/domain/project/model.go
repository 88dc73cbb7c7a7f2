package project

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

type Project struct {
	ID         string              `db:"id" json:"id"`
	Name       string              `db:"name" json:"name"`
	Code       string              `db:"code" json:"code"`
	ClientName string              `db:"client_name" json:"client_name"`
	Address    string              `db:"address" json:"address"`
	ManagerID  *string             `db:"manager_id" json:"manager_id,omitempty"`
	StartDate  *time.Time          `db:"start_date" json:"start_date,omitempty"`
	EndDate    *time.Time          `db:"end_date" json:"end_date,omitempty"`
	Status     types.ProjectStatus `db:"status" json:"status"`
	types.BaseModel
}

func (p *Project) GetID() string        { return p.ID }
func (p *Project) TrackingID() string   { return p.ID }
func (p *Project) TrackedState() string { return string(p.Status) }
