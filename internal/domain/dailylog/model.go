package dailylog

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

type DailyLog struct {
	ID         string               `db:"id" json:"id"`
	ProjectID  string               `db:"project_id" json:"project_id"`
	LogDate    time.Time            `db:"log_date" json:"log_date"`
	Weather    string               `db:"weather" json:"weather"`
	CrewCount  int                  `db:"crew_count" json:"crew_count"`
	Notes      string               `db:"notes" json:"notes"`
	ReviewedBy *string              `db:"reviewed_by" json:"reviewed_by,omitempty"`
	Status     types.DailyLogStatus `db:"status" json:"status"`
	types.BaseModel
}

func (l *DailyLog) GetID() string        { return l.ID }
func (l *DailyLog) GetProjectID() string { return l.ProjectID }
func (l *DailyLog) TrackingID() string   { return l.ID }
func (l *DailyLog) TrackedState() string { return string(l.Status) }
