package activity

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

// Log is one append-only entry in an organization's activity feed.
// ActorID is nil for system actions such as billing events.
type Log struct {
	ID             string                 `db:"id" json:"id"`
	OrganizationID string                 `db:"organization_id" json:"organization_id"`
	ProjectID      *string                `db:"project_id" json:"project_id,omitempty"`
	ActorID        *string                `db:"actor_id" json:"actor_id,omitempty"`
	EntityType     types.EntityType       `db:"entity_type" json:"entity_type"`
	EntityID       string                 `db:"entity_id" json:"entity_id"`
	Category       types.ActivityCategory `db:"category" json:"category"`
	Action         string                 `db:"action" json:"action"`
	Description    string                 `db:"description" json:"description"`
	Severity       types.ActivitySeverity `db:"severity" json:"severity"`
	Metadata       types.Metadata         `db:"metadata" json:"metadata,omitempty"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
}

func (l *Log) GetID() string             { return l.ID }
func (l *Log) GetOrganizationID() string { return l.OrganizationID }
