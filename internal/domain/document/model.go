package document

import (
	"github.com/buildline/buildline/internal/types"
)

// Document is the metadata of an uploaded file. The bytes live in object storage.
type Document struct {
	ID          string       `db:"id" json:"id"`
	ProjectID   *string      `db:"project_id" json:"project_id,omitempty"`
	Name        string       `db:"name" json:"name"`
	ContentType string       `db:"content_type" json:"content_type"`
	SizeBytes   int64        `db:"size_bytes" json:"size_bytes"`
	StorageKey  string       `db:"storage_key" json:"storage_key"`
	Status      types.Status `db:"status" json:"status"`
	types.BaseModel
}

func (d *Document) GetID() string        { return d.ID }
func (d *Document) TrackingID() string   { return d.ID }
func (d *Document) TrackedState() string { return string(d.Status) }

func (d *Document) GetProjectID() string {
	if d.ProjectID == nil {
		return ""
	}
	return *d.ProjectID
}
