package types

import (
	"context"
	"time"
)

// BaseModel is embedded by every organization-scoped domain model that is persisted in the database.
// OrganizationID is set once at creation and never updated afterwards.
type BaseModel struct {
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy      string    `db:"created_by" json:"created_by"`
	UpdatedBy      string    `db:"updated_by" json:"updated_by"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		OrganizationID: GetOrganizationID(ctx),
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      GetUserID(ctx),
		UpdatedBy:      GetUserID(ctx),
	}
}

// GetOrganizationID lets any model embedding BaseModel satisfy OrganizationScoped.
func (b BaseModel) GetOrganizationID() string {
	return b.OrganizationID
}

// OrganizationScoped is implemented by models that belong to exactly one organization.
type OrganizationScoped interface {
	GetOrganizationID() string
}

// AssignOnCreate fills the organization and creator of a new record from the context.
// An organization already present on the model is kept as is.
func (b *BaseModel) AssignOnCreate(ctx context.Context) {
	now := time.Now().UTC()
	if b.OrganizationID == "" {
		b.OrganizationID = GetOrganizationID(ctx)
	}
	if b.CreatedBy == "" {
		b.CreatedBy = GetUserID(ctx)
	}
	b.UpdatedBy = GetUserID(ctx)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Touch records an update by the current user.
func (b *BaseModel) Touch(ctx context.Context) {
	b.UpdatedAt = time.Now().UTC()
	b.UpdatedBy = GetUserID(ctx)
}
