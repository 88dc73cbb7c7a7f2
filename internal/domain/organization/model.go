package organization

import (
	"time"

	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/utils"
)

// Organization is the tenant. It is archived, never deleted.
type Organization struct {
	ID                 string                   `db:"id" json:"id"`
	Name               string                   `db:"name" json:"name"`
	Slug               string                   `db:"slug" json:"slug"`
	Plan               types.SubscriptionPlan   `db:"plan" json:"plan"`
	SubscriptionStatus types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	OwnerID            string                   `db:"owner_id" json:"owner_id"`
	Status             types.Status             `db:"status" json:"status"`
	CreatedAt          time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time                `db:"updated_at" json:"updated_at"`
	CreatedBy          string                   `db:"created_by" json:"created_by"`
	UpdatedBy          string                   `db:"updated_by" json:"updated_by"`
}

// New starts an organization on a trial of the starter plan
func New(name, ownerID string) *Organization {
	now := time.Now().UTC()
	return &Organization{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORGANIZATION),
		Name:               name,
		Slug:               utils.GenerateSlug(name),
		Plan:               types.SubscriptionPlanStarter,
		SubscriptionStatus: types.SubscriptionStatusTrialing,
		OwnerID:            ownerID,
		Status:             types.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
		CreatedBy:          ownerID,
		UpdatedBy:          ownerID,
	}
}

func (o *Organization) GetID() string             { return o.ID }
func (o *Organization) GetOrganizationID() string { return o.ID }

// Subscription status changes are the tracked transitions of an organization
func (o *Organization) TrackingID() string   { return o.ID }
func (o *Organization) TrackedState() string { return string(o.SubscriptionStatus) }

func (o *Organization) IsArchived() bool {
	return o.Status == types.StatusArchived
}
