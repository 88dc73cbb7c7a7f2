package user

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

// User is global: one person can belong to many organizations
type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	// LastActiveOrganizationID is a preference; it grants nothing on its own
	LastActiveOrganizationID *string      `db:"last_active_organization_id" json:"last_active_organization_id,omitempty"`
	EmailVerified            bool         `db:"email_verified" json:"email_verified"`
	Status                   types.Status `db:"status" json:"status"`
	CreatedAt                time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time    `db:"updated_at" json:"updated_at"`
}

func NewUser(email, name string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:     email,
		Name:      name,
		Status:    types.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
