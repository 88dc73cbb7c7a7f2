package membership

import (
	"time"

	"github.com/buildline/buildline/internal/types"
)

// Membership links a user to an organization with exactly one role.
// A pending invitation has no user yet. Memberships are deactivated, never deleted.
type Membership struct {
	ID              string     `db:"id" json:"id"`
	OrganizationID  string     `db:"organization_id" json:"organization_id"`
	UserID          *string    `db:"user_id" json:"user_id,omitempty"`
	Role            types.Role `db:"role" json:"role"`
	Active          bool       `db:"active" json:"active"`
	InvitationToken *string    `db:"invitation_token" json:"-"`
	InvitedEmail    *string    `db:"invited_email" json:"invited_email,omitempty"`
	AcceptedAt      *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	CreatedBy       string     `db:"created_by" json:"created_by"`
	UpdatedBy       string     `db:"updated_by" json:"updated_by"`
}

// NewOwner is the membership bootstrapped with a new organization
func NewOwner(orgID, userID string) *Membership {
	now := time.Now().UTC()
	return &Membership{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MEMBERSHIP),
		OrganizationID: orgID,
		UserID:         &userID,
		Role:           types.RoleOwner,
		Active:         true,
		AcceptedAt:     &now,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      userID,
		UpdatedBy:      userID,
	}
}

// NewInvitation creates an inactive membership waiting for email to accept token
func NewInvitation(orgID, email string, role types.Role, token, invitedBy string) *Membership {
	now := time.Now().UTC()
	return &Membership{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MEMBERSHIP),
		OrganizationID:  orgID,
		Role:            role,
		InvitationToken: &token,
		InvitedEmail:    &email,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       invitedBy,
		UpdatedBy:       invitedBy,
	}
}

func (m *Membership) GetID() string             { return m.ID }
func (m *Membership) GetOrganizationID() string { return m.OrganizationID }

// IsPending reports an invitation that has not been accepted
func (m *Membership) IsPending() bool {
	return m.AcceptedAt == nil && m.InvitationToken != nil
}

// HeldBy reports whether userID holds this membership
func (m *Membership) HeldBy(userID string) bool {
	return m.UserID != nil && *m.UserID == userID
}
