package auth

import (
	"time"

	"github.com/buildline/buildline/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

type Auth struct {
	UserID    string             `db:"user_id" json:"user_id"`
	Provider  types.AuthProvider `db:"provider" json:"provider"`
	Token     string             `db:"token" json:"-"` // bcrypt hash for the password provider
	Status    types.Status       `db:"status" json:"status"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// Claims is the JWT payload issued at login. The organization is a hint only;
// membership is re-checked on every request.
type Claims struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

func NewAuth(userID string, provider types.AuthProvider, token string) *Auth {
	now := time.Now().UTC()
	return &Auth{
		UserID:    userID,
		Provider:  provider,
		Token:     token,
		Status:    types.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
