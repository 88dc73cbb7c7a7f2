package types

import (
	"context"

	ierr "github.com/buildline/buildline/internal/errors"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID      ContextKey = "ctx_request_id"
	CtxOrganizationID ContextKey = "ctx_organization_id"
	CtxUserID         ContextKey = "ctx_user_id"
	CtxJWT            ContextKey = "ctx_jwt"
	CtxDBTransaction  ContextKey = "ctx_db_transaction"
	CtxRole           ContextKey = "ctx_role" // role of the resolved membership

	// Default values
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
	SystemUserID  = "system"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetOrganizationID(ctx context.Context) string {
	if orgID, ok := ctx.Value(CtxOrganizationID).(string); ok {
		return orgID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetJWT(ctx context.Context) string {
	if jwt, ok := ctx.Value(CtxJWT).(string); ok {
		return jwt
	}
	return ""
}

// GetRole returns the membership role resolved for the current request, if any
func GetRole(ctx context.Context) Role {
	if role, ok := ctx.Value(CtxRole).(Role); ok {
		return role
	}
	return ""
}

// SetOrganizationID sets the organization ID in the context
func SetOrganizationID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, CtxOrganizationID, orgID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRole sets the resolved membership role in the context
func SetRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, CtxRole, role)
}

// ValidateOrganizationContext validates that the required organization context fields are present
func ValidateOrganizationContext(ctx context.Context) error {
	if ctx == nil || GetOrganizationID(ctx) == "" {
		return ierr.NewError("no organization context found in context").
			WithHint("An organization must be selected for this request").
			Mark(ierr.ErrNoOrganizationContext)
	}

	return nil
}

// SetJWT keeps the raw bearer token for downstream calls
func SetJWT(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxJWT, token)
}
