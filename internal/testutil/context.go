package testutil

import (
	"context"

	"github.com/buildline/buildline/internal/types"
)

const (
	DefaultOrganizationID = "org_test"
	DefaultUserID         = types.DefaultUserID
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxOrganizationID, DefaultOrganizationID)
	ctx = context.WithValue(ctx, types.CtxUserID, DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// WithOrganization returns ctx acting for orgID as userID
func WithOrganization(ctx context.Context, orgID, userID string) context.Context {
	return types.SetUserID(types.SetOrganizationID(ctx, orgID), userID)
}
