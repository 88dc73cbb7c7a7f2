package internal

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
	"github.com/buildline/buildline/internal/types"
)

// SetSubscription applies SUBSCRIPTION_STATUS to ORGANIZATION_ID through the
// billing event path, so the change is logged and the gate cache dropped
func SetSubscription() error {
	env, err := requireEnv("ORGANIZATION_ID", "SUBSCRIPTION_STATUS")
	if err != nil {
		return err
	}

	return withServices(func(ctx context.Context, svc services) error {
		org, err := svc.Organizations.HandleBillingEvent(ctx, &dto.BillingEventRequest{
			OrganizationID: env["ORGANIZATION_ID"],
			Status:         types.SubscriptionStatus(env["SUBSCRIPTION_STATUS"]),
		})
		if err != nil {
			return err
		}

		svc.Logger.Infow("subscription updated",
			"organization_id", org.ID,
			"subscription_status", org.SubscriptionStatus,
		)
		return nil
	})
}
