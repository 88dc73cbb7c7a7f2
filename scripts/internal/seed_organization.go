package internal

import (
	"context"

	"github.com/buildline/buildline/internal/api/dto"
)

// SeedOrganization signs up USER_EMAIL with an organization named ORGANIZATION_NAME
func SeedOrganization() error {
	env, err := requireEnv("USER_EMAIL", "USER_PASSWORD", "ORGANIZATION_NAME")
	if err != nil {
		return err
	}

	return withServices(func(ctx context.Context, svc services) error {
		resp, err := svc.Auth.SignUp(ctx, &dto.SignUpRequest{
			Email:            env["USER_EMAIL"],
			Password:         env["USER_PASSWORD"],
			OrganizationName: env["ORGANIZATION_NAME"],
		})
		if err != nil {
			return err
		}

		svc.Logger.Infow("seeded organization",
			"user_id", resp.UserID,
			"organization_id", resp.OrganizationID,
			"token", resp.Token,
		)
		return nil
	})
}
