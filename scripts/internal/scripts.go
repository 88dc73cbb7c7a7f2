package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/recalc"
	"github.com/buildline/buildline/internal/repository"
	"github.com/buildline/buildline/internal/sentry"
	"github.com/buildline/buildline/internal/service"
	"go.uber.org/fx"
)

// services builds the same service graph as the server without starting it
type services struct {
	fx.In

	Logger        *logger.Logger
	Auth          service.AuthService
	Organizations service.OrganizationService
}

func withServices(fn func(ctx context.Context, svc services) error) error {
	var svc services
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			cache.NewInMemoryCache,
			rbac.NewRBACService,
			recalc.NewEngine,
			sentry.NewSentryService,
		),
		postgres.Module(),
		repository.Module(),
		jobs.Module,
		service.Module,
		fx.Populate(&svc),
	)
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start services: %w", err)
	}
	defer app.Stop(ctx)

	return fn(ctx, svc)
}

func requireEnv(keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	for _, k := range keys {
		v := os.Getenv(k)
		if v == "" {
			return nil, fmt.Errorf("%s is required", k)
		}
		values[k] = v
	}
	return values, nil
}
