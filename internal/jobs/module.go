package jobs

import (
	"context"

	"github.com/buildline/buildline/internal/config"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/pubsub"
	"github.com/buildline/buildline/internal/pubsub/kafka"
	"github.com/buildline/buildline/internal/pubsub/memory"
	pubsubRouter "github.com/buildline/buildline/internal/pubsub/router"
	"github.com/buildline/buildline/internal/types"
	"go.uber.org/fx"
)

// Module provides the deferred work queue
var Module = fx.Options(
	fx.Provide(
		providePubSub,
		pubsubRouter.NewRouter,
		NewLogSender,
		NewPublisher,
		NewHandler,
	),
)

func providePubSub(
	cfg *config.Configuration,
	logger *logger.Logger,
) (pubsub.PubSub, error) {
	switch cfg.Jobs.PubSub {
	case types.MemoryPubSub:
		return memory.NewPubSub(cfg, logger), nil
	case types.KafkaPubSub:
		return kafka.NewPubSub(cfg, logger)
	}
	return nil, ierr.NewErrorf("unsupported pubsub type %q", cfg.Jobs.PubSub).
		Mark(ierr.ErrValidation)
}

// StartWorker registers the job handler and runs the router for the app lifetime
func StartWorker(lc fx.Lifecycle, router *pubsubRouter.Router, handler Handler, logger *logger.Logger) {
	handler.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting job router")
			go func() {
				if err := router.Run(); err != nil {
					logger.Errorw("job router failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping job router")
			return router.Close()
		},
	})
}
