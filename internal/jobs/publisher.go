package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/buildline/buildline/internal/config"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/pubsub"
	"github.com/buildline/buildline/internal/types"
)

// Publisher hands deferred work to the job queue
type Publisher interface {
	Enqueue(ctx context.Context, kind types.JobKind, payload interface{}) error
	Close() error
}

type jobPublisher struct {
	pubSub pubsub.PubSub
	config *config.JobsConfig
	logger *logger.Logger
}

func NewPublisher(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	logger *logger.Logger,
) Publisher {
	return &jobPublisher{
		pubSub: pubSub,
		config: &cfg.Jobs,
		logger: logger,
	}
}

// Enqueue wraps payload in a job envelope carrying the organization and actor of ctx
func (p *jobPublisher) Enqueue(ctx context.Context, kind types.JobKind, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Invalid payload for job %s", kind).
			Mark(ierr.ErrValidation)
	}

	job := types.Job{
		ID:             watermill.NewUUID(),
		Kind:           kind,
		OrganizationID: types.GetOrganizationID(ctx),
		UserID:         types.GetUserID(ctx),
		Payload:        raw,
		EnqueuedAt:     time.Now().UTC(),
	}

	body, err := json.Marshal(job)
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to marshal job").
			Mark(ierr.ErrSystem)
	}

	msg := message.NewMessage(job.ID, body)
	msg.Metadata.Set("organization_id", job.OrganizationID)
	msg.Metadata.Set("kind", string(kind))
	if requestID := types.GetRequestID(ctx); requestID != "" {
		msg.Metadata.Set("request_id", requestID)
	}

	p.logger.Debugw("publishing job",
		"job_id", job.ID,
		"kind", kind,
		"organization_id", job.OrganizationID,
		"topic", p.config.Topic,
	)

	if err := p.pubSub.Publish(ctx, p.config.Topic, msg); err != nil {
		p.logger.Errorw("failed to publish job",
			"error", err,
			"job_id", job.ID,
			"kind", kind,
			"organization_id", job.OrganizationID,
		)
		return ierr.WithError(err).
			WithMessagef("failed to publish job %s", kind).
			Mark(ierr.ErrSystem)
	}
	return nil
}

func (p *jobPublisher) Close() error {
	return p.pubSub.Close()
}
