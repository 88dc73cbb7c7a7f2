// Package recalc keeps parent aggregates in step with their children. A child
// write and the recalculation of every affected parent share one transaction;
// a parent that cannot be recalculated is logged and left for the next write.
package recalc

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/config"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	sentryService "github.com/buildline/buildline/internal/sentry"
	"github.com/buildline/buildline/internal/types"
	"github.com/cenkalti/backoff/v4"
)

// Recalculator recomputes the aggregate fields of one parent from its current children.
// It must re-read everything it needs so running it twice gives the same result.
type Recalculator interface {
	Recalculate(ctx context.Context, parentID string) error
}

// RecalculatorFunc adapts a function to Recalculator
type RecalculatorFunc func(ctx context.Context, parentID string) error

func (f RecalculatorFunc) Recalculate(ctx context.Context, parentID string) error {
	return f(ctx, parentID)
}

// Target names one parent to recalculate after a child write. Targets run in
// order, so a section listed before its estimate is settled first.
type Target struct {
	EntityType   types.EntityType
	ParentID     string
	Recalculator Recalculator
}

type Engine struct {
	db     postgres.IClient
	cfg    config.RecalcConfig
	logger *logger.Logger
	sentry *sentryService.Service
}

func NewEngine(db postgres.IClient, cfg *config.Configuration, logger *logger.Logger, sentry *sentryService.Service) *Engine {
	return &Engine{
		db:     db,
		cfg:    cfg.Recalc,
		logger: logger,
		sentry: sentry,
	}
}

// Cascade runs write and then recalculates targets in the same transaction.
// targets is evaluated after write so it can depend on what write loaded.
func (e *Engine) Cascade(ctx context.Context, write func(ctx context.Context) error, targets func() []Target) error {
	return e.db.WithTx(ctx, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			return err
		}
		for _, t := range targets() {
			e.Recalculate(ctx, t)
		}
		return nil
	})
}

// Recalculate retries t with bounded backoff. A final failure is logged and
// reported, never returned: the child write stays committed.
func (e *Engine) Recalculate(ctx context.Context, t Target) {
	if t.ParentID == "" || t.Recalculator == nil {
		return
	}

	span, spanCtx := e.sentry.StartRecalcSpan(ctx, t.EntityType, t.ParentID)

	attempts := 0
	operation := func() error {
		attempts++
		// each attempt gets its own savepoint so a failed statement does not poison the transaction
		return e.db.WithTx(spanCtx, func(ctx context.Context) error {
			return t.Recalculator.Recalculate(ctx, t.ParentID)
		})
	}

	err := backoff.Retry(operation, backoff.WithContext(e.backoff(), ctx))
	sentryService.FinishSpan(span, err)
	if err == nil {
		return
	}

	failure := ierr.WithError(err).
		WithMessagef("recalculating %s %s", t.EntityType, t.ParentID).
		WithReportableDetails(map[string]any{
			"entity_type": t.EntityType,
			"parent_id":   t.ParentID,
			"attempts":    attempts,
		}).
		Mark(ierr.ErrRecalculationFailed)

	e.logger.Errorw("recalculation failed",
		"code", ierr.ErrCodeRecalculationFailed,
		"entity_type", t.EntityType,
		"parent_id", t.ParentID,
		"organization_id", types.GetOrganizationID(ctx),
		"attempts", attempts,
		"error", err,
	)
	e.sentry.CaptureException(ctx, failure)
}

func (e *Engine) backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.cfg.InitialInterval
	if b.InitialInterval <= 0 {
		b.InitialInterval = 50 * time.Millisecond
	}
	b.MaxElapsedTime = 0
	retries := e.cfg.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return backoff.WithMaxRetries(b, retries)
}
