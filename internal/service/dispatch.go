package service

import (
	"context"
	"fmt"
	"time"

	"github.com/buildline/buildline/internal/domain/activity"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/sentry"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

// ActivityParams describes one entry of the activity feed
type ActivityParams struct {
	ProjectID   string
	EntityType  types.EntityType
	EntityID    string
	Category    types.ActivityCategory
	Action      string
	Description string
	Severity    types.ActivitySeverity
	Metadata    types.Metadata
}

// Dispatcher turns observed changes into activity entries and deferred jobs.
// Neither ever fails the operation that triggered it.
type Dispatcher struct {
	db     postgres.IClient
	repo   activity.Repository
	jobs   jobs.Publisher
	sentry *sentry.Service
	logger *logger.Logger
}

func NewDispatcher(params ServiceParams) *Dispatcher {
	return &Dispatcher{
		db:     params.DB,
		repo:   params.ActivityRepo,
		jobs:   params.Jobs,
		sentry: params.Sentry,
		logger: params.Logger,
	}
}

// RecordActivity appends to the feed of the organization on ctx
func (d *Dispatcher) RecordActivity(ctx context.Context, p ActivityParams) {
	entry := &activity.Log{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVITY),
		OrganizationID: types.GetOrganizationID(ctx),
		EntityType:     p.EntityType,
		EntityID:       p.EntityID,
		Category:       p.Category,
		Action:         p.Action,
		Description:    p.Description,
		Severity:       lo.Ternary(p.Severity == "", types.ActivitySeverityInfo, p.Severity),
		Metadata:       p.Metadata,
		CreatedAt:      time.Now().UTC(),
	}
	if p.ProjectID != "" {
		entry.ProjectID = lo.ToPtr(p.ProjectID)
	}
	if actor := types.GetUserID(ctx); actor != "" && actor != types.SystemUserID {
		entry.ActorID = lo.ToPtr(actor)
	}

	// own savepoint so a failed insert does not abort the caller's transaction
	err := d.db.WithTx(ctx, func(ctx context.Context) error {
		return d.repo.Create(ctx, entry)
	})
	if err != nil {
		d.logger.Errorw("failed to record activity",
			"organization_id", entry.OrganizationID,
			"entity_type", p.EntityType,
			"entity_id", p.EntityID,
			"action", p.Action,
			"error", err,
		)
		d.sentry.CaptureException(ctx, err)
		return
	}

	if entry.Severity == types.ActivitySeverityElevated {
		d.logger.Warnw("elevated activity recorded",
			"organization_id", entry.OrganizationID,
			"entity_type", p.EntityType,
			"entity_id", p.EntityID,
			"action", p.Action,
		)
	}
}

// EnqueueNotification hands a job to the deferred work queue once the
// surrounding unit of work commits. A rolled back change enqueues nothing.
func (d *Dispatcher) EnqueueNotification(ctx context.Context, kind types.JobKind, payload jobs.Payload) {
	postgres.AfterCommit(ctx, func(ctx context.Context) {
		d.enqueue(ctx, kind, payload)
	})
}

func (d *Dispatcher) enqueue(ctx context.Context, kind types.JobKind, payload jobs.Payload) {
	if err := d.jobs.Enqueue(ctx, kind, payload); err != nil {
		d.logger.Errorw("failed to enqueue job",
			"kind", kind,
			"organization_id", types.GetOrganizationID(ctx),
			"entity_id", payload.EntityID,
			"error", err,
		)
		d.sentry.CaptureException(ctx, err)
	}
}

// RecordTransition logs the standard feed entry for a tracked status change
func (d *Dispatcher) RecordTransition(ctx context.Context, t tracker.Transition, projectID string, severity types.ActivitySeverity, description string) {
	category := types.ActivityCategoryStatusChanged
	action := fmt.Sprintf("%s.%s", t.EntityType, t.NewState)
	if t.Created {
		category = types.ActivityCategoryCreated
		action = fmt.Sprintf("%s.created", t.EntityType)
	}
	if description == "" {
		description = t.String()
	}

	d.RecordActivity(ctx, ActivityParams{
		ProjectID:   projectID,
		EntityType:  t.EntityType,
		EntityID:    t.EntityID,
		Category:    category,
		Action:      action,
		Description: description,
		Severity:    severity,
		Metadata: types.Metadata{
			"old_status": t.OldState,
			"new_status": t.NewState,
		},
	})
}
