// Package tracker detects status transitions around each save of a tracked
// record. The prior state is read from storage before the write and compared
// with the state that was persisted; observers are told about real changes only.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/types"
)

// Trackable is implemented by records whose status changes are observed
type Trackable interface {
	TrackingID() string
	TrackedState() string
}

// CapturesPriorState reads the persisted state of a record before it is overwritten
type CapturesPriorState interface {
	PriorState(ctx context.Context, id string) (string, error)
}

// EmitsTransition reacts to a detected transition. Implementations must not
// fail the save; anything they need to report goes to the log.
type EmitsTransition[T Trackable] interface {
	OnTransition(ctx context.Context, record T, t Transition)
}

// Transition is the ephemeral description of one detected state change
type Transition struct {
	EntityType     types.EntityType
	EntityID       string
	OldState       string
	NewState       string
	Created        bool
	OrganizationID string
	ActorID        string
	At             time.Time
}

// Changed reports whether the transition moved the record to a different state
func (t Transition) Changed() bool {
	return t.Created || t.OldState != t.NewState
}

func (t Transition) String() string {
	if t.Created {
		return fmt.Sprintf("%s %s created in %s", t.EntityType, t.EntityID, t.NewState)
	}
	return fmt.Sprintf("%s %s %s -> %s", t.EntityType, t.EntityID, t.OldState, t.NewState)
}

// Tracker wraps saves of one record type
type Tracker[T Trackable] struct {
	entityType types.EntityType
	prior      CapturesPriorState
	emitter    EmitsTransition[T]
	logger     *logger.Logger
}

func New[T Trackable](entityType types.EntityType, prior CapturesPriorState, emitter EmitsTransition[T], logger *logger.Logger) *Tracker[T] {
	return &Tracker[T]{
		entityType: entityType,
		prior:      prior,
		emitter:    emitter,
		logger:     logger,
	}
}

// Create persists a new record and emits exactly one created transition
func (tr *Tracker[T]) Create(ctx context.Context, record T, persist func(ctx context.Context) error) error {
	if err := persist(ctx); err != nil {
		return err
	}

	tr.emit(ctx, record, Transition{
		EntityType: tr.entityType,
		EntityID:   record.TrackingID(),
		OldState:   types.TrackingStateNone,
		NewState:   record.TrackedState(),
		Created:    true,
	})
	return nil
}

// Update captures the persisted state, persists the record and emits a
// transition only when the state actually changed.
func (tr *Tracker[T]) Update(ctx context.Context, record T, persist func(ctx context.Context) error) error {
	stash, ok := StashFromContext(ctx)
	if !ok {
		stash = NewStash()
	}

	key := tr.stashKey(record.TrackingID())
	// the entry must not outlive this save whatever happens below
	defer stash.Take(key)

	old, err := tr.prior.PriorState(ctx, record.TrackingID())
	if err != nil {
		return err
	}
	stash.Put(key, old)

	if err := persist(ctx); err != nil {
		return err
	}

	old, _ = stash.Take(key)
	if old == record.TrackedState() {
		return nil
	}

	tr.emit(ctx, record, Transition{
		EntityType: tr.entityType,
		EntityID:   record.TrackingID(),
		OldState:   old,
		NewState:   record.TrackedState(),
	})
	return nil
}

func (tr *Tracker[T]) emit(ctx context.Context, record T, t Transition) {
	if tr.emitter == nil {
		return
	}

	t.OrganizationID = types.GetOrganizationID(ctx)
	t.ActorID = types.GetUserID(ctx)
	t.At = time.Now().UTC()

	defer func() {
		if r := recover(); r != nil {
			tr.logger.Errorw("transition observer panicked",
				"entity_type", t.EntityType,
				"entity_id", t.EntityID,
				"old_state", t.OldState,
				"new_state", t.NewState,
				"panic", r,
			)
		}
	}()

	tr.logger.Debugw("status transition detected",
		"entity_type", t.EntityType,
		"entity_id", t.EntityID,
		"old_state", t.OldState,
		"new_state", t.NewState,
		"created", t.Created,
	)
	tr.emitter.OnTransition(ctx, record, t)
}

func (tr *Tracker[T]) stashKey(id string) string {
	return tr.entityType.String() + ":" + id
}
