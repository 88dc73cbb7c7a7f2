package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/types"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type ticket struct {
	id     string
	status string
}

func (t *ticket) TrackingID() string   { return t.id }
func (t *ticket) TrackedState() string { return t.status }

type ticketStore struct {
	mu   sync.Mutex
	rows map[string]string
}

func (s *ticketStore) PriorState(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.rows[id]
	if !ok {
		return "", fmt.Errorf("ticket %s not found", id)
	}
	return state, nil
}

func (s *ticketStore) save(t *ticket) func(context.Context) error {
	return func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.rows[t.id] = t.status
		return nil
	}
}

type recorder struct {
	mu          sync.Mutex
	transitions []Transition
	panicOn     string
}

func (r *recorder) OnTransition(_ context.Context, _ *ticket, t Transition) {
	if r.panicOn != "" && t.NewState == r.panicOn {
		panic("observer exploded")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, t)
}

type TrackerSuite struct {
	suite.Suite
	ctx      context.Context
	store    *ticketStore
	recorder *recorder
	tracker  *Tracker[*ticket]
}

func TestTracker(t *testing.T) {
	suite.Run(t, new(TrackerSuite))
}

func (s *TrackerSuite) SetupTest() {
	s.ctx = types.SetUserID(types.SetOrganizationID(context.Background(), "org_1"), "user_1")
	s.store = &ticketStore{rows: map[string]string{}}
	s.recorder = &recorder{}
	s.tracker = New[*ticket](types.EntityTypeServiceTicket, s.store, s.recorder, logger.NewNoop())
}

func (s *TrackerSuite) TestCreateEmitsOneCreatedTransition() {
	t := &ticket{id: "tkt_1", status: "new"}
	s.Require().NoError(s.tracker.Create(s.ctx, t, s.store.save(t)))

	s.Require().Len(s.recorder.transitions, 1)
	got := s.recorder.transitions[0]
	s.True(got.Created)
	s.Equal(types.TrackingStateNone, got.OldState)
	s.Equal("new", got.NewState)
	s.Equal("org_1", got.OrganizationID)
	s.Equal("user_1", got.ActorID)
}

func (s *TrackerSuite) TestNoOpSaveEmitsNothing() {
	t := &ticket{id: "tkt_1", status: "new"}
	s.store.rows[t.id] = "new"

	s.Require().NoError(s.tracker.Update(s.ctx, t, s.store.save(t)))
	s.Empty(s.recorder.transitions)
}

func (s *TrackerSuite) TestChangedSaveEmitsOldAndNew() {
	t := &ticket{id: "tkt_1", status: "assigned"}
	s.store.rows[t.id] = "new"

	s.Require().NoError(s.tracker.Update(s.ctx, t, s.store.save(t)))
	s.Require().Len(s.recorder.transitions, 1)
	s.Equal("new", s.recorder.transitions[0].OldState)
	s.Equal("assigned", s.recorder.transitions[0].NewState)
	s.False(s.recorder.transitions[0].Created)
}

func (s *TrackerSuite) TestFailedPersistClearsStashAndEmitsNothing() {
	ctx := WithStash(s.ctx)
	stash, _ := StashFromContext(ctx)
	t := &ticket{id: "tkt_1", status: "assigned"}
	s.store.rows[t.id] = "new"
	boom := errors.New("write failed")

	err := s.tracker.Update(ctx, t, func(context.Context) error { return boom })
	s.ErrorIs(err, boom)
	s.Empty(s.recorder.transitions)
	s.Equal(0, stash.Len())
}

func (s *TrackerSuite) TestObserverPanicDoesNotFailSave() {
	s.recorder.panicOn = "completed"
	t := &ticket{id: "tkt_1", status: "completed"}
	s.store.rows[t.id] = "in_progress"

	s.NotPanics(func() {
		s.NoError(s.tracker.Update(s.ctx, t, s.store.save(t)))
	})
	s.Equal("completed", s.store.rows[t.id])
}

func (s *TrackerSuite) TestConcurrentSavesSeeTheirOwnPriorState() {
	const n = 50
	ctx := WithStash(s.ctx)
	for i := 0; i < n; i++ {
		s.store.rows[fmt.Sprintf("tkt_%d", i)] = fmt.Sprintf("state_%d", i)
	}

	var wg conc.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Go(func() {
			t := &ticket{id: fmt.Sprintf("tkt_%d", i), status: "closed"}
			s.NoError(s.tracker.Update(ctx, t, s.store.save(t)))
		})
	}
	wg.Wait()

	s.Require().Len(s.recorder.transitions, n)
	for _, tr := range s.recorder.transitions {
		var idx int
		_, err := fmt.Sscanf(tr.EntityID, "tkt_%d", &idx)
		s.Require().NoError(err)
		s.Equal(fmt.Sprintf("state_%d", idx), tr.OldState)
		s.Equal("closed", tr.NewState)
	}
	stash, _ := StashFromContext(ctx)
	s.Equal(0, stash.Len())
}
