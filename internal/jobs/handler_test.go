package jobs

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/pubsub/memory"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/suite"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Notification
}

func (s *recordingSender) Send(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func (s *recordingSender) Sent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.sent...)
}

type JobsSuite struct {
	suite.Suite
	cfg       *config.Configuration
	sender    *recordingSender
	handler   Handler
	publisher Publisher
	messages  <-chan *message.Message
	ctx       context.Context
	cancel    context.CancelFunc
}

func TestJobs(t *testing.T) {
	suite.Run(t, new(JobsSuite))
}

func (s *JobsSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()
	log := logger.NewNoop()
	ps := memory.NewPubSub(s.cfg, log)

	s.sender = &recordingSender{}
	s.handler = NewHandler(ps, s.cfg, s.sender, log, nil)
	s.publisher = NewPublisher(ps, s.cfg, log)

	s.ctx, s.cancel = context.WithCancel(context.Background())
	messages, err := ps.Subscribe(s.ctx, s.cfg.Jobs.Topic)
	s.Require().NoError(err)
	s.messages = messages

	s.ctx = types.SetUserID(types.SetOrganizationID(s.ctx, "org_a"), "user_1")
}

func (s *JobsSuite) TearDownTest() {
	s.cancel()
}

func (s *JobsSuite) next() *message.Message {
	select {
	case msg := <-s.messages:
		msg.Ack()
		return msg
	case <-time.After(time.Second):
		s.FailNow("no job published")
		return nil
	}
}

func (s *JobsSuite) TestEnqueueCarriesOrganizationAndActor() {
	s.Require().NoError(s.publisher.Enqueue(s.ctx, types.JobNotifyProposalSigned, Payload{EntityID: "prop_1"}))

	msg := s.next()
	s.Equal("org_a", msg.Metadata.Get("organization_id"))

	var job types.Job
	s.Require().NoError(json.Unmarshal(msg.Payload, &job))
	s.Equal(types.JobNotifyProposalSigned, job.Kind)
	s.Equal("org_a", job.OrganizationID)
	s.Equal("user_1", job.UserID)
}

func (s *JobsSuite) TestNotificationFansOutToEveryRecipient() {
	payload := Payload{
		EntityID:     "inc_1",
		ProjectID:    "proj_1",
		RecipientIDs: []string{"user_2", "user_3", ""},
		Subject:      "OSHA reportable incident",
	}
	s.Require().NoError(s.publisher.Enqueue(s.ctx, types.JobNotifySafetyIncident, payload))

	s.Require().NoError(s.handler.Process(s.next()))

	sent := s.sender.Sent()
	s.Len(sent, 2)
	for _, n := range sent {
		s.Equal("org_a", n.OrganizationID)
		s.Equal(types.JobNotifySafetyIncident, n.Kind)
		s.Equal("inc_1", n.Data["entity_id"])
	}
}

func (s *JobsSuite) TestUnknownKindIsNotRetried() {
	s.Require().NoError(s.publisher.Enqueue(s.ctx, types.JobKind("export_csv"), Payload{}))

	err := s.handler.Process(s.next())
	s.Error(err)
}

func (s *JobsSuite) TestRegisteredHandlerSeesJobOrganization() {
	var seen string
	s.handler.Register(types.JobGenerateThumbnail, func(ctx context.Context, job *types.Job) error {
		seen = types.GetOrganizationID(ctx)
		return nil
	})
	s.Require().NoError(s.publisher.Enqueue(s.ctx, types.JobGenerateThumbnail, Payload{EntityID: "doc_1"}))

	s.Require().NoError(s.handler.Process(s.next()))
	s.Equal("org_a", seen)
}

func (s *JobsSuite) TestMalformedMessageIsDropped() {
	msg := message.NewMessage("1", []byte("{not json"))
	s.NoError(s.handler.Process(msg))
	s.Empty(s.sender.Sent())
}
