package jobs

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/buildline/buildline/internal/config"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/pubsub"
	pubsubRouter "github.com/buildline/buildline/internal/pubsub/router"
	"github.com/buildline/buildline/internal/sentry"
	"github.com/buildline/buildline/internal/types"
	"github.com/sourcegraph/conc/pool"
)

// maxFanOut caps concurrent sends for one job
const maxFanOut = 8

// HandlerFunc processes one decoded job. ctx carries the job's organization and actor.
type HandlerFunc func(ctx context.Context, job *types.Job) error

// Handler consumes the job topic and dispatches by kind
type Handler interface {
	RegisterHandler(router *pubsubRouter.Router)
	Register(kind types.JobKind, fn HandlerFunc)
	Process(msg *message.Message) error
}

type handler struct {
	pubSub pubsub.PubSub
	config *config.JobsConfig
	sender Sender
	logger *logger.Logger
	sentry *sentry.Service

	mu       sync.RWMutex
	handlers map[types.JobKind]HandlerFunc
}

// NewHandler registers the notification kinds against sender. Other kinds can
// be added with Register before the router starts.
func NewHandler(
	pubSub pubsub.PubSub,
	cfg *config.Configuration,
	sender Sender,
	logger *logger.Logger,
	sentry *sentry.Service,
) Handler {
	h := &handler{
		pubSub:   pubSub,
		config:   &cfg.Jobs,
		sender:   sender,
		logger:   logger,
		sentry:   sentry,
		handlers: make(map[types.JobKind]HandlerFunc),
	}

	for _, kind := range []types.JobKind{
		types.JobSendVerificationEmail,
		types.JobSendInvitationEmail,
		types.JobNotifyProposalSigned,
		types.JobNotifyRFIAnswered,
		types.JobNotifySubmittalReviewed,
		types.JobNotifyDailyLogSubmitted,
		types.JobNotifySafetyIncident,
		types.JobNotifyServiceTicketComplete,
		types.JobNotifyClientApproval,
	} {
		h.Register(kind, h.notify)
	}
	h.Register(types.JobGenerateThumbnail, h.thumbnail)
	return h
}

func (h *handler) Register(kind types.JobKind, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[kind] = fn
}

func (h *handler) RegisterHandler(router *pubsubRouter.Router) {
	router.AddNoPublishHandler(
		"job_handler",
		h.config.Topic,
		h.pubSub,
		h.Process,
	)
}

// Process decodes one message and runs the handler for its kind
func (h *handler) Process(msg *message.Message) error {
	var job types.Job
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		h.logger.Errorw("failed to unmarshal job",
			"error", err,
			"message_uuid", msg.UUID,
		)
		return nil // Don't retry on unmarshal errors
	}

	h.mu.RLock()
	fn, ok := h.handlers[job.Kind]
	h.mu.RUnlock()
	if !ok {
		return ierr.NewErrorf("no handler for job kind %s", job.Kind).
			WithReportableDetails(map[string]any{"kind": job.Kind}).
			Mark(ierr.ErrValidation)
	}

	ctx := types.SetOrganizationID(msg.Context(), job.OrganizationID)
	ctx = types.SetUserID(ctx, job.UserID)
	if requestID := msg.Metadata.Get("request_id"); requestID != "" {
		ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	}

	span, ctx := h.sentry.StartJobSpan(ctx, job.Kind)
	err := fn(ctx, &job)
	sentry.FinishSpan(span, err)
	if err != nil {
		return err
	}

	h.logger.Debugw("job processed",
		"job_id", job.ID,
		"kind", job.Kind,
		"organization_id", job.OrganizationID,
	)
	return nil
}

// notify fans the job out to each recipient concurrently
func (h *handler) notify(ctx context.Context, job *types.Job) error {
	var payload Payload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return ierr.WithError(err).
			WithHintf("Invalid payload for job %s", job.Kind).
			Mark(ierr.ErrValidation)
	}

	notifications := recipientsOf(job, &payload)
	if len(notifications) == 0 {
		h.logger.Debugw("job has no recipients", "job_id", job.ID, "kind", job.Kind)
		return nil
	}

	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(maxFanOut)
	for _, n := range notifications {
		p.Go(func(ctx context.Context) error {
			return h.sender.Send(ctx, n)
		})
	}
	return p.Wait()
}

func recipientsOf(job *types.Job, payload *Payload) []Notification {
	base := Notification{
		Kind:           job.Kind,
		OrganizationID: job.OrganizationID,
		Subject:        payload.Subject,
		Data:           payload.Data,
	}
	if base.Data == nil {
		base.Data = map[string]interface{}{}
	}
	base.Data["entity_id"] = payload.EntityID
	if payload.ProjectID != "" {
		base.Data["project_id"] = payload.ProjectID
	}

	notifications := make([]Notification, 0, len(payload.RecipientIDs)+1)
	if payload.Email != "" {
		n := base
		n.RecipientEmail = payload.Email
		notifications = append(notifications, n)
	}
	for _, id := range payload.RecipientIDs {
		if id == "" {
			continue
		}
		n := base
		n.RecipientID = id
		notifications = append(notifications, n)
	}
	return notifications
}

// thumbnail is a placeholder for the storage pipeline, which runs outside this service
func (h *handler) thumbnail(ctx context.Context, job *types.Job) error {
	var payload Payload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return ierr.WithError(err).
			WithHint("Invalid thumbnail payload").
			Mark(ierr.ErrValidation)
	}
	h.logger.Infow("thumbnail requested",
		"document_id", payload.EntityID,
		"organization_id", job.OrganizationID,
		"storage_key", payload.Data["storage_key"],
	)
	return nil
}
