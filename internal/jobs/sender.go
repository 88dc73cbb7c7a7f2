package jobs

import (
	"context"

	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/types"
)

// Notification is one message for one recipient
type Notification struct {
	Kind           types.JobKind          `json:"kind"`
	OrganizationID string                 `json:"organization_id"`
	RecipientID    string                 `json:"recipient_id,omitempty"`
	RecipientEmail string                 `json:"recipient_email,omitempty"`
	Subject        string                 `json:"subject"`
	Data           map[string]interface{} `json:"data,omitempty"`
}

// Sender delivers notifications. Email and push providers live behind it.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

type logSender struct {
	logger *logger.Logger
}

// NewLogSender writes notifications to the structured log instead of delivering them
func NewLogSender(logger *logger.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, n Notification) error {
	s.logger.Infow("notification",
		"kind", n.Kind,
		"organization_id", n.OrganizationID,
		"recipient_id", n.RecipientID,
		"recipient_email", n.RecipientEmail,
		"subject", n.Subject,
		"data", n.Data,
	)
	return nil
}
