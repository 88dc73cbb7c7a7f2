package types

import (
	"encoding/json"
	"time"
)

// JobKind names a unit of deferred work handed to the job queue
type JobKind string

const (
	JobSendVerificationEmail       JobKind = "send_verification_email"
	JobSendInvitationEmail         JobKind = "send_invitation_email"
	JobNotifyProposalSigned        JobKind = "notify_proposal_signed"
	JobNotifyRFIAnswered           JobKind = "notify_rfi_answered"
	JobNotifySubmittalReviewed     JobKind = "notify_submittal_reviewed"
	JobNotifyDailyLogSubmitted     JobKind = "notify_daily_log_submitted"
	JobNotifySafetyIncident        JobKind = "notify_safety_incident"
	JobNotifyServiceTicketComplete JobKind = "notify_service_ticket_completed"
	JobNotifyClientApproval        JobKind = "notify_client_approval_decided"
	JobGenerateThumbnail           JobKind = "generate_thumbnail"
)

func (k JobKind) String() string {
	return string(k)
}

// Job is the envelope published to the deferred work queue
type Job struct {
	ID             string          `json:"id"`
	Kind           JobKind         `json:"kind"`
	OrganizationID string          `json:"organization_id"`
	UserID         string          `json:"user_id"`
	Payload        json.RawMessage `json:"payload"`
	EnqueuedAt     time.Time       `json:"enqueued_at"`
}
