package types

// TrackingStateNone is the prior state recorded for a record that did not exist yet
const TrackingStateNone = "none"

// DocumentWorkflow governs document metadata, which is archived rather than deleted
var DocumentWorkflow = Workflow[Status]{
	StatusActive:   {StatusArchived},
	StatusArchived: {StatusActive},
}

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

var ProjectWorkflow = Workflow[ProjectStatus]{
	ProjectStatusActive:    {ProjectStatusOnHold, ProjectStatusCompleted},
	ProjectStatusOnHold:    {ProjectStatusActive, ProjectStatusCompleted},
	ProjectStatusCompleted: {ProjectStatusActive},
}

type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusAccepted EstimateStatus = "accepted"
	EstimateStatusRejected EstimateStatus = "rejected"
)

var EstimateWorkflow = Workflow[EstimateStatus]{
	EstimateStatusDraft:    {EstimateStatusSent},
	EstimateStatusSent:     {EstimateStatusAccepted, EstimateStatusRejected, EstimateStatusDraft},
	EstimateStatusRejected: {EstimateStatusDraft},
}

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusViewed   ProposalStatus = "viewed"
	ProposalStatusSigned   ProposalStatus = "signed"
	ProposalStatusDeclined ProposalStatus = "declined"
)

var ProposalWorkflow = Workflow[ProposalStatus]{
	ProposalStatusDraft:  {ProposalStatusSent},
	ProposalStatusSent:   {ProposalStatusViewed, ProposalStatusSigned, ProposalStatusDeclined},
	ProposalStatusViewed: {ProposalStatusSigned, ProposalStatusDeclined},
}

type RFIStatus string

const (
	RFIStatusOpen     RFIStatus = "open"
	RFIStatusAnswered RFIStatus = "answered"
	RFIStatusClosed   RFIStatus = "closed"
)

var RFIWorkflow = Workflow[RFIStatus]{
	RFIStatusOpen:     {RFIStatusAnswered, RFIStatusClosed},
	RFIStatusAnswered: {RFIStatusClosed, RFIStatusOpen},
	RFIStatusClosed:   {RFIStatusOpen},
}

type SubmittalStatus string

const (
	SubmittalStatusDraft           SubmittalStatus = "draft"
	SubmittalStatusSubmitted       SubmittalStatus = "submitted"
	SubmittalStatusApproved        SubmittalStatus = "approved"
	SubmittalStatusApprovedAsNoted SubmittalStatus = "approved_as_noted"
	SubmittalStatusReviseResubmit  SubmittalStatus = "revise_resubmit"
	SubmittalStatusRejected        SubmittalStatus = "rejected"
)

// SubmittalReviewOutcomes are the states a reviewer may decide on
var SubmittalReviewOutcomes = []SubmittalStatus{
	SubmittalStatusApproved,
	SubmittalStatusApprovedAsNoted,
	SubmittalStatusReviseResubmit,
	SubmittalStatusRejected,
}

var SubmittalWorkflow = Workflow[SubmittalStatus]{
	SubmittalStatusDraft:          {SubmittalStatusSubmitted},
	SubmittalStatusSubmitted:      SubmittalReviewOutcomes,
	SubmittalStatusReviseResubmit: {SubmittalStatusSubmitted},
}

type DailyLogStatus string

const (
	DailyLogStatusDraft     DailyLogStatus = "draft"
	DailyLogStatusSubmitted DailyLogStatus = "submitted"
	DailyLogStatusApproved  DailyLogStatus = "approved"
	DailyLogStatusRejected  DailyLogStatus = "rejected"
)

var DailyLogWorkflow = Workflow[DailyLogStatus]{
	DailyLogStatusDraft:     {DailyLogStatusSubmitted},
	DailyLogStatusSubmitted: {DailyLogStatusApproved, DailyLogStatusRejected},
	DailyLogStatusRejected:  {DailyLogStatusSubmitted},
}

type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "open"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusClosed        IncidentStatus = "closed"
)

var IncidentWorkflow = Workflow[IncidentStatus]{
	IncidentStatusOpen:          {IncidentStatusInvestigating, IncidentStatusClosed},
	IncidentStatusInvestigating: {IncidentStatusClosed},
}

type IncidentSeverity string

const (
	IncidentSeverityMinor    IncidentSeverity = "minor"
	IncidentSeverityModerate IncidentSeverity = "moderate"
	IncidentSeveritySerious  IncidentSeverity = "serious"
	IncidentSeverityFatal    IncidentSeverity = "fatal"
)

type DeficiencyStatus string

const (
	DeficiencyStatusOpen       DeficiencyStatus = "open"
	DeficiencyStatusInProgress DeficiencyStatus = "in_progress"
	DeficiencyStatusResolved   DeficiencyStatus = "resolved"
	DeficiencyStatusVerified   DeficiencyStatus = "verified"
)

var DeficiencyWorkflow = Workflow[DeficiencyStatus]{
	DeficiencyStatusOpen:       {DeficiencyStatusInProgress, DeficiencyStatusResolved},
	DeficiencyStatusInProgress: {DeficiencyStatusResolved},
	DeficiencyStatusResolved:   {DeficiencyStatusVerified, DeficiencyStatusOpen},
}

type DeficiencySeverity string

const (
	DeficiencySeverityLow      DeficiencySeverity = "low"
	DeficiencySeverityMedium   DeficiencySeverity = "medium"
	DeficiencySeverityHigh     DeficiencySeverity = "high"
	DeficiencySeverityCritical DeficiencySeverity = "critical"
)

type ServiceTicketStatus string

const (
	ServiceTicketStatusNew        ServiceTicketStatus = "new"
	ServiceTicketStatusAssigned   ServiceTicketStatus = "assigned"
	ServiceTicketStatusInProgress ServiceTicketStatus = "in_progress"
	ServiceTicketStatusCompleted  ServiceTicketStatus = "completed"
	ServiceTicketStatusClosed     ServiceTicketStatus = "closed"
	ServiceTicketStatusCanceled   ServiceTicketStatus = "canceled"
)

var ServiceTicketWorkflow = Workflow[ServiceTicketStatus]{
	ServiceTicketStatusNew:        {ServiceTicketStatusAssigned, ServiceTicketStatusCanceled},
	ServiceTicketStatusAssigned:   {ServiceTicketStatusAssigned, ServiceTicketStatusInProgress, ServiceTicketStatusCanceled},
	ServiceTicketStatusInProgress: {ServiceTicketStatusCompleted, ServiceTicketStatusCanceled},
	ServiceTicketStatusCompleted:  {ServiceTicketStatusClosed},
}

type WarrantyClaimStatus string

const (
	WarrantyClaimStatusSubmitted   WarrantyClaimStatus = "submitted"
	WarrantyClaimStatusUnderReview WarrantyClaimStatus = "under_review"
	WarrantyClaimStatusApproved    WarrantyClaimStatus = "approved"
	WarrantyClaimStatusDenied      WarrantyClaimStatus = "denied"
	WarrantyClaimStatusResolved    WarrantyClaimStatus = "resolved"
)

var WarrantyClaimWorkflow = Workflow[WarrantyClaimStatus]{
	WarrantyClaimStatusSubmitted:   {WarrantyClaimStatusUnderReview},
	WarrantyClaimStatusUnderReview: {WarrantyClaimStatusApproved, WarrantyClaimStatusDenied},
	WarrantyClaimStatusApproved:    {WarrantyClaimStatusResolved},
}

type PayrollRunStatus string

const (
	PayrollRunStatusDraft      PayrollRunStatus = "draft"
	PayrollRunStatusProcessing PayrollRunStatus = "processing"
	PayrollRunStatusApproved   PayrollRunStatus = "approved"
	PayrollRunStatusPaid       PayrollRunStatus = "paid"
	PayrollRunStatusCanceled   PayrollRunStatus = "canceled"
)

var PayrollRunWorkflow = Workflow[PayrollRunStatus]{
	PayrollRunStatusDraft:      {PayrollRunStatusProcessing, PayrollRunStatusCanceled},
	PayrollRunStatusProcessing: {PayrollRunStatusApproved, PayrollRunStatusCanceled},
	PayrollRunStatusApproved:   {PayrollRunStatusPaid},
}

type ClientApprovalStatus string

const (
	ClientApprovalStatusPending  ClientApprovalStatus = "pending"
	ClientApprovalStatusApproved ClientApprovalStatus = "approved"
	ClientApprovalStatusRejected ClientApprovalStatus = "rejected"
)

var ClientApprovalWorkflow = Workflow[ClientApprovalStatus]{
	ClientApprovalStatusPending: {ClientApprovalStatusApproved, ClientApprovalStatusRejected},
}
