package postgres

import (
	"context"

	"github.com/buildline/buildline/internal/domain/approval"
	"github.com/buildline/buildline/internal/domain/dailylog"
	"github.com/buildline/buildline/internal/domain/deficiency"
	"github.com/buildline/buildline/internal/domain/document"
	"github.com/buildline/buildline/internal/domain/estimate"
	"github.com/buildline/buildline/internal/domain/incident"
	"github.com/buildline/buildline/internal/domain/payroll"
	"github.com/buildline/buildline/internal/domain/project"
	"github.com/buildline/buildline/internal/domain/proposal"
	"github.com/buildline/buildline/internal/domain/rfi"
	"github.com/buildline/buildline/internal/domain/serviceticket"
	"github.com/buildline/buildline/internal/domain/submittal"
	"github.com/buildline/buildline/internal/domain/warranty"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
)

// audit columns shared through types.BaseModel
var auditColumns = []string{"organization_id", "created_at", "updated_at", "created_by", "updated_by"}

func cols(own ...string) []string {
	return append(append([]string{"id"}, own...), auditColumns...)
}

func NewProjectRepository(db *postgres.DB, logger *logger.Logger) project.Repository {
	return newTenantRepo[project.Project, *project.Project](db, logger, "projects", types.EntityTypeProject,
		cols("name", "code", "client_name", "address", "manager_id", "start_date", "end_date", "status")...)
}

func NewEstimateRepository(db *postgres.DB, logger *logger.Logger) estimate.Repository {
	return newTenantRepo[estimate.Estimate, *estimate.Estimate](db, logger, "estimates", types.EntityTypeEstimate,
		cols("project_id", "name", "assigned_to", "markup_percent", "subtotal", "markup_amount", "total", "status")...)
}

type sectionRepository struct {
	*tenantRepo[estimate.Section, *estimate.Section]
}

func NewEstimateSectionRepository(db *postgres.DB, logger *logger.Logger) estimate.SectionRepository {
	return &sectionRepository{newTenantRepo[estimate.Section, *estimate.Section](db, logger, "estimate_sections", types.EntityTypeSection,
		cols("estimate_id", "name", "sort_order", "total", "item_count")...)}
}

func (r *sectionRepository) ListByEstimate(ctx context.Context, estimateID string) ([]*estimate.Section, error) {
	return r.listWhere(ctx, "sort_order ASC, created_at ASC", "estimate_id = ?", estimateID)
}

type lineItemRepository struct {
	*tenantRepo[estimate.LineItem, *estimate.LineItem]
}

func NewLineItemRepository(db *postgres.DB, logger *logger.Logger) estimate.LineItemRepository {
	return &lineItemRepository{newTenantRepo[estimate.LineItem, *estimate.LineItem](db, logger, "estimate_line_items", types.EntityTypeLineItem,
		cols("estimate_id", "section_id", "description", "quantity", "unit", "unit_cost", "total")...)}
}

func (r *lineItemRepository) ListBySection(ctx context.Context, sectionID string) ([]*estimate.LineItem, error) {
	return r.listWhere(ctx, "created_at ASC", "section_id = ?", sectionID)
}

func NewProposalRepository(db *postgres.DB, logger *logger.Logger) proposal.Repository {
	return newTenantRepo[proposal.Proposal, *proposal.Proposal](db, logger, "proposals", types.EntityTypeProposal,
		cols("estimate_id", "project_id", "number", "title", "amount", "sent_at", "viewed_at", "signed_at", "signer_name", "status")...)
}

func NewRFIRepository(db *postgres.DB, logger *logger.Logger) rfi.Repository {
	return newTenantRepo[rfi.RFI, *rfi.RFI](db, logger, "rfis", types.EntityTypeRFI,
		cols("project_id", "number", "subject", "question", "answer", "assigned_to", "due_date", "answered_at", "answered_by", "status")...)
}

func NewSubmittalRepository(db *postgres.DB, logger *logger.Logger) submittal.Repository {
	return newTenantRepo[submittal.Submittal, *submittal.Submittal](db, logger, "submittals", types.EntityTypeSubmittal,
		cols("project_id", "number", "title", "spec_section", "reviewer_id", "review_notes", "submitted_at", "reviewed_at", "status")...)
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return newTenantRepo[document.Document, *document.Document](db, logger, "documents", types.EntityTypeDocument,
		cols("project_id", "name", "content_type", "size_bytes", "storage_key", "status")...)
}

func NewDailyLogRepository(db *postgres.DB, logger *logger.Logger) dailylog.Repository {
	return newTenantRepo[dailylog.DailyLog, *dailylog.DailyLog](db, logger, "daily_logs", types.EntityTypeDailyLog,
		cols("project_id", "log_date", "weather", "crew_count", "notes", "reviewed_by", "status")...)
}

func NewSafetyIncidentRepository(db *postgres.DB, logger *logger.Logger) incident.Repository {
	return newTenantRepo[incident.SafetyIncident, *incident.SafetyIncident](db, logger, "safety_incidents", types.EntityTypeSafetyIncident,
		cols("project_id", "title", "description", "occurred_at", "severity", "osha_reportable", "status")...)
}

func NewDeficiencyRepository(db *postgres.DB, logger *logger.Logger) deficiency.Repository {
	return newTenantRepo[deficiency.Deficiency, *deficiency.Deficiency](db, logger, "deficiencies", types.EntityTypeDeficiency,
		cols("project_id", "title", "description", "location", "severity", "assigned_to", "status")...)
}

func NewServiceTicketRepository(db *postgres.DB, logger *logger.Logger) serviceticket.Repository {
	return newTenantRepo[serviceticket.ServiceTicket, *serviceticket.ServiceTicket](db, logger, "service_tickets", types.EntityTypeServiceTicket,
		cols("number", "project_id", "customer_name", "description", "priority", "assigned_to", "completed_at", "status")...)
}

func NewWarrantyClaimRepository(db *postgres.DB, logger *logger.Logger) warranty.Repository {
	return newTenantRepo[warranty.Claim, *warranty.Claim](db, logger, "warranty_claims", types.EntityTypeWarrantyClaim,
		cols("project_id", "title", "description", "resolution", "status")...)
}

func NewPayrollRunRepository(db *postgres.DB, logger *logger.Logger) payroll.Repository {
	return newTenantRepo[payroll.Run, *payroll.Run](db, logger, "payroll_runs", types.EntityTypePayrollRun,
		cols("period_start", "period_end", "total_gross", "approved_by", "paid_at", "status")...)
}

func NewClientApprovalRepository(db *postgres.DB, logger *logger.Logger) approval.Repository {
	return newTenantRepo[approval.ClientApproval, *approval.ClientApproval](db, logger, "client_approvals", types.EntityTypeClientApproval,
		cols("project_id", "title", "description", "requested_from", "decided_by", "decided_at", "decision_note", "status")...)
}
