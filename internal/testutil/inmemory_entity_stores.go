package testutil

import (
	"context"
	"sort"

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
	"github.com/buildline/buildline/internal/types"
)

type (
	InMemoryProjectStore        = InMemoryTenantStore[project.Project, *project.Project]
	InMemoryEstimateStore       = InMemoryTenantStore[estimate.Estimate, *estimate.Estimate]
	InMemoryProposalStore       = InMemoryTenantStore[proposal.Proposal, *proposal.Proposal]
	InMemoryRFIStore            = InMemoryTenantStore[rfi.RFI, *rfi.RFI]
	InMemorySubmittalStore      = InMemoryTenantStore[submittal.Submittal, *submittal.Submittal]
	InMemoryDocumentStore       = InMemoryTenantStore[document.Document, *document.Document]
	InMemoryDailyLogStore       = InMemoryTenantStore[dailylog.DailyLog, *dailylog.DailyLog]
	InMemoryIncidentStore       = InMemoryTenantStore[incident.SafetyIncident, *incident.SafetyIncident]
	InMemoryDeficiencyStore     = InMemoryTenantStore[deficiency.Deficiency, *deficiency.Deficiency]
	InMemoryServiceTicketStore  = InMemoryTenantStore[serviceticket.ServiceTicket, *serviceticket.ServiceTicket]
	InMemoryWarrantyClaimStore  = InMemoryTenantStore[warranty.Claim, *warranty.Claim]
	InMemoryPayrollRunStore     = InMemoryTenantStore[payroll.Run, *payroll.Run]
	InMemoryClientApprovalStore = InMemoryTenantStore[approval.ClientApproval, *approval.ClientApproval]
)

func NewInMemoryProjectStore() *InMemoryProjectStore {
	return NewInMemoryTenantStore[project.Project, *project.Project](types.EntityTypeProject)
}

func NewInMemoryEstimateStore() *InMemoryEstimateStore {
	return NewInMemoryTenantStore[estimate.Estimate, *estimate.Estimate](types.EntityTypeEstimate)
}

func NewInMemoryProposalStore() *InMemoryProposalStore {
	return NewInMemoryTenantStore[proposal.Proposal, *proposal.Proposal](types.EntityTypeProposal)
}

func NewInMemoryRFIStore() *InMemoryRFIStore {
	return NewInMemoryTenantStore[rfi.RFI, *rfi.RFI](types.EntityTypeRFI)
}

func NewInMemorySubmittalStore() *InMemorySubmittalStore {
	return NewInMemoryTenantStore[submittal.Submittal, *submittal.Submittal](types.EntityTypeSubmittal)
}

func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return NewInMemoryTenantStore[document.Document, *document.Document](types.EntityTypeDocument)
}

func NewInMemoryDailyLogStore() *InMemoryDailyLogStore {
	return NewInMemoryTenantStore[dailylog.DailyLog, *dailylog.DailyLog](types.EntityTypeDailyLog)
}

func NewInMemoryIncidentStore() *InMemoryIncidentStore {
	return NewInMemoryTenantStore[incident.SafetyIncident, *incident.SafetyIncident](types.EntityTypeSafetyIncident)
}

func NewInMemoryDeficiencyStore() *InMemoryDeficiencyStore {
	return NewInMemoryTenantStore[deficiency.Deficiency, *deficiency.Deficiency](types.EntityTypeDeficiency)
}

func NewInMemoryServiceTicketStore() *InMemoryServiceTicketStore {
	return NewInMemoryTenantStore[serviceticket.ServiceTicket, *serviceticket.ServiceTicket](types.EntityTypeServiceTicket)
}

func NewInMemoryWarrantyClaimStore() *InMemoryWarrantyClaimStore {
	return NewInMemoryTenantStore[warranty.Claim, *warranty.Claim](types.EntityTypeWarrantyClaim)
}

func NewInMemoryPayrollRunStore() *InMemoryPayrollRunStore {
	return NewInMemoryTenantStore[payroll.Run, *payroll.Run](types.EntityTypePayrollRun)
}

func NewInMemoryClientApprovalStore() *InMemoryClientApprovalStore {
	return NewInMemoryTenantStore[approval.ClientApproval, *approval.ClientApproval](types.EntityTypeClientApproval)
}

// InMemorySectionStore implements estimate.SectionRepository
type InMemorySectionStore struct {
	*InMemoryTenantStore[estimate.Section, *estimate.Section]
}

func NewInMemorySectionStore() *InMemorySectionStore {
	return &InMemorySectionStore{NewInMemoryTenantStore[estimate.Section, *estimate.Section](types.EntityTypeSection)}
}

func (s *InMemorySectionStore) ListByEstimate(ctx context.Context, estimateID string) ([]*estimate.Section, error) {
	sections, err := s.ListWhere(ctx, func(sec *estimate.Section) bool { return sec.EstimateID == estimateID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})
	return sections, nil
}

// InMemoryLineItemStore implements estimate.LineItemRepository
type InMemoryLineItemStore struct {
	*InMemoryTenantStore[estimate.LineItem, *estimate.LineItem]
}

func NewInMemoryLineItemStore() *InMemoryLineItemStore {
	return &InMemoryLineItemStore{NewInMemoryTenantStore[estimate.LineItem, *estimate.LineItem](types.EntityTypeLineItem)}
}

func (s *InMemoryLineItemStore) ListBySection(ctx context.Context, sectionID string) ([]*estimate.LineItem, error) {
	return s.ListWhere(ctx, func(item *estimate.LineItem) bool { return item.SectionID == sectionID })
}
