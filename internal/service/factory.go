package service

import (
	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/domain/activemodule"
	"github.com/buildline/buildline/internal/domain/activity"
	"github.com/buildline/buildline/internal/domain/approval"
	"github.com/buildline/buildline/internal/domain/auth"
	"github.com/buildline/buildline/internal/domain/dailylog"
	"github.com/buildline/buildline/internal/domain/deficiency"
	"github.com/buildline/buildline/internal/domain/document"
	"github.com/buildline/buildline/internal/domain/estimate"
	"github.com/buildline/buildline/internal/domain/incident"
	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/organization"
	"github.com/buildline/buildline/internal/domain/payroll"
	"github.com/buildline/buildline/internal/domain/project"
	"github.com/buildline/buildline/internal/domain/proposal"
	"github.com/buildline/buildline/internal/domain/rfi"
	"github.com/buildline/buildline/internal/domain/serviceticket"
	"github.com/buildline/buildline/internal/domain/submittal"
	"github.com/buildline/buildline/internal/domain/user"
	"github.com/buildline/buildline/internal/domain/warranty"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/recalc"
	"github.com/buildline/buildline/internal/sentry"
	"go.uber.org/fx"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	fx.In

	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache
	Sentry *sentry.Service
	RBAC   *rbac.RBACService
	Jobs   jobs.Publisher
	Recalc *recalc.Engine

	// Repositories
	UserRepo           user.Repository
	AuthRepo           auth.Repository
	OrganizationRepo   organization.Repository
	MembershipRepo     membership.Repository
	ActiveModuleRepo   activemodule.Repository
	ActivityRepo       activity.Repository
	ProjectRepo        project.Repository
	EstimateRepo       estimate.Repository
	SectionRepo        estimate.SectionRepository
	LineItemRepo       estimate.LineItemRepository
	ProposalRepo       proposal.Repository
	RFIRepo            rfi.Repository
	SubmittalRepo      submittal.Repository
	DocumentRepo       document.Repository
	DailyLogRepo       dailylog.Repository
	IncidentRepo       incident.Repository
	DeficiencyRepo     deficiency.Repository
	ServiceTicketRepo  serviceticket.Repository
	WarrantyClaimRepo  warranty.Repository
	PayrollRunRepo     payroll.Repository
	ClientApprovalRepo approval.Repository
}

// Module provides every service to the fx graph
var Module = fx.Options(
	fx.Provide(
		NewDispatcher,
		NewSubscriptionGate,
		NewAuthService,
		NewOrganizationService,
		NewMembershipService,
		NewModuleService,
		NewActivityService,
		NewProjectService,
		NewEstimateService,
		NewProposalService,
		NewRFIService,
		NewSubmittalService,
		NewDocumentService,
		NewDailyLogService,
		NewSafetyIncidentService,
		NewDeficiencyService,
		NewServiceTicketService,
		NewWarrantyClaimService,
		NewPayrollRunService,
		NewClientApprovalService,
	),
)
