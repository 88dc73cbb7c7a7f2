package api

import (
	v1 "github.com/buildline/buildline/internal/api/v1"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/rest/middleware"
	"github.com/buildline/buildline/internal/service"
	"github.com/buildline/buildline/internal/tenancy"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health         *v1.HealthHandler
	Auth           *v1.AuthHandler
	Organization   *v1.OrganizationHandler
	Billing        *v1.BillingHandler
	Membership     *v1.MembershipHandler
	Module         *v1.ModuleHandler
	Activity       *v1.ActivityHandler
	Project        *v1.ProjectHandler
	Estimate       *v1.EstimateHandler
	Proposal       *v1.ProposalHandler
	RFI            *v1.RFIHandler
	Submittal      *v1.SubmittalHandler
	Document       *v1.DocumentHandler
	DailyLog       *v1.DailyLogHandler
	SafetyIncident *v1.SafetyIncidentHandler
	Deficiency     *v1.DeficiencyHandler
	ServiceTicket  *v1.ServiceTicketHandler
	WarrantyClaim  *v1.WarrantyClaimHandler
	PayrollRun     *v1.PayrollRunHandler
	ClientApproval *v1.ClientApprovalHandler
}

func NewRouter(
	handlers Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	rbacService *rbac.RBACService,
	resolver *tenancy.Resolver,
	gate service.SubscriptionGate,
) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(),
		gin.Recovery(),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authenticate := middleware.AuthenticateMiddleware(cfg, logger)
	organization := middleware.NewOrganizationMiddleware(resolver, rbacService, logger)
	permission := middleware.NewPermissionMiddleware(rbacService, logger)

	v1Group := router.Group("/v1")

	auth := v1Group.Group("/auth")
	{
		auth.POST("/signup", handlers.Auth.SignUp)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", authenticate, handlers.Auth.Me)
	}

	webhooks := v1Group.Group("/webhooks")
	{
		webhooks.POST("/billing", middleware.BillingWebhookMiddleware(cfg), handlers.Billing.HandleEvent)
	}

	// organization administration checks membership and roles itself
	organizations := v1Group.Group("/organizations", authenticate)
	{
		organizations.POST("", handlers.Organization.Create)
		organizations.GET("", handlers.Organization.ListMine)
		organizations.POST("/switch", handlers.Organization.Switch)
		organizations.GET("/:id", handlers.Organization.Get)
		organizations.PUT("/:id", handlers.Organization.Update)
		organizations.DELETE("/:id", handlers.Organization.Archive)
	}

	v1Group.POST("/invitations/accept", authenticate, handlers.Membership.Accept)

	// organization scoped routes resolve the organization from the header or
	// token, or explicitly from the /orgs/:org_id prefix
	scoped := []gin.HandlerFunc{
		authenticate,
		organization.Handle,
		middleware.SentryTenantScope,
		middleware.SubscriptionMiddleware(gate),
	}
	registerScopedRoutes(v1Group.Group("", scoped...), handlers, permission)
	registerScopedRoutes(v1Group.Group("/orgs/:org_id", scoped...), handlers, permission)

	return router
}

func registerScopedRoutes(router *gin.RouterGroup, handlers Handlers, pm *middleware.PermissionMiddleware) {
	member := pm.RequireRole(types.RoleReadOnly)
	fieldWorker := pm.RequireRole(types.RoleFieldWorker)
	accountant := pm.RequireRole(types.RoleAccountant)
	estimator := pm.RequireRole(types.RoleEstimator)
	projectManager := pm.RequireRole(types.RoleProjectManager)
	admin := pm.RequireRole(types.RoleAdmin)

	router.GET("/activities", member, handlers.Activity.List)

	members := router.Group("/members")
	{
		members.GET("", member, handlers.Membership.List)
		members.POST("/invitations", admin, handlers.Membership.Invite)
		members.PUT("/:id/role", admin, handlers.Membership.ChangeRole)
		members.DELETE("/:id", admin, handlers.Membership.Deactivate)
	}

	modules := router.Group("/modules")
	{
		modules.GET("", member, handlers.Module.List)
		modules.POST("/:key/activate", admin, handlers.Module.Activate)
		modules.POST("/:key/deactivate", admin, handlers.Module.Deactivate)
	}

	projects := router.Group("/projects", pm.RequireModule(types.ModuleProjects))
	{
		projects.POST("", projectManager, handlers.Project.CreateProject)
		projects.GET("", member, handlers.Project.ListProjects)
		projects.GET("/:id", member, handlers.Project.GetProject)
		projects.PUT("/:id", projectManager, handlers.Project.UpdateProject)
	}

	estimating := pm.RequireModule(types.ModuleEstimating)
	estimates := router.Group("/estimates", estimating)
	{
		estimates.POST("", estimator, handlers.Estimate.CreateEstimate)
		estimates.GET("", member, handlers.Estimate.ListEstimates)
		estimates.GET("/:id", member, handlers.Estimate.GetEstimate)
		estimates.PUT("/:id", estimator, handlers.Estimate.UpdateEstimate)
		estimates.POST("/:id/sections", estimator, handlers.Estimate.CreateSection)
		estimates.GET("/:id/sections", member, handlers.Estimate.ListSections)
	}

	sections := router.Group("/estimate-sections", estimating)
	{
		sections.PUT("/:section_id", estimator, handlers.Estimate.UpdateSection)
		sections.DELETE("/:section_id", estimator, handlers.Estimate.DeleteSection)
		sections.POST("/:section_id/line-items", estimator, handlers.Estimate.CreateLineItem)
		sections.GET("/:section_id/line-items", member, handlers.Estimate.ListLineItems)
	}

	lineItems := router.Group("/estimate-line-items", estimating)
	{
		lineItems.PUT("/:line_item_id", estimator, handlers.Estimate.UpdateLineItem)
		lineItems.DELETE("/:line_item_id", estimator, handlers.Estimate.DeleteLineItem)
	}

	// sign and decline come from the client portal, so any member may record them
	proposals := router.Group("/proposals", estimating)
	{
		proposals.POST("", estimator, handlers.Proposal.CreateProposal)
		proposals.GET("", member, handlers.Proposal.ListProposals)
		proposals.GET("/:id", member, handlers.Proposal.GetProposal)
		proposals.POST("/:id/send", estimator, handlers.Proposal.SendProposal)
		proposals.POST("/:id/view", member, handlers.Proposal.MarkViewed)
		proposals.POST("/:id/sign", member, handlers.Proposal.SignProposal)
		proposals.POST("/:id/decline", member, handlers.Proposal.DeclineProposal)
	}

	documentsModule := pm.RequireModule(types.ModuleDocuments)
	rfis := router.Group("/rfis", documentsModule)
	{
		rfis.POST("", fieldWorker, handlers.RFI.CreateRFI)
		rfis.GET("", member, handlers.RFI.ListRFIs)
		rfis.GET("/:id", member, handlers.RFI.GetRFI)
		rfis.POST("/:id/answer", fieldWorker, handlers.RFI.AnswerRFI)
		rfis.POST("/:id/close", fieldWorker, handlers.RFI.CloseRFI)
		rfis.POST("/:id/reopen", fieldWorker, handlers.RFI.ReopenRFI)
	}

	submittals := router.Group("/submittals", documentsModule)
	{
		submittals.POST("", fieldWorker, handlers.Submittal.CreateSubmittal)
		submittals.GET("", member, handlers.Submittal.ListSubmittals)
		submittals.GET("/:id", member, handlers.Submittal.GetSubmittal)
		submittals.POST("/:id/submit", fieldWorker, handlers.Submittal.SubmitSubmittal)
		submittals.POST("/:id/review", projectManager, handlers.Submittal.ReviewSubmittal)
	}

	documents := router.Group("/documents", documentsModule)
	{
		documents.POST("", fieldWorker, handlers.Document.CreateDocument)
		documents.GET("", member, handlers.Document.ListDocuments)
		documents.GET("/:id", member, handlers.Document.GetDocument)
		documents.POST("/:id/archive", fieldWorker, handlers.Document.ArchiveDocument)
		documents.POST("/:id/restore", fieldWorker, handlers.Document.RestoreDocument)
	}

	fieldOps := pm.RequireModule(types.ModuleFieldOps)
	dailyLogs := router.Group("/daily-logs", fieldOps)
	{
		dailyLogs.POST("", fieldWorker, handlers.DailyLog.CreateDailyLog)
		dailyLogs.GET("", member, handlers.DailyLog.ListDailyLogs)
		dailyLogs.GET("/:id", member, handlers.DailyLog.GetDailyLog)
		dailyLogs.POST("/:id/submit", fieldWorker, handlers.DailyLog.SubmitDailyLog)
		dailyLogs.POST("/:id/approve", projectManager, handlers.DailyLog.ApproveDailyLog)
		dailyLogs.POST("/:id/reject", projectManager, handlers.DailyLog.RejectDailyLog)
	}

	incidents := router.Group("/incidents", fieldOps)
	{
		incidents.POST("", fieldWorker, handlers.SafetyIncident.ReportIncident)
		incidents.GET("", member, handlers.SafetyIncident.ListIncidents)
		incidents.GET("/:id", member, handlers.SafetyIncident.GetIncident)
		incidents.POST("/:id/investigate", fieldWorker, handlers.SafetyIncident.InvestigateIncident)
		incidents.POST("/:id/close", fieldWorker, handlers.SafetyIncident.CloseIncident)
	}

	deficiencies := router.Group("/deficiencies", fieldOps)
	{
		deficiencies.POST("", fieldWorker, handlers.Deficiency.CreateDeficiency)
		deficiencies.GET("", member, handlers.Deficiency.ListDeficiencies)
		deficiencies.GET("/:id", member, handlers.Deficiency.GetDeficiency)
		deficiencies.POST("/:id/start", fieldWorker, handlers.Deficiency.StartDeficiency)
		deficiencies.POST("/:id/resolve", fieldWorker, handlers.Deficiency.ResolveDeficiency)
		deficiencies.POST("/:id/verify", projectManager, handlers.Deficiency.VerifyDeficiency)
		deficiencies.POST("/:id/reopen", projectManager, handlers.Deficiency.ReopenDeficiency)
	}

	serviceModule := pm.RequireModule(types.ModuleService)
	tickets := router.Group("/service-tickets", serviceModule)
	{
		tickets.POST("", fieldWorker, handlers.ServiceTicket.CreateServiceTicket)
		tickets.GET("", member, handlers.ServiceTicket.ListServiceTickets)
		tickets.GET("/:id", member, handlers.ServiceTicket.GetServiceTicket)
		tickets.POST("/:id/assign", fieldWorker, handlers.ServiceTicket.AssignServiceTicket)
		tickets.POST("/:id/start", fieldWorker, handlers.ServiceTicket.StartServiceTicket)
		tickets.POST("/:id/complete", fieldWorker, handlers.ServiceTicket.CompleteServiceTicket)
		tickets.POST("/:id/close", fieldWorker, handlers.ServiceTicket.CloseServiceTicket)
		tickets.POST("/:id/cancel", fieldWorker, handlers.ServiceTicket.CancelServiceTicket)
	}

	claims := router.Group("/warranty-claims", serviceModule)
	{
		claims.POST("", projectManager, handlers.WarrantyClaim.CreateClaim)
		claims.GET("", member, handlers.WarrantyClaim.ListClaims)
		claims.GET("/:id", member, handlers.WarrantyClaim.GetClaim)
		claims.POST("/:id/review", projectManager, handlers.WarrantyClaim.ReviewClaim)
		claims.POST("/:id/approve", projectManager, handlers.WarrantyClaim.ApproveClaim)
		claims.POST("/:id/deny", projectManager, handlers.WarrantyClaim.DenyClaim)
		claims.POST("/:id/resolve", projectManager, handlers.WarrantyClaim.ResolveClaim)
	}

	payrollRuns := router.Group("/payroll-runs", pm.RequireModule(types.ModulePayroll))
	{
		payrollRuns.POST("", accountant, handlers.PayrollRun.CreateRun)
		payrollRuns.GET("", accountant, handlers.PayrollRun.ListRuns)
		payrollRuns.GET("/:id", accountant, handlers.PayrollRun.GetRun)
		payrollRuns.POST("/:id/process", accountant, handlers.PayrollRun.ProcessRun)
		payrollRuns.POST("/:id/approve", admin, handlers.PayrollRun.ApproveRun)
		payrollRuns.POST("/:id/pay", accountant, handlers.PayrollRun.MarkRunPaid)
		payrollRuns.POST("/:id/cancel", accountant, handlers.PayrollRun.CancelRun)
	}

	approvals := router.Group("/client-approvals", pm.RequireModule(types.ModulePortal))
	{
		approvals.POST("", projectManager, handlers.ClientApproval.CreateApproval)
		approvals.GET("", member, handlers.ClientApproval.ListApprovals)
		approvals.GET("/:id", member, handlers.ClientApproval.GetApproval)
		approvals.POST("/:id/approve", member, handlers.ClientApproval.Approve)
		approvals.POST("/:id/reject", member, handlers.ClientApproval.Reject)
	}
}
