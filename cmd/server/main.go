package main

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api"
	v1 "github.com/buildline/buildline/internal/api/v1"
	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	pubsubRouter "github.com/buildline/buildline/internal/pubsub/router"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/recalc"
	"github.com/buildline/buildline/internal/repository"
	"github.com/buildline/buildline/internal/sentry"
	"github.com/buildline/buildline/internal/service"
	"github.com/buildline/buildline/internal/tenancy"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Buildline API
// @version 1.0
// @description Multi-tenant construction management API
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Enter the token in the format *Bearer &lt;token&gt;*

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Access control
			rbac.NewRBACService,
			tenancy.NewResolver,

			// Recalculation
			recalc.NewEngine,
		),
		sentry.Module(),
		postgres.Module(),
		repository.Module(),
		jobs.Module,
	)

	// Service layer
	opts = append(opts, service.Module)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	db postgres.IClient,
	authService service.AuthService,
	organizationService service.OrganizationService,
	membershipService service.MembershipService,
	moduleService service.ModuleService,
	activityService service.ActivityService,
	projectService service.ProjectService,
	estimateService service.EstimateService,
	proposalService service.ProposalService,
	rfiService service.RFIService,
	submittalService service.SubmittalService,
	documentService service.DocumentService,
	dailyLogService service.DailyLogService,
	incidentService service.SafetyIncidentService,
	deficiencyService service.DeficiencyService,
	serviceTicketService service.ServiceTicketService,
	warrantyClaimService service.WarrantyClaimService,
	payrollRunService service.PayrollRunService,
	clientApprovalService service.ClientApprovalService,
) api.Handlers {
	return api.Handlers{
		Health:         v1.NewHealthHandler(db, logger),
		Auth:           v1.NewAuthHandler(authService, logger),
		Organization:   v1.NewOrganizationHandler(organizationService, logger),
		Billing:        v1.NewBillingHandler(organizationService, logger),
		Membership:     v1.NewMembershipHandler(membershipService, logger),
		Module:         v1.NewModuleHandler(moduleService, logger),
		Activity:       v1.NewActivityHandler(activityService, logger),
		Project:        v1.NewProjectHandler(projectService, logger),
		Estimate:       v1.NewEstimateHandler(estimateService, logger),
		Proposal:       v1.NewProposalHandler(proposalService, logger),
		RFI:            v1.NewRFIHandler(rfiService, logger),
		Submittal:      v1.NewSubmittalHandler(submittalService, logger),
		Document:       v1.NewDocumentHandler(documentService, logger),
		DailyLog:       v1.NewDailyLogHandler(dailyLogService, logger),
		SafetyIncident: v1.NewSafetyIncidentHandler(incidentService, logger),
		Deficiency:     v1.NewDeficiencyHandler(deficiencyService, logger),
		ServiceTicket:  v1.NewServiceTicketHandler(serviceTicketService, logger),
		WarrantyClaim:  v1.NewWarrantyClaimHandler(warrantyClaimService, logger),
		PayrollRun:     v1.NewPayrollRunHandler(payrollRunService, logger),
		ClientApproval: v1.NewClientApprovalHandler(clientApprovalService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	rbacService *rbac.RBACService,
	resolver *tenancy.Resolver,
	gate service.SubscriptionGate,
) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers, cfg, logger, rbacService, resolver, gate)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	handler jobs.Handler,
	publisher jobs.Publisher,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		jobs.StartWorker(lc, router, handler, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		// the in-memory queue is only reachable from this process
		if cfg.Jobs.PubSub == types.MemoryPubSub {
			jobs.StartWorker(lc, router, handler, log)
		}
	case types.ModeWorker:
		jobs.StartWorker(lc, router, handler, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
