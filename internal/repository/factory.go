package repository

import (
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
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	postgresRepo "github.com/buildline/buildline/internal/repository/postgres"
	"go.uber.org/fx"
)

// Module provides every repository backed by postgres
func Module() fx.Option {
	return fx.Module("repository",
		fx.Provide(
			NewUserRepository,
			NewAuthRepository,
			NewOrganizationRepository,
			NewMembershipRepository,
			NewActiveModuleRepository,
			NewActivityRepository,
			NewProjectRepository,
			NewEstimateRepository,
			NewEstimateSectionRepository,
			NewLineItemRepository,
			NewProposalRepository,
			NewRFIRepository,
			NewSubmittalRepository,
			NewDocumentRepository,
			NewDailyLogRepository,
			NewSafetyIncidentRepository,
			NewDeficiencyRepository,
			NewServiceTicketRepository,
			NewWarrantyClaimRepository,
			NewPayrollRunRepository,
			NewClientApprovalRepository,
		),
	)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuthRepository(db *postgres.DB, logger *logger.Logger) auth.Repository {
	return postgresRepo.NewAuthRepository(db, logger)
}

func NewOrganizationRepository(db *postgres.DB, logger *logger.Logger) organization.Repository {
	return postgresRepo.NewOrganizationRepository(db, logger)
}

func NewMembershipRepository(db *postgres.DB, logger *logger.Logger) membership.Repository {
	return postgresRepo.NewMembershipRepository(db, logger)
}

func NewActiveModuleRepository(db *postgres.DB, logger *logger.Logger) activemodule.Repository {
	return postgresRepo.NewActiveModuleRepository(db, logger)
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return postgresRepo.NewActivityRepository(db, logger)
}

func NewProjectRepository(db *postgres.DB, logger *logger.Logger) project.Repository {
	return postgresRepo.NewProjectRepository(db, logger)
}

func NewEstimateRepository(db *postgres.DB, logger *logger.Logger) estimate.Repository {
	return postgresRepo.NewEstimateRepository(db, logger)
}

func NewEstimateSectionRepository(db *postgres.DB, logger *logger.Logger) estimate.SectionRepository {
	return postgresRepo.NewEstimateSectionRepository(db, logger)
}

func NewLineItemRepository(db *postgres.DB, logger *logger.Logger) estimate.LineItemRepository {
	return postgresRepo.NewLineItemRepository(db, logger)
}

func NewProposalRepository(db *postgres.DB, logger *logger.Logger) proposal.Repository {
	return postgresRepo.NewProposalRepository(db, logger)
}

func NewRFIRepository(db *postgres.DB, logger *logger.Logger) rfi.Repository {
	return postgresRepo.NewRFIRepository(db, logger)
}

func NewSubmittalRepository(db *postgres.DB, logger *logger.Logger) submittal.Repository {
	return postgresRepo.NewSubmittalRepository(db, logger)
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return postgresRepo.NewDocumentRepository(db, logger)
}

func NewDailyLogRepository(db *postgres.DB, logger *logger.Logger) dailylog.Repository {
	return postgresRepo.NewDailyLogRepository(db, logger)
}

func NewSafetyIncidentRepository(db *postgres.DB, logger *logger.Logger) incident.Repository {
	return postgresRepo.NewSafetyIncidentRepository(db, logger)
}

func NewDeficiencyRepository(db *postgres.DB, logger *logger.Logger) deficiency.Repository {
	return postgresRepo.NewDeficiencyRepository(db, logger)
}

func NewServiceTicketRepository(db *postgres.DB, logger *logger.Logger) serviceticket.Repository {
	return postgresRepo.NewServiceTicketRepository(db, logger)
}

func NewWarrantyClaimRepository(db *postgres.DB, logger *logger.Logger) warranty.Repository {
	return postgresRepo.NewWarrantyClaimRepository(db, logger)
}

func NewPayrollRunRepository(db *postgres.DB, logger *logger.Logger) payroll.Repository {
	return postgresRepo.NewPayrollRunRepository(db, logger)
}

func NewClientApprovalRepository(db *postgres.DB, logger *logger.Logger) approval.Repository {
	return postgresRepo.NewClientApprovalRepository(db, logger)
}
