package testutil

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/domain/activemodule"
	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/organization"
	"github.com/buildline/buildline/internal/domain/project"
	"github.com/buildline/buildline/internal/domain/user"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/rbac"
	"github.com/buildline/buildline/internal/recalc"
	"github.com/buildline/buildline/internal/types"
	"github.com/buildline/buildline/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds every in-memory repository used by service tests
type Stores struct {
	UserRepo           *InMemoryUserStore
	AuthRepo           *InMemoryAuthRepository
	OrganizationRepo   *InMemoryOrganizationStore
	MembershipRepo     *InMemoryMembershipStore
	ActiveModuleRepo   *InMemoryActiveModuleStore
	ActivityRepo       *InMemoryActivityStore
	ProjectRepo        *InMemoryProjectStore
	EstimateRepo       *InMemoryEstimateStore
	SectionRepo        *InMemorySectionStore
	LineItemRepo       *InMemoryLineItemStore
	ProposalRepo       *InMemoryProposalStore
	RFIRepo            *InMemoryRFIStore
	SubmittalRepo      *InMemorySubmittalStore
	DocumentRepo       *InMemoryDocumentStore
	DailyLogRepo       *InMemoryDailyLogStore
	IncidentRepo       *InMemoryIncidentStore
	DeficiencyRepo     *InMemoryDeficiencyStore
	ServiceTicketRepo  *InMemoryServiceTicketStore
	WarrantyClaimRepo  *InMemoryWarrantyClaimStore
	PayrollRunRepo     *InMemoryPayrollRunStore
	ClientApprovalRepo *InMemoryClientApprovalStore
}

// BaseServiceTestSuite provides common functionality for all service test suites.
// Every test starts with fresh stores, an organization on an active
// subscription and an owner acting in it.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	db        *MockPostgresClient
	cache     cache.Cache
	pubSub    *InMemoryPubSub
	publisher jobs.Publisher
	rbac      *rbac.RBACService
	recalc    *recalc.Engine
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Auth.Secret = "test-secret-for-unit-tests-only"
	s.config.Recalc.InitialInterval = time.Millisecond
	s.logger = logger.NewNoop()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.now = time.Now().UTC()
	s.setupStores()
	s.setupContext()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.pubSub.ClearMessages()
	s.cache.Flush(context.Background())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:           NewInMemoryUserStore(),
		AuthRepo:           NewInMemoryAuthRepository(),
		OrganizationRepo:   NewInMemoryOrganizationStore(),
		MembershipRepo:     NewInMemoryMembershipStore(),
		ActiveModuleRepo:   NewInMemoryActiveModuleStore(),
		ActivityRepo:       NewInMemoryActivityStore(),
		ProjectRepo:        NewInMemoryProjectStore(),
		EstimateRepo:       NewInMemoryEstimateStore(),
		SectionRepo:        NewInMemorySectionStore(),
		LineItemRepo:       NewInMemoryLineItemStore(),
		ProposalRepo:       NewInMemoryProposalStore(),
		RFIRepo:            NewInMemoryRFIStore(),
		SubmittalRepo:      NewInMemorySubmittalStore(),
		DocumentRepo:       NewInMemoryDocumentStore(),
		DailyLogRepo:       NewInMemoryDailyLogStore(),
		IncidentRepo:       NewInMemoryIncidentStore(),
		DeficiencyRepo:     NewInMemoryDeficiencyStore(),
		ServiceTicketRepo:  NewInMemoryServiceTicketStore(),
		WarrantyClaimRepo:  NewInMemoryWarrantyClaimStore(),
		PayrollRunRepo:     NewInMemoryPayrollRunStore(),
		ClientApprovalRepo: NewInMemoryClientApprovalStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache(s.config)
	s.pubSub = NewInMemoryPubSub()
	s.publisher = jobs.NewPublisher(s.pubSub, s.config, s.logger)
	s.rbac = rbac.NewRBACService(s.stores.MembershipRepo, s.stores.ActiveModuleRepo, s.cache, s.logger)
	s.recalc = recalc.NewEngine(s.db, s.config, s.logger, nil)
}

// setupContext seeds the default organization and its owner
func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
	s.SeedOrganization(DefaultOrganizationID, DefaultUserID, types.SubscriptionStatusActive)
}

// SeedOrganization stores an organization owned by ownerID together with the
// owner user and membership
func (s *BaseServiceTestSuite) SeedOrganization(orgID, ownerID string, status types.SubscriptionStatus) *organization.Organization {
	ctx := context.Background()

	if _, err := s.stores.UserRepo.GetByID(ctx, ownerID); err != nil {
		u := user.NewUser(ownerID+"@example.com", ownerID)
		u.ID = ownerID
		s.Require().NoError(s.stores.UserRepo.Create(ctx, u))
	}

	org := organization.New("Org "+orgID, ownerID)
	org.ID = orgID
	org.SubscriptionStatus = status
	s.Require().NoError(s.stores.OrganizationRepo.Create(ctx, org))
	s.Require().NoError(s.stores.MembershipRepo.Create(ctx, membership.NewOwner(orgID, ownerID)))
	return org
}

// SeedMember adds an active member with role to orgID and returns their context
func (s *BaseServiceTestSuite) SeedMember(orgID, userID string, role types.Role) context.Context {
	ctx := context.Background()

	if _, err := s.stores.UserRepo.GetByID(ctx, userID); err != nil {
		u := user.NewUser(userID+"@example.com", userID)
		u.ID = userID
		s.Require().NoError(s.stores.UserRepo.Create(ctx, u))
	}

	m := membership.NewOwner(orgID, userID)
	m.Role = role
	s.Require().NoError(s.stores.MembershipRepo.Create(ctx, m))
	return WithOrganization(s.ctx, orgID, userID)
}

// ActivateModule switches key on for the organization on ctx
func (s *BaseServiceTestSuite) ActivateModule(ctx context.Context, key types.ModuleKey) {
	row := &activemodule.ActiveModule{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVE_MODULE),
		ModuleKey: key,
		Active:    true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.stores.ActiveModuleRepo.Upsert(ctx, row))
	s.rbac.InvalidateModules(ctx, types.GetOrganizationID(ctx))
}

// SeedProject stores an active project in the organization on ctx
func (s *BaseServiceTestSuite) SeedProject(ctx context.Context, name string) *project.Project {
	p := &project.Project{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PROJECT),
		Name:      name,
		Status:    types.ProjectStatusActive,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.Require().NoError(s.stores.ProjectRepo.Create(ctx, p))
	return p
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetPubSub returns the queue every job is published to
func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubSub
}

func (s *BaseServiceTestSuite) GetPublisher() jobs.Publisher {
	return s.publisher
}

func (s *BaseServiceTestSuite) GetRBAC() *rbac.RBACService {
	return s.rbac
}

func (s *BaseServiceTestSuite) GetRecalc() *recalc.Engine {
	return s.recalc
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetJobs returns the jobs of kind enqueued so far
func (s *BaseServiceTestSuite) GetJobs(kind types.JobKind) []*types.Job {
	return s.pubSub.Jobs(s.config.Jobs.Topic, kind)
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
