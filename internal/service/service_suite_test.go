package service

import (
	"encoding/json"

	"github.com/buildline/buildline/internal/domain/activity"
	"github.com/buildline/buildline/internal/jobs"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

// ServiceSuite wires every service against the in-memory stores of the base suite
type ServiceSuite struct {
	testutil.BaseServiceTestSuite
	params     ServiceParams
	dispatcher *Dispatcher
}

func (s *ServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.params = ServiceParams{
		Logger: s.GetLogger(),
		Config: s.GetConfig(),
		DB:     s.GetDB(),
		Cache:  s.GetCache(),
		RBAC:   s.GetRBAC(),
		Jobs:   s.GetPublisher(),
		Recalc: s.GetRecalc(),

		UserRepo:           stores.UserRepo,
		AuthRepo:           stores.AuthRepo,
		OrganizationRepo:   stores.OrganizationRepo,
		MembershipRepo:     stores.MembershipRepo,
		ActiveModuleRepo:   stores.ActiveModuleRepo,
		ActivityRepo:       stores.ActivityRepo,
		ProjectRepo:        stores.ProjectRepo,
		EstimateRepo:       stores.EstimateRepo,
		SectionRepo:        stores.SectionRepo,
		LineItemRepo:       stores.LineItemRepo,
		ProposalRepo:       stores.ProposalRepo,
		RFIRepo:            stores.RFIRepo,
		SubmittalRepo:      stores.SubmittalRepo,
		DocumentRepo:       stores.DocumentRepo,
		DailyLogRepo:       stores.DailyLogRepo,
		IncidentRepo:       stores.IncidentRepo,
		DeficiencyRepo:     stores.DeficiencyRepo,
		ServiceTicketRepo:  stores.ServiceTicketRepo,
		WarrantyClaimRepo:  stores.WarrantyClaimRepo,
		PayrollRunRepo:     stores.PayrollRunRepo,
		ClientApprovalRepo: stores.ClientApprovalRepo,
	}
	s.dispatcher = NewDispatcher(s.params)
}

// activities returns the feed entries recorded for entityID
func (s *ServiceSuite) activities(entityID string) []*activity.Log {
	return lo.Filter(s.GetStores().ActivityRepo.All(), func(l *activity.Log, _ int) bool {
		return l.EntityID == entityID
	})
}

// actions returns the action names recorded for entityID in order
func (s *ServiceSuite) actions(entityID string) []string {
	return lo.Map(s.activities(entityID), func(l *activity.Log, _ int) string {
		return l.Action
	})
}

func (s *ServiceSuite) elevated(entityID string) []*activity.Log {
	return lo.Filter(s.activities(entityID), func(l *activity.Log, _ int) bool {
		return l.Severity == types.ActivitySeverityElevated
	})
}

// payloads decodes every job of kind enqueued so far
func (s *ServiceSuite) payloads(kind types.JobKind) []jobs.Payload {
	queued := s.GetJobs(kind)
	out := make([]jobs.Payload, 0, len(queued))
	for _, job := range queued {
		var p jobs.Payload
		s.Require().NoError(json.Unmarshal(job.Payload, &p))
		out = append(out, p)
	}
	return out
}
