package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "github.com/buildline/buildline/internal/api/v1"
	"github.com/buildline/buildline/internal/auth"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/service"
	"github.com/buildline/buildline/internal/tenancy"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const billingSecret = "whsec_test"

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupSuite() {
	s.BaseServiceTestSuite.SetupSuite()
	gin.SetMode(gin.TestMode)
	s.GetConfig().Billing.WebhookSecret = billingSecret
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	log := s.GetLogger()
	params := service.ServiceParams{
		Logger: log,
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
	dispatcher := service.NewDispatcher(params)
	organizations := service.NewOrganizationService(params, dispatcher)

	handlers := Handlers{
		Health:         v1.NewHealthHandler(s.GetDB(), log),
		Auth:           v1.NewAuthHandler(service.NewAuthService(params, dispatcher), log),
		Organization:   v1.NewOrganizationHandler(organizations, log),
		Billing:        v1.NewBillingHandler(organizations, log),
		Membership:     v1.NewMembershipHandler(service.NewMembershipService(params, dispatcher), log),
		Module:         v1.NewModuleHandler(service.NewModuleService(params, dispatcher), log),
		Activity:       v1.NewActivityHandler(service.NewActivityService(params), log),
		Project:        v1.NewProjectHandler(service.NewProjectService(params, dispatcher), log),
		Estimate:       v1.NewEstimateHandler(service.NewEstimateService(params, dispatcher), log),
		Proposal:       v1.NewProposalHandler(service.NewProposalService(params, dispatcher), log),
		RFI:            v1.NewRFIHandler(service.NewRFIService(params, dispatcher), log),
		Submittal:      v1.NewSubmittalHandler(service.NewSubmittalService(params, dispatcher), log),
		Document:       v1.NewDocumentHandler(service.NewDocumentService(params, dispatcher), log),
		DailyLog:       v1.NewDailyLogHandler(service.NewDailyLogService(params, dispatcher), log),
		SafetyIncident: v1.NewSafetyIncidentHandler(service.NewSafetyIncidentService(params, dispatcher), log),
		Deficiency:     v1.NewDeficiencyHandler(service.NewDeficiencyService(params, dispatcher), log),
		ServiceTicket:  v1.NewServiceTicketHandler(service.NewServiceTicketService(params, dispatcher), log),
		WarrantyClaim:  v1.NewWarrantyClaimHandler(service.NewWarrantyClaimService(params, dispatcher), log),
		PayrollRun:     v1.NewPayrollRunHandler(service.NewPayrollRunService(params, dispatcher), log),
		ClientApproval: v1.NewClientApprovalHandler(service.NewClientApprovalService(params, dispatcher), log),
	}

	s.router = NewRouter(
		handlers,
		s.GetConfig(),
		log,
		s.GetRBAC(),
		tenancy.NewResolver(stores.UserRepo, stores.MembershipRepo, log),
		service.NewSubscriptionGate(params),
	)
}

func (s *RouterSuite) token(userID, orgID string) string {
	token, err := auth.NewProvider(s.GetConfig()).IssueToken(userID, orgID)
	s.Require().NoError(err)
	return token
}

func (s *RouterSuite) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) errorOf(w *httptest.ResponseRecorder) ierr.ErrorResponse {
	var resp ierr.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Success)
	return resp
}

func (s *RouterSuite) TestMissingTokenIsUnauthorized() {
	w := s.do(http.MethodGet, "/v1/projects", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(ierr.ErrCodeUnauthorized, s.errorOf(w).Error.Code)

	w = s.do(http.MethodGet, "/v1/projects", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	w := s.do(http.MethodGet, "/v1/projects", "", nil, types.HeaderRequestID, "req-123")
	s.Equal("req-123", w.Header().Get(types.HeaderRequestID))

	w = s.do(http.MethodGet, "/v1/projects", "", nil)
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestOrganizationFromPathHeaderAndToken() {
	token := s.token(testutil.DefaultUserID, "")
	body := map[string]any{"name": "Riverside Clinic"}

	w := s.do(http.MethodPost, "/v1/orgs/"+testutil.DefaultOrganizationID+"/projects", token, body)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/projects", token, body, types.HeaderOrganizationID, testutil.DefaultOrganizationID)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/projects", s.token(testutil.DefaultUserID, testutil.DefaultOrganizationID), nil)
	s.Equal(http.StatusOK, w.Code)

	var list struct {
		Items []map[string]any `json:"items"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Len(list.Items, 2)
}

func (s *RouterSuite) TestForeignOrganizationIsForbidden() {
	s.SeedOrganization("org_other", "user_other", types.SubscriptionStatusActive)

	w := s.do(http.MethodGet, "/v1/orgs/org_other/projects", s.token(testutil.DefaultUserID, ""), nil)
	s.Equal(http.StatusForbidden, w.Code)
	resp := s.errorOf(w)
	s.Equal(ierr.ErrCodePermissionDenied, resp.Error.Code)
	s.Equal("org_other", resp.Error.Details["organization_id"])

	// a header pointing at another organization is rejected the same way
	w = s.do(http.MethodGet, "/v1/projects", s.token(testutil.DefaultUserID, ""), nil, types.HeaderOrganizationID, "org_other")
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *RouterSuite) TestPastDueIsReadOnly() {
	s.SeedOrganization("org_late", "user_late", types.SubscriptionStatusPastDue)
	token := s.token("user_late", "org_late")

	w := s.do(http.MethodGet, "/v1/orgs/org_late/projects", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/orgs/org_late/projects", token, map[string]any{"name": "Blocked"})
	s.Equal(http.StatusPaymentRequired, w.Code)
	resp := s.errorOf(w)
	s.Equal(ierr.ErrCodeSubscriptionPastDue, resp.Error.Code)
	s.Equal("org_late", resp.Error.Details["organization_id"])

	// organization administration stays reachable
	w = s.do(http.MethodGet, "/v1/organizations", token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestCanceledIsBlocked() {
	s.SeedOrganization("org_gone", "user_gone", types.SubscriptionStatusCanceled)
	token := s.token("user_gone", "org_gone")

	w := s.do(http.MethodGet, "/v1/orgs/org_gone/projects", token, nil)
	s.Equal(http.StatusPaymentRequired, w.Code)
	s.Equal(ierr.ErrCodeSubscriptionRequired, s.errorOf(w).Error.Code)
}

func (s *RouterSuite) TestRoleIsEnforced() {
	s.SeedMember(testutil.DefaultOrganizationID, "user_viewer", types.RoleReadOnly)
	token := s.token("user_viewer", testutil.DefaultOrganizationID)

	w := s.do(http.MethodGet, "/v1/projects", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/projects", token, map[string]any{"name": "Nope"})
	s.Equal(http.StatusForbidden, w.Code)
	resp := s.errorOf(w)
	s.Equal(ierr.ErrCodePermissionDenied, resp.Error.Code)
	s.Equal(string(types.RoleProjectManager), resp.Error.Details["required_role"])
}

func (s *RouterSuite) TestModuleIsEnforced() {
	token := s.token(testutil.DefaultUserID, testutil.DefaultOrganizationID)

	w := s.do(http.MethodGet, "/v1/estimates", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("estimating", s.errorOf(w).Error.Details["module"])

	w = s.do(http.MethodPost, "/v1/modules/estimating/activate", token, nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/v1/estimates", token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestInvalidTransitionIsConflict() {
	token := s.token(testutil.DefaultUserID, testutil.DefaultOrganizationID)
	project := s.SeedProject(s.GetContext(), "Harbor Lofts")

	w := s.do(http.MethodPost, "/v1/rfis", token, map[string]any{
		"project_id": project.ID,
		"subject":    "Beam size at grid C",
		"question":   "Confirm W12x26 at grid C4",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = s.do(http.MethodPost, "/v1/rfis/"+created.ID+"/reopen", token, nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(ierr.ErrCodeInvalidTransition, s.errorOf(w).Error.Code)
}

func (s *RouterSuite) TestBillingWebhook() {
	event := map[string]any{
		"organization_id": testutil.DefaultOrganizationID,
		"status":          "past_due",
	}

	w := s.do(http.MethodPost, "/v1/webhooks/billing", "", event)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/v1/webhooks/billing", "", event, types.HeaderBillingSecret, "wrong")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/v1/webhooks/billing", "", event, types.HeaderBillingSecret, billingSecret)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	token := s.token(testutil.DefaultUserID, testutil.DefaultOrganizationID)
	w = s.do(http.MethodPost, "/v1/projects", token, map[string]any{"name": "After"})
	s.Equal(http.StatusPaymentRequired, w.Code)
}

func (s *RouterSuite) TestSignUpThenMe() {
	w := s.do(http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email":             "new.owner@example.com",
		"password":          "correct-horse",
		"organization_name": "Northwind Builders",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Token          string `json:"token"`
		OrganizationID string `json:"organization_id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.NotEmpty(created.OrganizationID)

	w = s.do(http.MethodGet, "/v1/auth/me", created.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	// a fresh trial has full access
	w = s.do(http.MethodPost, "/v1/projects", created.Token, map[string]any{"name": "First job"})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/v1/auth/signup", "", map[string]any{"email": "bad"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(ierr.ErrCodeValidation, s.errorOf(w).Error.Code)
}
