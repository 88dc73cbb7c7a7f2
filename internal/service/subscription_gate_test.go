package service

import (
	"net/http"
	"testing"

	"github.com/buildline/buildline/internal/api/dto"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/testutil"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestDetermineAccess(t *testing.T) {
	tests := []struct {
		name    string
		status  types.SubscriptionStatus
		method  string
		allowed bool
		code    string
	}{
		{"trialing write", types.SubscriptionStatusTrialing, http.MethodPost, true, ""},
		{"active write", types.SubscriptionStatusActive, http.MethodDelete, true, ""},
		{"past due read", types.SubscriptionStatusPastDue, http.MethodGet, true, ""},
		{"past due head", types.SubscriptionStatusPastDue, http.MethodHead, true, ""},
		{"past due options lowercase", types.SubscriptionStatusPastDue, "options", true, ""},
		{"past due create", types.SubscriptionStatusPastDue, http.MethodPost, false, ierr.ErrCodeSubscriptionPastDue},
		{"past due patch", types.SubscriptionStatusPastDue, http.MethodPatch, false, ierr.ErrCodeSubscriptionPastDue},
		{"canceled read", types.SubscriptionStatusCanceled, http.MethodGet, false, ierr.ErrCodeSubscriptionRequired},
		{"canceled write", types.SubscriptionStatusCanceled, http.MethodPut, false, ierr.ErrCodeSubscriptionRequired},
		{"unknown status", types.SubscriptionStatus("paused"), http.MethodGet, false, ierr.ErrCodeSubscriptionRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := DetermineAccess(tt.status, tt.method)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.code, decision.Code)
		})
	}
}

func TestIsGateExempt(t *testing.T) {
	tests := []struct {
		path   string
		exempt bool
	}{
		{"/health", true},
		{"/v1/auth/login", true},
		{"/v1/billing/portal", true},
		{"/v1/webhooks/billing", true},
		{"/v1/organizations", true},
		{"/v1/organizations/org_1/archive", true},
		{"/v1/orgs/org_1/organizations", true},
		{"/v1/projects", false},
		{"/v1/orgs/org_1/projects", false},
		{"/v1/orgs/org_1/estimates/est_1/sections", false},
		{"/v1/authorize", false},
		{"/v1/billingreport", false},
		{"/healthz", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.exempt, IsGateExempt(tt.path))
		})
	}
}

type SubscriptionGateSuite struct {
	ServiceSuite
	gate SubscriptionGate
}

func TestSubscriptionGate(t *testing.T) {
	suite.Run(t, new(SubscriptionGateSuite))
}

func (s *SubscriptionGateSuite) SetupTest() {
	s.ServiceSuite.SetupTest()
	s.gate = NewSubscriptionGate(s.params)
}

func (s *SubscriptionGateSuite) TestActiveOrganizationPasses() {
	ctx := s.GetContext()
	s.NoError(s.gate.Check(ctx, testutil.DefaultOrganizationID, http.MethodPost, "/v1/projects"))
	s.NoError(s.gate.Check(ctx, "", http.MethodPost, "/v1/projects"))
}

func (s *SubscriptionGateSuite) TestPastDueIsReadOnly() {
	s.SeedOrganization("org_late", "user_late", types.SubscriptionStatusPastDue)
	ctx := s.GetContext()

	s.NoError(s.gate.Check(ctx, "org_late", http.MethodGet, "/v1/projects"))

	err := s.gate.Check(ctx, "org_late", http.MethodPost, "/v1/projects")
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrSubscriptionPastDue))
	s.Equal(http.StatusPaymentRequired, ierr.HTTPStatusFromErr(err))
	s.Equal(ierr.ErrCodeSubscriptionPastDue, ierr.CodeFromErr(err))
	s.Equal("org_late", ierr.ReportableDetails(err)["organization_id"])

	// billing stays reachable so the organization can pay
	s.NoError(s.gate.Check(ctx, "org_late", http.MethodPost, "/v1/billing/checkout"))
}

func (s *SubscriptionGateSuite) TestCanceledIsBlocked() {
	s.SeedOrganization("org_gone", "user_gone", types.SubscriptionStatusCanceled)

	err := s.gate.Check(s.GetContext(), "org_gone", http.MethodGet, "/v1/orgs/org_gone/projects")
	s.True(ierr.Is(err, ierr.ErrSubscriptionRequired))
	s.True(ierr.IsSubscriptionBlocked(err))
}

func (s *SubscriptionGateSuite) TestUnknownOrganization() {
	err := s.gate.Check(s.GetContext(), "org_missing", http.MethodGet, "/v1/projects")
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionGateSuite) TestBillingEventInvalidatesCachedDecision() {
	ctx := s.GetContext()
	orgs := NewOrganizationService(s.params, s.dispatcher)

	// warm the cache with the active status
	s.NoError(s.gate.Check(ctx, testutil.DefaultOrganizationID, http.MethodPost, "/v1/projects"))

	_, err := orgs.HandleBillingEvent(ctx, &dto.BillingEventRequest{
		OrganizationID: testutil.DefaultOrganizationID,
		Status:         types.SubscriptionStatusPastDue,
	})
	s.Require().NoError(err)

	err = s.gate.Check(ctx, testutil.DefaultOrganizationID, http.MethodPost, "/v1/projects")
	s.True(ierr.Is(err, ierr.ErrSubscriptionPastDue))
}

func (s *SubscriptionGateSuite) TestArchivedOrganizationIsRejected() {
	ctx := s.GetContext()
	orgs := NewOrganizationService(s.params, s.dispatcher)
	s.Require().NoError(orgs.Archive(ctx, testutil.DefaultOrganizationID))

	err := s.gate.Check(ctx, testutil.DefaultOrganizationID, http.MethodGet, "/v1/projects")
	s.True(ierr.IsInvalidOperation(err))
}
