package service

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/buildline/buildline/internal/domain/organization"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

// GateExemptPrefixes stay reachable whatever the subscription status, so an
// organization can always sign in, pay and manage itself.
var GateExemptPrefixes = []string{
	"/v1/auth",
	"/v1/billing",
	"/v1/webhooks",
	"/v1/organizations",
	"/v1/docs",
	"/health",
}

var orgPathSegment = regexp.MustCompile(`^(/v1)/orgs/[^/]+`)

// GateDecision is the outcome of the subscription gate for one request
type GateDecision struct {
	Allowed bool
	// Code is the error code clients branch on when the request is denied
	Code string
}

// AccessFor classifies a subscription status: trialing and active have full
// access, past_due is read-only and anything else is blocked.
func AccessFor(status types.SubscriptionStatus) types.AccessDecision {
	switch status {
	case types.SubscriptionStatusActive, types.SubscriptionStatusTrialing:
		return types.AccessAllow
	case types.SubscriptionStatusPastDue:
		return types.AccessReadOnly
	default:
		return types.AccessBlock
	}
}

// DetermineAccess decides one request from the organization's subscription status
func DetermineAccess(status types.SubscriptionStatus, method string) GateDecision {
	switch AccessFor(status) {
	case types.AccessAllow:
		return GateDecision{Allowed: true}
	case types.AccessReadOnly:
		if isReadMethod(method) {
			return GateDecision{Allowed: true}
		}
		return GateDecision{Code: ierr.ErrCodeSubscriptionPastDue}
	default:
		return GateDecision{Code: ierr.ErrCodeSubscriptionRequired}
	}
}

func isReadMethod(method string) bool {
	return lo.Contains([]string{http.MethodGet, http.MethodHead, http.MethodOptions}, strings.ToUpper(method))
}

// IsGateExempt reports whether path bypasses the gate. Organization scoped
// paths are matched with the /orgs/:org_id segment removed.
func IsGateExempt(path string) bool {
	path = orgPathSegment.ReplaceAllString(path, "$1")
	for _, prefix := range GateExemptPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

type SubscriptionGate interface {
	// Check returns nil when the organization may perform method on path
	Check(ctx context.Context, orgID, method, path string) error
}

type subscriptionGate struct {
	ServiceParams
}

func NewSubscriptionGate(params ServiceParams) SubscriptionGate {
	return &subscriptionGate{ServiceParams: params}
}

func (g *subscriptionGate) Check(ctx context.Context, orgID, method, path string) error {
	if orgID == "" || IsGateExempt(path) {
		return nil
	}

	org, err := getOrganizationCached(ctx, g.ServiceParams, orgID)
	if err != nil {
		return err
	}
	if org.IsArchived() {
		return organization.NewOrganizationArchivedError(orgID)
	}

	decision := DetermineAccess(org.SubscriptionStatus, method)
	if decision.Allowed {
		return nil
	}

	g.Logger.Infow("subscription gate denied request",
		"organization_id", orgID,
		"subscription_status", org.SubscriptionStatus,
		"method", method,
		"path", path,
		"code", decision.Code,
	)

	details := map[string]any{
		"organization_id":     orgID,
		"subscription_status": org.SubscriptionStatus,
	}
	if decision.Code == ierr.ErrCodeSubscriptionPastDue {
		return ierr.NewError("subscription past due").
			WithHint("Your subscription is past due. The organization is read-only until payment is received").
			WithReportableDetails(details).
			Mark(ierr.ErrSubscriptionPastDue)
	}
	return ierr.NewError("subscription required").
		WithHint("An active subscription is required to use this organization").
		WithReportableDetails(details).
		Mark(ierr.ErrSubscriptionRequired)
}
