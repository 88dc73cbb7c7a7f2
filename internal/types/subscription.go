package types

import (
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus is the billing status of an organization
type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusTrialing,
		SubscriptionStatusActive,
		SubscriptionStatusPastDue,
		SubscriptionStatusCanceled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SubscriptionPlan is the commercial plan of an organization
type SubscriptionPlan string

const (
	SubscriptionPlanStarter      SubscriptionPlan = "starter"
	SubscriptionPlanProfessional SubscriptionPlan = "professional"
	SubscriptionPlanEnterprise   SubscriptionPlan = "enterprise"
)

func (p SubscriptionPlan) Validate() error {
	allowed := []SubscriptionPlan{
		SubscriptionPlanStarter,
		SubscriptionPlanProfessional,
		SubscriptionPlanEnterprise,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid subscription plan").
			WithHint("Invalid subscription plan").
			WithReportableDetails(map[string]any{
				"plan":          p,
				"allowed_plans": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AccessDecision is the outcome of the subscription gate for one request
type AccessDecision string

const (
	AccessAllow    AccessDecision = "allow"
	AccessReadOnly AccessDecision = "read_only"
	AccessBlock    AccessDecision = "block"
)
