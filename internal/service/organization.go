package service

import (
	"context"
	"time"

	"github.com/buildline/buildline/internal/api/dto"
	authProvider "github.com/buildline/buildline/internal/auth"
	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/domain/membership"
	"github.com/buildline/buildline/internal/domain/organization"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/idempotency"
	"github.com/buildline/buildline/internal/tenancy"
	"github.com/buildline/buildline/internal/tracker"
	"github.com/buildline/buildline/internal/types"
	"github.com/samber/lo"
)

type OrganizationService interface {
	Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	Get(ctx context.Context, id string) (*dto.OrganizationResponse, error)
	ListMine(ctx context.Context) ([]*dto.OrganizationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateOrganizationRequest) (*organization.Organization, error)
	// Switch stores the preferred organization and returns a token scoped to it
	Switch(ctx context.Context, req *dto.SwitchOrganizationRequest) (*dto.AuthResponse, error)
	Archive(ctx context.Context, id string) error
	// HandleBillingEvent applies a subscription status change reported by the billing provider
	HandleBillingEvent(ctx context.Context, req *dto.BillingEventRequest) (*organization.Organization, error)
}

// billingEventWindow is how long a delivered billing event id is remembered
const billingEventWindow = 24 * time.Hour

type organizationService struct {
	ServiceParams
	dispatcher   *Dispatcher
	authProvider authProvider.Provider
	idempotency  *idempotency.Generator
	tracker      *tracker.Tracker[*organization.Organization]
}

func NewOrganizationService(params ServiceParams, dispatcher *Dispatcher) OrganizationService {
	s := &organizationService{
		ServiceParams: params,
		dispatcher:    dispatcher,
		authProvider:  authProvider.NewProvider(params.Config),
		idempotency:   idempotency.NewGenerator(),
	}
	s.tracker = tracker.New[*organization.Organization](types.EntityTypeOrganization, params.OrganizationRepo, s, params.Logger)
	return s
}

func (s *organizationService) Create(ctx context.Context, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("no user in context").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthorized)
	}

	org := organization.New(req.Name, userID)
	ctx = types.SetOrganizationID(ctx, org.ID)

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.OrganizationRepo.Create(ctx, org); err != nil {
			return err
		}
		return s.MembershipRepo.Create(ctx, membership.NewOwner(org.ID, userID))
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeOrganization,
		EntityID:    org.ID,
		Category:    types.ActivityCategoryCreated,
		Action:      "organization.created",
		Description: "Organization " + org.Name + " created",
	})

	return &dto.OrganizationResponse{Organization: org, Role: types.RoleOwner}, nil
}

func (s *organizationService) Get(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	userID := types.GetUserID(ctx)
	role, ok := s.RBAC.MemberRole(ctx, userID, id)
	if !ok {
		return nil, ierr.NewError("not a member").
			WithHint("You are not a member of this organization").
			WithReportableDetails(map[string]interface{}{
				"organization_id": id,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	org, err := getOrganizationCached(ctx, s.ServiceParams, id)
	if err != nil {
		return nil, err
	}
	return &dto.OrganizationResponse{Organization: org, Role: role}, nil
}

func (s *organizationService) ListMine(ctx context.Context) ([]*dto.OrganizationResponse, error) {
	return organizationsOf(ctx, s.ServiceParams, types.GetUserID(ctx))
}

func (s *organizationService) Update(ctx context.Context, id string, req *dto.UpdateOrganizationRequest) (*organization.Organization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.RBAC.Authorize(ctx, types.GetUserID(ctx), id, types.RoleAdmin); err != nil {
		return nil, err
	}

	ctx = types.SetOrganizationID(ctx, id)
	org, err := s.OrganizationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if org.IsArchived() {
		return nil, organization.NewOrganizationArchivedError(id)
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	org.UpdatedAt = time.Now().UTC()
	org.UpdatedBy = types.GetUserID(ctx)

	if err := s.OrganizationRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return org, nil
}

func (s *organizationService) Switch(ctx context.Context, req *dto.SwitchOrganizationRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	userID := types.GetUserID(ctx)

	if _, err := s.MembershipRepo.GetActive(ctx, req.OrganizationID, userID); err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("not a member").
				WithHint("You are not a member of this organization").
				WithReportableDetails(map[string]interface{}{
					"organization_id": req.OrganizationID,
				}).
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.LastActiveOrganizationID = lo.ToPtr(req.OrganizationID)
	u.UpdatedAt = time.Now().UTC()
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.authProvider.IssueToken(userID, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:          token,
		UserID:         userID,
		OrganizationID: req.OrganizationID,
	}, nil
}

func (s *organizationService) Archive(ctx context.Context, id string) error {
	if err := s.RBAC.Authorize(ctx, types.GetUserID(ctx), id, types.RoleOwner); err != nil {
		return err
	}

	ctx = types.SetOrganizationID(ctx, id)
	org, err := s.OrganizationRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if org.IsArchived() {
		return nil
	}

	org.Status = types.StatusArchived
	org.UpdatedAt = time.Now().UTC()
	org.UpdatedBy = types.GetUserID(ctx)
	if err := s.OrganizationRepo.Update(ctx, org); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeOrganization,
		EntityID:    org.ID,
		Category:    types.ActivityCategoryStatusChanged,
		Action:      "organization.archived",
		Description: "Organization " + org.Name + " archived",
		Severity:    types.ActivitySeverityElevated,
	})
	return nil
}

func (s *organizationService) HandleBillingEvent(ctx context.Context, req *dto.BillingEventRequest) (*organization.Organization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// billing events act for the system in the organization they name
	ctx = types.SetUserID(types.SetOrganizationID(ctx, req.OrganizationID), types.SystemUserID)

	// providers retry deliveries, a replayed event id is acknowledged without reapplying it
	eventKey := ""
	if req.EventID != "" {
		eventKey = cache.GenerateKey(cache.PrefixIdempotency, s.idempotency.GenerateKey(idempotency.ScopeBillingEvent, map[string]interface{}{
			"event_id":        req.EventID,
			"organization_id": req.OrganizationID,
		}))
		if _, seen := s.Cache.Get(ctx, eventKey); seen {
			s.Logger.Infow("skipping replayed billing event",
				"organization_id", req.OrganizationID,
				"event_id", req.EventID,
			)
			return s.OrganizationRepo.Get(ctx, req.OrganizationID)
		}
	}

	var org *organization.Organization
	err := tenancy.RunAs(ctx, s.DB, req.OrganizationID, func(ctx context.Context) error {
		ctx = tracker.WithStash(ctx)

		var err error
		org, err = s.OrganizationRepo.Get(ctx, req.OrganizationID)
		if err != nil {
			return err
		}

		org.SubscriptionStatus = req.Status
		if req.Plan != nil {
			org.Plan = *req.Plan
		}
		org.UpdatedAt = time.Now().UTC()
		org.UpdatedBy = types.SystemUserID

		return s.tracker.Update(ctx, org, func(ctx context.Context) error {
			return s.OrganizationRepo.Update(ctx, org)
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, org.ID)
	if eventKey != "" {
		s.Cache.Set(ctx, eventKey, true, billingEventWindow)
	}

	s.Logger.Infow("billing event applied",
		"organization_id", org.ID,
		"event_id", req.EventID,
		"subscription_status", org.SubscriptionStatus,
		"plan", org.Plan,
	)
	return org, nil
}

// OnTransition records subscription status changes in the organization's feed
func (s *organizationService) OnTransition(ctx context.Context, org *organization.Organization, t tracker.Transition) {
	severity := types.ActivitySeverityInfo
	if AccessFor(org.SubscriptionStatus) != types.AccessAllow {
		severity = types.ActivitySeverityElevated
	}

	s.dispatcher.RecordActivity(ctx, ActivityParams{
		EntityType:  types.EntityTypeOrganization,
		EntityID:    org.ID,
		Category:    types.ActivityCategorySubscription,
		Action:      "subscription." + t.NewState,
		Description: "Subscription changed from " + t.OldState + " to " + t.NewState,
		Severity:    severity,
		Metadata: types.Metadata{
			"old_status": t.OldState,
			"new_status": t.NewState,
			"plan":       string(org.Plan),
		},
	})
}

func (s *organizationService) invalidate(ctx context.Context, id string) {
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixOrganization, id))
}

// getOrganizationCached serves the per-request organization lookups of the gate
func getOrganizationCached(ctx context.Context, params ServiceParams, id string) (*organization.Organization, error) {
	key := cache.GenerateKey(cache.PrefixOrganization, id)
	if cached, found := params.Cache.Get(ctx, key); found {
		if org, ok := cached.(*organization.Organization); ok {
			return org, nil
		}
	}

	org, err := params.OrganizationRepo.Get(types.SetOrganizationID(ctx, id), id)
	if err != nil {
		return nil, err
	}
	params.Cache.Set(ctx, key, org, 0)
	return org, nil
}

// organizationsOf lists the organizations userID is an active member of, with their role
func organizationsOf(ctx context.Context, params ServiceParams, userID string) ([]*dto.OrganizationResponse, error) {
	memberships, err := params.MembershipRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []*dto.OrganizationResponse{}, nil
	}

	roles := lo.SliceToMap(memberships, func(m *membership.Membership) (string, types.Role) {
		return m.OrganizationID, m.Role
	})

	orgs, err := params.OrganizationRepo.ListByIDs(ctx, lo.Keys(roles))
	if err != nil {
		return nil, err
	}

	return lo.Map(orgs, func(org *organization.Organization, _ int) *dto.OrganizationResponse {
		return &dto.OrganizationResponse{Organization: org, Role: roles[org.ID]}
	}), nil
}
