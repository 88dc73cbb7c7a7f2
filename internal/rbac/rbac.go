// Package rbac answers role and module questions for a user inside one organization.
// Roles form a fixed total order; a member holds exactly one role per organization.
package rbac

import (
	"context"

	"github.com/buildline/buildline/internal/cache"
	"github.com/buildline/buildline/internal/domain/activemodule"
	"github.com/buildline/buildline/internal/domain/membership"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/types"
)

// RBACService checks memberships and module activation
type RBACService struct {
	memberships membership.Repository
	modules     activemodule.Repository
	cache       cache.Cache
	logger      *logger.Logger
}

// Role represents a role with metadata
type Role struct {
	ID          types.Role `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Level       int        `json:"level"`
}

var roleDefinitions = map[types.Role]Role{
	types.RoleReadOnly:       {Name: "Read only", Description: "View project records and act on client portal requests"},
	types.RoleFieldWorker:    {Name: "Field worker", Description: "Daily logs, RFIs, submittals, incidents and service work"},
	types.RoleAccountant:     {Name: "Accountant", Description: "Payroll runs and financial records"},
	types.RoleEstimator:      {Name: "Estimator", Description: "Estimates and proposals"},
	types.RoleProjectManager: {Name: "Project manager", Description: "Projects, reviews and approvals"},
	types.RoleAdmin:          {Name: "Admin", Description: "Members and modules"},
	types.RoleOwner:          {Name: "Owner", Description: "Everything, including archiving the organization"},
}

func NewRBACService(
	memberships membership.Repository,
	modules activemodule.Repository,
	cache cache.Cache,
	logger *logger.Logger,
) *RBACService {
	return &RBACService{
		memberships: memberships,
		modules:     modules,
		cache:       cache,
		logger:      logger,
	}
}

// ListRoles returns every role from least to most privileged (for API endpoint)
func ListRoles() []Role {
	result := make([]Role, 0, len(types.Roles))
	for _, r := range types.Roles {
		def := roleDefinitions[r]
		def.ID = r
		def.Level = r.Level()
		result = append(result, def)
	}
	return result
}

// ParseRole validates a role name coming from a request
func ParseRole(s string) (types.Role, error) {
	r := types.Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// MemberRole returns the role of the user's active membership in orgID.
// Only active memberships are cached; InvalidateMember drops an entry.
func (s *RBACService) MemberRole(ctx context.Context, userID, orgID string) (types.Role, bool) {
	if userID == "" || orgID == "" {
		return "", false
	}

	key := cache.GenerateKey(cache.PrefixMembership, orgID, userID)
	if cached, found := s.cache.Get(ctx, key); found {
		if role, ok := cached.(types.Role); ok {
			return role, true
		}
	}

	m, err := s.memberships.GetActive(ctx, orgID, userID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			s.logger.Errorw("failed to load membership",
				"user_id", userID,
				"organization_id", orgID,
				"error", err,
			)
		}
		return "", false
	}
	s.cache.Set(ctx, key, m.Role, 0)
	return m.Role, true
}

// InvalidateMember drops the cached role of userID in orgID
func (s *RBACService) InvalidateMember(ctx context.Context, orgID, userID string) {
	s.cache.Delete(ctx, cache.GenerateKey(cache.PrefixMembership, orgID, userID))
}

// HasMinimumRole reports whether the user actively holds minRole or higher in orgID
func (s *RBACService) HasMinimumRole(ctx context.Context, userID, orgID string, minRole types.Role) bool {
	role, ok := s.MemberRole(ctx, userID, orgID)
	return ok && role.AtLeast(minRole)
}

func (s *RBACService) IsOrgMember(ctx context.Context, userID, orgID string) bool {
	_, ok := s.MemberRole(ctx, userID, orgID)
	return ok
}

func (s *RBACService) IsOrgAdmin(ctx context.Context, userID, orgID string) bool {
	return s.HasMinimumRole(ctx, userID, orgID, types.RoleAdmin)
}

func (s *RBACService) IsOrgOwner(ctx context.Context, userID, orgID string) bool {
	return s.HasMinimumRole(ctx, userID, orgID, types.RoleOwner)
}

// HasModuleAccess reports whether orgID may use key. It does not look at roles.
func (s *RBACService) HasModuleAccess(ctx context.Context, orgID string, key types.ModuleKey) bool {
	if key.IsAlwaysActive() {
		return true
	}
	if orgID == "" {
		return false
	}

	active, err := s.activeModules(ctx, orgID)
	if err != nil {
		s.logger.Errorw("failed to load active modules",
			"organization_id", orgID,
			"module", key,
			"error", err,
		)
		return false
	}
	return active[key]
}

func (s *RBACService) activeModules(ctx context.Context, orgID string) (map[types.ModuleKey]bool, error) {
	key := cache.GenerateKey(cache.PrefixModules, orgID)
	if cached, found := s.cache.Get(ctx, key); found {
		if active, ok := cached.(map[types.ModuleKey]bool); ok {
			return active, nil
		}
	}

	rows, err := s.modules.List(types.SetOrganizationID(ctx, orgID))
	if err != nil {
		return nil, err
	}

	active := make(map[types.ModuleKey]bool, len(rows))
	for _, row := range rows {
		if row.Active {
			active[row.ModuleKey] = true
		}
	}
	s.cache.Set(ctx, key, active, 0)
	return active, nil
}

// InvalidateModules drops the cached module activation of orgID
func (s *RBACService) InvalidateModules(ctx context.Context, orgID string) {
	s.cache.Delete(ctx, cache.GenerateKey(cache.PrefixModules, orgID))
}

// CanAccessObject requires the object to belong to orgID and the user to hold minRole
// there. Objects that carry no organization fall back to the role check alone.
func (s *RBACService) CanAccessObject(ctx context.Context, userID, orgID string, obj interface{}, minRole types.Role) bool {
	if scoped, ok := obj.(types.OrganizationScoped); ok && scoped.GetOrganizationID() != orgID {
		return false
	}
	return s.HasMinimumRole(ctx, userID, orgID, minRole)
}

// Authorize returns ErrPermissionDenied unless the user holds minRole in orgID
func (s *RBACService) Authorize(ctx context.Context, userID, orgID string, minRole types.Role) error {
	if s.HasMinimumRole(ctx, userID, orgID, minRole) {
		return nil
	}
	return denied("insufficient role", map[string]any{
		"organization_id": orgID,
		"required_role":   minRole,
	})
}

// AuthorizeModule returns ErrPermissionDenied unless key is active for orgID
func (s *RBACService) AuthorizeModule(ctx context.Context, orgID string, key types.ModuleKey) error {
	if s.HasModuleAccess(ctx, orgID, key) {
		return nil
	}
	return ierr.NewErrorf("module %s is not active", key).
		WithHintf("The %s module is not enabled for this organization", key).
		WithReportableDetails(map[string]any{
			"organization_id": orgID,
			"module":          key,
		}).
		Mark(ierr.ErrPermissionDenied)
}

// AuthorizeObject is CanAccessObject for handlers
func (s *RBACService) AuthorizeObject(ctx context.Context, userID, orgID string, obj interface{}, minRole types.Role) error {
	if s.CanAccessObject(ctx, userID, orgID, obj, minRole) {
		return nil
	}
	return denied("object not accessible", map[string]any{
		"organization_id": orgID,
		"required_role":   minRole,
	})
}

func denied(msg string, details map[string]any) error {
	return ierr.NewError(msg).
		WithHint("You do not have permission to perform this action").
		WithReportableDetails(details).
		Mark(ierr.ErrPermissionDenied)
}
