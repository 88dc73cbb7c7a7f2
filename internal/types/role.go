package types

import (
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/samber/lo"
)

// Role is the role a member holds inside one organization.
// The hierarchy is fixed and total; it is not configurable per organization.
type Role string

const (
	RoleReadOnly       Role = "read_only"
	RoleFieldWorker    Role = "field_worker"
	RoleAccountant     Role = "accountant"
	RoleEstimator      Role = "estimator"
	RoleProjectManager Role = "project_manager"
	RoleAdmin          Role = "admin"
	RoleOwner          Role = "owner"
)

var roleLevels = map[Role]int{
	RoleReadOnly:       1,
	RoleFieldWorker:    2,
	RoleAccountant:     3,
	RoleEstimator:      4,
	RoleProjectManager: 5,
	RoleAdmin:          6,
	RoleOwner:          7,
}

// Roles lists every role from least to most privileged
var Roles = []Role{
	RoleReadOnly,
	RoleFieldWorker,
	RoleAccountant,
	RoleEstimator,
	RoleProjectManager,
	RoleAdmin,
	RoleOwner,
}

func (r Role) String() string {
	return string(r)
}

// Level returns the ordinal of the role, 0 for unknown roles
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r is at or above min in the hierarchy.
// Unknown roles never pass.
func (r Role) AtLeast(min Role) bool {
	level := r.Level()
	return level > 0 && level >= min.Level()
}

func (r Role) Validate() error {
	if _, ok := roleLevels[r]; !ok {
		return ierr.NewError("invalid role").
			WithHint("Invalid role").
			WithReportableDetails(map[string]any{
				"role":          r,
				"allowed_roles": Roles,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AdminRoles are the roles allowed to administer an organization
var AdminRoles = []Role{RoleAdmin, RoleOwner}

func (r Role) IsAdmin() bool {
	return lo.Contains(AdminRoles, r)
}
