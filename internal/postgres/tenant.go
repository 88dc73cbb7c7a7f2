package postgres

import (
	"context"
	"strings"

	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

// SessionOrganizationSetting is the postgres setting row level security policies read
const SessionOrganizationSetting = "app.current_organization"

// GlobalTables are not owned by any organization and are never scoped
var GlobalTables = []string{
	"users",
	"organizations",
	"memberships",
}

// IsGlobalTable reports whether queries against table skip organization scoping
func IsGlobalTable(table string) bool {
	return lo.Contains(GlobalTables, table)
}

// Scope accumulates WHERE conditions for one query. Tenant-owned tables get an
// organization_id condition from ctx before any caller condition.
type Scope struct {
	conds []string
	args  []interface{}
}

// ScopeQuery starts a scope for table. It fails with ErrNoOrganizationContext
// when table is tenant-owned and ctx carries no organization.
func ScopeQuery(ctx context.Context, table string) (*Scope, error) {
	s := &Scope{}
	if IsGlobalTable(table) {
		return s, nil
	}

	orgID := types.GetOrganizationID(ctx)
	if orgID == "" {
		return nil, ierr.NewError("query on tenant table without organization").
			WithHint("An organization must be selected for this request").
			WithReportableDetails(map[string]any{"table": table}).
			Mark(ierr.ErrNoOrganizationContext)
	}
	return s.Where("organization_id = ?", orgID), nil
}

// Unscoped returns an empty scope for system jobs that deliberately cross organizations
func Unscoped() *Scope {
	return &Scope{}
}

// Where adds a condition written with ? placeholders
func (s *Scope) Where(cond string, args ...interface{}) *Scope {
	s.conds = append(s.conds, cond)
	s.args = append(s.args, args...)
	return s
}

// WhereIf adds the condition only when ok is true
func (s *Scope) WhereIf(ok bool, cond string, args ...interface{}) *Scope {
	if !ok {
		return s
	}
	return s.Where(cond, args...)
}

// Build appends the conditions and any suffix to base and rebinds for postgres
func (s *Scope) Build(base string, suffix string, suffixArgs ...interface{}) (string, []interface{}) {
	var b strings.Builder
	b.WriteString(base)
	if len(s.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(s.conds, " AND "))
	}
	if suffix != "" {
		b.WriteString(" ")
		b.WriteString(suffix)
	}
	args := append(append([]interface{}{}, s.args...), suffixArgs...)
	return sqlx.Rebind(sqlx.DOLLAR, b.String()), args
}

// applyTenantSession pins the organization for row level security until the transaction ends
func applyTenantSession(ctx context.Context, tx *Tx, orgID string) error {
	if _, err := tx.ExecContext(ctx, "SELECT set_config($1, $2, true)", SessionOrganizationSetting, orgID); err != nil {
		return ierr.WithError(err).
			WithMessage("failed to set organization for session").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
