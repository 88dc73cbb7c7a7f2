package postgres

import (
	"context"
	"testing"

	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeQuery_TenantTableRequiresOrganization(t *testing.T) {
	_, err := ScopeQuery(context.Background(), "projects")
	require.Error(t, err)
	assert.True(t, ierr.IsNoOrganizationContext(err))
}

func TestScopeQuery_TenantTable(t *testing.T) {
	ctx := types.SetOrganizationID(context.Background(), "org_1")

	scope, err := ScopeQuery(ctx, "projects")
	require.NoError(t, err)

	query, args := scope.
		Where("status = ?", "published").
		WhereIf(false, "project_id = ?", "ignored").
		Build("SELECT * FROM projects", "ORDER BY created_at DESC LIMIT ?", 10)

	assert.Equal(t, "SELECT * FROM projects WHERE organization_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT $3", query)
	assert.Equal(t, []interface{}{"org_1", "published", 10}, args)
}

func TestScopeQuery_GlobalTableIsNotScoped(t *testing.T) {
	scope, err := ScopeQuery(context.Background(), "users")
	require.NoError(t, err)

	query, args := scope.Where("email = ?", "a@b.co").Build("SELECT * FROM users", "")
	assert.Equal(t, "SELECT * FROM users WHERE email = $1", query)
	assert.Equal(t, []interface{}{"a@b.co"}, args)
}
