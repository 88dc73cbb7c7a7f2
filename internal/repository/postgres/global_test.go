package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/buildline/buildline/internal/domain/auth"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return postgres.NewFromSQLX(sqlx.NewDb(raw, "postgres"), logger.NewNoop(), false), mock
}

func TestMembershipLookupsWorkWithoutOrganizationContext(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db, logger.NewNoop())

	mock.ExpectQuery(`FROM memberships WHERE user_id = \$1 AND active = true ORDER BY created_at ASC`).
		WithArgs("user_1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "role", "active"}).
			AddRow("mem_1", "org_a", "owner", true).
			AddRow("mem_2", "org_b", "field_worker", true))

	memberships, err := repo.ListActiveByUser(context.Background(), "user_1")
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	assert.Equal(t, "org_a", memberships[0].OrganizationID)
	assert.Equal(t, types.RoleFieldWorker, memberships[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipGetActiveMissingIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db, logger.NewNoop())

	mock.ExpectQuery(`FROM memberships WHERE organization_id = \$1 AND user_id = \$2 AND active = true`).
		WithArgs("org_a", "user_9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetActive(context.Background(), "org_a", "user_9")
	assert.True(t, ierr.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationListByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db, logger.NewNoop())

	mock.ExpectQuery(`FROM organizations WHERE id IN \(\$1, \$2\)`).
		WithArgs("org_a", "org_b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subscription_status"}).
			AddRow("org_a", "Acme", "active").
			AddRow("org_b", "Beta", "past_due"))

	orgs, err := repo.ListByIDs(context.Background(), []string{"org_a", "org_b"})
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, types.SubscriptionStatusPastDue, orgs[1].SubscriptionStatus)

	empty, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrganizationGetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrganizationRepository(db, logger.NewNoop())

	mock.ExpectQuery(`FROM organizations WHERE id = \$1`).
		WithArgs("org_x").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "org_x")
	assert.True(t, ierr.IsNotFound(err))
}

func TestActivityListRequiresOrganization(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewActivityRepository(db, logger.NewNoop())

	_, err := repo.List(context.Background(), nil)
	assert.True(t, ierr.IsNoOrganizationContext(err))
}

func TestActivityListFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityRepository(db, logger.NewNoop())
	ctx := types.SetOrganizationID(context.Background(), "org_a")

	filter := types.NewActivityFilter()
	filter.Severity = types.ActivitySeverityElevated

	mock.ExpectQuery(`FROM activity_logs WHERE organization_id = \$1 AND severity = \$2 ORDER BY created_at desc LIMIT \$3 OFFSET \$4`).
		WithArgs("org_a", "elevated", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "organization_id", "severity"}).
			AddRow("act_1", "org_a", "elevated"))

	logs, err := repo.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.ActivitySeverityElevated, logs[0].Severity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthRejectsUnknownProvider(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewAuthRepository(db, logger.NewNoop())

	err := repo.CreateAuth(context.Background(), auth.NewAuth("user_1", types.AuthProvider("google"), "x"))
	assert.True(t, ierr.IsValidation(err))
}
