package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/buildline/buildline/internal/domain/project"
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
)

type TenantRepoSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *postgres.DB
	repo project.Repository
	ctx  context.Context
}

func TestTenantRepo(t *testing.T) {
	suite.Run(t, new(TenantRepoSuite))
}

func (s *TenantRepoSuite) SetupTest() {
	raw, mock, err := sqlmock.New()
	s.Require().NoError(err)
	s.T().Cleanup(func() { raw.Close() })

	s.mock = mock
	s.db = postgres.NewFromSQLX(sqlx.NewDb(raw, "postgres"), logger.NewNoop(), false)
	s.repo = NewProjectRepository(s.db, logger.NewNoop())
	s.ctx = types.SetUserID(types.SetOrganizationID(context.Background(), "org_a"), "user_1")
}

func (s *TenantRepoSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *TenantRepoSuite) newProject(orgID string) *project.Project {
	p := &project.Project{
		ID:     "proj_1",
		Name:   "Harbor Tower",
		Status: types.ProjectStatusActive,
	}
	p.AssignOnCreate(types.SetOrganizationID(s.ctx, orgID))
	return p
}

func (s *TenantRepoSuite) TestGetIsScopedToContextOrganization() {
	rows := sqlmock.NewRows([]string{"id", "name", "status", "organization_id"}).
		AddRow("proj_1", "Harbor Tower", "active", "org_a")
	s.mock.ExpectQuery(`SELECT .* FROM projects WHERE organization_id = \$1 AND id = \$2`).
		WithArgs("org_a", "proj_1").
		WillReturnRows(rows)

	p, err := s.repo.Get(s.ctx, "proj_1")
	s.Require().NoError(err)
	s.Equal("org_a", p.OrganizationID)
	s.Equal(types.ProjectStatusActive, p.Status)
}

func (s *TenantRepoSuite) TestGetOtherOrganizationIsNotFound() {
	s.mock.ExpectQuery(`SELECT .* FROM projects WHERE organization_id = \$1 AND id = \$2`).
		WithArgs("org_a", "proj_b").
		WillReturnError(sql.ErrNoRows)

	_, err := s.repo.Get(s.ctx, "proj_b")
	s.True(ierr.IsNotFound(err))
}

func (s *TenantRepoSuite) TestQueriesWithoutOrganizationNeverRun() {
	ctx := context.Background()

	_, err := s.repo.Get(ctx, "proj_1")
	s.True(ierr.IsNoOrganizationContext(err))

	_, err = s.repo.List(ctx, nil)
	s.True(ierr.IsNoOrganizationContext(err))

	_, err = s.repo.Count(ctx, nil)
	s.True(ierr.IsNoOrganizationContext(err))

	err = s.repo.Create(ctx, s.newProject("org_a"))
	s.True(ierr.IsNoOrganizationContext(err))
}

func (s *TenantRepoSuite) TestCreateForAnotherOrganizationIsRejected() {
	err := s.repo.Create(s.ctx, s.newProject("org_b"))
	s.True(ierr.IsNotFound(err))
}

func (s *TenantRepoSuite) TestCreate() {
	s.mock.ExpectExec(`INSERT INTO projects \(id, name, code`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repo.Create(s.ctx, s.newProject("org_a")))
}

func (s *TenantRepoSuite) TestCreateDuplicateIsAlreadyExists() {
	s.mock.ExpectExec(`INSERT INTO projects`).
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "projects_code_key"})

	err := s.repo.Create(s.ctx, s.newProject("org_a"))
	s.True(ierr.IsAlreadyExists(err))
}

func (s *TenantRepoSuite) TestUpdateNeverRewritesOwnership() {
	s.mock.ExpectExec(`UPDATE projects SET name = .* WHERE id = .* AND organization_id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repo.Update(s.ctx, s.newProject("org_a")))
}

func (s *TenantRepoSuite) TestUpdateMissingRowIsNotFound() {
	s.mock.ExpectExec(`UPDATE projects`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.Update(s.ctx, s.newProject("org_a"))
	s.True(ierr.IsNotFound(err))
}

func (s *TenantRepoSuite) TestListAppliesFilterAndPagination() {
	filter := types.NewDefaultQueryFilter()
	filter.Status = string(types.ProjectStatusOnHold)

	s.mock.ExpectQuery(`FROM projects WHERE organization_id = \$1 AND status = \$2 ORDER BY created_at desc LIMIT \$3 OFFSET \$4`).
		WithArgs("org_a", "on_hold", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "organization_id"}).
			AddRow("proj_1", "on_hold", "org_a"))

	projects, err := s.repo.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Len(projects, 1)
}

func (s *TenantRepoSuite) TestPriorStateReadsPersistedStatus() {
	s.mock.ExpectQuery(`SELECT status FROM projects WHERE organization_id = \$1 AND id = \$2`).
		WithArgs("org_a", "proj_1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("completed"))

	state, err := s.repo.PriorState(s.ctx, "proj_1")
	s.Require().NoError(err)
	s.Equal("completed", state)
}
