package postgres

import (
	"bytes"
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreOrdered(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
	assert.Contains(t, migrations[len(migrations)-1].SQL, "ENABLE ROW LEVEL SECURITY")
}

func TestMigrate_DryRunExecutesNothing(t *testing.T) {
	db, mock := newMockDB(t, false)

	var out bytes.Buffer
	require.NoError(t, db.Migrate(context.Background(), true, &out))
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS organizations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_SkipsApplied(t *testing.T) {
	db, mock := newMockDB(t, false)
	migrations, err := Migrations()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	rows := sqlmock.NewRows([]string{"version"})
	for _, m := range migrations {
		rows.AddRow(m.Version)
	}
	mock.ExpectQuery("SELECT version FROM schema_migrations").WillReturnRows(rows)

	require.NoError(t, db.Migrate(context.Background(), false, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
