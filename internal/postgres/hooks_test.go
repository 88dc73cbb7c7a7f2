package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCommit_RunsAfterOutermostCommit(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT sp_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("RELEASE SAVEPOINT sp_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	var ran []string
	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(context.Context) { ran = append(ran, "outer") })

		err := db.WithTx(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func(context.Context) { ran = append(ran, "inner") })
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, ran, "nothing runs before the outermost commit")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, ran)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommit_DroppedOnRollback(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectBegin()
	mock.ExpectRollback()

	ran := false
	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(context.Context) { ran = true })
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.False(t, ran)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommit_DroppedWhenCommitFails(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	ran := false
	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(context.Context) { ran = true })
		return nil
	})
	require.Error(t, err)
	assert.False(t, ran)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommit_NestedRollbackDropsOnlyInnerWork(t *testing.T) {
	db, mock := newMockDB(t, false)

	mock.ExpectBegin()
	mock.ExpectExec("SAVEPOINT sp_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ROLLBACK TO SAVEPOINT sp_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	var ran []string
	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func(context.Context) { ran = append(ran, "outer") })
		_ = db.WithTx(ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func(context.Context) { ran = append(ran, "inner") })
			return errors.New("inner failed")
		})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer"}, ran)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommit_OutsideTransactionRunsImmediately(t *testing.T) {
	ran := false
	AfterCommit(context.Background(), func(context.Context) { ran = true })
	assert.True(t, ran)
}
