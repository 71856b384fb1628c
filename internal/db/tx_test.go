package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	database := sqlx.NewDb(conn, "sqlmock")
	t.Cleanup(func() { database.Close() })
	return database, mock
}

func TestWithTx_Commit(t *testing.T) {
	database, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE trainings SET status = 'APPROVED' WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE trainings SET status = 'APPROVED' WHERE id = $1", 1)
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnError(t *testing.T) {
	database, mock := setupMock(t)
	failure := errors.New("missing iban")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
		return failure
	})

	assert.ErrorIs(t, err, failure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	database, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), database, func(tx *sqlx.Tx) error {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	database, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := Exists(context.Background(), database, "SELECT EXISTS(SELECT 1 FROM payments WHERE id = $1)", 4)
	require.NoError(t, err)
	assert.True(t, ok)
}
