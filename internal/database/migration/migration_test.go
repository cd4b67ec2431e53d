package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ledgerDDL   = `CREATE TABLE IF NOT EXISTS schema_migrations`
	ledgerQuery = `SELECT name FROM schema_migrations`
	ledgerWrite = `INSERT INTO schema_migrations \(name\) VALUES \(\$1\)`
)

func expectStep(mock sqlmock.Sqlmock, ddl, name string) {
	mock.ExpectBegin()
	mock.ExpectExec(ddl).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(ledgerWrite).WithArgs(name).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh database runs every step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(ledgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(ledgerQuery).WillReturnRows(sqlmock.NewRows([]string{"name"}))
		expectStep(mock, "CREATE TABLE IF NOT EXISTS inquiries", "0001_create_table_inquiries")
		expectStep(mock, "CREATE UNIQUE INDEX IF NOT EXISTS idx_inquiries_external_id", "0002_create_index_inquiries_external_id")
		expectStep(mock, "CREATE INDEX IF NOT EXISTS idx_inquiries_modified_at", "0003_create_index_inquiries_modified_at")

		assert.NoError(t, EnsureMigrated(ctx, db, time.UTC, "db"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applied steps are skipped", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(ledgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(ledgerQuery).WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("0001_create_table_inquiries").
			AddRow("0002_create_index_inquiries_external_id"))
		expectStep(mock, "CREATE INDEX IF NOT EXISTS idx_inquiries_modified_at", "0003_create_index_inquiries_modified_at")

		assert.NoError(t, EnsureMigrated(ctx, db, time.UTC, "db"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("step failure rolls back and stops", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(ledgerDDL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(ledgerQuery).WillReturnRows(sqlmock.NewRows([]string{"name"}))
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS inquiries").WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		err = EnsureMigrated(ctx, db, time.UTC, "db")
		assert.EqualError(t, err, "migration step 0001_create_table_inquiries failed: permission denied")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ledger failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(ledgerDDL).WillReturnError(errors.New("connection reset"))

		err = EnsureMigrated(ctx, db, time.UTC, "db")
		assert.ErrorContains(t, err, "create migration ledger")
	})
}
