package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/ds124wfegd/notification-service/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "notifications",
		Password: "secret",
		DBName:   "notifications",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=notifications password=secret dbname=notifications sslmode=disable",
		ConnString(cfg))
}

func TestRunMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS notifications")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_notifications_recipient_id")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrationsFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE")).WillReturnError(errors.New("permission denied"))

	err = RunMigrations(context.Background(), db)
	assert.ErrorContains(t, err, "permission denied")
}
