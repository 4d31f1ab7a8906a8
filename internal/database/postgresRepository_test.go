package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/ds124wfegd/notification-service/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notificationColumns = []string{"id", "recipient_id", "content", "category", "read_at", "created_at"}

func newPostgresTestRepository(t *testing.T) (NotificationsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgresRepositoryCreate(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)
	n := makeNotification(t, "r1", "hello world")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WithArgs(n.ID(), "r1", "hello world", "friend-request", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), n))
}

func TestPostgresRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)
	n := makeNotification(t, "r1", "hello world")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), n)
	assert.ErrorIs(t, err, entity.ErrStorage)
	assert.ErrorIs(t, err, entity.ErrNotificationAlreadyExists)
}

func TestPostgresRepositoryCreateFailure(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)
	cause := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).WillReturnError(cause)

	err := repo.Create(context.Background(), makeNotification(t, "r1", "hello world"))
	assert.ErrorIs(t, err, entity.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, entity.ErrNotificationAlreadyExists)
}

func TestPostgresRepositoryFindByID(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	readAt := createdAt.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications")).
		WithArgs("id-1").
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow("id-1", "r1", "hello world", "friend-request", readAt, createdAt))

	found, err := repo.FindByID(context.Background(), "id-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "id-1", found.ID())
	assert.Equal(t, "hello world", found.Content().Value())
	assert.Equal(t, createdAt, found.CreatedAt())
	require.NotNil(t, found.ReadAt())
	assert.Equal(t, readAt, *found.ReadAt())
}

func TestPostgresRepositoryFindByIDMissing(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications")).
		WithArgs("missing-id").
		WillReturnError(sql.ErrNoRows)

	found, err := repo.FindByID(context.Background(), "missing-id")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostgresRepositoryFindManyByRecipientID(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE recipient_id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow("id-1", "r1", "first notification", "social", nil, createdAt).
			AddRow("id-2", "r1", "second notification", "social", nil, createdAt.Add(time.Second)))

	notifications, err := repo.FindManyByRecipientID(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "id-1", notifications[0].ID())
	assert.Equal(t, "id-2", notifications[1].ID())
	assert.Nil(t, notifications[0].ReadAt())
}

func TestPostgresRepositoryFindManyByRecipientIDEmpty(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE recipient_id = $1")).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	notifications, err := repo.FindManyByRecipientID(context.Background(), "unknown")
	require.NoError(t, err)
	assert.NotNil(t, notifications)
	assert.Empty(t, notifications)
}

func TestPostgresRepositoryCountManyByRecipientID(t *testing.T) {
	repo, mock := newPostgresTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE recipient_id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountManyByRecipientID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPostgresRepositorySave(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "existing row", rowsAffected: 1},
		{name: "missing row", rowsAffected: 0, wantErr: entity.ErrNotificationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newPostgresTestRepository(t)
			n := makeNotification(t, "r1", "hello world")
			n.Read()

			mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications")).
				WithArgs("r1", "hello world", "friend-request", sqlmock.AnyArg(), n.ID()).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			err := repo.Save(context.Background(), n)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
