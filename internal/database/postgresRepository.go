package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ds124wfegd/notification-service/internal/entity"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// postgresRepository relies on the primary key to reject duplicate ids.
// Save is a plain UPDATE: concurrent saves of the same row are serialized
// by the row lock and the last one wins.
type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) NotificationsRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, content, category, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID(),
		notification.RecipientID(),
		notification.Content().Value(),
		notification.Category(),
		nullTime(notification.ReadAt()),
		notification.CreatedAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.NewStorageError("create notification", entity.ErrNotificationAlreadyExists)
		}
		return entity.NewStorageError("create notification", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, content, category, read_at, created_at
		FROM notifications
		WHERE id = $1
	`

	notification, err := scanNotification(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, entity.NewStorageError("find notification", err)
	}

	return notification, nil
}

func (r *postgresRepository) FindManyByRecipientID(ctx context.Context, recipientID string) ([]*entity.Notification, error) {
	query := `
		SELECT id, recipient_id, content, category, read_at, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, entity.NewStorageError("find recipient notifications", err)
	}
	defer rows.Close()

	notifications := make([]*entity.Notification, 0)
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, entity.NewStorageError("scan notification", err)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, entity.NewStorageError("find recipient notifications", err)
	}

	return notifications, nil
}

func (r *postgresRepository) CountManyByRecipientID(ctx context.Context, recipientID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, entity.NewStorageError("count recipient notifications", err)
	}
	return count, nil
}

func (r *postgresRepository) Save(ctx context.Context, notification *entity.Notification) error {
	query := `
		UPDATE notifications
		SET recipient_id = $1, content = $2, category = $3, read_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		notification.RecipientID(),
		notification.Content().Value(),
		notification.Category(),
		nullTime(notification.ReadAt()),
		notification.ID(),
	)
	if err != nil {
		return entity.NewStorageError("save notification", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return entity.NewStorageError("save notification", err)
	}
	if rowsAffected == 0 {
		return entity.ErrNotificationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*entity.Notification, error) {
	var (
		record notificationRecord
		readAt sql.NullTime
	)
	err := row.Scan(
		&record.ID,
		&record.RecipientID,
		&record.Content,
		&record.Category,
		&readAt,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if readAt.Valid {
		record.ReadAt = &readAt.Time
	}

	return record.toEntity()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
