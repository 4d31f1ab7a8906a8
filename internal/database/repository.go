package database

import (
	"context"

	"github.com/ds124wfegd/notification-service/internal/entity"
)

// NotificationsRepository stores notifications keyed by id with a secondary
// index by recipient. Failures of the underlying store are returned as
// *entity.StorageError.
type NotificationsRepository interface {
	// Create fails when a notification with the same id already exists.
	Create(ctx context.Context, notification *entity.Notification) error
	// FindByID returns nil, nil when the id is unknown.
	FindByID(ctx context.Context, id string) (*entity.Notification, error)
	FindManyByRecipientID(ctx context.Context, recipientID string) ([]*entity.Notification, error)
	CountManyByRecipientID(ctx context.Context, recipientID string) (int, error)
	// Save replaces the stored state. Returns entity.ErrNotificationNotFound
	// when nothing is stored under the id.
	Save(ctx context.Context, notification *entity.Notification) error
}
