package database

import (
	"context"
	"sync"

	"github.com/ds124wfegd/notification-service/internal/entity"
)

// InMemoryRepository keeps notifications in insertion order. Concurrent
// writes on the same id are serialized by a mutex, last write wins.
type InMemoryRepository struct {
	mu            sync.RWMutex
	notifications []*entity.Notification
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if err := ctx.Err(); err != nil {
		return entity.NewStorageError("create notification", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(notification.ID()) >= 0 {
		return entity.NewStorageError("create notification", entity.ErrNotificationAlreadyExists)
	}
	r.notifications = append(r.notifications, notification.Clone())
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*entity.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, entity.NewStorageError("find notification", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.notifications[i].Clone(), nil
	}
	return nil, nil
}

func (r *InMemoryRepository) FindManyByRecipientID(ctx context.Context, recipientID string) ([]*entity.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, entity.NewStorageError("find recipient notifications", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	notifications := make([]*entity.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID() == recipientID {
			notifications = append(notifications, n.Clone())
		}
	}
	return notifications, nil
}

func (r *InMemoryRepository) CountManyByRecipientID(ctx context.Context, recipientID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, entity.NewStorageError("count recipient notifications", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if n.RecipientID() == recipientID {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, notification *entity.Notification) error {
	if err := ctx.Err(); err != nil {
		return entity.NewStorageError("save notification", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(notification.ID())
	if i < 0 {
		return entity.ErrNotificationNotFound
	}
	r.notifications[i] = notification.Clone()
	return nil
}

// Len is used by tests to check that nothing was persisted.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notifications)
}

func (r *InMemoryRepository) indexOf(id string) int {
	for i, n := range r.notifications {
		if n.ID() == id {
			return i
		}
	}
	return -1
}
