package database

import (
	"fmt"
	"time"

	"github.com/ds124wfegd/notification-service/internal/entity"
)

// notificationRecord is the stored shape of a notification.
type notificationRecord struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipient_id"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toRecord(n *entity.Notification) notificationRecord {
	return notificationRecord{
		ID:          n.ID(),
		RecipientID: n.RecipientID(),
		Content:     n.Content().Value(),
		Category:    n.Category(),
		ReadAt:      n.ReadAt(),
		CreatedAt:   n.CreatedAt(),
	}
}

func (r notificationRecord) toEntity() (*entity.Notification, error) {
	content, err := entity.NewContent(r.Content)
	if err != nil {
		return nil, fmt.Errorf("stored notification %s has invalid content: %w", r.ID, err)
	}
	return entity.RestoreNotification(r.ID, r.RecipientID, content, r.Category, r.ReadAt, r.CreatedAt), nil
}
