package transport

import (
	"time"

	"github.com/ds124wfegd/notification-service/internal/entity"
)

type notificationView struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"`
	Content     string     `json:"content"`
	RecipientID string     `json:"recipientId"`
	ReadAt      *time.Time `json:"readAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toHTTP(n *entity.Notification) notificationView {
	return notificationView{
		ID:          n.ID(),
		Category:    n.Category(),
		Content:     n.Content().Value(),
		RecipientID: n.RecipientID(),
		ReadAt:      n.ReadAt(),
		CreatedAt:   n.CreatedAt(),
	}
}

func toHTTPList(notifications []*entity.Notification) []notificationView {
	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, toHTTP(n))
	}
	return views
}
