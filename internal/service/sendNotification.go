package service

import (
	"context"

	"github.com/ds124wfegd/notification-service/internal/database"
	"github.com/ds124wfegd/notification-service/internal/entity"
)

type SendNotificationRequest struct {
	RecipientID string
	Content     string
	Category    string
}

type SendNotificationResponse struct {
	Notification *entity.Notification
}

type SendNotification struct {
	repo database.NotificationsRepository
}

func NewSendNotification(repo database.NotificationsRepository) *SendNotification {
	return &SendNotification{repo: repo}
}

// Execute validates the content before anything is built or persisted.
func (uc *SendNotification) Execute(ctx context.Context, req SendNotificationRequest) (*SendNotificationResponse, error) {
	content, err := entity.NewContent(req.Content)
	if err != nil {
		return nil, err
	}

	notification := entity.NewNotification(req.RecipientID, content, req.Category)

	if err := uc.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return &SendNotificationResponse{Notification: notification}, nil
}
