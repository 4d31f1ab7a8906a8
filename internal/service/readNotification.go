package service

import (
	"context"

	"github.com/ds124wfegd/notification-service/internal/database"
	"github.com/ds124wfegd/notification-service/internal/entity"
)

type ReadNotificationRequest struct {
	NotificationID string
}

type ReadNotification struct {
	repo database.NotificationsRepository
}

func NewReadNotification(repo database.NotificationsRepository) *ReadNotification {
	return &ReadNotification{repo: repo}
}

func (uc *ReadNotification) Execute(ctx context.Context, req ReadNotificationRequest) error {
	notification, err := uc.repo.FindByID(ctx, req.NotificationID)
	if err != nil {
		return err
	}

	if notification == nil {
		return entity.ErrNotificationNotFound
	}

	notification.Read()

	return uc.repo.Save(ctx, notification)
}
