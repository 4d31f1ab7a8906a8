package service

import (
	"context"

	"github.com/ds124wfegd/notification-service/internal/database"
	"github.com/ds124wfegd/notification-service/internal/entity"
)

type GetRecipientNotificationsRequest struct {
	RecipientID string
}

type GetRecipientNotificationsResponse struct {
	Notifications []*entity.Notification
}

type GetRecipientNotifications struct {
	repo database.NotificationsRepository
}

func NewGetRecipientNotifications(repo database.NotificationsRepository) *GetRecipientNotifications {
	return &GetRecipientNotifications{repo: repo}
}

func (uc *GetRecipientNotifications) Execute(ctx context.Context, req GetRecipientNotificationsRequest) (*GetRecipientNotificationsResponse, error) {
	notifications, err := uc.repo.FindManyByRecipientID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []*entity.Notification{}
	}

	return &GetRecipientNotificationsResponse{Notifications: notifications}, nil
}
