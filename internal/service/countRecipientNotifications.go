package service

import (
	"context"

	"github.com/ds124wfegd/notification-service/internal/database"
)

type CountRecipientNotificationsRequest struct {
	RecipientID string
}

type CountRecipientNotificationsResponse struct {
	Count int
}

type CountRecipientNotifications struct {
	repo database.NotificationsRepository
}

func NewCountRecipientNotifications(repo database.NotificationsRepository) *CountRecipientNotifications {
	return &CountRecipientNotifications{repo: repo}
}

func (uc *CountRecipientNotifications) Execute(ctx context.Context, req CountRecipientNotificationsRequest) (*CountRecipientNotificationsResponse, error) {
	count, err := uc.repo.CountManyByRecipientID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}

	return &CountRecipientNotificationsResponse{Count: count}, nil
}
