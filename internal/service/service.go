package service

import (
	"context"

	"github.com/ds124wfegd/notification-service/internal/database"
)

type Sender interface {
	Execute(ctx context.Context, req SendNotificationRequest) (*SendNotificationResponse, error)
}

type Reader interface {
	Execute(ctx context.Context, req ReadNotificationRequest) error
}

type RecipientLister interface {
	Execute(ctx context.Context, req GetRecipientNotificationsRequest) (*GetRecipientNotificationsResponse, error)
}

type RecipientCounter interface {
	Execute(ctx context.Context, req CountRecipientNotificationsRequest) (*CountRecipientNotificationsResponse, error)
}

// Service groups the notification use-cases served by the inbound adapters.
type Service struct {
	Send  Sender
	Read  Reader
	List  RecipientLister
	Count RecipientCounter
}

func NewService(repo database.NotificationsRepository) *Service {
	return &Service{
		Send:  NewSendNotification(repo),
		Read:  NewReadNotification(repo),
		List:  NewGetRecipientNotifications(repo),
		Count: NewCountRecipientNotifications(repo),
	}
}
