package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ds124wfegd/notification-service/internal/entity"
	"github.com/ds124wfegd/notification-service/internal/service"
)

// ErrInvalidPayload marks an event that can never be processed.
var ErrInvalidPayload = errors.New("invalid send notification payload")

// SendNotificationEvent is the broker payload asking for a new notification.
type SendNotificationEvent struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
	Category    string `json:"category"`
}

// Handler processes one raw broker message.
type Handler func(ctx context.Context, body []byte) error

type SendNotificationHandler struct {
	sender service.Sender
}

func NewSendNotificationHandler(sender service.Sender) *SendNotificationHandler {
	return &SendNotificationHandler{sender: sender}
}

func (h *SendNotificationHandler) Handle(ctx context.Context, body []byte) error {
	var event SendNotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if event.RecipientID == "" || event.Category == "" {
		return fmt.Errorf("%w: recipientId and category are required", ErrInvalidPayload)
	}

	_, err := h.sender.Execute(ctx, service.SendNotificationRequest{
		RecipientID: event.RecipientID,
		Content:     event.Content,
		Category:    event.Category,
	})
	return err
}

// IsPermanent reports whether redelivering the message cannot succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidPayload) || errors.Is(err, entity.ErrValidation)
}
