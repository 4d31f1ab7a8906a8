package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is addressed to a single recipient. The read state can only
// move from unread to read.
type Notification struct {
	id          string
	recipientID string
	content     Content
	category    string
	readAt      *time.Time
	createdAt   time.Time
}

func NewNotification(recipientID string, content Content, category string) *Notification {
	return &Notification{
		id:          uuid.New().String(),
		recipientID: recipientID,
		content:     content,
		category:    category,
		createdAt:   time.Now().UTC(),
	}
}

// RestoreNotification rebuilds a notification from stored state.
func RestoreNotification(id, recipientID string, content Content, category string, readAt *time.Time, createdAt time.Time) *Notification {
	n := &Notification{
		id:          id,
		recipientID: recipientID,
		content:     content,
		category:    category,
		createdAt:   createdAt,
	}
	if readAt != nil {
		t := *readAt
		n.readAt = &t
	}
	return n
}

func (n *Notification) ID() string          { return n.id }
func (n *Notification) RecipientID() string { return n.recipientID }
func (n *Notification) Content() Content    { return n.content }
func (n *Notification) Category() string    { return n.category }
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ReadAt returns nil while the notification is unread.
func (n *Notification) ReadAt() *time.Time {
	if n.readAt == nil {
		return nil
	}
	t := *n.readAt
	return &t
}

func (n *Notification) IsRead() bool {
	return n.readAt != nil
}

// Read marks the notification as read. Reading an already read notification
// keeps the first timestamp.
func (n *Notification) Read() {
	if n.readAt != nil {
		return
	}
	now := time.Now().UTC()
	n.readAt = &now
}

// Clone returns a copy that shares no mutable state with n.
func (n *Notification) Clone() *Notification {
	return RestoreNotification(n.id, n.recipientID, n.content, n.category, n.readAt, n.createdAt)
}
