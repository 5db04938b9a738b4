package notification

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

// INotificationService defines the interface for managing notifications
type INotificationService interface {
	// Notify persists a notification and publishes it on the recipient's
	// realtime channel.
	Notify(ctx context.Context, recipientID uuid.UUID, kind domain.NotificationKind, title, body string) (*domain.Notification, error)

	// List retrieves a recipient's notifications, newest first
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*domain.Notification, error)

	// MarkRead marks a single notification as read
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead marks every unread notification of a recipient as read
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}
