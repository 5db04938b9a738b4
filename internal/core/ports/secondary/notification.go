package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

type NotificationRepository interface {
	Save(ctx context.Context, notification *domain.Notification) error
	ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}
