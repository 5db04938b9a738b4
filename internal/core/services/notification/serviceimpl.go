package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
)

var _ INotificationService = (*NotificationService)(nil)

// NotificationService implements the INotificationService interface
type NotificationService struct {
	notificationRepo secondary.NotificationRepository
	publisher        secondary.RealtimePublisher
	logger           primary.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo secondary.NotificationRepository,
	publisher secondary.RealtimePublisher,
	logger primary.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		logger:           logger,
	}
}

// recipientChannel is the logical realtime channel a client subscribes to
// for its own notifications
func recipientChannel(recipientID uuid.UUID) string {
	return "notifications:" + recipientID.String()
}

// Notify persists a notification, then publishes it. Publish failures are
// logged, not returned: the stored row is the source of truth and clients
// reconcile on next fetch.
func (s *NotificationService) Notify(ctx context.Context, recipientID uuid.UUID, kind domain.NotificationKind, title, body string) (*domain.Notification, error) {
	notification := domain.NewNotification(recipientID, kind, title, body)

	if err := s.notificationRepo.Save(ctx, notification); err != nil {
		s.logger.Error("Failed to save notification", "recipientId", recipientID, "error", err)
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	if err := s.publisher.Publish(ctx, recipientChannel(recipientID), notification); err != nil {
		s.logger.Warn("Failed to publish notification", "notificationId", notification.ID, "error", err)
	}

	return notification, nil
}

// List retrieves a recipient's notifications
func (s *NotificationService) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	notifications, err := s.notificationRepo.ListForRecipient(ctx, recipientID, unreadOnly, limit)
	if err != nil {
		s.logger.Error("Failed to list notifications", "recipientId", recipientID, "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a single notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		s.logger.Error("Failed to mark notification read", "notificationId", id, "error", err)
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of a recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		s.logger.Error("Failed to mark notifications read", "recipientId", recipientID, "error", err)
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
