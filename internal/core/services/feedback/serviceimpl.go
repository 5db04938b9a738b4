package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/core/services/notification"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/static/errs"
)

var _ IFeedbackService = (*FeedbackService)(nil)

// FeedbackService implements the IFeedbackService interface
type FeedbackService struct {
	feedbackRepo secondary.FeedbackRepository
	notifier     notification.INotificationService
	publisher    secondary.RealtimePublisher
	logger       primary.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(
	feedbackRepo secondary.FeedbackRepository,
	notifier notification.INotificationService,
	publisher secondary.RealtimePublisher,
	logger primary.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		notifier:     notifier,
		publisher:    publisher,
		logger:       logger,
	}
}

func channelEventName(channelID string) string {
	return "feedback:" + channelID
}

// PostMessage adds a message to a channel thread and fans it out on the
// channel's realtime stream. A reply also notifies the parent's author.
func (s *FeedbackService) PostMessage(ctx context.Context, channelID string, authorID uuid.UUID, body string, parentID *uuid.UUID) (*domain.FeedbackMessage, error) {
	msg := &domain.FeedbackMessage{
		ID:        uuid.New(),
		ChannelID: channelID,
		AuthorID:  authorID,
		Body:      body,
		ParentID:  parentID,
		CreatedAt: time.Now(),
	}

	if err := s.feedbackRepo.SaveMessage(ctx, msg); err != nil {
		s.logger.Error("Failed to save feedback message", "channelId", channelID, "error", err)
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if err := s.publisher.Publish(ctx, channelEventName(channelID), msg); err != nil {
		s.logger.Warn("Failed to publish feedback message", "messageId", msg.ID, "error", err)
	}

	if parentID != nil {
		s.notifyParentAuthor(ctx, msg, *parentID)
	}

	return msg, nil
}

func (s *FeedbackService) notifyParentAuthor(ctx context.Context, reply *domain.FeedbackMessage, parentID uuid.UUID) {
	parent, err := s.feedbackRepo.GetMessage(ctx, parentID)
	if err != nil || parent == nil {
		s.logger.Warn("Reply to unknown parent message", "parentId", parentID, "error", err)
		return
	}
	if parent.AuthorID == reply.AuthorID {
		return
	}
	_, err = s.notifier.Notify(ctx, parent.AuthorID, domain.NotificationReply,
		"New reply", fmt.Sprintf("Someone replied to your message in %s", reply.ChannelID))
	if err != nil {
		s.logger.Warn("Failed to notify parent author", "parentId", parentID, "error", err)
	}
}

// ListChannel retrieves a channel's messages
func (s *FeedbackService) ListChannel(ctx context.Context, channelID string, limit int) ([]*domain.FeedbackMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	messages, err := s.feedbackRepo.ListChannel(ctx, channelID, limit)
	if err != nil {
		s.logger.Error("Failed to list channel", "channelId", channelID, "error", err)
		return nil, fmt.Errorf("failed to list channel: %w", err)
	}

	return messages, nil
}

// DeleteMessage soft-deletes a message and notifies its author
func (s *FeedbackService) DeleteMessage(ctx context.Context, messageID, moderatorID uuid.UUID) error {
	msg, err := s.feedbackRepo.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return errs.MessageNotFound
	}

	if err := s.feedbackRepo.SoftDeleteMessage(ctx, messageID); err != nil {
		s.logger.Error("Failed to delete message", "messageId", messageID, "error", err)
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if msg.AuthorID != moderatorID {
		_, err = s.notifier.Notify(ctx, msg.AuthorID, domain.NotificationModeration,
			"Message removed", "A moderator removed one of your messages.")
		if err != nil {
			s.logger.Warn("Failed to notify author of removal", "messageId", messageID, "error", err)
		}
	}

	return nil
}

// React adds an emoji reaction and notifies the message author
func (s *FeedbackService) React(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error {
	msg, err := s.feedbackRepo.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return errs.MessageNotFound
	}

	reaction := &domain.Reaction{
		MessageID: messageID,
		ProfileID: profileID,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}
	if err := s.feedbackRepo.AddReaction(ctx, reaction); err != nil {
		s.logger.Error("Failed to add reaction", "messageId", messageID, "error", err)
		return fmt.Errorf("failed to add reaction: %w", err)
	}

	if msg.AuthorID != profileID {
		_, err = s.notifier.Notify(ctx, msg.AuthorID, domain.NotificationReaction,
			"New reaction", fmt.Sprintf("Your message received %s", emoji))
		if err != nil {
			s.logger.Warn("Failed to notify reaction", "messageId", messageID, "error", err)
		}
	}

	return nil
}

func (s *FeedbackService) Unreact(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error {
	if err := s.feedbackRepo.RemoveReaction(ctx, messageID, profileID, emoji); err != nil {
		s.logger.Error("Failed to remove reaction", "messageId", messageID, "error", err)
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}

func (s *FeedbackService) Bookmark(ctx context.Context, messageID, profileID uuid.UUID) error {
	msg, err := s.feedbackRepo.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to get message: %w", err)
	}
	if msg == nil {
		return errs.MessageNotFound
	}

	bookmark := &domain.Bookmark{
		MessageID: messageID,
		ProfileID: profileID,
		CreatedAt: time.Now(),
	}
	if err := s.feedbackRepo.AddBookmark(ctx, bookmark); err != nil {
		s.logger.Error("Failed to add bookmark", "messageId", messageID, "error", err)
		return fmt.Errorf("failed to add bookmark: %w", err)
	}

	return nil
}

func (s *FeedbackService) Unbookmark(ctx context.Context, messageID, profileID uuid.UUID) error {
	if err := s.feedbackRepo.RemoveBookmark(ctx, messageID, profileID); err != nil {
		s.logger.Error("Failed to remove bookmark", "messageId", messageID, "error", err)
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

func (s *FeedbackService) ListBookmarks(ctx context.Context, profileID uuid.UUID) ([]*domain.FeedbackMessage, error) {
	messages, err := s.feedbackRepo.ListBookmarks(ctx, profileID)
	if err != nil {
		s.logger.Error("Failed to list bookmarks", "profileId", profileID, "error", err)
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return messages, nil
}
