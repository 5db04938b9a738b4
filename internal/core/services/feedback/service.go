package feedback

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

// IFeedbackService defines the interface for chat feedback threads
type IFeedbackService interface {
	// PostMessage adds a message to a channel thread; replies notify the
	// parent author.
	PostMessage(ctx context.Context, channelID string, authorID uuid.UUID, body string, parentID *uuid.UUID) (*domain.FeedbackMessage, error)

	// ListChannel retrieves a channel's messages, newest first
	ListChannel(ctx context.Context, channelID string, limit int) ([]*domain.FeedbackMessage, error)

	// DeleteMessage soft-deletes a message (moderation)
	DeleteMessage(ctx context.Context, messageID, moderatorID uuid.UUID) error

	// React toggles an emoji reaction on a message
	React(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error
	Unreact(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error

	// Bookmark management
	Bookmark(ctx context.Context, messageID, profileID uuid.UUID) error
	Unbookmark(ctx context.Context, messageID, profileID uuid.UUID) error
	ListBookmarks(ctx context.Context, profileID uuid.UUID) ([]*domain.FeedbackMessage, error)
}
