package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

// FeedbackRepository persists chat messages, reactions and bookmarks
type FeedbackRepository interface {
	SaveMessage(ctx context.Context, msg *domain.FeedbackMessage) error
	GetMessage(ctx context.Context, id uuid.UUID) (*domain.FeedbackMessage, error)
	ListChannel(ctx context.Context, channelID string, limit int) ([]*domain.FeedbackMessage, error)
	SoftDeleteMessage(ctx context.Context, id uuid.UUID) error

	AddReaction(ctx context.Context, reaction *domain.Reaction) error
	RemoveReaction(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error
	ListReactions(ctx context.Context, messageID uuid.UUID) ([]*domain.Reaction, error)

	AddBookmark(ctx context.Context, bookmark *domain.Bookmark) error
	RemoveBookmark(ctx context.Context, messageID, profileID uuid.UUID) error
	ListBookmarks(ctx context.Context, profileID uuid.UUID) ([]*domain.FeedbackMessage, error)
}
