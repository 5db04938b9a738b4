package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackMessage is a chat message posted on a submission or challenge thread
type FeedbackMessage struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	ChannelID string     `db:"channel_id" json:"channelId"`
	AuthorID  uuid.UUID  `db:"author_id" json:"authorId"`
	Body      string     `db:"body" json:"body"`
	ParentID  *uuid.UUID `db:"parent_id" json:"parentId,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// Reaction is an emoji reaction attached to a feedback message
type Reaction struct {
	MessageID uuid.UUID `db:"message_id"`
	ProfileID uuid.UUID `db:"profile_id"`
	Emoji     string    `db:"emoji"`
	CreatedAt time.Time `db:"created_at"`
}

// Bookmark marks a feedback message a profile wants to find again
type Bookmark struct {
	MessageID uuid.UUID `db:"message_id"`
	ProfileID uuid.UUID `db:"profile_id"`
	CreatedAt time.Time `db:"created_at"`
}

type FeedbackMessageTable struct {
	ID        string
	ChannelID string
	AuthorID  string
	Body      string
	ParentID  string
	CreatedAt string
	DeletedAt string
}

func GetFeedbackMessageTable() FeedbackMessageTable {
	return FeedbackMessageTable{
		ID:        "id",
		ChannelID: "channel_id",
		AuthorID:  "author_id",
		Body:      "body",
		ParentID:  "parent_id",
		CreatedAt: "created_at",
		DeletedAt: "deleted_at",
	}
}

func (t FeedbackMessageTable) GetTableName() string {
	return "feedback_messages"
}
