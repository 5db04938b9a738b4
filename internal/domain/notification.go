package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind categorizes a notification for client rendering
type NotificationKind string

const (
	NotificationReaction    NotificationKind = "REACTION"
	NotificationReply       NotificationKind = "REPLY"
	NotificationAchievement NotificationKind = "ACHIEVEMENT"
	NotificationLeague      NotificationKind = "LEAGUE"
	NotificationModeration  NotificationKind = "MODERATION"
)

// Notification is a persisted event addressed to a single profile. It is
// also published on the recipient's realtime channel when created.
type Notification struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	RecipientID uuid.UUID        `db:"recipient_id" json:"recipientId"`
	Kind        NotificationKind `db:"kind" json:"kind"`
	Title       string           `db:"title" json:"title"`
	Body        string           `db:"body" json:"body"`
	Read        bool             `db:"read" json:"read"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
}

// NewNotification creates an unread notification for a recipient
func NewNotification(recipientID uuid.UUID, kind NotificationKind, title, body string) *Notification {
	return &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Body:        body,
		Read:        false,
		CreatedAt:   time.Now(),
	}
}

type NotificationTable struct {
	ID          string
	RecipientID string
	Kind        string
	Title       string
	Body        string
	Read        string
	CreatedAt   string
}

func GetNotificationTable() NotificationTable {
	return NotificationTable{
		ID:          "id",
		RecipientID: "recipient_id",
		Kind:        "kind",
		Title:       "title",
		Body:        "body",
		Read:        "read",
		CreatedAt:   "created_at",
	}
}

func (t NotificationTable) GetTableName() string {
	return "notifications"
}
