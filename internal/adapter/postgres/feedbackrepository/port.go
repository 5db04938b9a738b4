package feedbackrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	querybuilder "gitlab.com/inteleval.net/internal/utils"
)

var _ secondary.FeedbackRepository = (*feedbackRepo)(nil)

type feedbackRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.FeedbackRepository {
	return &feedbackRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *feedbackRepo) SaveMessage(ctx context.Context, msg *domain.FeedbackMessage) error {
	tbl := domain.GetFeedbackMessageTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.ChannelID, tbl.AuthorID, tbl.Body, tbl.ParentID, tbl.CreatedAt).
		Into(tbl.GetTableName()).
		Values(msg.ID, msg.ChannelID, msg.AuthorID, msg.Body, msg.ParentID, msg.CreatedAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *feedbackRepo) GetMessage(ctx context.Context, id uuid.UUID) (*domain.FeedbackMessage, error) {
	tbl := domain.GetFeedbackMessageTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.ChannelID, tbl.AuthorID, tbl.Body, tbl.ParentID, tbl.CreatedAt, tbl.DeletedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var msg domain.FeedbackMessage
	err := r.db.GetContext(ctx, &msg, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &msg, nil
}

func (r *feedbackRepo) ListChannel(ctx context.Context, channelID string, limit int) ([]*domain.FeedbackMessage, error) {
	tbl := domain.GetFeedbackMessageTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.ChannelID, tbl.AuthorID, tbl.Body, tbl.ParentID, tbl.CreatedAt, tbl.DeletedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ChannelID), channelID).
		And(fmt.Sprintf("%s IS NULL", tbl.DeletedAt)).
		OrderBy(tbl.CreatedAt, false).
		Limit(limit).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var messages []*domain.FeedbackMessage
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *feedbackRepo) SoftDeleteMessage(ctx context.Context, id uuid.UUID) error {
	tbl := domain.GetFeedbackMessageTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.GetTableName()).
		Set(tbl.DeletedAt, time.Now()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *feedbackRepo) AddReaction(ctx context.Context, reaction *domain.Reaction) error {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert("message_id", "profile_id", "emoji", "created_at").
		Into("reactions").
		Values(reaction.MessageID, reaction.ProfileID, reaction.Emoji, reaction.CreatedAt).
		OnConflict("message_id", "profile_id", "emoji").
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *feedbackRepo) RemoveReaction(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete("reactions").
		Where("message_id = ?", messageID).
		And("profile_id = ?", profileID).
		And("emoji = ?", emoji).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *feedbackRepo) ListReactions(ctx context.Context, messageID uuid.UUID) ([]*domain.Reaction, error) {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select("message_id", "profile_id", "emoji", "created_at").
		From("reactions").
		Where("message_id = ?", messageID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var reactions []*domain.Reaction
	if err := r.db.SelectContext(ctx, &reactions, query, args...); err != nil {
		return nil, err
	}

	return reactions, nil
}

func (r *feedbackRepo) AddBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert("message_id", "profile_id", "created_at").
		Into("bookmarks").
		Values(bookmark.MessageID, bookmark.ProfileID, bookmark.CreatedAt).
		OnConflict("message_id", "profile_id").
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *feedbackRepo) RemoveBookmark(ctx context.Context, messageID, profileID uuid.UUID) error {
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete("bookmarks").
		Where("message_id = ?", messageID).
		And("profile_id = ?", profileID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *feedbackRepo) ListBookmarks(ctx context.Context, profileID uuid.UUID) ([]*domain.FeedbackMessage, error) {
	tbl := domain.GetFeedbackMessageTable()
	query := fmt.Sprintf(
		"SELECT m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s FROM %s.%s m "+
			"JOIN %s.bookmarks b ON b.message_id = m.%s WHERE b.profile_id = ? AND m.%s IS NULL "+
			"ORDER BY b.created_at DESC",
		tbl.ID, tbl.ChannelID, tbl.AuthorID, tbl.Body, tbl.ParentID, tbl.CreatedAt, tbl.DeletedAt,
		r.schema, tbl.GetTableName(),
		r.schema, tbl.ID, tbl.DeletedAt,
	)

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var messages []*domain.FeedbackMessage
	if err := r.db.SelectContext(ctx, &messages, query, profileID); err != nil {
		return nil, err
	}

	return messages, nil
}
