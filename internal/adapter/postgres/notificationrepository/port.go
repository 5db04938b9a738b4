package notificationrepository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	querybuilder "gitlab.com/inteleval.net/internal/utils"
)

var _ secondary.NotificationRepository = (*notificationRepo)(nil)

type notificationRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.NotificationRepository {
	return &notificationRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *notificationRepo) Save(ctx context.Context, notification *domain.Notification) error {
	tbl := domain.GetNotificationTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.RecipientID, tbl.Kind, tbl.Title, tbl.Body, tbl.Read, tbl.CreatedAt).
		Into(tbl.GetTableName()).
		Values(
			notification.ID, notification.RecipientID, notification.Kind,
			notification.Title, notification.Body, notification.Read, notification.CreatedAt,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *notificationRepo) ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*domain.Notification, error) {
	tbl := domain.GetNotificationTable()
	builder := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.RecipientID, tbl.Kind, tbl.Title, tbl.Body, tbl.Read, tbl.CreatedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.RecipientID), recipientID)
	if unreadOnly {
		builder = builder.And(fmt.Sprintf("%s = ?", tbl.Read), false)
	}
	query, args := builder.
		OrderBy(tbl.CreatedAt, false).
		Limit(limit).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var notifications []*domain.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, args...); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	tbl := domain.GetNotificationTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.GetTableName()).
		Set(tbl.Read, true).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	tbl := domain.GetNotificationTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.GetTableName()).
		Set(tbl.Read, true).
		Where(fmt.Sprintf("%s = ?", tbl.RecipientID), recipientID).
		And(fmt.Sprintf("%s = ?", tbl.Read), false).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}
