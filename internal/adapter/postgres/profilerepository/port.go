package profilerepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	querybuilder "gitlab.com/inteleval.net/internal/utils"
)

var _ secondary.ProfilePort = (*profileRepo)(nil)

type profileRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.ProfilePort {
	return &profileRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	tbl := domain.GetProfileTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			tbl.ID, tbl.UserName, tbl.PasswordHash, tbl.Email,
			tbl.AuthProvider, tbl.GoogleID, tbl.League, tbl.Points,
		).
		Into(tbl.GetTableName()).
		Values(
			profile.ID, profile.UserName, profile.PasswordHash, profile.Email,
			profile.AuthProvider, profile.GoogleID, profile.League, profile.Points,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}

func (r *profileRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	tbl := domain.GetProfileTable()
	return r.getOne(ctx, fmt.Sprintf("%s = ?", tbl.ID), id)
}

func (r *profileRepo) GetByUserName(ctx context.Context, userName string) (*domain.Profile, error) {
	tbl := domain.GetProfileTable()
	return r.getOne(ctx, fmt.Sprintf("%s = ?", tbl.UserName), userName)
}

func (r *profileRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Profile, error) {
	tbl := domain.GetProfileTable()
	return r.getOne(ctx, fmt.Sprintf("%s = ?", tbl.GoogleID), googleID)
}

func (r *profileRepo) getOne(ctx context.Context, clause string, arg interface{}) (*domain.Profile, error) {
	tbl := domain.GetProfileTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tbl.ID, tbl.UserName, tbl.PasswordHash, tbl.Email,
			tbl.AuthProvider, tbl.GoogleID, tbl.AvatarURL,
			tbl.League, tbl.Points, tbl.CreatedAt,
		).
		From(tbl.GetTableName()).
		Where(clause, arg).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var profile domain.Profile
	err := r.db.GetContext(ctx, &profile, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepo) AddPoints(ctx context.Context, id uuid.UUID, points int) error {
	tbl := domain.GetProfileTable()
	query := fmt.Sprintf("UPDATE %s.%s SET %s = %s + ? WHERE %s = ?",
		r.schema, tbl.GetTableName(), tbl.Points, tbl.Points, tbl.ID)
	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, points, id)

	return err
}

func (r *profileRepo) SetLeague(ctx context.Context, id uuid.UUID, league string) error {
	tbl := domain.GetProfileTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(tbl.GetTableName()).
		Set(tbl.League, league).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	_, err := r.db.ExecContext(ctx, query, args...)

	return err
}
