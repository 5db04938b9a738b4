package rankingrepository

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
)

var _ secondary.RankingRepository = (*rankingRepo)(nil)

type rankingRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.RankingRepository {
	return &rankingRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// GetStandings ranks the profiles of one league by points. Rank is computed
// in SQL so the slice comes back ready to serve.
func (r *rankingRepo) GetStandings(ctx context.Context, league string, limit int) ([]*domain.LeagueStanding, error) {
	tbl := domain.GetProfileTable()
	query := fmt.Sprintf(
		"SELECT %s AS profile_id, %s, %s, %s, "+
			"RANK() OVER (ORDER BY %s DESC) AS rank "+
			"FROM %s.%s WHERE %s = ? ORDER BY %s DESC LIMIT %d",
		tbl.ID, tbl.UserName, tbl.League, tbl.Points,
		tbl.Points,
		r.schema, tbl.GetTableName(), tbl.League, tbl.Points, limit,
	)

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var standings []*domain.LeagueStanding
	if err := r.db.SelectContext(ctx, &standings, query, league); err != nil {
		return nil, err
	}

	return standings, nil
}

func (r *rankingRepo) GetStanding(ctx context.Context, profileID uuid.UUID) (*domain.LeagueStanding, error) {
	tbl := domain.GetProfileTable()
	query := fmt.Sprintf(
		"SELECT profile_id, user_name, league, points, rank FROM ("+
			"SELECT %s AS profile_id, %s, %s, %s, "+
			"RANK() OVER (PARTITION BY %s ORDER BY %s DESC) AS rank "+
			"FROM %s.%s) ranked WHERE profile_id = ?",
		tbl.ID, tbl.UserName, tbl.League, tbl.Points,
		tbl.League, tbl.Points,
		r.schema, tbl.GetTableName(),
	)

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var standing domain.LeagueStanding
	err := r.db.GetContext(ctx, &standing, query, profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &standing, nil
}
