package achievementrepository

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

var _ secondary.AchievementRepository = (*achievementRepo)(nil)

type achievementRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.AchievementRepository {
	return &achievementRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Unlock inserts an achievement if the profile does not hold it yet. The
// (profile_id, code) primary key makes unlocks idempotent.
func (r *achievementRepo) Unlock(ctx context.Context, achievement *domain.Achievement) (bool, error) {
	tbl := domain.GetAchievementTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ProfileID, tbl.Code, tbl.UnlockedAt).
		Into(tbl.GetTableName()).
		Values(achievement.ProfileID, achievement.Code, achievement.UnlockedAt).
		OnConflict(tbl.ProfileID, tbl.Code).
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return inserted > 0, nil
}

func (r *achievementRepo) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Achievement, error) {
	tbl := domain.GetAchievementTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ProfileID, tbl.Code, tbl.UnlockedAt).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ProfileID), profileID).
		OrderBy(tbl.UnlockedAt, false).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var achievements []*domain.Achievement
	if err := r.db.SelectContext(ctx, &achievements, query, args...); err != nil {
		return nil, err
	}

	return achievements, nil
}

func (r *achievementRepo) CountEvaluations(ctx context.Context, profileID uuid.UUID) (int, error) {
	tbl := domain.GetEvaluationTable()
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s WHERE %s = ?",
		r.schema, tbl.GetTableName(), tbl.ProfileID)

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID); err != nil {
		return 0, err
	}

	return count, nil
}
