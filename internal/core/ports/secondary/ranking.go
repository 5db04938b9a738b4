package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

// RankingRepository is the postgres source of truth for league standings
type RankingRepository interface {
	GetStandings(ctx context.Context, league string, limit int) ([]*domain.LeagueStanding, error)
	GetStanding(ctx context.Context, profileID uuid.UUID) (*domain.LeagueStanding, error)
}

// LeaderboardCache is the redis-backed ranked view of a league. Scores are
// weekly points; the cache may lag postgres and is rebuilt on demand.
type LeaderboardCache interface {
	AddScore(ctx context.Context, league string, profileID uuid.UUID, points int) error
	Top(ctx context.Context, league string, limit int) ([]uuid.UUID, error)
	RankOf(ctx context.Context, league string, profileID uuid.UUID) (int, error)
	ResetWeek(ctx context.Context, league string) error
}
