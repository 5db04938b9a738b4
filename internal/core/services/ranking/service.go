package ranking

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

// IRankingService defines the interface for league leaderboards
type IRankingService interface {
	// Leaderboard returns the top standings of a league. The redis cache is
	// consulted first; postgres is the fallback and source of truth.
	Leaderboard(ctx context.Context, league string, limit int) ([]*domain.LeagueStanding, error)

	// StandingOf returns one profile's rank within its league
	StandingOf(ctx context.Context, profileID uuid.UUID) (*domain.LeagueStanding, error)

	// RolloverWeek promotes the top of each league, demotes the bottom and
	// resets weekly leaderboard caches.
	RolloverWeek(ctx context.Context) error
}
