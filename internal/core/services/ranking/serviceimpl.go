package ranking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
)

// Promotion/demotion cut lines applied at the weekly rollover
const (
	promoteTopN       = 5
	demoteBelowPt     = 10
	rolloverBatchSize = 1000
)

var leagues = []string{
	domain.LeagueBronze,
	domain.LeagueSilver,
	domain.LeagueGold,
	domain.LeagueDiamond,
}

var _ IRankingService = (*RankingService)(nil)

// RankingService implements the IRankingService interface
type RankingService struct {
	rankingRepo secondary.RankingRepository
	profilePort secondary.ProfilePort
	leaderboard secondary.LeaderboardCache
	logger      primary.Logger
}

// NewRankingService creates a new ranking service
func NewRankingService(
	rankingRepo secondary.RankingRepository,
	profilePort secondary.ProfilePort,
	leaderboard secondary.LeaderboardCache,
	logger primary.Logger,
) *RankingService {
	return &RankingService{
		rankingRepo: rankingRepo,
		profilePort: profilePort,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// Leaderboard returns the top standings of a league. Cache misses and cache
// errors both fall through to postgres.
func (s *RankingService) Leaderboard(ctx context.Context, league string, limit int) ([]*domain.LeagueStanding, error) {
	if domain.LeagueOrder(league) < 0 {
		return nil, fmt.Errorf("unknown league %q", league)
	}
	if limit <= 0 {
		limit = 25
	}

	ids, err := s.leaderboard.Top(ctx, league, limit)
	if err != nil {
		s.logger.Warn("Leaderboard cache unavailable, falling back to postgres", "league", league, "error", err)
	} else if len(ids) == limit {
		if standings, ok := s.standingsFromCache(ctx, league, ids); ok {
			return standings, nil
		}
	}

	standings, err := s.rankingRepo.GetStandings(ctx, league, limit)
	if err != nil {
		s.logger.Error("Failed to get standings", "league", league, "error", err)
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	return standings, nil
}

func (s *RankingService) standingsFromCache(ctx context.Context, league string, ids []uuid.UUID) ([]*domain.LeagueStanding, bool) {
	standings := make([]*domain.LeagueStanding, 0, len(ids))
	for i, id := range ids {
		profile, err := s.profilePort.Get(ctx, id)
		if err != nil || profile == nil {
			return nil, false
		}
		standings = append(standings, &domain.LeagueStanding{
			ProfileID: profile.ID,
			UserName:  profile.UserName,
			League:    league,
			Points:    profile.Points,
			Rank:      i + 1,
		})
	}
	return standings, true
}

// StandingOf returns one profile's rank within its league
func (s *RankingService) StandingOf(ctx context.Context, profileID uuid.UUID) (*domain.LeagueStanding, error) {
	standing, err := s.rankingRepo.GetStanding(ctx, profileID)
	if err != nil {
		s.logger.Error("Failed to get standing", "profileId", profileID, "error", err)
		return nil, fmt.Errorf("failed to get standing: %w", err)
	}
	return standing, nil
}

// RolloverWeek promotes the top of each league, demotes profiles below the
// points floor and resets the weekly caches. All standings are snapshotted
// before any move is applied, so a profile is judged exactly once, in the
// league it finished the week in.
func (s *RankingService) RolloverWeek(ctx context.Context) error {
	snapshots := make(map[string][]*domain.LeagueStanding, len(leagues))
	for _, league := range leagues {
		standings, err := s.rankingRepo.GetStandings(ctx, league, rolloverBatchSize)
		if err != nil {
			return fmt.Errorf("failed to load %s standings: %w", league, err)
		}
		snapshots[league] = standings
	}

	for i, league := range leagues {
		for _, standing := range snapshots[league] {
			target := rolloverTarget(standing, i)
			if target == league {
				continue
			}
			if err := s.profilePort.SetLeague(ctx, standing.ProfileID, target); err != nil {
				s.logger.Error("Failed to move profile between leagues",
					"profileId", standing.ProfileID, "from", league, "to", target, "error", err)
				continue
			}
			s.logger.Info("League change", "profileId", standing.ProfileID, "from", league, "to", target)
		}

		if err := s.leaderboard.ResetWeek(ctx, league); err != nil {
			s.logger.Warn("Failed to reset leaderboard cache", "league", league, "error", err)
		}
	}

	return nil
}

func rolloverTarget(standing *domain.LeagueStanding, leagueIndex int) string {
	if standing.Rank <= promoteTopN && leagueIndex < len(leagues)-1 {
		return leagues[leagueIndex+1]
	}
	if standing.Points < demoteBelowPt && leagueIndex > 0 {
		return leagues[leagueIndex-1]
	}
	return leagues[leagueIndex]
}
