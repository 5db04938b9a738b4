package realtimeport

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
)

const leaderboardKeyPrefix = "leaderboard:"

var _ secondary.LeaderboardCache = (*LeaderboardCache)(nil)

// LeaderboardCache keeps per-league weekly scores in redis sorted sets
type LeaderboardCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewLeaderboardCache(redisClient *redis.Client, logger primary.Logger) *LeaderboardCache {
	return &LeaderboardCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func leagueKey(league string) string {
	return leaderboardKeyPrefix + league
}

// AddScore increments a profile's weekly score within its league
func (c *LeaderboardCache) AddScore(ctx context.Context, league string, profileID uuid.UUID, points int) error {
	err := c.redisClient.ZIncrBy(ctx, leagueKey(league), float64(points), profileID.String()).Err()
	if err != nil {
		return fmt.Errorf("failed to add leaderboard score: %w", err)
	}
	return nil
}

// Top returns the highest-scoring profile IDs for a league
func (c *LeaderboardCache) Top(ctx context.Context, league string, limit int) ([]uuid.UUID, error) {
	members, err := c.redisClient.ZRevRange(ctx, leagueKey(league), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			c.logger.Warn("Skipping malformed leaderboard member", "member", member)
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// RankOf returns the 1-based rank of a profile in its league, or 0 when the
// profile has no score this week.
func (c *LeaderboardCache) RankOf(ctx context.Context, league string, profileID uuid.UUID) (int, error) {
	rank, err := c.redisClient.ZRevRank(ctx, leagueKey(league), profileID.String()).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read leaderboard rank: %w", err)
	}
	return int(rank) + 1, nil
}

// ResetWeek drops a league's sorted set at the weekly rollover
func (c *LeaderboardCache) ResetWeek(ctx context.Context, league string) error {
	if err := c.redisClient.Del(ctx, leagueKey(league)).Err(); err != nil {
		return fmt.Errorf("failed to reset leaderboard: %w", err)
	}
	return nil
}
