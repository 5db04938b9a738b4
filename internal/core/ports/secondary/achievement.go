package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

type AchievementRepository interface {
	// Unlock records an achievement; returns false when the profile already
	// holds the code.
	Unlock(ctx context.Context, achievement *domain.Achievement) (bool, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Achievement, error)
	CountEvaluations(ctx context.Context, profileID uuid.UUID) (int, error)
}
