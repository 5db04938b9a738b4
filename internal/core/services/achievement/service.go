package achievement

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

// IAchievementService defines the interface for listing and unlocking
// achievements
type IAchievementService interface {
	// ListForProfile retrieves a profile's unlocked achievements
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Achievement, error)

	// Unlock records an achievement and notifies the profile on a fresh
	// unlock. Repeated unlocks are no-ops.
	Unlock(ctx context.Context, profileID uuid.UUID, code domain.AchievementCode) (bool, error)
}
