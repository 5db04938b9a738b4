package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/core/services/notification"
	"gitlab.com/inteleval.net/internal/domain"
)

var _ IAchievementService = (*AchievementService)(nil)

// AchievementService implements the IAchievementService interface
type AchievementService struct {
	achievementRepo secondary.AchievementRepository
	notifier        notification.INotificationService
	logger          primary.Logger
}

// NewAchievementService creates a new achievement service
func NewAchievementService(
	achievementRepo secondary.AchievementRepository,
	notifier notification.INotificationService,
	logger primary.Logger,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// ListForProfile retrieves a profile's unlocked achievements
func (s *AchievementService) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*domain.Achievement, error) {
	achievements, err := s.achievementRepo.ListForProfile(ctx, profileID)
	if err != nil {
		s.logger.Error("Failed to list achievements", "profileId", profileID, "error", err)
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

// Unlock records an achievement; a fresh unlock notifies the profile
func (s *AchievementService) Unlock(ctx context.Context, profileID uuid.UUID, code domain.AchievementCode) (bool, error) {
	created, err := s.achievementRepo.Unlock(ctx, &domain.Achievement{
		ProfileID:  profileID,
		Code:       code,
		UnlockedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("Failed to unlock achievement", "profileId", profileID, "code", code, "error", err)
		return false, fmt.Errorf("failed to unlock achievement: %w", err)
	}

	if created {
		_, err = s.notifier.Notify(ctx, profileID, domain.NotificationAchievement,
			"Achievement unlocked", fmt.Sprintf("You earned %s", code))
		if err != nil {
			s.logger.Warn("Failed to notify achievement", "profileId", profileID, "code", code, "error", err)
		}
	}

	return created, nil
}
