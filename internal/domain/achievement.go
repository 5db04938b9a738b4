package domain

import (
	"time"

	"github.com/google/uuid"
)

// AchievementCode identifies an unlockable achievement
type AchievementCode string

const (
	AchievementFirstBlood   AchievementCode = "FIRST_BLOOD"
	AchievementPerfectScore AchievementCode = "PERFECT_SCORE"
	AchievementTenSolved    AchievementCode = "TEN_SOLVED"
	AchievementWeekStreak   AchievementCode = "WEEK_STREAK"
)

// Achievement records a single unlock for a profile. Unlocks are idempotent:
// a profile holds each code at most once.
type Achievement struct {
	ProfileID  uuid.UUID       `db:"profile_id" json:"profileId"`
	Code       AchievementCode `db:"code" json:"code"`
	UnlockedAt time.Time       `db:"unlocked_at" json:"unlockedAt"`
}

type AchievementTable struct {
	ProfileID  string
	Code       string
	UnlockedAt string
}

func GetAchievementTable() AchievementTable {
	return AchievementTable{
		ProfileID:  "profile_id",
		Code:       "code",
		UnlockedAt: "unlocked_at",
	}
}

func (t AchievementTable) GetTableName() string {
	return "achievements"
}
