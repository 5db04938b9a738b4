package domain

import "github.com/google/uuid"

// League tiers, lowest to highest
const (
	LeagueBronze  = "BRONZE"
	LeagueSilver  = "SILVER"
	LeagueGold    = "GOLD"
	LeagueDiamond = "DIAMOND"
)

// LeagueStanding is one row of a league leaderboard for the current week
type LeagueStanding struct {
	ProfileID uuid.UUID `db:"profile_id" json:"profileId"`
	UserName  string    `db:"user_name" json:"userName"`
	League    string    `db:"league" json:"league"`
	Points    int       `db:"points" json:"points"`
	Rank      int       `db:"rank" json:"rank"`
}

// LeagueOrder returns the promotion order index of a league, or -1 when the
// name is not a known tier.
func LeagueOrder(league string) int {
	switch league {
	case LeagueBronze:
		return 0
	case LeagueSilver:
		return 1
	case LeagueGold:
		return 2
	case LeagueDiamond:
		return 3
	default:
		return -1
	}
}
