package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash *string   `db:"password_hash"`
	Email        *string   `db:"email"`
	AuthProvider string    `db:"auth_provider"`
	GoogleID     *string   `db:"google_id"`
	AvatarURL    *string   `db:"avatar_url"`
	League       string    `db:"league"`
	Points       int       `db:"points"`
	CreatedAt    time.Time `db:"created_at"`
}

type ProfileTable struct {
	ID           string
	UserName     string
	PasswordHash string
	Email        string
	AuthProvider string
	GoogleID     string
	AvatarURL    string
	League       string
	Points       string
	CreatedAt    string
}

func GetProfileTable() ProfileTable {
	return ProfileTable{
		ID:           "id",
		UserName:     "user_name",
		PasswordHash: "password_hash",
		Email:        "email",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
		AvatarURL:    "avatar_url",
		League:       "league",
		Points:       "points",
		CreatedAt:    "created_at",
	}
}

func (t ProfileTable) GetTableName() string {
	return "profiles"
}
