package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents a student code submission to be judged and graded
type Submission struct {
	ID          uuid.UUID
	ProfileID   uuid.UUID
	ChallengeID string
	Language    Language
	Code        string
	Explanation string
	SubmittedAt time.Time
}

// NewSubmission creates a new submission
func NewSubmission(profileID uuid.UUID, challengeID string, language Language, code, explanation string) *Submission {
	return &Submission{
		ID:          uuid.New(),
		ProfileID:   profileID,
		ChallengeID: challengeID,
		Language:    language,
		Code:        code,
		Explanation: explanation,
		SubmittedAt: time.Now(),
	}
}
