package domain

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation holds the AI-graded scores for a submission. Scores are on a
// 0-100 scale.
type Evaluation struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SubmissionID uuid.UUID `db:"submission_id" json:"submissionId"`
	ProfileID    uuid.UUID `db:"profile_id" json:"profileId"`
	Correctness  int       `db:"correctness" json:"correctness"`
	Efficiency   int       `db:"efficiency" json:"efficiency"`
	Clarity      int       `db:"clarity" json:"clarity"`
	Feedback     string    `db:"feedback" json:"feedback"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Overall returns the weighted overall score used for league points.
func (e Evaluation) Overall() int {
	return (e.Correctness*50 + e.Efficiency*30 + e.Clarity*20) / 100
}

type EvaluationTable struct {
	ID           string
	SubmissionID string
	ProfileID    string
	Correctness  string
	Efficiency   string
	Clarity      string
	Feedback     string
	CreatedAt    string
}

func GetEvaluationTable() EvaluationTable {
	return EvaluationTable{
		ID:           "id",
		SubmissionID: "submission_id",
		ProfileID:    "profile_id",
		Correctness:  "correctness",
		Efficiency:   "efficiency",
		Clarity:      "clarity",
		Feedback:     "feedback",
		CreatedAt:    "created_at",
	}
}

func (t EvaluationTable) GetTableName() string {
	return "evaluations"
}
