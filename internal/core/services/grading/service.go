package grading

import (
	"context"

	"gitlab.com/inteleval.net/internal/domain"
)

// IGradingService defines the interface for AI grading of submissions
type IGradingService interface {
	// GradeSubmission asks the evaluation model to score the code and its
	// explanation. Model or parse failures never surface: a fixed fallback
	// score triple is substituted instead.
	GradeSubmission(ctx context.Context, submission *domain.Submission) (*domain.Evaluation, error)
}
