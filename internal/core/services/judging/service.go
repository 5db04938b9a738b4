package judging

import (
	"context"

	"gitlab.com/inteleval.net/internal/domain"
)

// IJudgingService defines the interface for running test cases against the
// external judge
type IJudgingService interface {
	// RunTestCases executes code against the public and hidden test sets and
	// aggregates the verdicts into a report. Per-test execution failures are
	// folded into failed results; the only error returned is an unsupported
	// language, surfaced before any network call.
	RunTestCases(ctx context.Context, language domain.Language, code string, publicTests, hiddenTests []domain.TestCase) (*domain.JudgingReport, error)
}
