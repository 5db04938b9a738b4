package judging

import (
	"context"
	"fmt"
	"sync"

	"github.com/pmezard/go-difflib/difflib"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/static/errs"
)

var _ IJudgingService = (*JudgingService)(nil)

// JudgingService implements the IJudgingService interface
type JudgingService struct {
	judgeClient secondary.JudgeClient
	logger      primary.Logger
}

// NewJudgingService creates a new judging service
func NewJudgingService(judgeClient secondary.JudgeClient, logger primary.Logger) *JudgingService {
	return &JudgingService{
		judgeClient: judgeClient,
		logger:      logger,
	}
}

// RunTestCases executes every test case concurrently against the judge and
// aggregates the verdicts. No test case is ever dropped: a submission or
// timeout error becomes a failed result carrying the error text.
func (s *JudgingService) RunTestCases(ctx context.Context, language domain.Language, code string, publicTests, hiddenTests []domain.TestCase) (*domain.JudgingReport, error) {
	engineID, ok := language.EngineID()
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.UnsupportedLanguage, language)
	}

	tagged := make([]domain.TaggedTestCase, 0, len(publicTests)+len(hiddenTests))
	for _, tc := range publicTests {
		tagged = append(tagged, domain.TaggedTestCase{TestCase: tc, Group: domain.TestGroupPublic})
	}
	for _, tc := range hiddenTests {
		tagged = append(tagged, domain.TaggedTestCase{TestCase: tc, Group: domain.TestGroupHidden})
	}

	s.logger.Info("Running test cases",
		"language", language,
		"public", len(publicTests),
		"hidden", len(hiddenTests))

	// Each test case is an independent round trip to the judge; run them all
	// concurrently and collect results by index so no ordering is imposed.
	results := make([]domain.TestResult, len(tagged))
	var wg sync.WaitGroup
	wg.Add(len(tagged))
	for i, tc := range tagged {
		go func(i int, tc domain.TaggedTestCase) {
			defer wg.Done()
			results[i] = s.runOne(ctx, engineID, code, tc, testName(tc, i, len(publicTests)))
		}(i, tc)
	}
	wg.Wait()

	return buildReport(results), nil
}

// runOne executes a single tagged test case and derives its verdict
func (s *JudgingService) runOne(ctx context.Context, engineID int, code string, tc domain.TaggedTestCase, name string) domain.TestResult {
	result := domain.TestResult{
		Name:           name,
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Group:          tc.Group,
	}

	outcome, err := s.judgeClient.Execute(ctx, engineID, code, tc.Input)
	if err != nil {
		s.logger.Warn("Test case execution failed", "test", name, "error", err)
		result.Passed = false
		result.ActualOutput = err.Error()
		return result
	}

	result.TimeMs = outcome.TimeMs
	result.Passed, result.ActualOutput = verdict(outcome, tc.ExpectedOutput)

	// Diffs help users read public failures; hidden tests stay opaque.
	if !result.Passed && tc.Group == domain.TestGroupPublic && outcome.CompileOutput == "" {
		result.Diff = unifiedDiff(tc.ExpectedOutput, result.ActualOutput)
	}

	return result
}

// verdict applies the comparison rule to a terminal outcome:
// compile output short-circuits to failure, then stderr with a nonzero exit
// code, then the whitespace-normalized output comparison.
func verdict(outcome *domain.ExecutionOutcome, expected string) (bool, string) {
	if outcome.CompileOutput != "" {
		return false, outcome.CompileOutput
	}
	if outcome.Stderr != "" && outcome.ExitCode != 0 {
		return false, outcome.Stderr
	}
	actual := outcome.Stdout
	return Normalize(actual) == Normalize(expected), actual
}

func testName(tc domain.TaggedTestCase, index, publicCount int) string {
	if tc.Description != "" {
		return tc.Description
	}
	if tc.Group == domain.TestGroupHidden {
		return fmt.Sprintf("hidden #%d", index-publicCount+1)
	}
	return fmt.Sprintf("public #%d", index+1)
}

func buildReport(results []domain.TestResult) *domain.JudgingReport {
	report := &domain.JudgingReport{
		Results:  results,
		Failures: []domain.TestResult{},
	}
	for _, r := range results {
		report.Total++
		switch r.Group {
		case domain.TestGroupHidden:
			report.HiddenTotal++
			if r.Passed {
				report.HiddenPassed++
			}
		default:
			report.PublicTotal++
			if r.Passed {
				report.PublicPassed++
			}
		}
		if r.Passed {
			report.Passed++
		} else {
			report.Failures = append(report.Failures, r)
		}
	}
	report.AllPassed = report.Passed == report.Total
	return report
}

func unifiedDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return diff
}
