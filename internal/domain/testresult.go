package domain

// ExecutionOutcome is the terminal result returned by the judge for a single
// program run. It is never mutated once the poll loop hands it back.
type ExecutionOutcome struct {
	Stdout            string
	Stderr            string
	CompileOutput     string
	TimeMs            int64
	MemoryKb          int64
	ExitCode          int
	StatusCode        int
	StatusDescription string
}

// TestResult is the pass/fail verdict for one test case
type TestResult struct {
	Name           string    `json:"name"`
	Input          string    `json:"input"`
	ExpectedOutput string    `json:"expectedOutput"`
	ActualOutput   string    `json:"actualOutput"`
	Passed         bool      `json:"passed"`
	Group          TestGroup `json:"group"`
	TimeMs         int64     `json:"timeMs"`
	Diff           string    `json:"diff,omitempty"`
}

// JudgingReport aggregates the verdicts of a full judging run. It is built
// once per run and returned to the caller; persistence is the caller's concern.
type JudgingReport struct {
	Passed       int          `json:"passed"`
	Total        int          `json:"total"`
	PublicPassed int          `json:"publicPassed"`
	PublicTotal  int          `json:"publicTotal"`
	HiddenPassed int          `json:"hiddenPassed"`
	HiddenTotal  int          `json:"hiddenTotal"`
	AllPassed    bool         `json:"allPassed"`
	Results      []TestResult `json:"results"`
	Failures     []TestResult `json:"failures"`
}
