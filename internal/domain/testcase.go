package domain

// TestGroup partitions test cases into user-visible and grading-only sets
type TestGroup string

const (
	TestGroupPublic TestGroup = "public"
	TestGroupHidden TestGroup = "hidden"
)

// TestCase represents a single input/expected-output pair for a judging run
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Description    string `json:"description,omitempty"`
}

// TaggedTestCase is a test case annotated with the group it belongs to.
// The orchestrator tags cases before fanning them out so every result can
// be traced back to its originating group.
type TaggedTestCase struct {
	TestCase
	Group TestGroup
}
