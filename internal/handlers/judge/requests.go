package judge

import "gitlab.com/inteleval.net/internal/domain"

// RunRequest represents a request to judge a piece of code
type RunRequest struct {
	Language        string            `json:"language"`
	Code            string            `json:"code"`
	Input           string            `json:"input,omitempty"`
	TestCases       []domain.TestCase `json:"testCases,omitempty"`
	HiddenTestCases []domain.TestCase `json:"hiddenTestCases,omitempty"`

	// Execution limits are accepted for forward compatibility with the
	// judge backend; the current engine applies its own defaults.
	TimeoutMs     int `json:"timeout_ms,omitempty"`
	MemoryLimitMb int `json:"memory_limit_mb,omitempty"`
}

// LanguagesResponse lists the languages the judge accepts
type LanguagesResponse struct {
	Languages []domain.Language `json:"languages"`
}
