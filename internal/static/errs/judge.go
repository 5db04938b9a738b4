package errs

import "errors"

var (
	// UnsupportedLanguage is returned before any network call when the
	// requested language is not in the engine map.
	UnsupportedLanguage = errors.New("unsupported language")

	// SubmissionRejected is returned when the judge refuses the initial
	// submission call (bad request, auth failure, quota).
	SubmissionRejected = errors.New("judge rejected submission")

	// JudgeTimeout is returned when polling exhausts its attempt budget
	// without the judge reaching a terminal status.
	JudgeTimeout = errors.New("judge did not finish in time")

	// EvalUnavailable is returned when the grading model could not be reached.
	EvalUnavailable = errors.New("evaluation service unavailable")
)
