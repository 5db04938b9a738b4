package secondary

import "context"

// EvalClient is the LLM completion endpoint used for code/explanation grading.
// Complete returns the raw model text for a prompt.
type EvalClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
