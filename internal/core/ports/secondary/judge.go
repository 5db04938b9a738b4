package secondary

import (
	"context"

	"gitlab.com/inteleval.net/internal/domain"
)

// JudgeClient talks to the external code-execution judge. Execute submits one
// program with one stdin and blocks (polling) until the judge reports a
// terminal status or the poll budget runs out.
type JudgeClient interface {
	Execute(ctx context.Context, engineID int, code, stdin string) (*domain.ExecutionOutcome, error)
}
