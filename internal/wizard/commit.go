package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/logging"
)

// CommitOutcome is the normalized result of running a step's commit.
type CommitOutcome struct {
	// Ran is false when the step had no commit.
	Ran bool
	// Err is the failure, nil on success. A recovered panic is wrapped in an
	// error carrying ErrCommitRejected.
	Err error
	// Message is the user-facing failure text; empty on success.
	Message string
}

// OK reports whether the commit succeeded (or was absent).
func (o CommitOutcome) OK() bool { return o.Err == nil }

// Executor runs step commits and normalizes every way they can fail into a
// CommitOutcome. It holds no state; the Controller owns Loading and
// LastError and updates them around Run.
type Executor struct {
	logger *logging.Logger
}

// NewExecutor returns an Executor. A nil logger discards output.
func NewExecutor(logger *logging.Logger) Executor {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return Executor{logger: logger}
}

// Run invokes step.Commit with ctx. A step without a commit succeeds
// immediately. Panics inside the commit are recovered and reported as a
// failure, never propagated.
func (e Executor) Run(ctx context.Context, step Step) (outcome CommitOutcome) {
	if step.Commit == nil {
		return CommitOutcome{}
	}

	outcome.Ran = true
	defer func() {
		if r := recover(); r != nil {
			msg := panicMessage(r)
			e.logger.Warn("commit panicked", "step_id", step.ID, "panic", fmt.Sprint(r))
			outcome.Err = errors.NewWizardError(msg, errors.ErrCommitRejected).WithStep(step.ID)
			outcome.Message = msg
		}
	}()

	if err := step.Commit(ctx); err != nil {
		outcome.Err = err
		outcome.Message = errors.UserMessage(err)
	}
	return outcome
}

// panicMessage applies the failure precedence to a recovered value:
// a string is used verbatim, an error contributes its message, anything
// else becomes the generic message.
func panicMessage(v any) string {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) != "" {
			return val
		}
	case error:
		return errors.UserMessage(val)
	}
	return errors.GenericMessage
}
