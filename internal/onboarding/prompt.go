package onboarding

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/flow"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

// Line-mode commands. Anything else is taken as the step's answer.
const (
	cmdBack = ":back"
	cmdSkip = ":skip"
	cmdGoto = ":goto"
	cmdQuit = ":quit"
)

// RunLines drives run from a line-oriented reader, for pipes and terminals
// where the full-screen UI is unavailable. It returns true when the last
// step committed and false when input ended or the user quit first.
func RunLines(ctx context.Context, run *Run, in io.Reader, out io.Writer) (bool, error) {
	c := run.Controller
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "Onboarding: %s (%d steps)\n", run.Flow.Name, c.Registry().Len())
	fmt.Fprintf(out, "Commands: %s, %s, %s <step>, %s\n", cmdBack, cmdSkip, cmdGoto, cmdQuit)

	for {
		printStep(out, c)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, fmt.Errorf("reading input: %w", err)
			}
			return false, nil
		}
		line := strings.TrimSpace(scanner.Text())

		var result wizard.Result
		switch {
		case line == cmdQuit:
			c.Close()
			return false, nil
		case line == cmdBack:
			result = c.Prev()
		case line == cmdSkip:
			result = c.Skip()
		case strings.HasPrefix(line, cmdGoto+" "):
			target := strings.TrimSpace(strings.TrimPrefix(line, cmdGoto))
			result = c.Goto(target)
			if result == wizard.Denied {
				fmt.Fprintf(out, "  cannot jump to %q yet\n", target)
			}
		default:
			run.Answer(line)
			result = c.Next(ctx)
		}

		if result == wizard.Finished {
			fmt.Fprintln(out, "Onboarding complete.")
			return true, nil
		}
		err := result.Err()
		switch {
		case errors.Is(err, errors.ErrControllerClosed):
			return false, nil
		case errors.IsRetryable(err):
			msg := c.LastError()
			if msg == "" {
				msg = "still saving, try again"
			}
			fmt.Fprintf(out, "  ! %s\n", msg)
		}
	}
}

func printStep(out io.Writer, c *wizard.Controller) {
	step := c.CurrentStep()
	pos := c.Registry().IndexOf(step.ID) + 1
	fmt.Fprintf(out, "\n[%d/%d] %s\n", pos, c.Registry().Len(), step.Label)
	if info, ok := flow.Info(step); ok {
		if info.Description != "" {
			fmt.Fprintf(out, "  %s\n", info.Description)
		}
		prompt := info.Prompt
		if prompt == "" {
			prompt = step.Label
		}
		if step.Skippable {
			prompt += " (optional)"
		}
		fmt.Fprintf(out, "%s: ", prompt)
	}
}
