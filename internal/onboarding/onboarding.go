// Package onboarding wires the wizard engine to the dashboard's onboarding
// flows: one built-in flow per role, loaded from embedded flow files, with
// answers collected per step and the auth session marked onboarded when the
// last step commits.
package onboarding

import (
	"context"
	"embed"
	"fmt"

	"github.com/Iron-Ham/teamboard/internal/dispatch"
	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/flow"
	"github.com/Iron-Ham/teamboard/internal/session"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

//go:embed flows/*.yaml
var builtinFlows embed.FS

// DefaultFlow returns the built-in flow for role.
func DefaultFlow(role string) (*flow.Definition, error) {
	if !dispatch.IsKnownRole(role) {
		return nil, errors.NewNotFoundError("onboarding flow", role)
	}
	data, err := builtinFlows.ReadFile("flows/" + role + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("reading built-in flow %s: %w", role, err)
	}
	return flow.Parse(data)
}

// Resolve returns the flow file at path when set, otherwise the built-in
// flow for role.
func Resolve(path, role string) (*flow.Definition, error) {
	if path != "" {
		return flow.LoadFile(path)
	}
	return DefaultFlow(role)
}

// Run is one onboarding session: a flow, its collected answers and the
// controller driving it.
type Run struct {
	Flow       *flow.Definition
	Answers    *flow.Answers
	Controller *wizard.Controller
}

// Start builds the flow against catalog and starts a controller over it.
func Start(def *flow.Definition, catalog *flow.Catalog, opts ...wizard.Option) (*Run, error) {
	if catalog == nil {
		catalog = flow.NewCatalog()
	}
	answers := flow.NewAnswers()
	reg, err := def.Build(catalog, answers)
	if err != nil {
		return nil, err
	}
	return &Run{
		Flow:       def,
		Answers:    answers,
		Controller: wizard.New(reg, opts...),
	}, nil
}

// Answer records the answer for the current step.
func (r *Run) Answer(text string) {
	r.Answers.Set(r.Controller.CurrentStepID(), text)
}

// Submit records text as the current step's answer and runs Next.
func (r *Run) Submit(ctx context.Context, text string) wizard.Result {
	r.Answer(text)
	return r.Controller.Next(ctx)
}

// Summary returns the answers of completed steps in step order. Skipped
// and unanswered steps are omitted.
func (r *Run) Summary() []Entry {
	completed := make(map[string]bool)
	for _, id := range r.Controller.CompletedStepIDs() {
		completed[id] = true
	}
	var out []Entry
	for _, s := range r.Flow.Steps {
		if a := r.Answers.Get(s.ID); a != "" && completed[s.ID] {
			out = append(out, Entry{StepID: s.ID, Label: s.Label, Answer: a})
		}
	}
	return out
}

// Entry is one answered step.
type Entry struct {
	StepID string
	Label  string
	Answer string
}

// Complete marks the stored session onboarded.
func Complete(ctx context.Context, auth *session.AuthStore) error {
	if err := auth.MarkOnboarded(ctx); err != nil {
		return errors.Wrap(err, "failed to record onboarding")
	}
	return nil
}
