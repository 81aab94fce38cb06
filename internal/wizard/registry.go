package wizard

import (
	"context"
	"fmt"

	"github.com/Iron-Ham/teamboard/internal/errors"
)

// CommitFunc validates or persists a step when the user tries to leave it
// with Next. A nil return means success. Commits that finish immediately and
// commits that block on I/O are awaited the same way.
type CommitFunc func(ctx context.Context) error

// Step is one stage of a wizard.
type Step struct {
	ID    string
	Label string
	// Payload is opaque render data owned by the host.
	Payload any
	// Commit is optional; a step without one always succeeds.
	Commit CommitFunc
	// Skippable is advisory: hosts use it to decide whether to offer a skip
	// affordance. Skip itself is allowed on every step but the last.
	Skippable bool
}

// Registry is the immutable, ordered list of steps for one wizard.
type Registry struct {
	steps []Step
	index map[string]int
}

// NewRegistry validates steps and returns a Registry. Step ids must be
// non-empty and unique.
func NewRegistry(steps ...Step) (*Registry, error) {
	if len(steps) == 0 {
		return nil, errors.NewWizardError("cannot build wizard", errors.ErrEmptyRegistry)
	}

	r := &Registry{
		steps: make([]Step, len(steps)),
		index: make(map[string]int, len(steps)),
	}
	for i, step := range steps {
		if step.ID == "" {
			return nil, errors.NewWizardError(fmt.Sprintf("step %d has no id", i), errors.ErrInvalidStep)
		}
		if _, exists := r.index[step.ID]; exists {
			return nil, errors.NewWizardError("cannot build wizard", errors.ErrDuplicateStep).WithStep(step.ID)
		}
		r.index[step.ID] = i
		r.steps[i] = step
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on invalid input. Intended for
// package-level flow definitions.
func MustRegistry(steps ...Step) *Registry {
	r, err := NewRegistry(steps...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of steps.
func (r *Registry) Len() int { return len(r.steps) }

// At returns the step at position i. It panics when i is out of range.
func (r *Registry) At(i int) Step { return r.steps[i] }

// IndexOf returns the position of id, or -1 when id is unknown.
func (r *Registry) IndexOf(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// Has reports whether id names a registered step.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Lookup returns the step with the given id.
func (r *Registry) Lookup(id string) (Step, bool) {
	i, ok := r.index[id]
	if !ok {
		return Step{}, false
	}
	return r.steps[i], true
}

// IsLast reports whether id is the final step.
func (r *Registry) IsLast(id string) bool {
	return r.IndexOf(id) == len(r.steps)-1
}

// IDs returns the step ids in order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.steps))
	for i, s := range r.steps {
		ids[i] = s.ID
	}
	return ids
}
