package flow

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"

	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

// Built-in commit names.
const (
	CommitNone          = "none"
	CommitRequireAnswer = "require_answer"
	CommitEmailList     = "email_list"
)

// Input is what a commit handler sees when it runs.
type Input struct {
	Step   StepDef
	Answer string
}

// Handler validates or persists one step. Returning an error keeps the
// wizard on the step; the error's message is shown to the user.
type Handler func(ctx context.Context, in Input) error

func (h Handler) bind(step StepDef, answers *Answers) wizard.CommitFunc {
	return func(ctx context.Context) error {
		return h(ctx, Input{Step: step, Answer: answers.Get(step.ID)})
	}
}

// Catalog maps commit names used in flow files to handlers.
type Catalog struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewCatalog returns a catalog holding the built-in handlers.
func NewCatalog() *Catalog {
	c := &Catalog{handlers: make(map[string]Handler)}
	c.handlers[CommitRequireAnswer] = RequireAnswer
	c.handlers[CommitEmailList] = EmailList
	return c
}

// Register adds a handler under name. Names are unique and "none" is
// reserved.
func (c *Catalog) Register(name string, h Handler) error {
	if name == "" || name == CommitNone || h == nil {
		return errors.NewValidationError("invalid commit handler").WithField("name").WithValue(name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.handlers[name]; exists {
		return errors.NewValidationError(fmt.Sprintf("commit %q already registered", name)).WithField("name").WithValue(name)
	}
	c.handlers[name] = h
	return nil
}

// Lookup returns the handler registered under name.
func (c *Catalog) Lookup(name string) (Handler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[name]
	return h, ok
}

// Names returns the registered names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequireAnswer rejects a blank answer.
func RequireAnswer(_ context.Context, in Input) error {
	if strings.TrimSpace(in.Answer) == "" {
		return errors.NewValidationError(fmt.Sprintf("%s is required", in.Step.label())).WithField(in.Step.ID)
	}
	return nil
}

// EmailList accepts a comma or newline separated list of at least one
// valid address.
func EmailList(_ context.Context, in Input) error {
	addrs := SplitList(in.Answer)
	if len(addrs) == 0 {
		return errors.NewValidationError("enter at least one email address").WithField(in.Step.ID)
	}
	for _, a := range addrs {
		if _, err := mail.ParseAddress(a); err != nil {
			return errors.NewValidationError(fmt.Sprintf("%q is not a valid email address", a)).
				WithField(in.Step.ID).WithValue(a)
		}
	}
	return nil
}

// SplitList splits an answer on commas and line breaks, trimming each entry
// and dropping blank ones.
func SplitList(answer string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(answer, isListSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isListSeparator(r rune) bool {
	return r == ',' || r == '\n' || r == '\r'
}

// Answers holds the text collected for each step of a running flow.
type Answers struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewAnswers returns an empty answer set.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]string)}
}

// Set records the answer for stepID.
func (a *Answers) Set(stepID, answer string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values[stepID] = answer
}

// Get returns the answer for stepID, or "".
func (a *Answers) Get(stepID string) string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.values[stepID]
}

// All returns a copy of every recorded answer.
func (a *Answers) All() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]string, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
