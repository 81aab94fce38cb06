package wizard

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/event"
	"github.com/Iron-Ham/teamboard/internal/logging"
)

// Result reports what a transition did. State remains the source of truth;
// Result lets a host react without diffing snapshots.
type Result int

const (
	// Stayed means the transition was a permitted no-op (Prev on the first
	// step, Skip on the last).
	Stayed Result = iota
	// Moved means the current step changed.
	Moved
	// Finished means the last step's commit succeeded. The host ends the session.
	Finished
	// Rejected means the commit failed; LastError holds the message.
	Rejected
	// Denied means the navigation gate refused a jump.
	Denied
	// Busy means another transition was in flight and this one was ignored.
	Busy
	// Closed means the controller was torn down and nothing was changed.
	Closed
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Stayed:
		return "stayed"
	case Moved:
		return "moved"
	case Finished:
		return "finished"
	case Rejected:
		return "rejected"
	case Denied:
		return "denied"
	case Busy:
		return "busy"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Err maps results that changed nothing because something refused the
// transition onto the matching sentinel error, for hosts that prefer error
// returns. Stayed, Moved and Finished map to nil.
func (r Result) Err() error {
	switch r {
	case Rejected:
		return errors.ErrCommitRejected
	case Denied:
		return errors.ErrNavigationDenied
	case Busy:
		return errors.ErrTransitionInFlight
	case Closed:
		return errors.ErrControllerClosed
	default:
		return nil
	}
}

// ActiveStep is a registry step annotated for progress indicators.
type ActiveStep struct {
	Step
	// Active is true when the step is current or completed.
	Active    bool
	Current   bool
	Completed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithMirror sets the position mirror read at start and written on every
// confirmed move.
func WithMirror(m PositionMirror) Option {
	return func(c *Controller) {
		if m != nil {
			c.mirror = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEventBus publishes wizard events to bus.
func WithEventBus(bus *event.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// Controller is the wizard state machine. It exclusively owns its State and
// changes it only through Reduce. All methods are safe for concurrent use;
// at most one transition runs at a time and commits run without holding the
// lock.
type Controller struct {
	registry *Registry
	executor Executor
	mirror   PositionMirror
	logger   *logging.Logger
	bus      *event.Bus

	sessionID string

	mu       sync.Mutex
	state    State
	inFlight bool // a Next is between admission and its result
	closed   bool
}

// New builds a Controller over registry and initializes it: the position
// mirror is read once and, if it names a known step, the session resumes
// there with every earlier step treated as complete. Otherwise it starts at
// the first step.
func New(registry *Registry, opts ...Option) *Controller {
	c := &Controller{
		registry:  registry,
		mirror:    nopMirror{},
		logger:    logging.NopLogger(),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithSession(c.sessionID)
	c.executor = NewExecutor(c.logger)

	mirrored, found := c.mirror.Read()
	c.state = Reduce(registry, State{}, Initialize{Mirrored: mirrored, Found: found})
	resumed := found && registry.Has(mirrored)

	if found && !registry.Has(mirrored) {
		c.logger.Info("ignoring unknown mirrored step", "mirrored", mirrored)
	}
	c.logger.Debug("wizard initialized",
		"current", c.state.CurrentStepID,
		"completed", c.state.CompletedStepIDs,
		"resumed", resumed)
	c.publish(event.NewWizardStartedEvent(c.sessionID, c.state.CurrentStepID, resumed))
	return c
}

// Next runs the current step's commit. On success the step is marked
// complete and the wizard advances (or reports Finished on the last step).
// On failure nothing moves and LastError is set.
func (c *Controller) Next(ctx context.Context) Result {
	c.mu.Lock()
	if r, ok := c.admitLocked(); !ok {
		c.mu.Unlock()
		return r
	}
	step, _ := c.registry.Lookup(c.state.CurrentStepID)
	c.inFlight = true
	if step.Commit != nil {
		c.state = Reduce(c.registry, c.state, CommitStarted{})
	}
	c.mu.Unlock()

	outcome := c.executor.Run(ctx, step)

	c.mu.Lock()
	c.inFlight = false
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding commit result after close", "step_id", step.ID, "ok", outcome.OK())
		return Closed
	}

	var events []event.Event
	var result Result
	if !outcome.OK() {
		c.state = Reduce(c.registry, c.state, CommitFailed{Message: outcome.Message})
		c.logRejected(step.ID, outcome)
		events = append(events, event.NewCommitFailedEvent(c.sessionID, step.ID, outcome.Message))
		result = Rejected
	} else {
		c.state = Reduce(c.registry, c.state, CommitSucceeded{})
		events = append(events, event.NewStepCompletedEvent(c.sessionID, step.ID))
		if c.state.CurrentStepID == step.ID {
			c.logger.Info("final step completed", "step_id", step.ID)
			events = append(events, event.NewWizardFinishedEvent(c.sessionID, c.state.CompletedStepIDs))
			result = Finished
		} else {
			c.mirrorLocked()
			c.logger.Debug("advanced", "from", step.ID, "to", c.state.CurrentStepID)
			events = append(events, event.NewStepAdvancedEvent(c.sessionID, step.ID, c.state.CurrentStepID))
			result = Moved
		}
	}
	c.mu.Unlock()

	c.publish(events...)
	return result
}

// logRejected logs a failed commit at a level matching the error's
// severity: a validation message is routine, a broken commit is not.
func (c *Controller) logRejected(stepID string, outcome CommitOutcome) {
	args := []any{"step_id", stepID, "error", outcome.Message}
	switch errors.GetSeverity(outcome.Err) {
	case errors.SeverityError:
		c.logger.Error("commit rejected", args...)
	case errors.SeverityWarning:
		c.logger.Warn("commit rejected", args...)
	default:
		c.logger.Info("commit rejected", args...)
	}
}

// Prev moves back one step without running any commit. It is a no-op on
// the first step.
func (c *Controller) Prev() Result {
	return c.move(Back{}, event.NewStepBackEvent)
}

// Skip advances one step without running the commit and without marking
// the current step complete. It is a no-op on the last step.
func (c *Controller) Skip() Result {
	return c.move(Skip{}, event.NewStepSkippedEvent)
}

// Goto jumps to targetID when it is a known step and every earlier step is
// complete. A refused jump changes nothing, returns Denied and publishes a
// navigation.denied event.
func (c *Controller) Goto(targetID string) Result {
	c.mu.Lock()
	if r, ok := c.admitLocked(); !ok {
		c.mu.Unlock()
		return r
	}
	from := c.state.CurrentStepID
	if !NewGate(c.registry).CanGoto(c.trackerLocked(), targetID) {
		c.mu.Unlock()
		c.logger.Debug("goto denied", "from", from, "target", targetID)
		c.publish(event.NewNavigationDeniedEvent(c.sessionID, from, targetID, c.registry.Has(targetID)))
		return Denied
	}
	if targetID == from {
		c.mu.Unlock()
		return Stayed
	}
	c.state = Reduce(c.registry, c.state, Jump{TargetID: targetID})
	c.mirrorLocked()
	c.mu.Unlock()

	c.logger.Debug("jumped", "from", from, "to", targetID)
	c.publish(event.NewStepAdvancedEvent(c.sessionID, from, targetID))
	return Moved
}

func (c *Controller) move(a Action, newEvent func(sessionID, from, to string) event.StepTransitionEvent) Result {
	c.mu.Lock()
	if r, ok := c.admitLocked(); !ok {
		c.mu.Unlock()
		return r
	}
	from := c.state.CurrentStepID
	c.state = Reduce(c.registry, c.state, a)
	to := c.state.CurrentStepID
	if to == from {
		c.mu.Unlock()
		return Stayed
	}
	c.mirrorLocked()
	c.mu.Unlock()

	c.logger.Debug("moved", "from", from, "to", to)
	c.publish(newEvent(c.sessionID, from, to))
	return Moved
}

// admitLocked enforces the single-transition rule. c.mu must be held.
func (c *Controller) admitLocked() (Result, bool) {
	if c.closed {
		return Closed, false
	}
	if c.inFlight || c.state.Loading {
		c.logger.Debug("transition ignored while commit in flight", "current", c.state.CurrentStepID)
		return Busy, false
	}
	return Stayed, true
}

// mirrorLocked writes the current step to the mirror. Mirror failures are
// logged; the transition has already been confirmed.
func (c *Controller) mirrorLocked() {
	if err := c.mirror.Write(c.state.CurrentStepID); err != nil {
		c.logger.Warn("failed to mirror position", "step_id", c.state.CurrentStepID, "error", err.Error())
	}
}

func (c *Controller) trackerLocked() Tracker {
	return NewTracker(c.registry, c.state.CompletedStepIDs...)
}

func (c *Controller) publish(events ...event.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range events {
		c.bus.Publish(e)
	}
}

// Close tears the session down. Any transition attempted afterwards, and
// the result of a commit still in flight, is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// CurrentStepID returns the id of the current step.
func (c *Controller) CurrentStepID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentStepID
}

// CurrentStep returns the current step definition.
func (c *Controller) CurrentStep() Step {
	step, _ := c.registry.Lookup(c.CurrentStepID())
	return step
}

// CompletedStepIDs returns the completed ids in insertion order.
func (c *Controller) CompletedStepIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.state.CompletedStepIDs...)
}

// Loading reports whether a commit is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Loading
}

// LastError returns the most recent commit failure message, or "".
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.LastError
}

// ActiveSteps returns every step annotated with its progress.
func (c *Controller) ActiveSteps() []ActiveStep {
	c.mu.Lock()
	defer c.mu.Unlock()

	tracker := c.trackerLocked()
	out := make([]ActiveStep, c.registry.Len())
	for i := range out {
		step := c.registry.At(i)
		current := step.ID == c.state.CurrentStepID
		completed := tracker.IsComplete(step.ID)
		out[i] = ActiveStep{
			Step:      step,
			Active:    current || completed,
			Current:   current,
			Completed: completed,
		}
	}
	return out
}

// CanGoto reports whether Goto(targetID) would be admitted by the gate.
func (c *Controller) CanGoto(targetID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewGate(c.registry).CanGoto(c.trackerLocked(), targetID)
}

// CanSkip reports whether Skip would move: the session is open, idle and not
// on the last step.
func (c *Controller) CanSkip() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && !c.inFlight && !c.state.Loading && !c.registry.IsLast(c.state.CurrentStepID)
}

// Registry returns the step registry.
func (c *Controller) Registry() *Registry { return c.registry }

// SessionID returns the wizard session id.
func (c *Controller) SessionID() string { return c.sessionID }
