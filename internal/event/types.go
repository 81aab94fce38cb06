package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "step.completed").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeWizardStarted    = "wizard.started"
	TypeWizardFinished   = "wizard.finished"
	TypeStepAdvanced     = "step.advanced"
	TypeStepCompleted    = "step.completed"
	TypeStepSkipped      = "step.skipped"
	TypeStepBack         = "step.back"
	TypeCommitFailed     = "commit.failed"
	TypeNavigationDenied = "navigation.denied"
)

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// -----------------------------------------------------------------------------
// Wizard Lifecycle Events
// -----------------------------------------------------------------------------

// WizardStartedEvent is emitted once a wizard session has resolved its starting step.
type WizardStartedEvent struct {
	baseEvent
	SessionID   string
	StartStepID string
	Resumed     bool // true when the start step came from the position mirror
}

// NewWizardStartedEvent creates a WizardStartedEvent.
func NewWizardStartedEvent(sessionID, startStepID string, resumed bool) WizardStartedEvent {
	return WizardStartedEvent{
		baseEvent:   newBaseEvent(TypeWizardStarted),
		SessionID:   sessionID,
		StartStepID: startStepID,
		Resumed:     resumed,
	}
}

// WizardFinishedEvent is emitted when the last step's commit succeeds.
type WizardFinishedEvent struct {
	baseEvent
	SessionID        string
	CompletedStepIDs []string
}

// NewWizardFinishedEvent creates a WizardFinishedEvent.
func NewWizardFinishedEvent(sessionID string, completed []string) WizardFinishedEvent {
	return WizardFinishedEvent{
		baseEvent:        newBaseEvent(TypeWizardFinished),
		SessionID:        sessionID,
		CompletedStepIDs: append([]string(nil), completed...),
	}
}

// -----------------------------------------------------------------------------
// Step Events
// -----------------------------------------------------------------------------

// StepTransitionEvent describes a move of the current step.
// Its type is one of step.advanced, step.skipped or step.back.
type StepTransitionEvent struct {
	baseEvent
	SessionID string
	FromID    string
	ToID      string
}

func newStepTransition(eventType, sessionID, from, to string) StepTransitionEvent {
	return StepTransitionEvent{
		baseEvent: newBaseEvent(eventType),
		SessionID: sessionID,
		FromID:    from,
		ToID:      to,
	}
}

// NewStepAdvancedEvent creates a step.advanced event (sequential move or jump).
func NewStepAdvancedEvent(sessionID, from, to string) StepTransitionEvent {
	return newStepTransition(TypeStepAdvanced, sessionID, from, to)
}

// NewStepSkippedEvent creates a step.skipped event.
func NewStepSkippedEvent(sessionID, from, to string) StepTransitionEvent {
	return newStepTransition(TypeStepSkipped, sessionID, from, to)
}

// NewStepBackEvent creates a step.back event.
func NewStepBackEvent(sessionID, from, to string) StepTransitionEvent {
	return newStepTransition(TypeStepBack, sessionID, from, to)
}

// StepCompletedEvent is emitted when a step's commit succeeds.
type StepCompletedEvent struct {
	baseEvent
	SessionID string
	StepID    string
}

// NewStepCompletedEvent creates a StepCompletedEvent.
func NewStepCompletedEvent(sessionID, stepID string) StepCompletedEvent {
	return StepCompletedEvent{
		baseEvent: newBaseEvent(TypeStepCompleted),
		SessionID: sessionID,
		StepID:    stepID,
	}
}

// CommitFailedEvent is emitted when a step's commit rejects.
type CommitFailedEvent struct {
	baseEvent
	SessionID string
	StepID    string
	Message   string
}

// NewCommitFailedEvent creates a CommitFailedEvent.
func NewCommitFailedEvent(sessionID, stepID, message string) CommitFailedEvent {
	return CommitFailedEvent{
		baseEvent: newBaseEvent(TypeCommitFailed),
		SessionID: sessionID,
		StepID:    stepID,
		Message:   message,
	}
}

// NavigationDeniedEvent is emitted when a jump is refused. State is not
// changed; hosts use this to give the user feedback.
type NavigationDeniedEvent struct {
	baseEvent
	SessionID string
	FromID    string
	TargetID  string
	Known     bool // false when the target is not a registered step
}

// NewNavigationDeniedEvent creates a NavigationDeniedEvent.
func NewNavigationDeniedEvent(sessionID, from, target string, known bool) NavigationDeniedEvent {
	return NavigationDeniedEvent{
		baseEvent: newBaseEvent(TypeNavigationDenied),
		SessionID: sessionID,
		FromID:    from,
		TargetID:  target,
		Known:     known,
	}
}
