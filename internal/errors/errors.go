// Package errors provides centralized error definitions and error handling utilities
// for teamboard. It defines sentinel errors, domain error types, and
// classification helpers used by the wizard engine, flow loader and CLI.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - WizardError: errors raised by the wizard engine (registry, commits, navigation)
//   - FlowError: errors raised while loading flow definitions
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
//	err := errors.NewWizardError("commit rejected", errors.ErrCommitRejected).WithStep("profile")
//
//	if errors.Is(err, errors.ErrCommitRejected) { ... }
//
//	var wizErr *errors.WizardError
//	if errors.As(err, &wizErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
//	msg := errors.UserMessage(err)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// GenericMessage is shown when a failure carries nothing safe to display.
const GenericMessage = "Something went wrong. Please try again."

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Wizard-related sentinel errors
var (
	// ErrEmptyRegistry indicates that a wizard was built without steps.
	ErrEmptyRegistry = New("wizard has no steps")
	// ErrDuplicateStep indicates that two steps share an id.
	ErrDuplicateStep = New("duplicate step id")
	// ErrInvalidStep indicates that a step definition is malformed.
	ErrInvalidStep = New("invalid step")
	// ErrUnknownStep indicates that a step id is not in the registry.
	ErrUnknownStep = New("unknown step")
	// ErrCommitRejected indicates that a step's commit action failed.
	ErrCommitRejected = New("commit rejected")
	// ErrNavigationDenied indicates that a jump was refused by the navigation gate.
	ErrNavigationDenied = New("navigation denied")
	// ErrTransitionInFlight indicates that another transition is still running.
	ErrTransitionInFlight = New("transition already in flight")
	// ErrControllerClosed indicates that the wizard session was torn down.
	ErrControllerClosed = New("wizard closed")
)

// Flow and session sentinel errors
var (
	// ErrFlowInvalid indicates that a flow definition could not be used.
	ErrFlowInvalid = New("flow definition invalid")
	// ErrUnknownCommit indicates that a flow references an unregistered commit kind.
	ErrUnknownCommit = New("unknown commit kind")
	// ErrSessionNotFound indicates that no auth session is stored.
	ErrSessionNotFound = New("session not found")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// TeamboardError is the base interface for all teamboard errors.
type TeamboardError interface {
	error
	Unwrap() error
	Is(target error) bool
	Severity() Severity
	IsRetryable() bool
}

type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Unwrap() error { return e.cause }

func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsRetryable() bool  { return e.retryable }

// Message returns the error message without any cause or context prefix.
func (e *baseError) Message() string { return e.message }

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// WizardError represents errors raised by the wizard engine.
//
// Example:
//
//	err := errors.NewWizardError("commit rejected", errors.ErrCommitRejected)
//	err = err.WithStep("profile").WithSession("4b1c...")
//	fmt.Println(err) // "wizard error [step=profile, session=4b1c...]: commit rejected: commit rejected"
type WizardError struct {
	baseError
	StepID    string
	SessionID string
}

// NewWizardError creates a new WizardError. Commit rejections and in-flight
// conflicts are retryable; everything else is not.
func NewWizardError(message string, cause error) *WizardError {
	retryable := errors.Is(cause, ErrCommitRejected) || errors.Is(cause, ErrTransitionInFlight)
	return &WizardError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			severity:  SeverityError,
			retryable: retryable,
		},
	}
}

// WithStep adds a step id to the error context.
func (e *WizardError) WithStep(id string) *WizardError {
	e.StepID = id
	return e
}

// WithSession adds a wizard session id to the error context.
func (e *WizardError) WithSession(id string) *WizardError {
	e.SessionID = id
	return e
}

// Error returns the formatted error message.
func (e *WizardError) Error() string {
	var parts []string
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step=%s", e.StepID))
	}
	if e.SessionID != "" {
		parts = append(parts, fmt.Sprintf("session=%s", e.SessionID))
	}
	return format("wizard error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *WizardError) Is(target error) bool {
	if _, ok := target.(*WizardError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FlowError represents errors raised while loading a flow definition.
type FlowError struct {
	baseError
	Path   string
	StepID string
}

// NewFlowError creates a new FlowError wrapping ErrFlowInvalid unless a
// more specific cause is given.
func NewFlowError(message string, cause error) *FlowError {
	if cause == nil {
		cause = ErrFlowInvalid
	}
	return &FlowError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithPath adds the flow file path to the error context.
func (e *FlowError) WithPath(path string) *FlowError {
	e.Path = path
	return e
}

// WithStep adds a step id to the error context.
func (e *FlowError) WithStep(id string) *FlowError {
	e.StepID = id
	return e
}

// Error returns the formatted error message.
func (e *FlowError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step=%s", e.StepID))
	}
	return format("flow error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *FlowError) Is(target error) bool {
	if _, ok := target.(*FlowError); ok {
		return true
	}
	if errors.Is(target, ErrFlowInvalid) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:  fmt.Sprintf("%s not found", resourceType),
			severity: SeverityWarning,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s not found: %s", e.ResourceType, e.ResourceID)
	}
	return e.message
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("please enter a team name").WithField("team")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityWarning,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return format("validation error", parts, e.message, e.cause)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

func format(kind string, parts []string, message string, cause error) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, message, cause)
	}
	return fmt.Sprintf("%s: %s", prefix, message)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a condition the user can
// recover from by repeating the operation.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var tbErr TeamboardError
	if As(err, &tbErr) {
		return tbErr.IsRetryable()
	}
	return Is(err, ErrCommitRejected) || Is(err, ErrTransitionInFlight)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement TeamboardError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var tbErr TeamboardError
	if As(err, &tbErr) {
		return tbErr.Severity()
	}
	return SeverityError
}

// UserMessage returns the text a UI should show for err. Validation errors
// yield their bare message so a form can show "please enter a team name"
// instead of the decorated Error() string. Errors with an empty message
// yield GenericMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var validation *ValidationError
	if As(err, &validation) && validation.message != "" {
		return validation.message
	}
	if msg := err.Error(); strings.TrimSpace(msg) != "" {
		return msg
	}
	return GenericMessage
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
