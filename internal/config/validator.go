package config

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// Mirror kinds accepted by wizard.mirror.
const (
	MirrorFile   = "file"
	MirrorQuery  = "query"
	MirrorMemory = "memory"
	MirrorNone   = "none"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "wizard.mirror")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// queryKeyRegex keeps the mirrored parameter name URL-safe.
var queryKeyRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidMirrors returns the accepted wizard.mirror values
func ValidMirrors() []string {
	return []string{MirrorFile, MirrorQuery, MirrorMemory, MirrorNone}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the accepted tui.theme values. These must match the
// names in tui/styles (defined separately to avoid an import of the UI).
func ValidThemes() []string {
	return []string{"default", "mono"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateWizard()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, validatePath("session.dir", c.Session.Dir)...)

	return errors
}

func (c *Config) validateWizard() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidMirrors(), c.Wizard.Mirror) {
		errors = append(errors, ValidationError{
			Field:   "wizard.mirror",
			Value:   c.Wizard.Mirror,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidMirrors(), ", ")),
		})
	}

	if !queryKeyRegex.MatchString(c.Wizard.MirrorKey) {
		errors = append(errors, ValidationError{
			Field:   "wizard.mirror_key",
			Value:   c.Wizard.MirrorKey,
			Message: "must start with a letter and contain only letters, digits, '-' or '_'",
		})
	}

	// The resume link only matters to the query mirror.
	if c.Wizard.Mirror == MirrorQuery {
		if u, err := url.Parse(c.Wizard.ResumeURL); err != nil || c.Wizard.ResumeURL == "" || u.Scheme == "" {
			errors = append(errors, ValidationError{
				Field:   "wizard.resume_url",
				Value:   c.Wizard.ResumeURL,
				Message: "must be an absolute URL",
			})
		}
	}

	if c.Wizard.FlowFile != "" && !strings.HasSuffix(c.Wizard.FlowFile, ".yaml") && !strings.HasSuffix(c.Wizard.FlowFile, ".yml") {
		errors = append(errors, ValidationError{
			Field:   "wizard.flow_file",
			Value:   c.Wizard.FlowFile,
			Message: "must be a .yaml or .yml file",
		})
	}

	errors = append(errors, validatePath("wizard.flow_file", c.Wizard.FlowFile)...)
	errors = append(errors, validatePath("wizard.state_dir", c.Wizard.StateDir)...)

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	errors = append(errors, validatePath("logging.dir", c.Logging.Dir)...)

	return errors
}

func (c *Config) validateTUI() []ValidationError {
	if slices.Contains(ValidThemes(), c.TUI.Theme) {
		return nil
	}
	return []ValidationError{{
		Field:   "tui.theme",
		Value:   c.TUI.Theme,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
	}}
}

// validatePath rejects paths containing null bytes, which no filesystem accepts.
func validatePath(field, path string) []ValidationError {
	if strings.ContainsRune(path, '\x00') {
		return []ValidationError{{
			Field:   field,
			Value:   path,
			Message: "contains invalid null character",
		}}
	}
	return nil
}
