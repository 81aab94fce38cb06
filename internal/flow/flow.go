// Package flow loads wizard flows from YAML and turns them into wizard
// registries. A flow file names its steps in order and, for each step, the
// commit handler that must accept the step before the wizard moves on.
// Handlers come from a Catalog supplied by the host, so a flow file can
// only reference behavior the binary knows about.
package flow

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/util"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

// SupportedVersion is the only flow file format version understood.
const SupportedVersion = "1"

var stepIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Definition is a flow as written in a YAML file.
type Definition struct {
	Name        string    `yaml:"name"`
	Version     string    `yaml:"version"`
	Description string    `yaml:"description,omitempty"`
	Steps       []StepDef `yaml:"steps"`

	// path is the file the definition was read from, for error context.
	path string
}

// StepDef describes one step of a flow.
type StepDef struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	// Prompt is the question shown when collecting the step's answer.
	Prompt      string `yaml:"prompt,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Skippable   bool   `yaml:"skippable,omitempty"`
	// Commit names a catalog handler. Empty means no commit.
	Commit string `yaml:"commit,omitempty"`
}

// LoadFile reads and validates a flow definition from path.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flow file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		var flowErr *errors.FlowError
		if errors.As(err, &flowErr) {
			return nil, flowErr.WithPath(path)
		}
		return nil, err
	}
	def.path = path
	return def, nil
}

// Parse decodes and validates a flow definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.NewFlowError(fmt.Sprintf("parsing flow: %v", err), nil)
	}
	if def.Version == "" {
		def.Version = SupportedVersion
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition's shape. Commit names are checked later,
// against a catalog, by Build.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return d.errorf("", "flow name is required")
	}
	if d.Version != SupportedVersion {
		return d.errorf("", "unsupported flow version: %s (supported: %s)", d.Version, SupportedVersion)
	}
	if len(d.Steps) == 0 {
		return errors.NewFlowError("flow has no steps", errors.ErrEmptyRegistry).WithPath(d.path)
	}

	seen := make(map[string]bool, len(d.Steps))
	for i, s := range d.Steps {
		if s.ID == "" {
			return d.errorf("", "step %d has no id", i+1)
		}
		if !stepIDPattern.MatchString(s.ID) {
			return d.errorf(s.ID, "step id must be lowercase letters, digits, '-' or '_'")
		}
		if seen[s.ID] {
			return errors.NewFlowError("duplicate step id", errors.ErrDuplicateStep).WithPath(d.path).WithStep(s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// IDs returns the step ids in order.
func (d *Definition) IDs() []string {
	ids := make([]string, len(d.Steps))
	for i, s := range d.Steps {
		ids[i] = s.ID
	}
	return ids
}

// Build resolves every step's commit against catalog and returns the
// wizard registry for the flow. Commits read the step's answer from answers
// at the moment they run.
func (d *Definition) Build(catalog *Catalog, answers *Answers) (*wizard.Registry, error) {
	if answers == nil {
		answers = NewAnswers()
	}
	steps := make([]wizard.Step, 0, len(d.Steps))
	for _, s := range d.Steps {
		commit, err := d.bindCommit(catalog, answers, s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, wizard.Step{
			ID:        s.ID,
			Label:     s.label(),
			Payload:   s,
			Commit:    commit,
			Skippable: s.Skippable,
		})
	}
	return wizard.NewRegistry(steps...)
}

func (d *Definition) bindCommit(catalog *Catalog, answers *Answers, s StepDef) (wizard.CommitFunc, error) {
	if s.Commit == "" || s.Commit == CommitNone {
		return nil, nil
	}
	handler, ok := catalog.Lookup(s.Commit)
	if !ok {
		return nil, errors.NewFlowError(fmt.Sprintf("unknown commit %q", s.Commit), errors.ErrUnknownCommit).
			WithPath(d.path).WithStep(s.ID)
	}
	return handler.bind(s, answers), nil
}

func (d *Definition) errorf(stepID, format string, args ...any) error {
	return errors.NewFlowError(fmt.Sprintf(format, args...), nil).WithPath(d.path).WithStep(stepID)
}

func (s StepDef) label() string { return util.Label(s.Label, s.ID) }

// Info returns the StepDef stored as a step's payload, if any.
func Info(step wizard.Step) (StepDef, bool) {
	def, ok := step.Payload.(StepDef)
	return def, ok
}
