// Package tui hosts onboarding wizards in the terminal with Bubble Tea.
// The model owns no wizard state of its own: every keypress becomes a
// controller transition and the view is rendered from the controller's
// state after each one.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/teamboard/internal/flow"
	"github.com/Iron-Ham/teamboard/internal/onboarding"
	"github.com/Iron-Ham/teamboard/internal/tui/styles"
	"github.com/Iron-Ham/teamboard/internal/util"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

// commitDoneMsg carries the result of a Next that ran off the UI goroutine.
type commitDoneMsg struct {
	result wizard.Result
}

// Model is the Bubble Tea model for one onboarding run.
type Model struct {
	ctx     context.Context
	run     *onboarding.Run
	styles  *styles.ThemedStyles
	input   textinput.Model
	spinner spinner.Model

	width    int
	notice   string
	pending  bool // a Next is running in a command
	finished bool
	quitting bool

	// onMove is called after every confirmed move, for hosts that surface
	// the mirrored position (a resume link, a status line).
	onMove func()
}

// Option configures a Model.
type Option func(*Model)

// WithOnMove registers a callback run after every confirmed move.
func WithOnMove(fn func()) Option {
	return func(m *Model) { m.onMove = fn }
}

// WithWidth sets the terminal width before the first resize message
// arrives, so the first frame is already laid out for the terminal.
func WithWidth(width int) Option {
	return func(m *Model) {
		if width > 0 {
			m.width = width
		}
	}
}

// NewModel returns a model driving run. ctx is passed to every commit.
func NewModel(ctx context.Context, run *onboarding.Run, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 48
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		run:     run,
		styles:  styles.Active(),
		input:   ti,
		spinner: sp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.loadStep()
	return m
}

// Finished reports whether the last step committed.
func (m Model) Finished() bool { return m.finished }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commitDoneMsg:
		m.pending = false
		return m.handleResult(msg.result)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.run.Controller.Close()
		m.quitting = true
		return m, tea.Quit
	}
	// Keys are ignored while a commit is in flight; the controller would
	// answer Busy anyway.
	if m.pending {
		return m, nil
	}
	m.notice = ""

	switch key := msg.String(); key {
	case "enter":
		m.run.Answer(m.input.Value())
		m.pending = true
		return m, tea.Batch(m.spinner.Tick, m.next())

	case "esc", "shift+tab":
		return m.handleResult(m.run.Controller.Prev())

	case "tab":
		if !m.run.Controller.CurrentStep().Skippable {
			m.notice = "This step can't be skipped."
			return m, nil
		}
		m.run.Answer(m.input.Value())
		return m.handleResult(m.run.Controller.Skip())

	default:
		if target, ok := gotoTarget(key, m.run.Controller.Registry()); ok {
			return m.handleResult(m.run.Controller.Goto(target))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// next runs the commit off the UI goroutine.
func (m Model) next() tea.Cmd {
	ctx, c := m.ctx, m.run.Controller
	return func() tea.Msg {
		return commitDoneMsg{result: c.Next(ctx)}
	}
}

func (m Model) handleResult(r wizard.Result) (tea.Model, tea.Cmd) {
	switch r {
	case wizard.Moved:
		m.loadStep()
		if m.onMove != nil {
			m.onMove()
		}
	case wizard.Finished:
		m.finished = true
		return m, tea.Quit
	case wizard.Denied:
		m.notice = "Finish the earlier steps first."
	case wizard.Closed:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// loadStep shows the current step's saved answer and prompt in the input.
func (m *Model) loadStep() {
	step := m.run.Controller.CurrentStep()
	m.input.SetValue(m.run.Answers.Get(step.ID))
	m.input.CursorEnd()
	m.input.Placeholder = ""
	if info, ok := flow.Info(step); ok {
		m.input.Placeholder = info.Placeholder
	}
}

// gotoTarget maps alt+1..alt+9 to the step at that position.
func gotoTarget(key string, reg *wizard.Registry) (string, bool) {
	if len(key) != len("alt+1") || !strings.HasPrefix(key, "alt+") {
		return "", false
	}
	n := int(key[4] - '0')
	if n < 1 || n > 9 || n > reg.Len() {
		return "", false
	}
	return reg.At(n - 1).ID, true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles
	c := m.run.Controller

	var b strings.Builder
	title := s.Header.Render("Onboarding · " + m.run.Flow.Name)
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(util.FitWidth(m.renderProgress(), m.width))
	b.WriteString("\n\n")

	if m.finished {
		b.WriteString(s.SuccessMsg.Render("All set! Your workspace is ready."))
		b.WriteString("\n")
		return b.String()
	}

	step := c.CurrentStep()
	var body strings.Builder
	body.WriteString(s.Title.Render(step.Label))
	body.WriteString("\n")
	if info, ok := flow.Info(step); ok {
		if info.Description != "" {
			body.WriteString(s.Subtitle.Render(info.Description))
			body.WriteString("\n")
		}
		if info.Prompt != "" {
			body.WriteString("\n")
			body.WriteString(s.Prompt.Render(info.Prompt))
			body.WriteString("\n")
		}
	}
	body.WriteString(m.input.View())
	box := s.Box
	if m.width > 4 {
		box = box.Width(min(m.width-4, 72))
	}
	b.WriteString(box.Render(body.String()))
	b.WriteString("\n")

	switch {
	case m.pending:
		b.WriteString(m.spinner.View() + " " + s.Muted.Render("Saving..."))
		b.WriteString("\n")
	case c.LastError() != "":
		b.WriteString(util.FitWidth(s.ErrorMsg.Render(c.LastError()), m.width))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString(s.Muted.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

// renderProgress draws one marker per step from the controller's active
// steps.
func (m Model) renderProgress() string {
	s := m.styles
	steps := m.run.Controller.ActiveSteps()
	parts := make([]string, len(steps))
	for i, st := range steps {
		label := fmt.Sprintf("%d %s", i+1, st.Label)
		switch {
		case st.Current:
			parts[i] = s.StepCurrent.Render(label)
		case st.Completed:
			parts[i] = s.StepDone.Render("✓ " + label)
		default:
			parts[i] = s.StepPending.Render("○ " + label)
		}
	}
	return strings.Join(parts, s.Muted.Render("  ›  "))
}

func (m Model) renderHelp() string {
	s := m.styles
	keys := []struct{ key, desc string }{
		{"enter", "continue"},
		{"esc", "back"},
	}
	if m.run.Controller.CurrentStep().Skippable && m.run.Controller.CanSkip() {
		keys = append(keys, struct{ key, desc string }{"tab", "skip"})
	}
	keys = append(keys,
		struct{ key, desc string }{"alt+n", "jump to step n"},
		struct{ key, desc string }{"ctrl+c", "quit"},
	)

	items := make([]string, len(keys))
	for i, k := range keys {
		items[i] = s.HelpKey.Render(k.key) + " " + k.desc
	}
	return s.HelpBar.Render(strings.Join(items, "  "))
}

// Run starts the Bubble Tea program for run and reports whether the wizard
// finished.
func Run(ctx context.Context, run *onboarding.Run, opts ...Option) (bool, error) {
	program := tea.NewProgram(NewModel(ctx, run, opts...), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("TUI error: %w", err)
	}
	m, ok := final.(Model)
	return ok && m.finished, nil
}
