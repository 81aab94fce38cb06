// Package config is the interactive editor behind "teamboard config edit".
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/teamboard/internal/config"
	"github.com/Iron-Ham/teamboard/internal/tui/styles"
)

// ConfigItem represents a single configuration item
type ConfigItem struct {
	Key         string
	Label       string
	Description string
	Type        string   // "string", "bool", "select"
	Options     []string // For select type
}

// Category represents a group of config items
type Category struct {
	Name  string
	Items []ConfigItem
}

// Model is the Bubbletea model for the interactive config UI
type Model struct {
	categories    []Category
	categoryIndex int
	itemIndex     int
	editing       bool
	textInput     textinput.Model
	selectIndex   int
	errorMsg      string
	infoMsg       string
	quitting      bool

	// save persists viper's settings; replaced in tests.
	save func() error
}

// Categories returns the editable settings.
func Categories() []Category {
	return []Category{
		{
			Name: "Wizard",
			Items: []ConfigItem{
				{Key: "wizard.mirror", Label: "Position Mirror", Description: "Where the current step is remembered between runs", Type: "select", Options: config.ValidMirrors()},
				{Key: "wizard.mirror_key", Label: "Mirror Key", Description: "Query parameter carrying the step id", Type: "string"},
				{Key: "wizard.resume_url", Label: "Resume URL", Description: "Base link the query mirror writes into", Type: "string"},
				{Key: "wizard.flow_file", Label: "Flow File", Description: "YAML flow replacing the built-in one (empty for built-in)", Type: "string"},
				{Key: "wizard.state_dir", Label: "State Directory", Description: "Where mirrored positions are stored (empty for default)", Type: "string"},
			},
		},
		{
			Name: "Session",
			Items: []ConfigItem{
				{Key: "session.dir", Label: "Session Directory", Description: "Where auth.json is stored (empty for default)", Type: "string"},
			},
		},
		{
			Name: "Logging",
			Items: []ConfigItem{
				{Key: "logging.enabled", Label: "Enabled", Description: "Write a debug log", Type: "bool"},
				{Key: "logging.level", Label: "Level", Description: "Minimum level written to the log", Type: "select", Options: config.ValidLogLevels()},
				{Key: "logging.dir", Label: "Log Directory", Description: "Where teamboard.log is written (empty for default)", Type: "string"},
			},
		},
		{
			Name: "TUI",
			Items: []ConfigItem{
				{Key: "tui.theme", Label: "Theme", Description: "Color theme for the onboarding UI", Type: "select", Options: config.ValidThemes()},
			},
		},
	}
}

// New creates a new config model
func New() Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		categories: Categories(),
		textInput:  ti,
		save:       writeConfigFile,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.errorMsg = ""
	m.infoMsg = ""

	if m.editing {
		return m.handleEditingKeypress(keyMsg)
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.itemIndex--
		if m.itemIndex < 0 {
			m.categoryIndex--
			if m.categoryIndex < 0 {
				m.categoryIndex = len(m.categories) - 1
			}
			m.itemIndex = len(m.categories[m.categoryIndex].Items) - 1
		}

	case "down", "j":
		m.itemIndex++
		if m.itemIndex >= len(m.categories[m.categoryIndex].Items) {
			m.categoryIndex++
			if m.categoryIndex >= len(m.categories) {
				m.categoryIndex = 0
			}
			m.itemIndex = 0
		}

	case "tab":
		m.categoryIndex = (m.categoryIndex + 1) % len(m.categories)
		m.itemIndex = 0

	case "enter", " ":
		item := m.currentItem()
		switch item.Type {
		case "bool":
			m.apply(item, !viper.GetBool(item.Key))
		case "select":
			m.editing = true
			m.selectIndex = m.currentSelectIndex()
		default:
			m.editing = true
			m.textInput.SetValue(viper.GetString(item.Key))
			m.textInput.Focus()
		}

	case "r":
		m.resetCurrentToDefault()
	}

	return m, nil
}

func (m Model) handleEditingKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := m.currentItem()

	switch msg.String() {
	case "esc":
		m.editing = false
		m.textInput.SetValue("")
		return m, nil

	case "enter":
		var value any = strings.TrimSpace(m.textInput.Value())
		if item.Type == "select" {
			value = item.Options[m.selectIndex]
		}
		if m.apply(item, value) {
			m.editing = false
			m.textInput.SetValue("")
		}
		return m, nil

	case "up", "k":
		if item.Type == "select" {
			m.selectIndex = (m.selectIndex - 1 + len(item.Options)) % len(item.Options)
			return m, nil
		}

	case "down", "j":
		if item.Type == "select" {
			m.selectIndex = (m.selectIndex + 1) % len(item.Options)
			return m, nil
		}
	}

	if item.Type != "select" {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply sets item to value, validates the whole configuration and saves it.
// An invalid value is reverted and reported.
func (m *Model) apply(item ConfigItem, value any) bool {
	previous := viper.Get(item.Key)
	viper.Set(item.Key, value)

	if _, err := config.Load(); err != nil {
		viper.Set(item.Key, previous)
		m.errorMsg = err.Error()
		return false
	}
	if err := m.save(); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to save config: %v", err)
		return false
	}
	m.infoMsg = "Saved!"
	return true
}

func (m *Model) resetCurrentToDefault() {
	item := m.currentItem()
	defaults := config.DefaultValues()
	if value, ok := defaults[item.Key]; ok && m.apply(item, value) {
		m.infoMsg = fmt.Sprintf("Reset %s to default", item.Label)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := styles.Active()
	var b strings.Builder

	b.WriteString(s.Header.Render("Teamboard Configuration"))
	b.WriteString("\n")

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		configPath = config.ConfigFile() + " (not created)"
	}
	b.WriteString(s.Muted.Render("Config file: " + configPath))
	b.WriteString("\n\n")

	for ci, cat := range m.categories {
		catStyle := s.Muted.Bold(true)
		if ci == m.categoryIndex {
			catStyle = s.Title
		}
		b.WriteString(catStyle.Render(fmt.Sprintf("[ %s ]", cat.Name)))
		b.WriteString("\n")
		for ii, item := range cat.Items {
			selected := ci == m.categoryIndex && ii == m.itemIndex
			b.WriteString(m.renderItem(item, selected))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.renderEditOverlay())
	} else {
		b.WriteString(s.Muted.Render(m.currentItem().Description))
	}
	b.WriteString("\n")

	if m.errorMsg != "" {
		b.WriteString(s.ErrorMsg.Render("Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(s.SuccessMsg.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderItem(item ConfigItem, selected bool) string {
	s := styles.Active()
	value := viper.GetString(item.Key)
	if value == "" {
		value = "(default)"
	}
	line := fmt.Sprintf("  %-20s %s", item.Label, value)
	if selected {
		return s.StepCurrent.Render(line)
	}
	return s.Prompt.Render(line)
}

func (m Model) renderEditOverlay() string {
	s := styles.Active()
	item := m.currentItem()

	var content strings.Builder
	if item.Type == "select" {
		content.WriteString(fmt.Sprintf("Select %s:\n\n", item.Label))
		for i, opt := range item.Options {
			if i == m.selectIndex {
				content.WriteString(s.StepCurrent.Render(" > "+opt) + "\n")
			} else {
				content.WriteString("   " + opt + "\n")
			}
		}
	} else {
		content.WriteString(fmt.Sprintf("Edit %s:\n\n", item.Label))
		content.WriteString(m.textInput.View())
	}
	return s.Box.Width(50).Render(content.String())
}

func (m Model) renderHelp() string {
	s := styles.Active()
	if m.editing {
		return s.HelpBar.Render(s.HelpKey.Render("enter") + " save  " + s.HelpKey.Render("esc") + " cancel")
	}
	return s.HelpBar.Render(
		s.HelpKey.Render("j/k") + " navigate  " +
			s.HelpKey.Render("tab") + " next category  " +
			s.HelpKey.Render("enter") + " edit  " +
			s.HelpKey.Render("r") + " reset  " +
			s.HelpKey.Render("q") + " quit",
	)
}

func (m Model) currentItem() ConfigItem {
	return m.categories[m.categoryIndex].Items[m.itemIndex]
}

func (m Model) currentSelectIndex() int {
	item := m.currentItem()
	current := viper.GetString(item.Key)
	for i, opt := range item.Options {
		if opt == current {
			return i
		}
	}
	return 0
}

func writeConfigFile() error {
	if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return viper.WriteConfigAs(config.ConfigFile())
}

// Run starts the interactive config UI
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
