package config

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/teamboard/internal/config"
)

func newTestModel(t *testing.T) (Model, *int) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()

	saves := 0
	m := New()
	m.save = func() error {
		saves++
		return nil
	}
	return m, &saves
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, "j")
	if m.currentItem().Key != "wizard.mirror_key" {
		t.Errorf("after j: %s", m.currentItem().Key)
	}
	m = press(m, "k", "k")
	if m.currentItem().Key != "tui.theme" {
		t.Errorf("k from the first item should wrap to the last, got %s", m.currentItem().Key)
	}
	m = press(m, "tab")
	if m.categoryIndex != 0 || m.itemIndex != 0 {
		t.Errorf("tab from the last category should wrap, got %d/%d", m.categoryIndex, m.itemIndex)
	}
}

func TestSelectItem(t *testing.T) {
	m, saves := newTestModel(t)

	// wizard.mirror options: file, query, memory, none
	m = press(m, "enter", "j", "j", "enter")
	if got := viper.GetString("wizard.mirror"); got != config.MirrorMemory {
		t.Errorf("wizard.mirror = %q, want memory", got)
	}
	if *saves != 1 || m.editing {
		t.Errorf("saves = %d, editing = %v", *saves, m.editing)
	}
}

func TestBoolToggle(t *testing.T) {
	m, saves := newTestModel(t)
	m.categoryIndex, m.itemIndex = 2, 0 // logging.enabled

	m = press(m, "enter")
	if !viper.GetBool("logging.enabled") {
		t.Error("logging.enabled not toggled")
	}
	if *saves != 1 {
		t.Errorf("saves = %d", *saves)
	}
}

func TestInvalidValueReverted(t *testing.T) {
	m, saves := newTestModel(t)
	m.categoryIndex, m.itemIndex = 0, 1 // wizard.mirror_key

	m = press(m, "enter")
	m.textInput.SetValue("bad key")
	m = press(m, "enter")

	if got := viper.GetString("wizard.mirror_key"); got != "step" {
		t.Errorf("invalid value kept: %q", got)
	}
	if !m.editing || !strings.Contains(m.errorMsg, "wizard.mirror_key") {
		t.Errorf("editing = %v, errorMsg = %q", m.editing, m.errorMsg)
	}
	if *saves != 0 {
		t.Error("invalid value should not be saved")
	}

	m = press(m, "esc")
	if m.editing {
		t.Error("esc should leave edit mode")
	}
}

func TestResetToDefault(t *testing.T) {
	m, _ := newTestModel(t)
	viper.Set("tui.theme", "mono")
	m.categoryIndex, m.itemIndex = 3, 0

	m = press(m, "r")
	if got := viper.GetString("tui.theme"); got != "default" {
		t.Errorf("tui.theme = %q after reset", got)
	}
	if !strings.Contains(m.infoMsg, "Reset Theme") {
		t.Errorf("infoMsg = %q", m.infoMsg)
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{"[ Wizard ]", "Position Mirror", "[ Logging ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, "q")
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
