package styles

import "github.com/charmbracelet/lipgloss"

// ThemedStyles contains the lipgloss styles built from a color palette.
type ThemedStyles struct {
	Palette *ColorPalette

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Box      lipgloss.Style

	// Progress indicator
	StepDone    lipgloss.Style
	StepCurrent lipgloss.Style
	StepPending lipgloss.Style

	Prompt     lipgloss.Style
	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style
	Muted      lipgloss.Style

	HelpKey lipgloss.Style
	HelpBar lipgloss.Style
}

// NewThemedStyles builds every style from p.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	return &ThemedStyles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.Border).
			MarginBottom(1).
			PaddingBottom(1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),

		StepDone: lipgloss.NewStyle().
			Foreground(p.Secondary),

		StepCurrent: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 1),

		StepPending: lipgloss.NewStyle().
			Foreground(p.Muted),

		Prompt: lipgloss.NewStyle().
			Foreground(p.Text),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		SuccessMsg: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),

		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
	}
}

// activeTheme holds the currently active themed styles.
var activeTheme = NewThemedStyles(DefaultPalette())

// SetActiveTheme switches the active theme.
//
// Note: This function is not thread-safe. It is designed to be called
// before the Bubble Tea program starts.
func SetActiveTheme(name ThemeName) {
	activeTheme = NewThemedStyles(GetPalette(name))
}

// Active returns the currently active themed styles.
func Active() *ThemedStyles {
	return activeTheme
}
