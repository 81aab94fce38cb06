package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Purple/green dark theme
	ThemeMono    ThemeName = "mono"    // Grayscale, for terminals with poor color support
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{string(ThemeDefault), string(ThemeMono)}
}

// IsValidTheme checks if a theme name is a built-in theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
// All colors should meet WCAG AA contrast requirements (4.5:1 ratio).
type ColorPalette struct {
	// Primary accent color (current step, titles)
	Primary lipgloss.Color
	// Secondary accent color (completed steps, success)
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	// Muted is for pending steps and help text
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Text    lipgloss.Color
	Border  lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500
	}
}

// MonoPalette returns a grayscale palette. State is still distinguishable
// through weight and markers rather than hue.
func MonoPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#FFFFFF"),
		Secondary: lipgloss.Color("#D1D5DB"),
		Warning:   lipgloss.Color("#E5E7EB"),
		Error:     lipgloss.Color("#FFFFFF"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Surface:   lipgloss.Color("#111827"),
		Text:      lipgloss.Color("#F9FAFB"),
		Border:    lipgloss.Color("#6B7280"),
	}
}

// GetPalette returns the palette for a theme, falling back to the default
// for unknown names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeMono:
		return MonoPalette()
	default:
		return DefaultPalette()
	}
}
