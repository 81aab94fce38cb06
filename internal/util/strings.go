// Package util provides small text helpers shared by the terminal views.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// FitWidth shortens s to at most width terminal columns, ending it with
// "..." when anything was cut. Styling escape codes and wide characters are
// measured correctly. A width of zero or less means unlimited.
func FitWidth(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return ellipsis[:width]
	}
	return ansi.Truncate(s, width, ellipsis)
}

// Label returns label, or fallback when label is blank.
func Label(label, fallback string) string {
	if label == "" {
		return fallback
	}
	return label
}
