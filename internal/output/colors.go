package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles for plan and status rendering.
var (
	styleCreate  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleUpdate  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleSkip    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSubtle  = lipgloss.NewStyle().Faint(true)
	styleHeading = lipgloss.NewStyle().Bold(true)
)

// hasColor reports whether the terminal supports color output.
func hasColor() bool {
	return termenv.DefaultOutput().Profile != termenv.Ascii
}

// Create styles text for create actions.
func Create(s string) string {
	if !hasColor() {
		return s
	}
	return styleCreate.Render(s)
}

// Update styles text for update actions.
func Update(s string) string {
	if !hasColor() {
		return s
	}
	return styleUpdate.Render(s)
}

// Skip styles text for skip actions.
func Skip(s string) string {
	if !hasColor() {
		return s
	}
	return styleSkip.Render(s)
}

// Subtle styles secondary text.
func Subtle(s string) string {
	if !hasColor() {
		return s
	}
	return styleSubtle.Render(s)
}

// Heading styles a heading line.
func Heading(s string) string {
	if !hasColor() {
		return s
	}
	return styleHeading.Render(s)
}
