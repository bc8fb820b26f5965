package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the panel, derived from the
// configured accent color.
type Styles struct {
	Title    lipgloss.Style
	Path     lipgloss.Style
	Heading  lipgloss.Style
	Counts   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Filter   lipgloss.Style
}

// NewStyles builds the style set around an accent color. The accent is
// a lipgloss color string, typically an ANSI 256 index like "205".
func NewStyles(accent string) Styles {
	ac := lipgloss.Color(accent)
	muted := lipgloss.Color("241")

	return Styles{
		Title:    lipgloss.NewStyle().Foreground(ac).Bold(true),
		Path:     lipgloss.NewStyle().Foreground(muted),
		Heading:  lipgloss.NewStyle().Bold(true),
		Counts:   lipgloss.NewStyle().Foreground(muted),
		Cursor:   lipgloss.NewStyle().Foreground(ac).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(ac),
		Done:     lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Status:   lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Filter:   lipgloss.NewStyle().Foreground(ac),
	}
}
