package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Scan        lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Highlight   lipgloss.Style
	Selected    lipgloss.Style
	Modified    lipgloss.Style
	Confirm     lipgloss.Style
	DetailBox   lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Scan: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Dim:  lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")),
		Modified: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Confirm:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
	}
}
