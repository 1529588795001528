package styles

import (
	"photocull/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the core UI styles
type Theme struct {
	Header       lipgloss.Style
	Pane         lipgloss.Style
	ActivePane   lipgloss.Style
	PaneTitle    lipgloss.Style
	Label        lipgloss.Style
	Selected     lipgloss.Style
	Primary      lipgloss.Style
	Keep         lipgloss.Style
	Discard      lipgloss.Style
	Placeholder  lipgloss.Style
	Help         lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Confirm      lipgloss.Style
	PreviewTitle lipgloss.Style
	PreviewKey   lipgloss.Style
}

// New builds the named theme from the config palettes. Unknown names get
// the default palette.
func New(name string) Theme {
	p := config.GetTheme(name)
	color := func(key string) lipgloss.Color { return lipgloss.Color(p[key]) }

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color("border"))

	return Theme{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(color("primary")),
		Pane:         border,
		ActivePane:   border.BorderForeground(color("primary")),
		PaneTitle:    lipgloss.NewStyle().Bold(true).Foreground(color("emphasis")),
		Label:        lipgloss.NewStyle().Foreground(color("border")),
		Selected:     lipgloss.NewStyle().Foreground(color("info")).Underline(true),
		Primary:      lipgloss.NewStyle().Foreground(color("emphasis")).Bold(true).Reverse(true),
		Keep:         lipgloss.NewStyle().Foreground(color("success")),
		Discard:      lipgloss.NewStyle().Foreground(color("error")),
		Placeholder:  lipgloss.NewStyle().Foreground(color("border")),
		Help:         lipgloss.NewStyle().Foreground(color("info")),
		Status:       lipgloss.NewStyle().Foreground(color("info")),
		Error:        lipgloss.NewStyle().Foreground(color("error")).Bold(true),
		Confirm:      lipgloss.NewStyle().Foreground(color("warning")).Bold(true),
		PreviewTitle: lipgloss.NewStyle().Bold(true).Foreground(color("primary")),
		PreviewKey:   lipgloss.NewStyle().Foreground(color("border")),
	}
}
