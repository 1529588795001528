package tui

import (
	"photocull/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the triage screen until the user quits. The caller closes
// sess afterwards.
func Run(sess *session.Session, folder string) error {
	p := tea.NewProgram(New(sess, folder), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
