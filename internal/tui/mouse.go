package tui

import (
	"photocull/internal/tui/common"
	"photocull/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

const wheelRows = 1

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.busy || m.mode != common.Normal {
		return
	}
	g := m.Geometry()

	for _, pane := range types.Panes {
		if !g.Panes[pane].Contains(msg.X, msg.Y) {
			continue
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll[pane] = max(m.scroll[pane]-wheelRows, 0)
		case tea.MouseButtonWheelDown:
			m.scroll[pane] += wheelRows
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress {
				m.click(pane, msg)
			}
		}
		return
	}
}

// click maps a press inside pane to a tile. Ctrl or Alt act as the
// command modifier since terminals rarely report Cmd.
func (m *Model) click(pane types.Pane, msg tea.MouseMsg) {
	sel := m.sess.Selection()
	ids := m.sess.Photos().VisibleIDs(pane)
	i := m.tiles(pane).At(msg.X, msg.Y, m.scroll[pane], len(ids))
	if i < 0 {
		if sel.ActivePane() != pane {
			sel.FocusPane(pane)
		}
		return
	}
	sel.Click(ids[i], ids, msg.Ctrl || msg.Alt, msg.Shift, pane)
}
