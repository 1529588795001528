package tui

import (
	"fmt"

	"photocull/internal/store"
	"photocull/internal/tui/common"
	"photocull/pkg/types"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.cancel()
		return tea.Quit
	}

	switch m.mode {
	case common.ConfirmMove, common.ConfirmReset:
		return m.handleConfirmKeys(msg)
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	if m.busy {
		return nil
	}
	return m.handleNormalKeys(msg)
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		mode := m.mode
		m.mode = common.Normal
		if mode == common.ConfirmMove {
			return m.startMove()
		}
		m.resetAll()
	case key.Matches(msg, m.keys.Cancel):
		m.mode = common.Normal
		m.status.SetText("Cancelled")
	}
	return nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	sel := m.sess.Selection()
	active := sel.ActivePane()

	switch {
	// Navigation
	case key.Matches(msg, m.keys.Up):
		m.navigate(types.Up)
	case key.Matches(msg, m.keys.Down):
		m.navigate(types.Down)
	case key.Matches(msg, m.keys.Left):
		m.navigate(types.Left)
	case key.Matches(msg, m.keys.Right):
		m.navigate(types.Right)
	case key.Matches(msg, m.keys.NextPane):
		sel.FocusPane(active.NextPane())
	case key.Matches(msg, m.keys.PrevPane):
		sel.FocusPane(active.PrevPane())

	// Range
	case key.Matches(msg, m.keys.ExtendUp):
		m.extend(types.Up)
	case key.Matches(msg, m.keys.ExtendDown):
		m.extend(types.Down)
	case key.Matches(msg, m.keys.ExtendLeft):
		m.extend(types.Left)
	case key.Matches(msg, m.keys.ExtendRight):
		m.extend(types.Right)

	// Selection
	case key.Matches(msg, m.keys.ToggleMember):
		if id := sel.PrimaryID(); id != types.None {
			sel.Click(id, m.sess.Photos().VisibleIDs(active), true, false, active)
		}
	case key.Matches(msg, m.keys.SelectAll):
		sel.SelectAll(active)
	case key.Matches(msg, m.keys.ClearSelection):
		sel.ClearSelection()

	// Classification
	case key.Matches(msg, m.keys.Keep):
		sel.ApplyClassification(types.Keep, nil)
	case key.Matches(msg, m.keys.Discard):
		sel.ApplyClassification(types.Discard, nil)
	case key.Matches(msg, m.keys.Unclassify):
		sel.ApplyClassification(types.Unclassified, nil)
	case key.Matches(msg, m.keys.ToggleCycle):
		if id := sel.PrimaryID(); id != types.None {
			sel.ToggleCycle(id)
		}
	case key.Matches(msg, m.keys.ResetAll):
		if m.sess.Photos().Len() > 0 {
			m.mode = common.ConfirmReset
			m.status.SetText("Reset every photo to unclassified? (y/n)")
		}

	// Layout
	case key.Matches(msg, m.keys.GrowPreview):
		m.adjustLayout(func(l *store.Layout) { l.PreviewPercent += 5 })
	case key.Matches(msg, m.keys.ShrinkPreview):
		m.adjustLayout(func(l *store.Layout) { l.PreviewPercent -= 5 })
	case key.Matches(msg, m.keys.LargerTiles):
		m.adjustLayout(func(l *store.Layout) { l.ThumbWidth += 2 })
	case key.Matches(msg, m.keys.SmallerTiles):
		m.adjustLayout(func(l *store.Layout) { l.ThumbWidth -= 2 })

	// Actions
	case key.Matches(msg, m.keys.MoveDiscards):
		m.confirmMove()
	}
	return nil
}

// navigate moves the primary photo. With nothing selected the first photo
// of the active pane is selected instead.
func (m *Model) navigate(dir types.Direction) {
	sel := m.sess.Selection()
	active := sel.ActivePane()
	if sel.PrimaryID() == types.None {
		ids := m.sess.Photos().VisibleIDs(active)
		if len(ids) > 0 {
			sel.Click(ids[0], ids, false, false, active)
		}
		return
	}
	sel.MoveSelection(dir, m.tiles(active).Columns)
}

// extend grows the range from the anchor to the neighbor of the primary
// photo, like a shift-click on it.
func (m *Model) extend(dir types.Direction) {
	sel := m.sess.Selection()
	active := sel.ActivePane()
	ids := m.sess.Photos().VisibleIDs(active)
	if len(ids) == 0 {
		return
	}
	current := indexOf(ids, sel.PrimaryID())
	if current < 0 {
		sel.Click(ids[0], ids, false, false, active)
		return
	}

	cols := m.tiles(active).Columns
	next := current
	switch dir {
	case types.Left:
		next--
	case types.Right:
		next++
	case types.Up:
		next -= cols
	case types.Down:
		next += cols
	}
	next = clamp(next, 0, len(ids)-1)
	if next != current {
		sel.Click(ids[next], ids, false, true, active)
	}
}

func (m *Model) confirmMove() {
	records, dest, err := m.sess.DiscardPlan()
	if err != nil {
		m.status.SetError(err.Error())
		return
	}
	if len(records) == 0 {
		m.status.SetText("Nothing to move. Mark photos with d first.")
		return
	}
	m.mode = common.ConfirmMove
	prompt := fmt.Sprintf("Move %d photo(s) to %s?", len(records), dest)
	if m.sess.DryRun() {
		prompt += " [dry run]"
	}
	m.status.SetText(prompt + " (y/n)")
}

func (m *Model) resetAll() {
	m.sess.Photos().ResetAll()
	sel := m.sess.Selection()
	sel.FocusPane(sel.ActivePane())
	m.status.SetText("All photos unclassified")
}
