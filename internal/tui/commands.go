package tui

import (
	"fmt"
	"path/filepath"

	"photocull/internal/log"
	"photocull/internal/session"
	"photocull/internal/tui/messages"
	"photocull/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// openFolder scans folder in the background.
func (m *Model) openFolder(folder string) tea.Cmd {
	m.busy = true
	m.status.SetText(fmt.Sprintf("Scanning %s", folder))
	spin := m.status.SetLoading(true)

	ctx, sess := m.ctx, m.sess
	scan := func() tea.Msg {
		records, err := sess.Scan(ctx, folder)
		return messages.FolderLoadedMsg{Folder: folder, Records: records, Err: err}
	}
	return tea.Batch(spin, scan)
}

func (m *Model) folderLoaded(msg messages.FolderLoadedMsg) tea.Cmd {
	m.busy = false
	m.status.SetLoading(false)
	if msg.Err != nil {
		log.LogWithError(msg.Err).Error("Failed to load folder")
		m.status.SetError(fmt.Sprintf("Cannot open %s: %v", msg.Folder, msg.Err))
		return nil
	}

	m.sess.Apply(msg.Folder, msg.Records)
	m.resetCaches()
	m.status.SetText(fmt.Sprintf("Loaded %d photos from %s", m.sess.Photos().Len(), filepath.Base(m.sess.Folder())))
	return listenRemovals(m.sess)
}

// startMove runs the discard move in the background. The model is only
// updated once every result is in.
func (m *Model) startMove() tea.Cmd {
	records, dest, err := m.sess.DiscardPlan()
	if err != nil {
		m.status.SetError(err.Error())
		return nil
	}
	m.busy = true
	m.status.SetText(fmt.Sprintf("Moving %d photo(s)", len(records)))
	spin := m.status.SetLoading(true)

	ctx, sess := m.ctx, m.sess
	move := func() tea.Msg {
		return messages.MoveFinishedMsg{Results: sess.RunMove(ctx, records, dest)}
	}
	return tea.Batch(spin, move)
}

func (m *Model) moveFinished(msg messages.MoveFinishedMsg) {
	m.busy = false
	m.status.SetLoading(false)
	sum := m.sess.ApplyMoveResults(msg.Results)

	text := fmt.Sprintf("Moved %d, skipped %d, failed %d", sum.Moved, sum.Skipped, sum.Failed)
	if sum.DryRun > 0 {
		text = fmt.Sprintf("Would move %d (dry run), skipped %d, failed %d", sum.DryRun, sum.Skipped, sum.Failed)
	}
	if sum.Failed > 0 {
		m.status.SetError(fmt.Sprintf("%s: %v", text, sum.Errors[0]))
		return
	}
	m.status.SetText(text)
}

// listenRemovals waits for the next removal from the session's current
// watcher.
func listenRemovals(sess *session.Session) tea.Cmd {
	ch := sess.Removals()
	if ch == nil {
		return nil
	}
	return waitRemoval(ch)
}

func waitRemoval(ch <-chan watch.Removal) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		return messages.RemovalMsg{Removal: r, From: ch, Closed: !ok}
	}
}

// removal drops a photo deleted or renamed outside photocull. Messages
// from a watcher replaced by a later folder load are ignored.
func (m *Model) removal(msg messages.RemovalMsg) tea.Cmd {
	if msg.From != m.sess.Removals() || msg.Closed {
		return nil
	}
	if m.sess.HandleRemoval(msg.Removal.Path) {
		m.status.SetText(fmt.Sprintf("%s was removed", filepath.Base(msg.Removal.Path)))
	}
	return waitRemoval(msg.From)
}
