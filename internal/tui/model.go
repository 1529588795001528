// Package tui is the interactive triage screen. All model mutation
// happens in Update; scans, moves, decoding and folder events run as
// commands and report back as messages.
package tui

import (
	"context"
	"image"
	"runtime"

	"photocull/internal/log"
	"photocull/internal/metadata"
	"photocull/internal/session"
	"photocull/internal/store"
	"photocull/internal/thumbnail"
	"photocull/internal/tui/common"
	"photocull/internal/tui/components"
	"photocull/internal/tui/messages"
	"photocull/internal/tui/styles"
	"photocull/internal/tui/views"
	"photocull/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/semaphore"
)

type Model struct {
	sess   *session.Session
	ctx    context.Context
	cancel context.CancelFunc

	keys   types.KeyMap
	help   help.Model
	status *components.StatusBar
	theme  styles.Theme

	// Core state
	width, height int
	mode          common.Mode
	busy          bool
	folder        string // Folder to open on Init
	scroll        map[types.Pane]int

	// Rendered thumbnails and preview details
	pixels  map[thumbnail.Key][]string
	pending map[thumbnail.Key]bool
	failed  map[thumbnail.Key]bool
	dims    map[types.PhotoID]image.Point
	info    map[types.PhotoID]metadata.Info
	reading map[types.PhotoID]bool
	decode  *semaphore.Weighted
}

// New creates the model over sess. folder is opened on start; when empty
// the last folder of the previous run is used.
func New(sess *session.Session, folder string) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	theme := styles.New(sess.Config().Theme.Name)

	h := help.New()
	h.Styles.ShortKey = theme.Help
	h.Styles.FullKey = theme.Help

	if folder == "" {
		folder = sess.Layout().LastFolder
	}

	m := &Model{
		sess:   sess,
		ctx:    ctx,
		cancel: cancel,
		keys:   types.DefaultKeyMap(),
		help:   h,
		status: components.NewStatusBar(theme),
		theme:  theme,
		mode:   common.Normal,
		folder: folder,
		decode: semaphore.NewWeighted(int64(max(runtime.NumCPU()/2, 1))),
		width:  sess.Layout().WindowWidth,
		height: sess.Layout().WindowHeight,
	}
	m.resetCaches()
	return m
}

func (m *Model) resetCaches() {
	m.scroll = make(map[types.Pane]int)
	m.pixels = make(map[thumbnail.Key][]string)
	m.pending = make(map[thumbnail.Key]bool)
	m.failed = make(map[thumbnail.Key]bool)
	m.dims = make(map[types.PhotoID]image.Point)
	m.info = make(map[types.PhotoID]metadata.Info)
	m.reading = make(map[types.PhotoID]bool)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.folder == "" {
		m.status.SetText("No folder given. Run photocull <folder>.")
		return nil
	}
	return m.openFolder(m.folder)
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		layout := m.sess.Layout()
		layout.WindowWidth, layout.WindowHeight = msg.Width, msg.Height
		m.sess.SetLayout(layout)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
		m.follow()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case spinner.TickMsg:
		cmds = append(cmds, m.status.Update(msg))

	case messages.FolderLoadedMsg:
		cmds = append(cmds, m.folderLoaded(msg))

	case messages.MoveFinishedMsg:
		m.moveFinished(msg)

	case messages.RemovalMsg:
		cmds = append(cmds, m.removal(msg))

	case messages.ThumbnailLoadedMsg:
		m.thumbnailLoaded(msg)

	case messages.MetadataMsg:
		delete(m.reading, msg.ID)
		if msg.Err != nil {
			log.LogWithError(msg.Err).Debug("Metadata unavailable")
		}
		m.info[msg.ID] = msg.Info
	}

	m.clampScroll(false)
	cmds = append(cmds, m.scheduleLoads()...)
	return m, tea.Batch(cmds...)
}

// Session returns the session driving the model.
func (m *Model) Session() *session.Session { return m.sess }

// Theme returns the styles the views render with.
func (m *Model) Theme() styles.Theme { return m.theme }

// Mode reports whether a confirmation prompt is open.
func (m *Model) Mode() common.Mode { return m.mode }

// ShowHelp reports whether the full key help is shown.
func (m *Model) ShowHelp() bool { return m.help.ShowAll }

// Busy reports whether a scan or move is running.
func (m *Model) Busy() bool { return m.busy }

// Scroll returns the first visible tile row of pane.
func (m *Model) Scroll(pane types.Pane) int { return m.scroll[pane] }

// StatusView returns the styled status line, spinner included.
func (m *Model) StatusView() string {
	if m.mode != common.Normal {
		return m.status.Text()
	}
	return m.status.View()
}

// StatusText returns the unstyled status line.
func (m *Model) StatusText() string { return m.status.Text() }

// HelpView renders the key help for the current help mode.
func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

// Geometry places the header, panes, preview and footer in the window.
func (m *Model) Geometry() common.Geometry {
	footer := 1 + lipgloss.Height(m.HelpView())
	return common.ComputeGeometry(m.width, m.height, m.sess.Layout().PreviewPercent, footer)
}

// tiles returns the tile layout of pane for the current frame.
func (m *Model) tiles(pane types.Pane) common.Tiles {
	return common.LayoutTiles(m.Geometry().Panes[pane], m.sess.TileWidth(pane))
}

// Pixels returns the rendered thumbnail of id at box and whether
// decoding it failed.
func (m *Model) Pixels(id types.PhotoID, box image.Point) ([]string, bool) {
	k := thumbnail.Key{ID: id, Size: box}
	return m.pixels[k], m.failed[k]
}

// Info returns the metadata read for id, if any.
func (m *Model) Info(id types.PhotoID) (metadata.Info, bool) {
	info, ok := m.info[id]
	return info, ok
}

// Dimensions returns the original pixel size of id once decoded.
func (m *Model) Dimensions(id types.PhotoID) image.Point { return m.dims[id] }

// follow scrolls the active pane so its primary photo is on screen.
func (m *Model) follow() { m.clampScroll(true) }

// clampScroll keeps every pane's scroll within its rows and, with
// follow, the primary photo on screen in the active pane.
func (m *Model) clampScroll(follow bool) {
	sel := m.sess.Selection()
	for _, pane := range types.Panes {
		ids := m.sess.Photos().VisibleIDs(pane)
		focus := -1
		if follow && pane == sel.ActivePane() {
			focus = indexOf(ids, sel.PrimaryID())
		}
		m.scroll[pane] = m.tiles(pane).ClampScroll(m.scroll[pane], focus, len(ids))
	}
}

func (m *Model) adjustLayout(fn func(*store.Layout)) {
	layout := m.sess.Layout()
	fn(&layout)
	layout.PreviewPercent = clamp(layout.PreviewPercent, store.MinPreviewPercent, store.MaxPreviewPercent)
	layout.ThumbWidth = clamp(layout.ThumbWidth, store.MinThumbWidth, store.MaxThumbWidth)
	if layout.ThumbWidth != m.sess.Layout().ThumbWidth {
		m.pixels = make(map[thumbnail.Key][]string)
	}
	m.sess.SetLayout(layout)
}

func indexOf(ids []types.PhotoID, id types.PhotoID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
