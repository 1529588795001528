package tui

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"photocull/internal/config"
	"photocull/internal/session"
	"photocull/internal/tui/common"
	"photocull/internal/tui/messages"
	"photocull/internal/watch"
	"photocull/pkg/testutils"
	"photocull/pkg/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// collect runs cmd and every command of nested batches, returning the
// produced messages. Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if _, tick := msg.(spinner.TickMsg); tick || msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// send delivers msg and returns the messages its commands produce.
func send(m *Model, msg tea.Msg) []tea.Msg {
	_, cmd := m.Update(msg)
	return collect(cmd)
}

// press sends each key in order and feeds back what their commands return.
func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		for _, msg := range send(m, k) {
			m.Update(msg)
		}
	}
}

func newTestModel(t *testing.T, photos int) (*Model, string) {
	t.Helper()
	return newTestModelWith(t, config.New(), photos)
}

func newTestModelWith(t *testing.T, cfg *config.Config, photos int) (*Model, string) {
	t.Helper()
	dir := t.TempDir()
	for i := 1; i <= photos; i++ {
		testutils.WriteJPEG(t, dir, fmt.Sprintf("IMG_%04d.jpg", i), 32, 24, color.RGBA{R: uint8(40 * i), G: 90, B: 30, A: 255})
	}

	sess, err := session.New(context.Background(), cfg, session.WithoutWatcher())
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close(context.Background()) })

	m := New(sess, dir)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	loaded := collect(m.Init())
	require.Len(t, loaded, 1)
	for _, msg := range send(m, loaded[0]) {
		m.Update(msg)
	}
	require.Equal(t, photos, sess.Photos().Len())
	return m, dir
}

func grid(m *Model) []types.PhotoID {
	return m.sess.Photos().VisibleIDs(types.Grid)
}

func TestModelInitialization(t *testing.T) {
	sess, err := session.New(context.Background(), config.New(), session.WithoutWatcher())
	require.NoError(t, err)

	m := New(sess, "")
	assert.Nil(t, m.Init())
	assert.Equal(t, common.Normal, m.Mode())
	assert.Contains(t, m.StatusText(), "No folder given")
}

func TestFolderLoad(t *testing.T) {
	m, dir := newTestModel(t, 3)

	assert.False(t, m.Busy())
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, m.sess.Folder())
	assert.Contains(t, m.StatusText(), "Loaded 3 photos")

	t.Run("failed scan keeps the model", func(t *testing.T) {
		send(m, messages.FolderLoadedMsg{Folder: "/nonexistent", Err: os.ErrNotExist})
		assert.Equal(t, 3, m.sess.Photos().Len())
		assert.Contains(t, m.StatusText(), "Cannot open /nonexistent")
	})
}

func TestKeyboardNavigation(t *testing.T) {
	m, _ := newTestModel(t, 6)
	sel := m.sess.Selection()
	ids := grid(m)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, ids[0], sel.PrimaryID(), "first arrow selects the first photo")

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, ids[1], sel.PrimaryID())

	// Four grid columns at 120x40
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, ids[5], sel.PrimaryID())
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, ids[1], sel.PrimaryID())

	press(m, tea.KeyMsg{Type: tea.KeyShiftRight}, tea.KeyMsg{Type: tea.KeyShiftRight})
	assert.Equal(t, ids[3], sel.PrimaryID())
	assert.Equal(t, ids[1], sel.AnchorID())
	assert.ElementsMatch(t, ids[1:4], sel.SelectedIDs())

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.ElementsMatch(t, ids[1:3], sel.SelectedIDs(), "enter toggles the primary out")

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, 6, sel.Len())

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 0, sel.Len())
}

func TestClassificationKeys(t *testing.T) {
	m, _ := newTestModel(t, 4)
	sel := m.sess.Selection()
	photos := m.sess.Photos()
	ids := grid(m)

	press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("k"))
	st, _ := photos.Status(ids[0])
	assert.Equal(t, types.Keep, st)

	press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("d"))
	st, _ = photos.Status(ids[1])
	assert.Equal(t, types.Discard, st)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	st, _ = photos.Status(ids[1])
	assert.Equal(t, types.Unclassified, st, "space cycles discard back to unclassified")

	press(m, runes("u"))
	st, _ = photos.Status(ids[1])
	assert.Equal(t, types.Unclassified, st)

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, types.KeepPane, sel.ActivePane())
	assert.Equal(t, types.None, sel.PrimaryID(), "unclassified photo is not in the keep pane")

	press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, types.DiscardPane, sel.ActivePane())
}

func TestResetAllConfirmation(t *testing.T) {
	m, _ := newTestModel(t, 3)
	photos := m.sess.Photos()

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA}, runes("d"))
	require.Equal(t, 3, photos.Counts().Discard)

	press(m, runes("R"))
	assert.Equal(t, common.ConfirmReset, m.Mode())
	press(m, runes("d"))
	assert.Equal(t, common.ConfirmReset, m.Mode(), "other keys wait for an answer")
	press(m, runes("n"))
	assert.Equal(t, common.Normal, m.Mode())
	assert.Equal(t, 3, photos.Counts().Discard)

	press(m, runes("R"), runes("y"))
	assert.Equal(t, 3, photos.Counts().Unclassified)
}

func TestMoveDiscards(t *testing.T) {
	m, dir := newTestModel(t, 4)
	ids := grid(m)

	press(m, runes("M"))
	assert.Equal(t, common.Normal, m.Mode())
	assert.Contains(t, m.StatusText(), "Nothing to move")

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyShiftRight}, runes("d"))
	press(m, runes("M"))
	require.Equal(t, common.ConfirmMove, m.Mode())
	assert.Contains(t, m.StatusText(), "Move 2 photo(s)")

	press(m, runes("y"))
	assert.False(t, m.Busy())
	assert.Equal(t, 2, m.sess.Photos().Len())
	assert.False(t, m.sess.Photos().Contains(ids[0]))
	assert.Contains(t, m.StatusText(), "Moved 2, skipped 0, failed 0")

	assert.FileExists(t, filepath.Join(dir, "Discarded", "IMG_0001.jpg"))
	assert.FileExists(t, filepath.Join(dir, "Discarded", "IMG_0002.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "IMG_0001.jpg"))
}

func TestMoveDiscardsDryRun(t *testing.T) {
	cfg := config.New()
	cfg.Move.DryRun = true
	m, dir := newTestModelWith(t, cfg, 3)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA}, runes("d"), runes("M"))
	require.Equal(t, common.ConfirmMove, m.Mode())
	assert.Contains(t, m.StatusText(), "[dry run]")

	press(m, runes("y"))
	assert.Contains(t, m.StatusText(), "Would move 3 (dry run), skipped 0, failed 0")
	assert.Equal(t, 3, m.sess.Photos().Len())
	assert.FileExists(t, filepath.Join(dir, "IMG_0001.jpg"))
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m, _ := newTestModel(t, 2)
	m.busy = true
	press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("d"))
	assert.Equal(t, types.None, m.sess.Selection().PrimaryID())
	assert.Equal(t, 0, m.sess.Photos().Counts().Discard)
}

func TestMouseClicks(t *testing.T) {
	m, _ := newTestModel(t, 6)
	sel := m.sess.Selection()
	ids := grid(m)
	tiles := m.tiles(types.Grid)

	click := func(i int, shift, ctrl bool) {
		r, ok := tiles.TileRect(i, 0)
		require.True(t, ok)
		send(m, tea.MouseMsg{X: r.X + 1, Y: r.Y + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, Shift: shift, Ctrl: ctrl})
	}

	click(1, false, false)
	assert.Equal(t, ids[1], sel.PrimaryID())

	click(3, true, false)
	assert.ElementsMatch(t, ids[1:4], sel.SelectedIDs())

	click(2, false, true)
	assert.ElementsMatch(t, []types.PhotoID{ids[1], ids[3]}, sel.SelectedIDs())

	// Empty area of the keep pane focuses it
	keep := m.Geometry().Panes[types.KeepPane].Inner()
	send(m, tea.MouseMsg{X: keep.X + 1, Y: keep.Y + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, types.KeepPane, sel.ActivePane())
	assert.Equal(t, 0, sel.Len())
}

func TestLayoutKeys(t *testing.T) {
	m, _ := newTestModel(t, 1)

	press(m, runes(">"))
	assert.Equal(t, 40, m.sess.Layout().PreviewPercent)
	press(m, runes("<"), runes("<"))
	assert.Equal(t, 30, m.sess.Layout().PreviewPercent)

	press(m, runes("+"))
	assert.Equal(t, 18, m.sess.Layout().ThumbWidth)
	for i := 0; i < 40; i++ {
		press(m, runes("-"))
	}
	assert.Equal(t, 4, m.sess.Layout().ThumbWidth, "tile width is clamped")

	assert.Equal(t, 120, m.sess.Layout().WindowWidth)
	assert.Equal(t, 40, m.sess.Layout().WindowHeight)
}

func TestThumbnailsLoadForVisibleTiles(t *testing.T) {
	m, _ := newTestModel(t, 2)
	box := m.tiles(types.Grid).PixelBox()

	for _, id := range grid(m) {
		lines, failed := m.Pixels(id, box)
		assert.False(t, failed)
		assert.Len(t, lines, box.Y/2)
	}
	assert.Equal(t, 2, m.sess.Thumbnails().Len())
}

func TestThumbnailFailureIsRemembered(t *testing.T) {
	m, dir := newTestModel(t, 0)
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"broken.jpg": "not a jpeg"})

	loaded := collect(m.openFolder(dir))
	require.Len(t, loaded, 1)
	for _, msg := range send(m, loaded[0]) {
		m.Update(msg)
	}

	id := grid(m)[0]
	_, failed := m.Pixels(id, m.tiles(types.Grid).PixelBox())
	assert.True(t, failed)
	_, cmd := m.Update(nil)
	assert.Nil(t, cmd, "failed thumbnails are not retried")
}

func TestPreviewMetadata(t *testing.T) {
	m, _ := newTestModel(t, 1)
	id := grid(m)[0]

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	info, ok := m.Info(id)
	require.True(t, ok)
	assert.False(t, info.Taken.IsZero())
	assert.Equal(t, 32, m.Dimensions(id).X)
}

func TestStaleRemovalIgnored(t *testing.T) {
	m, dir := newTestModel(t, 2)
	other := make(chan watch.Removal)

	cmds := send(m, messages.RemovalMsg{
		Removal: watch.Removal{Path: filepath.Join(dir, "IMG_0001.jpg")},
		From:    other,
	})
	assert.Empty(t, cmds)
	assert.Equal(t, 2, m.sess.Photos().Len())
}

func TestHelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, 1)

	press(m, runes("?"))
	assert.True(t, m.ShowHelp())
	assert.Contains(t, testutils.StripANSI(m.View()), "cycle status")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Error(t, m.ctx.Err(), "quitting cancels background work")
}
