package views

import (
	"fmt"
	"image"
	"strings"

	"photocull/internal/tui/common"
	"photocull/internal/tui/components"
	"photocull/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// Smallest terminal the layout is drawn in.
const (
	MinWidth  = 40
	MinHeight = 12
)

// RenderMainView draws the three panes, the preview and the footer.
func RenderMainView(m common.ModelReader) string {
	g := m.Geometry()
	if g.Header.W < MinWidth || g.Preview.H+g.Header.H+g.Footer.H < MinHeight {
		return m.Theme().Placeholder.Render(fmt.Sprintf("Terminal too small (need %dx%d)", MinWidth, MinHeight))
	}

	grid := RenderPane(m, types.Grid)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, RenderPane(m, types.KeepPane), RenderPane(m, types.DiscardPane))
	left := lipgloss.JoinVertical(lipgloss.Left, grid, bottom)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, RenderPreview(m))

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderHeader(m),
		body,
		RenderFooter(m),
	)
}

// RenderHeader shows the folder and the classification counts.
func RenderHeader(m common.ModelReader) string {
	theme := m.Theme()
	sess := m.Session()
	folder := sess.Folder()
	if folder == "" {
		folder = "no folder"
	}
	c := sess.Photos().Counts()
	counts := fmt.Sprintf("%d photos · %d keep · %d discard · %d unclassified",
		c.Total, c.Keep, c.Discard, c.Unclassified)

	width := m.Geometry().Header.W
	title := theme.Header.Render("photocull") + " " +
		components.Truncate(folder, max(width-len(counts)-13, 8))
	gap := max(width-lipgloss.Width(title)-lipgloss.Width(counts), 1)
	return lipgloss.NewStyle().MaxWidth(width).Render(title + strings.Repeat(" ", gap) + counts)
}

// RenderPane draws one pane with its border, title and visible tiles.
func RenderPane(m common.ModelReader, pane types.Pane) string {
	theme := m.Theme()
	sess := m.Session()
	sel := sess.Selection()
	photos := sess.Photos()

	outer := m.Geometry().Panes[pane]
	if outer.W < 3 || outer.H < 3 {
		return ""
	}
	tiles := common.LayoutTiles(outer, sess.TileWidth(pane))
	ids := photos.VisibleIDs(pane)

	style := theme.Pane
	if sel.ActivePane() == pane {
		style = theme.ActivePane
	}

	title := theme.PaneTitle.Render(fmt.Sprintf("%s (%d)", pane, len(ids)))
	rows := []string{title}

	scroll := m.Scroll(pane)
	box := tiles.PixelBox()
	if len(ids) == 0 {
		rows = append(rows, theme.Placeholder.Render(emptyText(pane, sess.Folder() != "")))
	}
	for r := 0; r < tiles.Rows; r++ {
		start := (scroll + r) * tiles.Columns
		if start >= len(ids) {
			break
		}
		end := min(start+tiles.Columns, len(ids))
		cols := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			cols = append(cols, renderTile(m, id, box, tiles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(cols)...))
	}

	return style.
		Width(outer.W - 2).
		Height(outer.H - 2).
		MaxHeight(outer.H).
		Render(lipgloss.NewStyle().MaxWidth(outer.W - 2).Render(strings.Join(rows, "\n")))
}

func renderTile(m common.ModelReader, id types.PhotoID, box image.Point, tiles common.Tiles) string {
	sess := m.Session()
	sel := sess.Selection()
	rec, _ := sess.Photos().Get(id)
	pixels, failed := m.Pixels(id, box)
	lines := components.Tile(m.Theme(), rec, pixels, tiles.TileW, tiles.ThumbRows, components.TileState{
		Selected: sel.IsSelected(id),
		Primary:  sel.PrimaryID() == id,
		Failed:   failed,
	})
	return strings.Join(lines, "\n")
}

// joinWithGap puts a one-cell column between tiles.
func joinWithGap(cols []string) []string {
	out := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, c)
	}
	return out
}

func emptyText(pane types.Pane, loaded bool) string {
	if !loaded {
		return "Open a folder: photocull <folder>"
	}
	switch pane {
	case types.KeepPane:
		return "Press k to keep photos"
	case types.DiscardPane:
		return "Press d to discard photos"
	}
	return "No photos found"
}

// PreviewImageBox returns the pixel box of the preview picture for a
// panel drawn in outer.
func PreviewImageBox(outer common.Rect) image.Point {
	inner := outer.Inner()
	rows := max(inner.H-components.PreviewInfoRows, 0)
	return image.Pt(inner.W, rows*2)
}

// RenderPreview draws the large view of the primary photo.
func RenderPreview(m common.ModelReader) string {
	theme := m.Theme()
	sess := m.Session()
	sel := sess.Selection()
	outer := m.Geometry().Preview
	if outer.W < 3 || outer.H < 3 {
		return ""
	}
	inner := outer.Inner()

	body := theme.Placeholder.Render("No photo selected")
	id := sel.PrimaryID()
	if rec, ok := sess.Photos().Get(id); ok {
		box := PreviewImageBox(outer)
		pixels, failed := m.Pixels(id, box)
		info, hasInfo := m.Info(id)
		body = components.Preview(theme, components.PreviewData{
			Record:   rec,
			Position: sess.Photos().IndexOf(id) + 1,
			Total:    sess.Photos().Len(),
			Info:     info,
			HasInfo:  hasInfo,
			Pixels:   pixels,
			Failed:   failed,
			Dims:     m.Dimensions(id),
			Selected: sel.Len(),
		}, inner.W, box.Y/2)
	}

	content := theme.PaneTitle.Render("Preview") + "\n" + body
	return theme.Pane.
		Width(outer.W - 2).
		Height(outer.H - 2).
		MaxHeight(outer.H).
		Render(lipgloss.NewStyle().MaxWidth(inner.W).Render(content))
}

// RenderFooter shows the status line, or a pending confirmation, above
// the key help.
func RenderFooter(m common.ModelReader) string {
	theme := m.Theme()
	status := m.StatusView()
	switch m.Mode() {
	case common.ConfirmMove, common.ConfirmReset:
		status = theme.Confirm.Render(status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.HelpView())
}
