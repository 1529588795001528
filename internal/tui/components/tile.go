package components

import (
	"strings"

	"photocull/internal/tui/styles"
	"photocull/pkg/types"
)

// TileState is how a tile is highlighted.
type TileState struct {
	Selected bool
	Primary  bool
	Failed   bool
}

// Tile renders one photo as thumbRows image rows plus a label row, each
// exactly width cells wide. pixels may be nil while the thumbnail loads.
func Tile(theme styles.Theme, rec types.PhotoRecord, pixels []string, width, thumbRows int, st TileState) []string {
	lines := make([]string, 0, thumbRows+1)
	for i := 0; i < thumbRows; i++ {
		if i < len(pixels) {
			lines = append(lines, pixels[i])
			continue
		}
		lines = append(lines, placeholderRow(theme, i, thumbRows, width, st.Failed))
	}
	return append(lines, Label(theme, rec, width, st))
}

func placeholderRow(theme styles.Theme, row, rows, width int, failed bool) string {
	if row != rows/2 {
		return strings.Repeat(" ", width)
	}
	mark := "…"
	if failed {
		mark = "?"
	}
	return theme.Placeholder.Render(Center(mark, width))
}

// Label renders the status marker and file name of rec.
func Label(theme styles.Theme, rec types.PhotoRecord, width int, st TileState) string {
	marker := " "
	switch rec.Status {
	case types.Keep:
		marker = theme.Keep.Render("✓")
	case types.Discard:
		marker = theme.Discard.Render("✗")
	}

	name := Pad(Truncate(rec.Name(), width-1), width-1)
	switch {
	case st.Primary:
		name = theme.Primary.Render(name)
	case st.Selected:
		name = theme.Selected.Render(name)
	default:
		name = theme.Label.Render(name)
	}
	return marker + name
}

// Truncate shortens s to at most width runes, ending in an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// Pad right-pads s with spaces to width runes.
func Pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Center pads s on both sides to width runes.
func Center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
