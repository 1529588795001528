package components

import (
	"fmt"
	"image"
	"strings"

	"photocull/internal/metadata"
	"photocull/internal/tui/styles"
	"photocull/pkg/types"

	"github.com/dustin/go-humanize"
)

// PreviewInfoRows is how many text rows Preview puts under the image.
const PreviewInfoRows = 6

// PreviewData is everything the preview panel shows for one photo.
type PreviewData struct {
	Record   types.PhotoRecord
	Position int // 1-based index in the master list
	Total    int
	Info     metadata.Info
	HasInfo  bool
	Pixels   []string
	Failed   bool
	Dims     image.Point // Source dimensions, zero until decoded
	Selected int
}

// Preview renders the panel body, width cells wide. imageRows rows are
// reserved for the picture.
func Preview(theme styles.Theme, d PreviewData, width, imageRows int) string {
	lines := make([]string, 0, imageRows+PreviewInfoRows)
	for i := 0; i < imageRows; i++ {
		if i < len(d.Pixels) {
			lines = append(lines, d.Pixels[i])
			continue
		}
		lines = append(lines, placeholderRow(theme, i, imageRows, width, d.Failed))
	}

	field := func(k, v string) string {
		return theme.PreviewKey.Render(k+" ") + Truncate(v, width-len(k)-1)
	}

	lines = append(lines, theme.PreviewTitle.Render(Truncate(d.Record.Name(), width)))
	lines = append(lines, theme.PreviewKey.Render("status ")+statusText(theme, d.Record.Status)+
		theme.PreviewKey.Render(fmt.Sprintf("  %d/%d", d.Position, d.Total)))

	if d.HasInfo {
		lines = append(lines, field("taken", fmt.Sprintf("%s (%s)", d.Info.Taken.Format("2006-01-02 15:04"), d.Info.Source)))
		camera := d.Info.Camera
		if camera == "" {
			camera = "unknown"
		}
		lines = append(lines, field("camera", camera))
		lines = append(lines, field("size", sizeText(d.Info.Size, d.Dims)))
	} else {
		lines = append(lines, field("taken", "reading…"), "", field("size", sizeText(d.Record.Size, d.Dims)))
	}

	if d.Selected > 1 {
		lines = append(lines, theme.Selected.Render(fmt.Sprintf("%d selected", d.Selected)))
	} else {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func statusText(theme styles.Theme, s types.Status) string {
	switch s {
	case types.Keep:
		return theme.Keep.Render(s.String())
	case types.Discard:
		return theme.Discard.Render(s.String())
	}
	return s.String()
}

func sizeText(bytes int64, dims image.Point) string {
	s := humanize.Bytes(uint64(max(bytes, 0)))
	if dims.X > 0 && dims.Y > 0 {
		s += fmt.Sprintf(", %dx%d", dims.X, dims.Y)
	}
	return s
}
