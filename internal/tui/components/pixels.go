package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const halfBlock = "▀"

// HalfBlocks renders img as rows of half-block cells, two pixel rows per
// cell: the foreground paints the upper pixel and the background the
// lower one. The image is centered in a cols x rows cell box.
func HalfBlocks(img *image.RGBA, cols, rows int) []string {
	if img == nil || cols < 1 || rows < 1 {
		return nil
	}
	b := img.Bounds()
	offX := (cols - b.Dx()) / 2
	offY := (rows*2 - b.Dy()) / 2

	lines := make([]string, rows)
	var sb strings.Builder
	for cy := 0; cy < rows; cy++ {
		sb.Reset()
		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + cx - offX
			top := image.Pt(x, b.Min.Y+cy*2-offY)
			bottom := image.Pt(x, top.Y+1)

			inTop, inBottom := top.In(b), bottom.In(b)
			switch {
			case inTop && inBottom:
				sb.WriteString(lipgloss.NewStyle().
					Foreground(hex(img, top)).
					Background(hex(img, bottom)).
					Render(halfBlock))
			case inTop:
				sb.WriteString(lipgloss.NewStyle().Foreground(hex(img, top)).Render(halfBlock))
			case inBottom:
				sb.WriteString(lipgloss.NewStyle().Foreground(hex(img, bottom)).Render("▄"))
			default:
				sb.WriteByte(' ')
			}
		}
		lines[cy] = sb.String()
	}
	return lines
}

func hex(img *image.RGBA, p image.Point) lipgloss.Color {
	c := img.RGBAAt(p.X, p.Y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
