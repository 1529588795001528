package common

import (
	"image"

	"photocull/pkg/types"
)

// Rect is a screen rectangle in cells.
type Rect struct{ X, Y, W, H int }

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Inner returns r without its one-cell border and title row.
func (r Rect) Inner() Rect {
	return Rect{X: r.X + 1, Y: r.Y + 2, W: max(r.W-2, 0), H: max(r.H-3, 0)}
}

// Geometry is the screen layout for one frame.
type Geometry struct {
	Header  Rect
	Panes   map[types.Pane]Rect
	Preview Rect
	Footer  Rect
}

const minPreview = 24

// ComputeGeometry splits a width x height screen. The footer takes
// footerRows rows; the preview takes previewPercent of the width.
func ComputeGeometry(width, height, previewPercent, footerRows int) Geometry {
	bodyY := 1
	bodyH := max(height-bodyY-footerRows, 0)

	previewW := width * previewPercent / 100
	if previewW < minPreview {
		previewW = min(minPreview, width/2)
	}
	leftW := width - previewW

	gridH := bodyH * 55 / 100
	bottomH := bodyH - gridH
	keepW := leftW / 2

	return Geometry{
		Header: Rect{X: 0, Y: 0, W: width, H: 1},
		Panes: map[types.Pane]Rect{
			types.Grid:        {X: 0, Y: bodyY, W: leftW, H: gridH},
			types.KeepPane:    {X: 0, Y: bodyY + gridH, W: keepW, H: bottomH},
			types.DiscardPane: {X: keepW, Y: bodyY + gridH, W: leftW - keepW, H: bottomH},
		},
		Preview: Rect{X: leftW, Y: bodyY, W: previewW, H: bodyH},
		Footer:  Rect{X: 0, Y: bodyY + bodyH, W: width, H: footerRows},
	}
}

// Tiles describes how photos are laid out inside a pane.
type Tiles struct {
	Content   Rect
	TileW     int // Tile width in cells
	TileH     int // Thumbnail rows plus one label row
	Columns   int
	Rows      int // Fully visible tile rows
	ThumbRows int
}

// LayoutTiles computes tile placement for a pane drawn in outer.
func LayoutTiles(outer Rect, tileW int) Tiles {
	content := outer.Inner()
	tileW = max(tileW, 4)
	thumbRows := max(tileW/2, 1)
	tileH := thumbRows + 1
	return Tiles{
		Content:   content,
		TileW:     tileW,
		TileH:     tileH,
		Columns:   max(1, (content.W+1)/(tileW+1)),
		Rows:      max(1, content.H/tileH),
		ThumbRows: thumbRows,
	}
}

// PixelBox is the pixel box a tile thumbnail is fitted into. Each cell
// shows two vertically stacked pixels.
func (t Tiles) PixelBox() image.Point {
	return image.Pt(t.TileW, t.ThumbRows*2)
}

// TileRect returns where the photo at index i sits when the pane is
// scrolled by scroll rows, and whether it is on screen.
func (t Tiles) TileRect(i, scroll int) (Rect, bool) {
	row, col := i/t.Columns, i%t.Columns
	if row < scroll || row >= scroll+t.Rows {
		return Rect{}, false
	}
	return Rect{
		X: t.Content.X + col*(t.TileW+1),
		Y: t.Content.Y + (row-scroll)*t.TileH,
		W: t.TileW,
		H: t.TileH,
	}, true
}

// At returns the index under (x, y) given scroll, or -1.
func (t Tiles) At(x, y, scroll, count int) int {
	if !t.Content.Contains(x, y) {
		return -1
	}
	dx, dy := x-t.Content.X, y-t.Content.Y
	col := dx / (t.TileW + 1)
	if col >= t.Columns || dx%(t.TileW+1) == t.TileW {
		return -1
	}
	row := dy/t.TileH + scroll
	if dy/t.TileH >= t.Rows {
		return -1
	}
	i := row*t.Columns + col
	if i >= count {
		return -1
	}
	return i
}

// ClampScroll keeps index focus on screen and the scroll within range.
func (t Tiles) ClampScroll(scroll, focus, count int) int {
	totalRows := (count + t.Columns - 1) / t.Columns
	if focus >= 0 {
		row := focus / t.Columns
		if row < scroll {
			scroll = row
		}
		if row >= scroll+t.Rows {
			scroll = row - t.Rows + 1
		}
	}
	scroll = min(scroll, max(totalRows-t.Rows, 0))
	return max(scroll, 0)
}
