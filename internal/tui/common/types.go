package common

import (
	"image"

	"photocull/internal/metadata"
	"photocull/internal/session"
	"photocull/internal/tui/styles"
	"photocull/pkg/types"
)

// Mode is what the key handler is currently waiting for.
type Mode int

const (
	Normal Mode = iota
	ConfirmMove
	ConfirmReset
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Session() *session.Session
	Geometry() Geometry
	Scroll(pane types.Pane) int
	Theme() styles.Theme
	Mode() Mode
	ShowHelp() bool
	StatusView() string
	HelpView() string
	// Pixels returns the rendered thumbnail rows for id fitted into box.
	// lines is nil while loading; failed is true when decoding failed.
	Pixels(id types.PhotoID, box image.Point) (lines []string, failed bool)
	Info(id types.PhotoID) (metadata.Info, bool)
	// Dimensions returns the source size of id once a thumbnail decoded.
	Dimensions(id types.PhotoID) image.Point
}
