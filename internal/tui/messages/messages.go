package messages

import (
	"image"

	"photocull/internal/metadata"
	"photocull/internal/watch"
	"photocull/pkg/types"
)

// FolderLoadedMsg carries a finished background scan.
type FolderLoadedMsg struct {
	Folder  string
	Records []types.PhotoRecord
	Err     error
}

// MoveFinishedMsg carries the results of a discard move.
type MoveFinishedMsg struct {
	Results []types.MoveResult
}

// ThumbnailLoadedMsg carries the rendered rows of a decoded thumbnail.
type ThumbnailLoadedMsg struct {
	ID    types.PhotoID
	Size  image.Point
	Lines    []string
	Original image.Point
	Err      error
}

// MetadataMsg carries the preview details of a photo.
type MetadataMsg struct {
	ID   types.PhotoID
	Info metadata.Info
	Err  error
}

// RemovalMsg reports a file that disappeared from the loaded folder. From
// is the channel it was read from so stale watchers can be ignored.
type RemovalMsg struct {
	Removal watch.Removal
	From    <-chan watch.Removal
	Closed  bool
}
