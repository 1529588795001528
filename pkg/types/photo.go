package types

import (
	"path/filepath"
	"time"
)

// PhotoID identifies a photo for the lifetime of an in-memory session.
// It is assigned at load time and is not derived from the file path.
type PhotoID string

// None is the absent PhotoID.
const None PhotoID = ""

// Status is the classification tag of a photo.
type Status int

const (
	// Unclassified is the default status of every freshly scanned photo
	Unclassified Status = iota
	// Keep marks a photo the user wants to retain
	Keep
	// Discard marks a photo that will be moved out of the folder
	Discard
)

// Next returns the status that follows s in the toggle cycle
// Unclassified -> Keep -> Discard -> Unclassified.
func (s Status) Next() Status {
	switch s {
	case Unclassified:
		return Keep
	case Keep:
		return Discard
	default:
		return Unclassified
	}
}

func (s Status) String() string {
	switch s {
	case Keep:
		return "keep"
	case Discard:
		return "discard"
	default:
		return "unclassified"
	}
}

// PhotoRecord is one recognized image file of the loaded folder.
type PhotoRecord struct {
	ID         PhotoID   `json:"id"`
	SourcePath string    `json:"source_path"`
	Status     Status    `json:"-"`
	Taken      time.Time `json:"taken"`
	Size       int64     `json:"size"`
}

// Name returns the base name of the backing file.
func (r PhotoRecord) Name() string {
	return filepath.Base(r.SourcePath)
}
