package collection

import (
	"path/filepath"

	"photocull/pkg/types"
)

// Counts is the number of photos per status.
type Counts struct {
	Total        int
	Unclassified int
	Keep         int
	Discard      int
}

// Len returns the number of photos.
func (c *Collection) Len() int {
	return len(c.records)
}

// Contains reports whether id is present.
func (c *Collection) Contains(id types.PhotoID) bool {
	_, ok := c.index[id]
	return ok
}

// Get returns a copy of the record for id.
func (c *Collection) Get(id types.PhotoID) (types.PhotoRecord, bool) {
	i, ok := c.index[id]
	if !ok {
		return types.PhotoRecord{}, false
	}
	return c.records[i], true
}

// Status returns the status of id, or false when absent.
func (c *Collection) Status(id types.PhotoID) (types.Status, bool) {
	i, ok := c.index[id]
	if !ok {
		return types.Unclassified, false
	}
	return c.records[i].Status, true
}

// IndexOf returns the master-order position of id, or -1.
func (c *Collection) IndexOf(id types.PhotoID) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Records returns a copy of every record in master order.
func (c *Collection) Records() []types.PhotoRecord {
	out := make([]types.PhotoRecord, len(c.records))
	copy(out, c.records)
	return out
}

// RecordsWithStatus returns copies of the records tagged status.
func (c *Collection) RecordsWithStatus(status types.Status) []types.PhotoRecord {
	var out []types.PhotoRecord
	for _, r := range c.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// IDForPath finds the photo backed by path.
func (c *Collection) IDForPath(path string) (types.PhotoID, bool) {
	clean := filepath.Clean(path)
	for _, r := range c.records {
		if filepath.Clean(r.SourcePath) == clean {
			return r.ID, true
		}
	}
	return types.None, false
}

// Counts tallies photos per status.
func (c *Collection) Counts() Counts {
	counts := Counts{Total: len(c.records)}
	for _, r := range c.records {
		switch r.Status {
		case types.Keep:
			counts.Keep++
		case types.Discard:
			counts.Discard++
		default:
			counts.Unclassified++
		}
	}
	return counts
}
