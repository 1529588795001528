// Package collection holds the master ordered list of photos for the
// loaded folder together with their classification.
//
// Collection is not safe for concurrent use. Callers serialize access,
// typically by only touching it from the UI event loop. Lookups of ids
// that are not present are silent no-ops: a queued UI event may race a
// background removal.
package collection

import (
	"photocull/internal/notify"
	"photocull/pkg/types"
)

// Collection is the in-memory photo model.
type Collection struct {
	records []types.PhotoRecord
	index   map[types.PhotoID]int
	changed notify.Emitter
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{index: make(map[types.PhotoID]int)}
}

// OnChange registers fn to run after every mutation that changed state.
func (c *Collection) OnChange(fn func()) (cancel func()) {
	return c.changed.Subscribe(fn)
}

// Load replaces the entire collection. Records with a duplicate id are
// dropped, keeping the first occurrence. Selection state is the caller's
// responsibility.
func (c *Collection) Load(records []types.PhotoRecord) {
	c.records = make([]types.PhotoRecord, 0, len(records))
	c.index = make(map[types.PhotoID]int, len(records))
	for _, r := range records {
		if _, dup := c.index[r.ID]; dup {
			continue
		}
		c.index[r.ID] = len(c.records)
		c.records = append(c.records, r)
	}
	c.changed.Emit()
}

// VisibleIDs returns the ids shown by pane in master order.
func (c *Collection) VisibleIDs(pane types.Pane) []types.PhotoID {
	ids := make([]types.PhotoID, 0, len(c.records))
	for _, r := range c.records {
		if pane.Shows(r.Status) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// SetStatus sets the status of id. Unknown ids are ignored.
func (c *Collection) SetStatus(id types.PhotoID, status types.Status) {
	if c.setLocked(id, status) {
		c.changed.Emit()
	}
}

// SetStatusForIDs applies status to every id in ids, skipping unknown
// ones, and returns the ids whose status actually changed.
func (c *Collection) SetStatusForIDs(ids map[types.PhotoID]struct{}, status types.Status) map[types.PhotoID]struct{} {
	changed := make(map[types.PhotoID]struct{})
	for id := range ids {
		if c.setLocked(id, status) {
			changed[id] = struct{}{}
		}
	}
	if len(changed) > 0 {
		c.changed.Emit()
	}
	return changed
}

// ResetAll marks every photo Unclassified.
func (c *Collection) ResetAll() {
	dirty := false
	for i := range c.records {
		if c.records[i].Status != types.Unclassified {
			c.records[i].Status = types.Unclassified
			dirty = true
		}
	}
	if dirty {
		c.changed.Emit()
	}
}

// Remove deletes the record for id. Unknown ids are ignored.
func (c *Collection) Remove(id types.PhotoID) {
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.records); j++ {
		c.index[c.records[j].ID] = j
	}
	c.changed.Emit()
}

func (c *Collection) setLocked(id types.PhotoID, status types.Status) bool {
	i, ok := c.index[id]
	if !ok || c.records[i].Status == status {
		return false
	}
	c.records[i].Status = status
	return true
}
