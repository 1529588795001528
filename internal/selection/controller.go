// Package selection tracks which pane is active and which photos are
// selected within it, and applies classifications with the focus-advance
// policy for photos that leave a filtered pane.
//
// Every operation is a synchronous state transform. Ids that are unknown
// or stale are tolerated silently; nothing here returns an error.
package selection

import (
	"sort"

	"photocull/internal/collection"
	"photocull/internal/notify"
	"photocull/pkg/types"
)

// State is a snapshot of the selection.
type State struct {
	ActivePane  types.Pane
	PrimaryID   types.PhotoID
	SelectedIDs map[types.PhotoID]struct{}
	AnchorID    types.PhotoID
}

// Controller owns the selection state for one session.
type Controller struct {
	photos *collection.Collection

	active   types.Pane
	primary  types.PhotoID
	anchor   types.PhotoID
	selected map[types.PhotoID]struct{}

	changed notify.Emitter
}

// New creates a controller over photos with an empty selection on the
// Grid pane.
func New(photos *collection.Collection) *Controller {
	return &Controller{
		photos:   photos,
		active:   types.Grid,
		selected: make(map[types.PhotoID]struct{}),
	}
}

// OnChange registers fn to run after every selection change.
func (c *Controller) OnChange(fn func()) (cancel func()) {
	return c.changed.Subscribe(fn)
}

// Click applies a pointer click on id. ordered is the pane's rendered
// order; it is only consulted for shift ranges and for choosing a new
// primary when a command-click deselects the current one.
func (c *Controller) Click(id types.PhotoID, ordered []types.PhotoID, commandHeld, shiftHeld bool, pane types.Pane) {
	before := c.State()
	c.active = pane

	switch {
	case shiftHeld:
		anchor := c.anchor
		if anchor == types.None {
			anchor = c.primary
		}
		if anchor == types.None {
			anchor = id
		}
		from, to := indexOf(ordered, anchor), indexOf(ordered, id)
		if from < 0 || to < 0 {
			c.selectSingle(id)
			break
		}
		if from > to {
			from, to = to, from
		}
		c.selected = make(map[types.PhotoID]struct{}, to-from+1)
		for _, member := range ordered[from : to+1] {
			c.selected[member] = struct{}{}
		}
		c.primary = id
		c.anchor = anchor

	case commandHeld:
		if _, ok := c.selected[id]; ok {
			delete(c.selected, id)
			if id == c.primary {
				c.primary = c.firstSelected(ordered)
			}
		} else {
			c.selected[id] = struct{}{}
			c.primary = id
		}
		c.anchor = c.primary

	default:
		c.selectSingle(id)
	}

	c.commit(before)
}

// SelectAll selects every photo of pane and makes it active. The first
// photo becomes primary and anchor. An empty pane only changes the
// active pane.
func (c *Controller) SelectAll(pane types.Pane) {
	before := c.State()
	c.active = pane
	ids := c.photos.VisibleIDs(pane)
	if len(ids) > 0 {
		c.selected = make(map[types.PhotoID]struct{}, len(ids))
		for _, id := range ids {
			c.selected[id] = struct{}{}
		}
		c.primary = ids[0]
		c.anchor = ids[0]
	}
	c.commit(before)
}

// ClearSelection empties the selection and forgets the anchor.
func (c *Controller) ClearSelection() {
	before := c.State()
	c.clear()
	c.commit(before)
}

// MoveSelection moves the primary within the active pane. columns is the
// pane's rendered column count and is only used for Up and Down.
func (c *Controller) MoveSelection(dir types.Direction, columns int) {
	ids := c.photos.VisibleIDs(c.active)
	if len(ids) == 0 {
		return
	}
	if columns < 1 {
		columns = 1
	}

	current := indexOf(ids, c.primary)
	if current < 0 {
		current = 0
	}

	next := current
	switch dir {
	case types.Left:
		next--
	case types.Right:
		next++
	case types.Up:
		next -= columns
	case types.Down:
		next += columns
	}
	next = clamp(next, 0, len(ids)-1)
	if next == current {
		return
	}

	before := c.State()
	c.selectSingle(ids[next])
	c.commit(before)
}

// ApplyClassification sets status on targets, or on the current
// selection when targets is empty. When photos leave the active filtered
// pane as a result, focus moves to the first surviving photo after the
// anchor in that pane, or the selection is cleared if none follows.
func (c *Controller) ApplyClassification(status types.Status, targets map[types.PhotoID]struct{}) {
	if len(targets) == 0 {
		targets = copySet(c.selected)
	}
	if len(targets) == 0 {
		return
	}

	if !c.disappears(status, targets) {
		c.photos.SetStatusForIDs(targets, status)
		return
	}

	context := c.photos.VisibleIDs(c.active)
	from := indexOf(context, c.primary)
	if from < 0 {
		for i, id := range context {
			if _, ok := targets[id]; ok {
				from = i
				break
			}
		}
	}

	next := types.None
	for _, id := range context[from+1:] {
		if _, ok := targets[id]; !ok {
			next = id
			break
		}
	}

	c.photos.SetStatusForIDs(targets, status)

	before := c.State()
	if next != types.None {
		c.selectSingle(next)
	} else {
		c.clear()
	}
	c.commit(before)
}

// ToggleCycle advances id through Unclassified, Keep, Discard.
func (c *Controller) ToggleCycle(id types.PhotoID) {
	current, ok := c.photos.Status(id)
	if !ok {
		return
	}
	c.ApplyClassification(current.Next(), map[types.PhotoID]struct{}{id: {}})
}

// disappears reports whether applying status to targets removes any of
// them from the active pane. Grid never filters.
func (c *Controller) disappears(status types.Status, targets map[types.PhotoID]struct{}) bool {
	want, filtered := c.active.Filters()
	if !filtered || status == want {
		return false
	}
	for id := range targets {
		if st, ok := c.photos.Status(id); ok && st == want {
			return true
		}
	}
	return false
}

func (c *Controller) selectSingle(id types.PhotoID) {
	c.selected = map[types.PhotoID]struct{}{id: {}}
	c.primary = id
	c.anchor = id
}

func (c *Controller) clear() {
	c.selected = make(map[types.PhotoID]struct{})
	c.primary = types.None
	c.anchor = types.None
}

// firstSelected picks the selected id that comes first in ordered, then
// in master order, then lexically. Returns None for an empty selection.
func (c *Controller) firstSelected(ordered []types.PhotoID) types.PhotoID {
	if len(c.selected) == 0 {
		return types.None
	}
	for _, id := range ordered {
		if _, ok := c.selected[id]; ok {
			return id
		}
	}
	return c.orderedSelection()[0]
}

// orderedSelection returns the selection in master order, with ids the
// collection no longer knows sorted at the end.
func (c *Controller) orderedSelection() []types.PhotoID {
	ids := make([]types.PhotoID, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := c.photos.IndexOf(ids[i]), c.photos.IndexOf(ids[j])
		switch {
		case a < 0 && b < 0:
			return ids[i] < ids[j]
		case a < 0:
			return false
		case b < 0:
			return true
		}
		return a < b
	})
	return ids
}

func (c *Controller) commit(before State) {
	if !before.Equal(c.State()) {
		c.changed.Emit()
	}
}

func indexOf(ids []types.PhotoID, id types.PhotoID) int {
	if id == types.None {
		return -1
	}
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func copySet(set map[types.PhotoID]struct{}) map[types.PhotoID]struct{} {
	out := make(map[types.PhotoID]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}
