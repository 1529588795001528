package selection

import "photocull/pkg/types"

// Equal reports whether two snapshots describe the same selection.
func (s State) Equal(o State) bool {
	if s.ActivePane != o.ActivePane || s.PrimaryID != o.PrimaryID || s.AnchorID != o.AnchorID {
		return false
	}
	if len(s.SelectedIDs) != len(o.SelectedIDs) {
		return false
	}
	for id := range s.SelectedIDs {
		if _, ok := o.SelectedIDs[id]; !ok {
			return false
		}
	}
	return true
}

// State returns a copy of the current selection.
func (c *Controller) State() State {
	return State{
		ActivePane:  c.active,
		PrimaryID:   c.primary,
		SelectedIDs: copySet(c.selected),
		AnchorID:    c.anchor,
	}
}

// ActivePane returns the pane receiving keyboard input.
func (c *Controller) ActivePane() types.Pane { return c.active }

// PrimaryID returns the focused photo, or None.
func (c *Controller) PrimaryID() types.PhotoID { return c.primary }

// AnchorID returns the shift-range anchor, or None.
func (c *Controller) AnchorID() types.PhotoID { return c.anchor }

// IsSelected reports whether id is part of the selection.
func (c *Controller) IsSelected(id types.PhotoID) bool {
	_, ok := c.selected[id]
	return ok
}

// Len returns the number of selected photos.
func (c *Controller) Len() int { return len(c.selected) }

// SelectedIDs returns the selection in master order.
func (c *Controller) SelectedIDs() []types.PhotoID {
	return c.orderedSelection()
}

// Reset clears the selection and returns focus to the Grid pane. Used
// when a new folder replaces the collection.
func (c *Controller) Reset() {
	before := c.State()
	c.clear()
	c.active = types.Grid
	c.commit(before)
}

// FocusPane makes pane active without a click, for example when the user
// tabs between panes. Selected photos that pane does not show are
// dropped.
func (c *Controller) FocusPane(pane types.Pane) {
	before := c.State()
	c.active = pane
	c.retain(func(id types.PhotoID) bool {
		st, ok := c.photos.Status(id)
		return ok && pane.Shows(st)
	})
	c.commit(before)
}

// Reconcile drops selected ids the collection no longer holds, for
// example after files were moved or deleted. If the primary vanished the
// earliest surviving selected photo takes its place.
func (c *Controller) Reconcile() {
	before := c.State()
	c.retain(c.photos.Contains)
	if c.anchor != types.None && !c.photos.Contains(c.anchor) {
		c.anchor = types.None
	}
	c.commit(before)
}

// retain keeps the selected ids for which keep returns true and repairs
// the primary.
func (c *Controller) retain(keep func(types.PhotoID) bool) {
	for id := range c.selected {
		if !keep(id) {
			delete(c.selected, id)
		}
	}
	if len(c.selected) == 0 {
		c.primary = types.None
		return
	}
	if _, ok := c.selected[c.primary]; !ok {
		c.primary = c.orderedSelection()[0]
	}
}
