package types

// Pane is a filtered view over the photo list.
type Pane int

const (
	// Grid shows every photo
	Grid Pane = iota
	// KeepPane shows photos whose status is Keep
	KeepPane
	// DiscardPane shows photos whose status is Discard
	DiscardPane
)

// Panes lists every pane in tab order.
var Panes = []Pane{Grid, KeepPane, DiscardPane}

// Filters reports whether the pane only shows a single status. The
// second return value is that status.
func (p Pane) Filters() (Status, bool) {
	switch p {
	case KeepPane:
		return Keep, true
	case DiscardPane:
		return Discard, true
	}
	return Unclassified, false
}

// Shows reports whether a photo with status s is a member of p.
func (p Pane) Shows(s Status) bool {
	want, filtered := p.Filters()
	return !filtered || want == s
}

// NextPane returns the pane after p in tab order, wrapping around.
func (p Pane) NextPane() Pane {
	return Panes[(int(p)+1)%len(Panes)]
}

// PrevPane returns the pane before p in tab order, wrapping around.
func (p Pane) PrevPane() Pane {
	return Panes[(int(p)+len(Panes)-1)%len(Panes)]
}

func (p Pane) String() string {
	switch p {
	case KeepPane:
		return "Keep"
	case DiscardPane:
		return "Discard"
	default:
		return "Grid"
	}
}

// Direction is a keyboard navigation direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)
