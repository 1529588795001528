package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the triage view.
// It lives in pkg/types so the model and the help renderer share it.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextPane key.Binding
	PrevPane key.Binding

	// Range extension from the anchor
	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding

	// Selection
	ToggleMember   key.Binding // command-click equivalent on the focused photo
	SelectAll      key.Binding
	ClearSelection key.Binding

	// Classification
	Keep        key.Binding
	Discard     key.Binding
	Unclassify  key.Binding
	ToggleCycle key.Binding
	ResetAll    key.Binding

	// Layout
	GrowPreview   key.Binding
	ShrinkPreview key.Binding
	LargerTiles   key.Binding
	SmallerTiles  key.Binding

	// Actions
	MoveDiscards key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),

		ExtendUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "extend right")),

		ToggleMember:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle in selection")),
		SelectAll:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		ClearSelection: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),

		Keep:        key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "keep")),
		Discard:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discard")),
		Unclassify:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unclassify")),
		ToggleCycle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "cycle status")),
		ResetAll:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset all")),

		GrowPreview:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "wider preview")),
		ShrinkPreview: key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrower preview")),
		LargerTiles:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "larger tiles")),
		SmallerTiles:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller tiles")),

		MoveDiscards: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "move discards")),
		Confirm:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Keep, k.Discard, k.ToggleCycle, k.NextPane, k.MoveDiscards, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextPane, k.PrevPane},
		{k.ExtendUp, k.ExtendDown, k.ExtendLeft, k.ExtendRight, k.ToggleMember, k.SelectAll, k.ClearSelection},
		{k.Keep, k.Discard, k.Unclassify, k.ToggleCycle, k.ResetAll},
		{k.GrowPreview, k.ShrinkPreview, k.LargerTiles, k.SmallerTiles},
		{k.MoveDiscards, k.Help, k.Quit},
	}
}
