package canvas

import (
	"github.com/lixenwraith/paint2d/cursor"
	"github.com/lixenwraith/paint2d/palette"
	"github.com/lixenwraith/paint2d/terminal"
)

// ActionType classifies what a key does to the engine state
type ActionType uint8

const (
	ActionNone        ActionType = iota
	ActionQuit                   // q, Esc - stop the loop
	ActionInterrupt              // Ctrl+C - same effect as an interrupt event
	ActionMove                   // arrows, hjkl
	ActionPaint                  // Space, Enter
	ActionErase                  // x, Backspace, Delete
	ActionClear                  // C - empty the whole canvas
	ActionSelectColor            // 1-9
	ActionNextColor              // Tab
	ActionPrevColor              // Shift+Tab
)

// Binding maps a key to its behavior
type Binding struct {
	Action    ActionType
	Direction cursor.Direction // For ActionMove
	Fast      bool             // Accelerated movement step
	Index     int              // Palette slot for ActionSelectColor
}

// BindingTable holds all key bindings
type BindingTable struct {
	runes map[rune]Binding
	keys  map[terminal.Key]Binding
}

// DefaultBindings returns the default binding table
func DefaultBindings() *BindingTable {
	bt := &BindingTable{
		runes: map[rune]Binding{
			// Motions
			'h': {Action: ActionMove, Direction: cursor.Left},
			'j': {Action: ActionMove, Direction: cursor.Down},
			'k': {Action: ActionMove, Direction: cursor.Up},
			'l': {Action: ActionMove, Direction: cursor.Right},
			'H': {Action: ActionMove, Direction: cursor.Left, Fast: true},
			'J': {Action: ActionMove, Direction: cursor.Down, Fast: true},
			'K': {Action: ActionMove, Direction: cursor.Up, Fast: true},
			'L': {Action: ActionMove, Direction: cursor.Right, Fast: true},

			// Canvas edits
			' ': {Action: ActionPaint},
			'x': {Action: ActionErase},
			'C': {Action: ActionClear},

			'q': {Action: ActionQuit},
		},
		keys: map[terminal.Key]Binding{
			terminal.KeyLeft:  {Action: ActionMove, Direction: cursor.Left},
			terminal.KeyRight: {Action: ActionMove, Direction: cursor.Right},
			terminal.KeyUp:    {Action: ActionMove, Direction: cursor.Up},
			terminal.KeyDown:  {Action: ActionMove, Direction: cursor.Down},

			terminal.KeyEnter:     {Action: ActionPaint},
			terminal.KeyBackspace: {Action: ActionErase},
			terminal.KeyDelete:    {Action: ActionErase},

			terminal.KeyTab:     {Action: ActionNextColor},
			terminal.KeyBacktab: {Action: ActionPrevColor},

			terminal.KeyEscape: {Action: ActionQuit},
			terminal.KeyCtrlC:  {Action: ActionInterrupt},
		},
	}

	// Palette slots
	for i := 0; i < palette.MaxColors; i++ {
		bt.runes['1'+rune(i)] = Binding{Action: ActionSelectColor, Index: i}
	}
	return bt
}

// Lookup resolves a key event to its binding.
// Shift on a directional key selects the accelerated step.
func (bt *BindingTable) Lookup(ev terminal.Event) (Binding, bool) {
	if ev.Type != terminal.EventKey {
		return Binding{}, false
	}

	if ev.Key == terminal.KeyRune {
		// Alt/Ctrl chords on printable keys are not bound
		if ev.Modifiers&(terminal.ModAlt|terminal.ModCtrl) != 0 {
			return Binding{}, false
		}
		b, ok := bt.runes[ev.Rune]
		return b, ok
	}

	b, ok := bt.keys[ev.Key]
	if ok && b.Action == ActionMove && ev.Modifiers&terminal.ModShift != 0 {
		b.Fast = true
	}
	return b, ok
}
