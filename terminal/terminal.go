package terminal

import (
	"fmt"
	"time"

	"github.com/lixenwraith/paint2d/core"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int // For EventResize
	Height    int // For EventResize
}

// String formats the event for debug logs
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		name := KeyName(e.Key)
		if e.Key == KeyRune {
			name = fmt.Sprintf("%q", e.Rune)
		}
		if e.Modifiers != ModNone {
			name = e.Modifiers.String() + "+" + name
		}
		return "key(" + name + ")"
	case EventResize:
		return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height)
	case EventInterrupt:
		return "interrupt"
	}
	return "none"
}

// CursorStyle selects the hardware cursor glyph
type CursorStyle uint8

const (
	CursorStyleDefault CursorStyle = iota
	CursorStyleBlock
	CursorStyleUnderline
	CursorStyleBar
)

// Terminal is the capability the paint engine renders through
type Terminal interface {
	// EnterExclusiveMode switches to the alternate full-screen surface
	EnterExclusiveMode() error
	// LeaveExclusiveMode restores the normal screen; safe to call when not entered
	LeaveExclusiveMode() error
	// SetRawInput toggles per-keystroke input delivery; false restores the prior line discipline
	SetRawInput(enabled bool) error

	// SetCursorVisible shows/hides the hardware cursor
	SetCursorVisible(visible bool) error
	// SetCursorGlyph selects the hardware cursor shape, cosmetic only
	SetCursorGlyph(style CursorStyle) error

	// Size returns current terminal dimensions
	Size() (width, height int)

	// PollEvents waits up to timeout for input and returns every pending event in arrival order.
	// A nil slice with nil error means the timeout elapsed.
	PollEvents(timeout time.Duration) ([]Event, error)

	// MoveCursor positions the write cursor (0-indexed)
	MoveCursor(x, y int) error
	// WriteText writes s at the write cursor with the current style
	WriteText(s string) error
	SetForeground(c core.RGB) error
	SetBackground(c core.RGB) error
	// ResetStyle returns to the terminal default colors
	ResetStyle() error
	ClearScreen() error
	// Flush pushes buffered output to the device
	Flush() error
}
