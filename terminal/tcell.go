package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/core"
)

// Tcell implements Terminal on top of a tcell screen.
// tcell couples raw input and the alternate screen to Init/Fini, so raw mode follows exclusive mode.
type Tcell struct {
	screen tcell.Screen
	events chan tcell.Event
	stopCh chan struct{}
	doneCh chan struct{}

	active bool
	raw    bool

	style tcell.Style
	x, y  int
}

// NewTcell creates a tcell-backed terminal on the controlling terminal
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create tcell screen")
	}
	return NewTcellWithScreen(screen), nil
}

// NewTcellWithScreen wraps an existing, not yet initialized screen (e.g. a simulation screen)
func NewTcellWithScreen(screen tcell.Screen) *Tcell {
	return &Tcell{
		screen: screen,
		events: make(chan tcell.Event, 256),
		style:  tcell.StyleDefault,
	}
}

// Screen exposes the underlying tcell screen
func (t *Tcell) Screen() tcell.Screen {
	return t.screen
}

// EnterExclusiveMode initializes the screen and starts the event pump
func (t *Tcell) EnterExclusiveMode() error {
	if t.active {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return errors.Wrap(err, "init tcell screen")
	}
	t.active = true
	t.screen.Clear()

	t.stopCh = make(chan struct{})
	t.doneCh = make(chan struct{})
	stop, done := t.stopCh, t.doneCh
	screen := t.screen
	core.Go(func() {
		defer close(done)
		for {
			// PollEvent returns nil once the screen is finalized
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case t.events <- ev:
			case <-stop:
				return
			}
		}
	})
	return nil
}

// LeaveExclusiveMode finalizes the screen, restoring the terminal
func (t *Tcell) LeaveExclusiveMode() error {
	if !t.active {
		return nil
	}
	t.active = false
	close(t.stopCh)
	t.screen.Fini()
	<-t.doneCh
	return nil
}

// SetRawInput records the requested mode; tcell keeps the tty raw while the screen is initialized
func (t *Tcell) SetRawInput(enabled bool) error {
	if enabled && !t.active {
		return errors.New("tcell raw input requires exclusive mode")
	}
	t.raw = enabled
	return nil
}

// SetCursorVisible shows the hardware cursor at the write position or hides it
func (t *Tcell) SetCursorVisible(visible bool) error {
	if visible {
		t.screen.ShowCursor(t.x, t.y)
	} else {
		t.screen.HideCursor()
	}
	return nil
}

// SetCursorGlyph maps the style onto tcell cursor styles
func (t *Tcell) SetCursorGlyph(style CursorStyle) error {
	switch style {
	case CursorStyleBlock:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	case CursorStyleUnderline:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	case CursorStyleBar:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleDefault)
	}
	return nil
}

// Size returns current screen dimensions
func (t *Tcell) Size() (int, int) {
	return t.screen.Size()
}

// PollEvents waits up to timeout for the first event, then drains everything already pending.
// Events with no Terminal equivalent (mouse, paste, focus) are skipped.
func (t *Tcell) PollEvents(timeout time.Duration) ([]Event, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var out []Event
	select {
	case ev := <-t.events:
		out = appendConverted(out, ev)
	case <-timer.C:
		return nil, nil
	}

	for {
		select {
		case ev := <-t.events:
			out = appendConverted(out, ev)
		default:
			return out, nil
		}
	}
}

// MoveCursor positions the write cursor (0-indexed)
func (t *Tcell) MoveCursor(x, y int) error {
	t.x, t.y = x, y
	return nil
}

// WriteText places runes at the write cursor, advancing by display width
func (t *Tcell) WriteText(s string) error {
	for _, r := range s {
		t.screen.SetContent(t.x, t.y, r, nil, t.style)
		t.x += max(runewidth.RuneWidth(r), 1)
	}
	return nil
}

// SetForeground sets the foreground color of subsequent writes
func (t *Tcell) SetForeground(c core.RGB) error {
	t.style = t.style.Foreground(toTcellColor(c))
	return nil
}

// SetBackground sets the background color of subsequent writes
func (t *Tcell) SetBackground(c core.RGB) error {
	t.style = t.style.Background(toTcellColor(c))
	return nil
}

// ResetStyle returns to the default style
func (t *Tcell) ResetStyle() error {
	t.style = tcell.StyleDefault
	return nil
}

// ClearScreen blanks the back buffer
func (t *Tcell) ClearScreen() error {
	t.screen.Clear()
	t.x, t.y = 0, 0
	return nil
}

// Flush makes the back buffer visible
func (t *Tcell) Flush() error {
	t.screen.Show()
	return nil
}

func toTcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func appendConverted(out []Event, ev tcell.Event) []Event {
	if converted, ok := convertEvent(ev); ok {
		out = append(out, converted)
	}
	return out
}

// convertEvent maps a tcell event onto the Terminal event model
func convertEvent(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return convertKey(ev), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}, true
	}
	return Event{}, false
}

func convertKey(ev *tcell.EventKey) Event {
	out := Event{Type: EventKey, Modifiers: convertModifiers(ev.Modifiers())}

	switch ev.Key() {
	case tcell.KeyRune:
		out.Key = KeyRune
		out.Rune = ev.Rune()
		// Some tcell versions report Ctrl+letter as a rune with ModCtrl
		if out.Modifiers&ModCtrl != 0 {
			if k, ok := ctrlRunes[out.Rune]; ok {
				out.Key, out.Rune = k, 0
			}
		}
	case tcell.KeyUp:
		out.Key = KeyUp
	case tcell.KeyDown:
		out.Key = KeyDown
	case tcell.KeyLeft:
		out.Key = KeyLeft
	case tcell.KeyRight:
		out.Key = KeyRight
	case tcell.KeyHome:
		out.Key = KeyHome
	case tcell.KeyEnd:
		out.Key = KeyEnd
	case tcell.KeyPgUp:
		out.Key = KeyPageUp
	case tcell.KeyPgDn:
		out.Key = KeyPageDown
	case tcell.KeyInsert:
		out.Key = KeyInsert
	case tcell.KeyDelete:
		out.Key = KeyDelete
	case tcell.KeyEscape:
		out.Key = KeyEscape
	case tcell.KeyEnter:
		out.Key = KeyEnter
	case tcell.KeyTab:
		out.Key = KeyTab
	case tcell.KeyBacktab:
		out.Key = KeyBacktab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = KeyBackspace
	case tcell.KeyCtrlC:
		out.Key = KeyCtrlC
	case tcell.KeyCtrlL:
		out.Key = KeyCtrlL
	case tcell.KeyCtrlZ:
		out.Key = KeyCtrlZ
	default:
		out.Key = KeyNone
	}
	return out
}

var ctrlRunes = map[rune]Key{
	'c': KeyCtrlC,
	'l': KeyCtrlL,
	'z': KeyCtrlZ,
}

func convertModifiers(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}
