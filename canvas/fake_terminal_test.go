package canvas

import (
	"time"

	"github.com/lixenwraith/paint2d/core"
	"github.com/lixenwraith/paint2d/terminal"
)

// screenCell is one position of the fake terminal's visible buffer
type screenCell struct {
	ch     rune
	fg, bg core.RGB
	hasFg  bool
	hasBg  bool
}

// fakeTerminal records terminal state in memory and replays queued event batches
type fakeTerminal struct {
	width, height int

	back  [][]screenCell
	front [][]screenCell

	x, y         int
	fg, bg       core.RGB
	hasFg, hasBg bool

	exclusive     bool
	raw           bool
	cursorVisible bool
	glyph         terminal.CursorStyle

	queue  [][]terminal.Event
	onIdle func()

	failOn map[string]error
	calls  map[string]int
}

func newFakeTerminal(width, height int) *fakeTerminal {
	f := &fakeTerminal{
		width:         width,
		height:        height,
		cursorVisible: true,
		failOn:        make(map[string]error),
		calls:         make(map[string]int),
	}
	f.back = f.blank()
	f.front = f.blank()
	return f
}

func (f *fakeTerminal) blank() [][]screenCell {
	rows := make([][]screenCell, f.height)
	for y := range rows {
		rows[y] = make([]screenCell, f.width)
		for x := range rows[y] {
			rows[y][x] = screenCell{ch: ' '}
		}
	}
	return rows
}

// call counts the invocation and returns the injected error, if any
func (f *fakeTerminal) call(name string) error {
	f.calls[name]++
	return f.failOn[name]
}

// push queues one batch returned by a later PollEvents
func (f *fakeTerminal) push(events ...terminal.Event) {
	f.queue = append(f.queue, events)
}

func (f *fakeTerminal) EnterExclusiveMode() error {
	if err := f.call("EnterExclusiveMode"); err != nil {
		return err
	}
	f.exclusive = true
	return nil
}

func (f *fakeTerminal) LeaveExclusiveMode() error {
	if err := f.call("LeaveExclusiveMode"); err != nil {
		return err
	}
	f.exclusive = false
	return nil
}

func (f *fakeTerminal) SetRawInput(enabled bool) error {
	if err := f.call("SetRawInput"); err != nil {
		return err
	}
	f.raw = enabled
	return nil
}

func (f *fakeTerminal) SetCursorVisible(visible bool) error {
	if err := f.call("SetCursorVisible"); err != nil {
		return err
	}
	f.cursorVisible = visible
	return nil
}

func (f *fakeTerminal) SetCursorGlyph(style terminal.CursorStyle) error {
	if err := f.call("SetCursorGlyph"); err != nil {
		return err
	}
	f.glyph = style
	return nil
}

func (f *fakeTerminal) Size() (int, int) {
	return f.width, f.height
}

func (f *fakeTerminal) PollEvents(time.Duration) ([]terminal.Event, error) {
	if err := f.call("PollEvents"); err != nil {
		return nil, err
	}
	if len(f.queue) == 0 {
		if f.onIdle != nil {
			f.onIdle()
		}
		return nil, nil
	}
	batch := f.queue[0]
	f.queue = f.queue[1:]

	// Resize events change what Size reports, like a real terminal
	for _, ev := range batch {
		if ev.Type == terminal.EventResize {
			f.resize(ev.Width, ev.Height)
		}
	}
	return batch, nil
}

func (f *fakeTerminal) resize(width, height int) {
	f.width, f.height = width, height
	f.back = f.blank()
	f.front = f.blank()
}

func (f *fakeTerminal) MoveCursor(x, y int) error {
	if err := f.call("MoveCursor"); err != nil {
		return err
	}
	f.x, f.y = x, y
	return nil
}

func (f *fakeTerminal) WriteText(s string) error {
	if err := f.call("WriteText"); err != nil {
		return err
	}
	for _, r := range s {
		if f.y >= 0 && f.y < f.height && f.x >= 0 && f.x < f.width {
			f.back[f.y][f.x] = screenCell{ch: r, fg: f.fg, bg: f.bg, hasFg: f.hasFg, hasBg: f.hasBg}
		}
		f.x++
	}
	return nil
}

func (f *fakeTerminal) SetForeground(c core.RGB) error {
	if err := f.call("SetForeground"); err != nil {
		return err
	}
	f.fg, f.hasFg = c, true
	return nil
}

func (f *fakeTerminal) SetBackground(c core.RGB) error {
	if err := f.call("SetBackground"); err != nil {
		return err
	}
	f.bg, f.hasBg = c, true
	return nil
}

func (f *fakeTerminal) ResetStyle() error {
	if err := f.call("ResetStyle"); err != nil {
		return err
	}
	f.fg, f.bg = core.RGB{}, core.RGB{}
	f.hasFg, f.hasBg = false, false
	return nil
}

func (f *fakeTerminal) ClearScreen() error {
	if err := f.call("ClearScreen"); err != nil {
		return err
	}
	f.back = f.blank()
	return nil
}

func (f *fakeTerminal) Flush() error {
	if err := f.call("Flush"); err != nil {
		return err
	}
	for y := range f.back {
		copy(f.front[y], f.back[y])
	}
	return nil
}

// at returns the flushed cell at (x, y)
func (f *fakeTerminal) at(x, y int) screenCell {
	return f.front[y][x]
}

// rowText returns the flushed characters of row y
func (f *fakeTerminal) rowText(y int) string {
	rs := make([]rune, 0, f.width)
	for _, c := range f.front[y] {
		rs = append(rs, c.ch)
	}
	return string(rs)
}

// snapshot copies the flushed screen
func (f *fakeTerminal) snapshot() [][]screenCell {
	out := make([][]screenCell, len(f.front))
	for y := range f.front {
		out[y] = append([]screenCell(nil), f.front[y]...)
	}
	return out
}

func key(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k}
}

func shiftKey(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k, Modifiers: terminal.ModShift}
}

func runeKey(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func resizeEvent(w, h int) terminal.Event {
	return terminal.Event{Type: terminal.EventResize, Width: w, Height: h}
}

type countingFeedback struct {
	paints, erases int
}

func (c *countingFeedback) Paint() { c.paints++ }
func (c *countingFeedback) Erase() { c.erases++ }
