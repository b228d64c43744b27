// Package canvas implements the paint engine: a color grid bound to the terminal viewport,
// a wrap-around cursor, key dispatch and full-screen redraw.
package canvas

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/core"
	"github.com/lixenwraith/paint2d/cursor"
	"github.com/lixenwraith/paint2d/terminal"
)

var (
	// ErrClosed is returned when a closed engine is initialized again
	ErrClosed = errors.New("canvas engine closed")
	// ErrNotInitialized is returned when drawing before Initialize
	ErrNotInitialized = errors.New("canvas engine not initialized")
)

// Engine owns the canvas and cursor; a single goroutine drives it.
// Only the running flag is shared with other goroutines.
type Engine struct {
	term     terminal.Terminal
	cfg      Config
	bindings *BindingTable

	grid   *core.Grid
	cursor *cursor.Cursor

	colorIndex int

	// Viewport extent, the canvas is this minus reserved rows
	viewWidth  int
	viewHeight int

	running atomic.Bool

	initialized bool
	closed      bool

	// Acquired terminal state, released by Close
	exclusive bool
	raw       bool
}

// NewEngine creates an engine drawing through term; Initialize or Run acquires the terminal
func NewEngine(term terminal.Terminal, cfg Config) (*Engine, error) {
	if term == nil {
		return nil, errors.New("nil terminal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if cfg.Feedback == nil {
		cfg.Feedback = silentFeedback{}
	}
	return &Engine{
		term:     term,
		cfg:      cfg,
		bindings: DefaultBindings(),
	}, nil
}

// Initialize acquires exclusive screen and raw input, then allocates an empty canvas for a
// width x height viewport. A non-positive extent is taken from the terminal.
// Whatever was acquired is released again if a step fails.
func (e *Engine) Initialize(width, height int) error {
	if e.closed {
		return ErrClosed
	}
	if e.initialized {
		return nil
	}

	if err := e.acquire(); err != nil {
		e.release()
		return err
	}

	if width <= 0 || height <= 0 {
		width, height = e.term.Size()
	}
	e.setViewport(width, height)
	canvasWidth, canvasHeight := e.canvasExtent()
	e.grid = core.NewGrid(canvasWidth, canvasHeight)
	e.cursor = cursor.New(canvasWidth, canvasHeight)
	e.colorIndex = 0

	e.initialized = true
	e.running.Store(true)
	log.Printf("canvas: initialized viewport %dx%d, canvas %dx%d", e.viewWidth, e.viewHeight, canvasWidth, canvasHeight)
	return nil
}

func (e *Engine) acquire() error {
	if err := e.term.EnterExclusiveMode(); err != nil {
		return errors.Wrap(err, "enter exclusive mode")
	}
	e.exclusive = true

	if err := e.term.SetRawInput(true); err != nil {
		return errors.Wrap(err, "enable raw input")
	}
	e.raw = true

	// The engine draws its own cursor glyph
	if err := e.term.SetCursorGlyph(terminal.CursorStyleBlock); err != nil {
		return errors.Wrap(err, "set cursor glyph")
	}
	if err := e.term.SetCursorVisible(false); err != nil {
		return errors.Wrap(err, "hide cursor")
	}
	return nil
}

// release undoes acquire in reverse order, attempting every step and returning the first error
func (e *Engine) release() error {
	var first error
	keep := func(err error, what string) {
		if err != nil && first == nil {
			first = errors.Wrap(err, what)
		}
	}

	if e.exclusive {
		keep(e.term.SetCursorGlyph(terminal.CursorStyleDefault), "restore cursor glyph")
		keep(e.term.SetCursorVisible(true), "show cursor")
	}
	if e.raw {
		keep(e.term.SetRawInput(false), "disable raw input")
		e.raw = false
	}
	if e.exclusive {
		keep(e.term.LeaveExclusiveMode(), "leave exclusive mode")
		e.exclusive = false
	}
	return first
}

// Close stops the engine and releases the terminal; safe to call more than once
func (e *Engine) Close() error {
	e.running.Store(false)
	if e.closed {
		return nil
	}
	e.closed = true
	err := e.release()
	if e.initialized {
		log.Printf("canvas: closed")
	}
	return err
}

// Stop requests loop termination; safe to call from any goroutine
func (e *Engine) Stop() {
	if e.running.Swap(false) {
		log.Printf("canvas: stop requested")
	}
}

// Running reports whether the engine accepts input
func (e *Engine) Running() bool {
	return e.running.Load()
}

// ProcessInput applies events in arrival order. Once stopped, remaining and later events are ignored.
func (e *Engine) ProcessInput(events []terminal.Event) {
	for _, ev := range events {
		if !e.running.Load() {
			return
		}

		switch ev.Type {
		case terminal.EventInterrupt:
			e.Stop()
		case terminal.EventResize:
			e.resize(ev.Width, ev.Height)
		case terminal.EventKey:
			e.handleKey(ev)
		}
	}
}

func (e *Engine) handleKey(ev terminal.Event) {
	b, ok := e.bindings.Lookup(ev)
	if !ok {
		return
	}

	switch b.Action {
	case ActionQuit, ActionInterrupt:
		e.Stop()
	case ActionMove:
		e.cursor.Move(b.Direction, e.step(b.Direction, b.Fast))
	case ActionPaint:
		e.grid.Set(e.cursor.X(), e.cursor.Y(), core.Colored(e.CurrentColor()))
		e.cfg.Feedback.Paint()
	case ActionErase:
		e.grid.Set(e.cursor.X(), e.cursor.Y(), core.Empty())
		e.cfg.Feedback.Erase()
	case ActionClear:
		e.grid.Clear()
		e.cfg.Feedback.Erase()
	case ActionSelectColor:
		if b.Index < e.cfg.Palette.Len() {
			e.colorIndex = b.Index
		}
	case ActionNextColor:
		e.colorIndex = (e.colorIndex + 1) % e.cfg.Palette.Len()
	case ActionPrevColor:
		n := e.cfg.Palette.Len()
		e.colorIndex = (e.colorIndex - 1 + n) % n
	}
}

func (e *Engine) step(dir cursor.Direction, fast bool) int {
	horizontal := dir == cursor.Left || dir == cursor.Right
	switch {
	case horizontal && fast:
		return e.cfg.FastStepX
	case horizontal:
		return e.cfg.StepX
	case fast:
		return e.cfg.FastStepY
	default:
		return e.cfg.StepY
	}
}

// resize rebinds canvas and cursor to a new viewport; the cursor wraps into the new bound
func (e *Engine) resize(width, height int) {
	e.setViewport(width, height)
	canvasWidth, canvasHeight := e.canvasExtent()
	e.grid.Resize(canvasWidth, canvasHeight)
	e.cursor.Resize(canvasWidth, canvasHeight)
	e.cursor.Normalize()
	log.Printf("canvas: resized viewport %dx%d, cursor %d,%d", e.viewWidth, e.viewHeight, e.cursor.X(), e.cursor.Y())
}

func (e *Engine) setViewport(width, height int) {
	e.viewWidth = max(width, 1)
	e.viewHeight = max(height, 1)
}

func (e *Engine) canvasExtent() (int, int) {
	return e.viewWidth, max(e.viewHeight-e.cfg.reservedRows(), 1)
}

// Run drives the poll, process, redraw loop until quit, interrupt or context cancellation.
// It initializes the engine if needed and always closes it on return.
// A clean stop returns nil; terminal I/O errors are returned after the terminal is released.
func (e *Engine) Run(ctx context.Context) (err error) {
	if e.closed {
		return nil
	}
	if err := e.Initialize(0, 0); err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			log.Printf("canvas: fatal: %v", err)
		}
	}()

	cancel := context.AfterFunc(ctx, e.Stop)
	defer cancel()
	if ctx.Err() != nil {
		e.Stop()
		return nil
	}

	if err := e.Redraw(); err != nil {
		return err
	}

	timeout := e.cfg.pollTimeout()
	for e.running.Load() {
		events, err := e.term.PollEvents(timeout)
		if err != nil {
			return errors.Wrap(err, "poll events")
		}
		if len(events) == 0 {
			continue
		}

		e.ProcessInput(events)
		if !e.running.Load() {
			break
		}
		if err := e.Redraw(); err != nil {
			return err
		}
	}
	return nil
}

// Cursor returns the cursor position
func (e *Engine) Cursor() (int, int) {
	if e.cursor == nil {
		return 0, 0
	}
	return e.cursor.Position()
}

// CellAt returns the canvas cell at (x, y), false when out of bounds
func (e *Engine) CellAt(x, y int) (core.Cell, bool) {
	if e.grid == nil {
		return core.Cell{}, false
	}
	return e.grid.Get(x, y)
}

// CanvasSize returns the canvas dimensions
func (e *Engine) CanvasSize() (int, int) {
	if e.grid == nil {
		return 0, 0
	}
	return e.grid.Width(), e.grid.Height()
}

// Viewport returns the terminal extent the canvas is bound to
func (e *Engine) Viewport() (int, int) {
	return e.viewWidth, e.viewHeight
}

// ColorIndex returns the selected palette slot
func (e *Engine) ColorIndex() int {
	return e.colorIndex
}

// CurrentColor returns the paint color
func (e *Engine) CurrentColor() core.RGB {
	return e.cfg.Palette.At(e.colorIndex)
}
