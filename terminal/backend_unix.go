//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/paint2d/core"
)

// ANSI implements Terminal with direct escape sequences over a raw file descriptor.
// Output is buffered and only reaches the device on Flush.
type ANSI struct {
	in        *os.File
	inFd      int
	out       io.Writer
	outFd     int // -1 when out is not a file
	colorMode ColorMode
	w         *bufio.Writer

	mu        sync.Mutex
	oldState  *term.State
	exclusive bool

	events chan Event
	errCh  chan error

	readStop chan struct{}
	readDone chan struct{}

	resizeStop chan struct{}
	resizeDone chan struct{}
}

// NewANSI creates an ANSI terminal reading keys from in and writing to out.
// in may be nil for output-only use.
func NewANSI(in *os.File, out io.Writer, mode ColorMode) *ANSI {
	t := &ANSI{
		in:        in,
		inFd:      -1,
		out:       out,
		outFd:     -1,
		colorMode: mode,
		w:         bufio.NewWriterSize(out, 64*1024),
		events:    make(chan Event, 256),
		errCh:     make(chan error, 1),
	}
	if in != nil {
		t.inFd = int(in.Fd())
	}
	if f, ok := out.(*os.File); ok {
		t.outFd = int(f.Fd())
	}
	return t
}

// ColorMode returns the output color mode
func (t *ANSI) ColorMode() ColorMode {
	return t.colorMode
}

// EnterExclusiveMode enters the alternate screen, disables auto-wrap and starts resize detection
func (t *ANSI) EnterExclusiveMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.exclusive {
		return nil
	}

	t.w.Write(csiAltScreenEnter)
	// Prevents terminal scroll/wrap on bottom-right corner write
	t.w.Write(csiAutoWrapOff)
	t.w.Write(csiSGR0)
	t.w.Write(csiClear)
	if err := t.w.Flush(); err != nil {
		return errors.Wrap(err, "enter alternate screen")
	}
	t.exclusive = true

	if t.outFd >= 0 {
		t.startResizeWatch()
	}
	return nil
}

// LeaveExclusiveMode restores cursor, attributes, wrapping and the main screen buffer
func (t *ANSI) LeaveExclusiveMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.exclusive {
		return nil
	}
	t.exclusive = false
	t.stopResizeWatch()

	t.w.Write(csiSGR0)
	t.w.Write(cursorStyleSeq[CursorStyleDefault])
	t.w.Write(csiCursorShow)
	t.w.Write(csiAltScreenExit)
	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	t.w.Write(csiAutoWrapOn)
	return errors.Wrap(t.w.Flush(), "leave alternate screen")
}

// SetRawInput switches the input fd to raw mode and starts the key reader, or restores it
func (t *ANSI) SetRawInput(enabled bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inFd < 0 {
		if enabled {
			return errors.New("raw input requested without an input file")
		}
		return nil
	}

	if enabled {
		if t.oldState != nil {
			return nil
		}
		if !term.IsTerminal(t.inFd) {
			return errors.New("stdin is not a terminal")
		}
		old, err := term.MakeRaw(t.inFd)
		if err != nil {
			return errors.Wrap(err, "enable raw mode")
		}
		t.oldState = old
		t.startReader()
		return nil
	}

	if t.oldState == nil {
		return nil
	}
	t.stopReader()
	err := term.Restore(t.inFd, t.oldState)
	t.oldState = nil
	return errors.Wrap(err, "restore terminal mode")
}

// SetCursorVisible shows/hides the hardware cursor
func (t *ANSI) SetCursorVisible(visible bool) error {
	if visible {
		_, err := t.w.Write(csiCursorShow)
		return err
	}
	_, err := t.w.Write(csiCursorHide)
	return err
}

// SetCursorGlyph emits a DECSCUSR cursor shape sequence
func (t *ANSI) SetCursorGlyph(style CursorStyle) error {
	if int(style) >= len(cursorStyleSeq) {
		style = CursorStyleDefault
	}
	_, err := t.w.Write(cursorStyleSeq[style])
	return err
}

// Size returns the output dimensions, falling back to 80x24 when unknown
func (t *ANSI) Size() (int, int) {
	if t.outFd < 0 {
		return 80, 24
	}
	return getTerminalSize(t.outFd)
}

// PollEvents waits up to timeout for the first event, then drains everything already pending
func (t *ANSI) PollEvents(timeout time.Duration) ([]Event, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var out []Event
	select {
	case ev := <-t.events:
		out = append(out, ev)
	case err := <-t.errCh:
		return nil, err
	case <-timer.C:
		return nil, nil
	}

	for {
		select {
		case ev := <-t.events:
			out = append(out, ev)
		default:
			return out, nil
		}
	}
}

// MoveCursor positions the write cursor (0-indexed)
func (t *ANSI) MoveCursor(x, y int) error {
	writeCursorPos(t.w, x, y)
	return t.pendingErr()
}

// WriteText writes s with the current attributes
func (t *ANSI) WriteText(s string) error {
	_, err := t.w.WriteString(s)
	return err
}

// SetForeground sets the foreground color
func (t *ANSI) SetForeground(c core.RGB) error {
	writeColor(t.w, t.colorMode, c.R, c.G, c.B, false)
	return t.pendingErr()
}

// SetBackground sets the background color
func (t *ANSI) SetBackground(c core.RGB) error {
	writeColor(t.w, t.colorMode, c.R, c.G, c.B, true)
	return t.pendingErr()
}

// ResetStyle returns to default attributes
func (t *ANSI) ResetStyle() error {
	_, err := t.w.Write(csiSGR0)
	return err
}

// ClearScreen clears the screen and homes the cursor
func (t *ANSI) ClearScreen() error {
	_, err := t.w.Write(csiClear)
	return err
}

// Flush writes buffered output to the device
func (t *ANSI) Flush() error {
	return errors.Wrap(t.w.Flush(), "flush terminal output")
}

// pendingErr surfaces the sticky error of the buffered writer, nil when healthy
func (t *ANSI) pendingErr() error {
	_, err := t.w.Write(nil)
	return err
}

// startReader launches the raw input goroutine; caller holds mu
func (t *ANSI) startReader() {
	t.readStop = make(chan struct{})
	t.readDone = make(chan struct{})
	stop, done := t.readStop, t.readDone
	core.Go(func() { t.readLoop(stop, done) })
}

// stopReader signals the reader and waits briefly; caller holds mu
func (t *ANSI) stopReader() {
	if t.readStop == nil {
		return
	}
	close(t.readStop)
	// Wait with timeout - don't block forever if read is stuck
	select {
	case <-t.readDone:
	case <-time.After(2 * escapeTimeout):
	}
	t.readStop, t.readDone = nil, nil
}

// readLoop polls the input fd and feeds the parser until stopped or the input fails
func (t *ANSI) readLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	parser := newInputParser()
	buf := make([]byte, 256)
	timeoutMs := int(escapeTimeout / time.Millisecond)

	for {
		select {
		case <-stop:
			return
		default:
		}

		// Poll with timeout to allow checking stop and resolving lone ESC
		fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			t.fail(errors.Wrap(err, "poll input"))
			return
		}

		if n == 0 {
			if !t.send(parser.flush(), stop) {
				return
			}
			continue
		}

		rn, err := unix.Read(t.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			t.fail(errors.Wrap(err, "read input"))
			return
		}
		if rn == 0 {
			t.fail(errors.Wrap(io.EOF, "read input"))
			return
		}

		if !t.send(parser.feed(buf[:rn]), stop) {
			return
		}
	}
}

// send delivers events in order, blocking rather than dropping; false when stopped
func (t *ANSI) send(events []Event, stop <-chan struct{}) bool {
	for _, ev := range events {
		select {
		case t.events <- ev:
		case <-stop:
			return false
		}
	}
	return true
}

// fail records the first fatal input error for PollEvents
func (t *ANSI) fail(err error) {
	select {
	case t.errCh <- err:
	default:
	}
}

// startResizeWatch forwards SIGWINCH as resize events; caller holds mu
func (t *ANSI) startResizeWatch() {
	t.resizeStop = make(chan struct{})
	t.resizeDone = make(chan struct{})
	stop, done := t.resizeStop, t.resizeDone

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	core.Go(func() {
		defer close(done)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-stop:
				return
			case <-sigCh:
				w, h := t.Size()
				if !t.send([]Event{{Type: EventResize, Width: w, Height: h}}, stop) {
					return
				}
			}
		}
	})
}

// stopResizeWatch stops SIGWINCH forwarding; caller holds mu
func (t *ANSI) stopResizeWatch() {
	if t.resizeStop == nil {
		return
	}
	close(t.resizeStop)
	<-t.resizeDone
	t.resizeStop, t.resizeDone = nil, nil
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// EmergencyReset restores a usable terminal after a crash, best-effort, errors ignored
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// resetTerminalMode attempts to restore terminal to cooked mode
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
	}
}

// OpenANSI returns an ANSI terminal bound to the process stdin/stdout
func OpenANSI(mode ColorMode) (Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal")
	}
	return NewANSI(os.Stdin, os.Stdout, mode), nil
}
