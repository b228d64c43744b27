//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrANSIUnsupported is returned by OpenANSI on platforms without termios/poll
var ErrANSIUnsupported = errors.New("ansi backend is not supported on this platform")

// OpenANSI is unavailable on this platform; use the tcell backend
func OpenANSI(mode ColorMode) (Terminal, error) {
	return nil, ErrANSIUnsupported
}

// EmergencyReset writes the escape sequences that leave the alternate screen
func EmergencyReset(w io.Writer) {
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiAutoWrapOn)
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
