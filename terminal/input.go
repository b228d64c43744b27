package terminal

import (
	"time"
	"unicode/utf8"
)

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// inputParser turns raw stdin bytes into key events.
// It keeps a persistent buffer so sequences split across reads are assembled, not corrupted.
type inputParser struct {
	buf []byte
}

func newInputParser() *inputParser {
	return &inputParser{buf: make([]byte, 0, 256)}
}

// feed appends data and returns every complete event, keeping an incomplete tail buffered
func (p *inputParser) feed(data []byte) []Event {
	p.buf = append(p.buf, data...)

	events, consumed := parseInput(p.buf)

	// Compact buffer
	if consumed >= len(p.buf) {
		p.buf = p.buf[:0]
	} else if consumed > 0 {
		n := copy(p.buf, p.buf[consumed:])
		p.buf = p.buf[:n]
	}
	return events
}

// flush is called when no input arrived within escapeTimeout.
// A pending lone ESC becomes a standalone Escape key; any other incomplete tail is dropped.
func (p *inputParser) flush() []Event {
	if len(p.buf) == 0 {
		return nil
	}
	lone := len(p.buf) == 1 && p.buf[0] == 0x1b
	p.buf = p.buf[:0]
	if lone {
		return []Event{{Type: EventKey, Key: KeyEscape}}
	}
	return nil
}

// parseInput parses raw bytes into events and returns bytes consumed (stop on incomplete sequence)
func parseInput(data []byte) ([]Event, int) {
	var events []Event
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			events = append(events, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return events, i
			}

			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				// Incomplete sequence, wait for more data
				return events, i
			}

			// Only emit if not a swallowed unknown sequence
			if ev.Key != KeyNone {
				events = append(events, ev)
			}
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			if ev := parseControl(b); ev.Key != KeyNone {
				events = append(events, ev)
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			events = append(events, Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			// Incomplete UTF-8, wait for more data
			return events, i
		}
		rn, size := utf8.DecodeRune(data[i:])
		if rn != utf8.RuneError {
			events = append(events, Event{Type: EventKey, Key: KeyRune, Rune: rn})
		}
		i += size
	}
	return events, i
}

// parseEscape attempts to parse an escape sequence, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	// ESC ESC -> Alt+Escape
	if data[1] == 0x1b {
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	}

	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+Control character (ESC + 0x00-0x1F)
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}

	// Alt+printable
	if data[1] < 0x7f {
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	// ESC followed by a non-ASCII byte: treat as standalone ESC, reparse the rest
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI parses CSI sequence without allocation
func parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	end := 2
	maxScan := min(len(data), 32)

	for end < maxScan {
		b := data[end]
		end++
		// Final byte range per ECMA-48
		if b >= 0x40 && b <= 0x7e {
			if key, mod, ok := lookupCSI(data[2:end]); ok {
				return end, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			// Unknown but valid CSI syntax - consume and return KeyNone
			return end, Event{Type: EventKey, Key: KeyNone}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed: drop the introducer and let the rest reparse
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}

	if maxScan == 32 {
		// Overlong parameter run, discard it
		return maxScan, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{} // Incomplete
}

// parseSS3 parses SS3 sequence without allocation, returns length even for unknown sequences
func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	// Unknown SS3 - consume to prevent garbage
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x03:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case 0x08: // Ctrl+H or Backspace
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09: // Tab
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR (Enter)
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x0c:
		return Event{Type: EventKey, Key: KeyCtrlL}
	case 0x1a:
		return Event{Type: EventKey, Key: KeyCtrlZ}
	case 0x1b: // ESC (shouldn't reach here normally)
		return Event{Type: EventKey, Key: KeyEscape}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
