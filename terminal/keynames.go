package terminal

import "strings"

// keyToName maps Key constants to canonical names, used for debug logging
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyCtrlC: "ctrl_c",
	KeyCtrlL: "ctrl_l",
	KeyCtrlZ: "ctrl_z",
}

// KeyName returns the canonical string name for a Key constant
// Returns empty string for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// String renders modifiers as a "shift+alt+ctrl" style prefix list
func (m Modifier) String() string {
	var parts []string
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	return strings.Join(parts, "+")
}
