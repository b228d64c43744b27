package constants

import "github.com/lixenwraith/paint2d/core"

// UI Layout Constants
const (
	// StatusRows is the number of rows reserved below the canvas when the status bar is on
	StatusRows = 1

	// ModeText is the status bar mode indicator
	ModeText = " PAINT "

	// StatusHelp lists the key bindings shown in the status bar
	StatusHelp = "hjkl/arrows move  HJKL/shift fast  space paint  x erase  1-9/tab color  C clear  q quit"

	// SwatchWidth is the width of the current color swatch in the status bar
	SwatchWidth = 2
)

// Cursor Glyph
const (
	// CursorGlyph is drawn at the cursor position over the canvas
	CursorGlyph = "+"
)

// Status Bar Colors
var (
	StatusFg     = core.RGB{R: 220, G: 220, B: 220}
	StatusBg     = core.RGB{R: 40, G: 40, B: 48}
	StatusModeFg = core.RGB{R: 0, G: 0, B: 0}
	StatusModeBg = core.RGB{R: 130, G: 190, B: 255}
)
