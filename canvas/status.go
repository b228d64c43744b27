package canvas

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/paint2d/constants"
	"github.com/lixenwraith/paint2d/core"
)

// segment is a run of status bar text in one style
type segment struct {
	text   string
	fg, bg core.RGB
}

// statusSegments builds the status bar content left to right
func (e *Engine) statusSegments() []segment {
	x, y := e.cursor.Position()
	w, h := e.grid.Width(), e.grid.Height()
	current := e.CurrentColor()

	return []segment{
		{text: constants.ModeText, fg: constants.StatusModeFg, bg: constants.StatusModeBg},
		{text: fmt.Sprintf(" %d,%d  %dx%d  ", x, y, w, h), fg: constants.StatusFg, bg: constants.StatusBg},
		{text: strings.Repeat(" ", constants.SwatchWidth), fg: current.Contrast(), bg: current},
		{text: fmt.Sprintf(" %d/%d %s  ", e.colorIndex+1, e.cfg.Palette.Len(), current.Hex()), fg: constants.StatusFg, bg: constants.StatusBg},
		{text: constants.StatusHelp, fg: constants.StatusFg, bg: constants.StatusBg},
	}
}

// fitSegments truncates segments to a total display width
func fitSegments(segs []segment, width int) []segment {
	out := make([]segment, 0, len(segs))
	remaining := width
	for _, s := range segs {
		if remaining <= 0 {
			break
		}
		w := runewidth.StringWidth(s.text)
		if w > remaining {
			// Nothing after a cut segment is shown
			s.text = runewidth.Truncate(s.text, remaining, "")
			if s.text != "" {
				out = append(out, s)
			}
			break
		}
		out = append(out, s)
		remaining -= w
	}
	return out
}

// drawStatus paints the status row below the canvas, skipped when the viewport has no room
func (e *Engine) drawStatus() error {
	row := e.grid.Height()
	if row >= e.viewHeight {
		return nil
	}

	// Background fill for the full row
	if err := e.term.MoveCursor(0, row); err != nil {
		return err
	}
	if err := e.term.SetBackground(constants.StatusBg); err != nil {
		return err
	}
	if err := e.term.WriteText(strings.Repeat(" ", e.viewWidth)); err != nil {
		return err
	}

	if err := e.term.MoveCursor(0, row); err != nil {
		return err
	}
	for _, s := range fitSegments(e.statusSegments(), e.viewWidth) {
		if err := e.term.SetForeground(s.fg); err != nil {
			return err
		}
		if err := e.term.SetBackground(s.bg); err != nil {
			return err
		}
		if err := e.term.WriteText(s.text); err != nil {
			return err
		}
	}
	return nil
}
