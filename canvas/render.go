package canvas

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/constants"
	"github.com/lixenwraith/paint2d/core"
)

// Redraw repaints the whole screen: canvas rows, status bar, cursor glyph, then flush.
// Every cell is written on every frame, so repeated calls produce the same screen.
func (e *Engine) Redraw() error {
	if e.closed {
		return ErrClosed
	}
	if !e.initialized {
		return ErrNotInitialized
	}

	if err := e.term.ResetStyle(); err != nil {
		return errors.Wrap(err, "reset style")
	}
	if err := e.term.ClearScreen(); err != nil {
		return errors.Wrap(err, "clear screen")
	}

	for y := 0; y < e.grid.Height(); y++ {
		if err := e.drawRow(y); err != nil {
			return errors.Wrapf(err, "draw row %d", y)
		}
	}

	if e.cfg.ShowStatus {
		if err := e.drawStatus(); err != nil {
			return errors.Wrap(err, "draw status")
		}
	}

	if err := e.drawCursor(); err != nil {
		return errors.Wrap(err, "draw cursor")
	}

	if err := e.term.ResetStyle(); err != nil {
		return errors.Wrap(err, "reset style")
	}
	return errors.Wrap(e.term.Flush(), "flush")
}

// drawRow writes row y as runs of blanks sharing a background
func (e *Engine) drawRow(y int) error {
	if err := e.term.MoveCursor(0, y); err != nil {
		return err
	}

	row := e.grid.Row(y)
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && row[end] == row[start] {
			end++
		}

		if err := e.setCellStyle(row[start]); err != nil {
			return err
		}
		if err := e.term.WriteText(strings.Repeat(" ", end-start)); err != nil {
			return err
		}
		start = end
	}
	return nil
}

// setCellStyle selects the painted background, or the terminal default for an empty cell
func (e *Engine) setCellStyle(cell core.Cell) error {
	if c, ok := cell.Color(); ok {
		return e.term.SetBackground(c)
	}
	return e.term.ResetStyle()
}

// drawCursor overlays the glyph in the paint color, switching to a contrasting color
// when the cell below already carries the paint color
func (e *Engine) drawCursor() error {
	x, y := e.cursor.Position()
	cell, ok := e.grid.Get(x, y)
	if !ok {
		return nil
	}

	if err := e.term.MoveCursor(x, y); err != nil {
		return err
	}
	if err := e.setCellStyle(cell); err != nil {
		return err
	}

	fg := e.CurrentColor()
	if c, filled := cell.Color(); filled && c == fg {
		fg = fg.Contrast()
	}
	if err := e.term.SetForeground(fg); err != nil {
		return err
	}
	return e.term.WriteText(constants.CursorGlyph)
}
