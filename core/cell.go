package core

// Cell is a single canvas cell: either empty (transparent) or painted with a color.
// Zero value is an empty cell, so black remains a legitimate paint color.
type Cell struct {
	color  RGB
	filled bool
}

// Empty returns an unpainted cell
func Empty() Cell {
	return Cell{}
}

// Colored returns a cell painted with c
func Colored(c RGB) Cell {
	return Cell{color: c, filled: true}
}

// Color returns the painted color and true, or the zero color and false for an empty cell
func (c Cell) Color() (RGB, bool) {
	return c.color, c.filled
}

// IsEmpty reports whether the cell holds no color
func (c Cell) IsEmpty() bool {
	return !c.filled
}
