package core

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Grid is a row-major 2D store of canvas cells
type Grid struct {
	width  int
	height int
	lines  [][]Cell
}

// NewGrid creates an empty grid with the given dimensions; negative dimensions are treated as zero
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	lines := make([][]Cell, height)
	for y := 0; y < height; y++ {
		lines[y] = make([]Cell, width)
	}
	return &Grid{
		width:  width,
		height: height,
		lines:  lines,
	}
}

// Width returns the grid width
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height
func (g *Grid) Height() int {
	return g.height
}

// Resize resizes the grid, preserving existing content where coordinates remain valid.
// Content outside the new bounds is dropped; newly exposed cells are empty.
func (g *Grid) Resize(newWidth, newHeight int) {
	newWidth, newHeight = max(newWidth, 0), max(newHeight, 0)
	newLines := make([][]Cell, newHeight)
	for y := 0; y < newHeight; y++ {
		newLines[y] = make([]Cell, newWidth)
		if y < g.height {
			copy(newLines[y], g.lines[y])
		}
	}

	g.width = newWidth
	g.height = newHeight
	g.lines = newLines
}

// Get returns the cell at the given position
func (g *Grid) Get(x, y int) (Cell, bool) {
	if !g.Contains(x, y) {
		return Cell{}, false
	}
	return g.lines[y][x], true
}

// Set sets the cell at the given position, returns false when out of bounds
func (g *Grid) Set(x, y int, cell Cell) bool {
	if !g.Contains(x, y) {
		return false
	}
	g.lines[y][x] = cell
	return true
}

// Contains reports whether (x, y) lies inside the grid
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Clear empties every cell
func (g *Grid) Clear() {
	for y := range g.lines {
		clear(g.lines[y])
	}
}

// Filled returns the number of painted cells
func (g *Grid) Filled() int {
	n := 0
	for y := range g.lines {
		for _, c := range g.lines[y] {
			if !c.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Row returns row y for read-only iteration, nil when out of range
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.lines[y]
}
