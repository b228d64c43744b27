// Package cursor implements the paint cursor: a position bound to a 2D extent
// whose movement wraps around at every edge.
package cursor

// Direction identifies one of the four movement directions
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Cursor holds a position inside a width x height extent.
// X is the horizontal position, Y the vertical one; both are 0-indexed.
// After any Move or Normalize, 0 <= X < width and 0 <= Y < height.
type Cursor struct {
	x, y          int
	width, height int
}

// New creates a cursor at the origin bound to the given extent.
// Extents below 1 are raised to 1.
func New(width, height int) *Cursor {
	return &Cursor{
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Position returns the current (x, y)
func (c *Cursor) Position() (int, int) {
	return c.x, c.y
}

// X returns the horizontal position
func (c *Cursor) X() int { return c.x }

// Y returns the vertical position
func (c *Cursor) Y() int { return c.y }

// Extent returns the bound used for wrap calculations
func (c *Cursor) Extent() (int, int) {
	return c.width, c.height
}

// Move moves the cursor distance cells along one axis, wrapping at the edges.
// The overshoot past an edge reappears measured from the opposite edge, for any distance.
func (c *Cursor) Move(dir Direction, distance int) {
	switch dir {
	case Left:
		c.x = wrap(c.x-distance, c.width)
	case Right:
		c.x = wrap(c.x+distance, c.width)
	case Up:
		c.y = wrap(c.y-distance, c.height)
	case Down:
		c.y = wrap(c.y+distance, c.height)
	}
}

// Resize updates the extent without relocating the cursor; call Normalize afterwards
func (c *Cursor) Resize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
}

// Normalize wraps an out-of-range position back into the extent (a zero-distance move)
func (c *Cursor) Normalize() {
	c.x = wrap(c.x, c.width)
	c.y = wrap(c.y, c.height)
}

// Reset returns the cursor to the origin
func (c *Cursor) Reset() {
	c.x, c.y = 0, 0
}

// wrap returns p mod extent in [0, extent)
func wrap(p, extent int) int {
	if extent <= 0 {
		return 0
	}
	p %= extent
	if p < 0 {
		p += extent
	}
	return p
}
