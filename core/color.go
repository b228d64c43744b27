package core

import "fmt"

// RGB stores explicit 8-bit color channels, decoupled from any terminal backend
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Hex returns the color in #rrggbb notation
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luminance returns perceived brightness in 0-255 (Rec. 601 weights)
func (c RGB) Luminance() int {
	return (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
}

// Contrast returns black or white, whichever reads better on top of c
func (c RGB) Contrast() RGB {
	if c.Luminance() > 127 {
		return RGBBlack
	}
	return RGBWhite
}
