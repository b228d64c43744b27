// Package palette holds the paint colors a user cycles through.
package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/paint2d/core"
)

// MaxColors is the number of palette slots addressable by the digit keys 1-9
const MaxColors = 9

// Palette is an ordered, non-empty list of paint colors
type Palette struct {
	colors []core.RGB
}

// Default returns white, black and seven evenly spaced saturated hues
func Default() Palette {
	colors := []core.RGB{core.RGBWhite, core.RGBBlack}
	hues := MaxColors - len(colors)
	for i := 0; i < hues; i++ {
		h := float64(i) * 360 / float64(hues)
		colors = append(colors, fromColorful(colorful.Hsv(h, 0.85, 0.95)))
	}
	return Palette{colors: colors}
}

// Parse builds a palette from a comma separated list of hex colors ("#ff0000,#00ff00").
// An empty string yields the default palette.
func Parse(list string) (Palette, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return Default(), nil
	}

	parts := strings.Split(list, ",")
	if len(parts) > MaxColors {
		return Palette{}, errors.Errorf("palette has %d colors, at most %d allowed", len(parts), MaxColors)
	}

	colors := make([]core.RGB, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, "#") {
			p = "#" + p
		}
		c, err := colorful.Hex(p)
		if err != nil {
			return Palette{}, errors.Wrapf(err, "palette color %q", p)
		}
		colors = append(colors, fromColorful(c))
	}
	return Palette{colors: colors}, nil
}

// New builds a palette from explicit colors; an empty list yields the default palette
func New(colors ...core.RGB) Palette {
	if len(colors) == 0 {
		return Default()
	}
	if len(colors) > MaxColors {
		colors = colors[:MaxColors]
	}
	return Palette{colors: append([]core.RGB(nil), colors...)}
}

// Len returns the number of colors
func (p Palette) Len() int {
	if len(p.colors) == 0 {
		return Default().Len()
	}
	return len(p.colors)
}

// At returns the color at index i, wrapping around the palette
func (p Palette) At(i int) core.RGB {
	if len(p.colors) == 0 {
		p = Default()
	}
	n := len(p.colors)
	return p.colors[((i%n)+n)%n]
}

// Colors returns a copy of the palette entries
func (p Palette) Colors() []core.RGB {
	if len(p.colors) == 0 {
		p = Default()
	}
	return append([]core.RGB(nil), p.colors...)
}

func fromColorful(c colorful.Color) core.RGB {
	r, g, b := c.Clamped().RGB255()
	return core.RGB{R: r, G: g, B: b}
}
