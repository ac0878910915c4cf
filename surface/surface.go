// Package surface defines the drawable region the particle field paints into
// and the adapters that back it.
package surface

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a 2D drawable region sized in pixels. Resize must be called at
// least once before drawing and again whenever the host viewport changes.
type Surface interface {
	Resize(width, height int)
	Clear()
	DrawDisc(x, y, radius float64, c Color)
	DrawLine(x1, y1, x2, y2 float64, c Color, width float64)
}

// Color is an RGB triple with a straight (non-premultiplied) alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Accent is rgb(99,102,241), the default fill for particles and lines.
var Accent = Color{R: 99, G: 102, B: 241, A: 1}

// ParseHex reads "#rrggbb" (or "#rgb") into an opaque Color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// WithAlpha returns c with its alpha replaced, clamped into [0,1].
func (c Color) WithAlpha(a float64) Color {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	c.A = a
	return c
}

// Hex formats the RGB part as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// NRGBA converts c to an image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}

// Over composites c onto an opaque background and returns the resulting opaque colour.
func (c Color) Over(bg Color) Color {
	r, g, b := bg.colorful().BlendRgb(c.colorful(), c.A).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 1}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// MarshalText encodes the RGB part as a hex string. Alpha is per element and
// never part of configuration.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses a hex colour string.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
