// Package pixel defines the working color representation of lvdraw and the
// conversions between it and the destination buffer formats.
package pixel

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidColor is returned by ParseHex for malformed input.
var ErrInvalidColor = errors.New("pixel: invalid color")

// Color is the engine's working color: 8-bit straight (non-premultiplied)
// red, green, blue and alpha.
type Color struct {
	R, G, B, A uint8
}

// Opa is an opacity in the range 0 (transparent) to 255 (cover).
type Opa uint8

// Common opacity values.
const (
	OpaTransp Opa = 0
	Opa10     Opa = 25
	Opa20     Opa = 51
	Opa30     Opa = 76
	Opa40     Opa = 102
	Opa50     Opa = 127
	Opa60     Opa = 153
	Opa70     Opa = 178
	Opa80     Opa = 204
	Opa90     Opa = 229
	OpaCover  Opa = 255
)

// Named colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// New returns a color from straight-alpha components.
func New(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA converts c to the standard library straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Opaque returns c with alpha 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Brightness returns the perceived brightness of c in 0..255.
func (c Color) Brightness() uint8 {
	return uint8((3*uint16(c.R) + uint16(c.B) + 4*uint16(c.G)) >> 3)
}

// String formats c as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Mix blends the RGB channels of fg over bg with weight mix
// (255 returns fg, 0 returns bg). The alpha of bg is kept.
func Mix(fg, bg Color, mix Opa) Color {
	m := uint16(mix)
	inv := 255 - m
	return Color{
		R: uint8((uint16(fg.R)*m + uint16(bg.R)*inv + 127) / 255),
		G: uint8((uint16(fg.G)*m + uint16(bg.G)*inv + 127) / 255),
		B: uint8((uint16(fg.B)*m + uint16(bg.B)*inv + 127) / 255),
		A: bg.A,
	}
}

// ParseHex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa".
// The leading '#' is optional.
func ParseHex(s string) (Color, error) {
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var v [8]uint8
	for i := 0; i < len(s); i++ {
		n, ok := hexNibble(s[i])
		if !ok || i >= len(v) {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		v[i] = n
	}

	switch len(s) {
	case 3:
		return Color{v[0] * 17, v[1] * 17, v[2] * 17, 255}, nil
	case 4:
		return Color{v[0] * 17, v[1] * 17, v[2] * 17, v[3] * 17}, nil
	case 6:
		return Color{v[0]<<4 | v[1], v[2]<<4 | v[3], v[4]<<4 | v[5], 255}, nil
	case 8:
		return Color{v[0]<<4 | v[1], v[2]<<4 | v[3], v[4]<<4 | v[5], v[6]<<4 | v[7]}, nil
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
