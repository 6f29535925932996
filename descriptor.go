package lvdraw

import (
	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/internal/blend"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// Kind identifies the rasterizer of a descriptor.
type Kind uint8

// Descriptor kinds.
const (
	KindRect Kind = iota
	KindLine
	KindArc
	KindTriangle
	KindImage
	KindLabel

	kindCount
)

var kindNames = [kindCount]string{"rect", "line", "arc", "triangle", "image", "label"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Descriptor is one draw instruction. Descriptors are read during Submit
// and not retained.
type Descriptor interface {
	Kind() Kind
	// Bounds returns the area the descriptor can touch.
	Bounds() geom.Area
}

// BlendMode selects how a source color combines with the destination.
type BlendMode = blend.Mode

// Blend modes.
const (
	BlendNormal      = blend.ModeNormal
	BlendAdditive    = blend.ModeAdditive
	BlendSubtractive = blend.ModeSubtractive
	BlendMultiply    = blend.ModeMultiply
)

// ParseBlendMode returns the mode with the given lower-case name.
func ParseBlendMode(s string) (BlendMode, bool) {
	return blend.ParseMode(s)
}

// Side selects the edges of a border.
type Side = raster.Side

// Border sides.
const (
	SideNone   = raster.SideNone
	SideBottom = raster.SideBottom
	SideTop    = raster.SideTop
	SideLeft   = raster.SideLeft
	SideRight  = raster.SideRight
	SideFull   = raster.SideFull
)

// RadiusCircle requests the largest corner radius of a rectangle.
const RadiusCircle = raster.RadiusCircle

// GradDir is the direction of a two-stop gradient.
type GradDir uint8

// Gradient directions.
const (
	GradNone GradDir = iota
	GradHorizontal
	GradVertical
)

// Base holds the fields shared by every descriptor.
type Base struct {
	// Opa scales the whole draw. A zero Opa reads as OpaCover unless
	// OpaSet is true.
	Opa    pixel.Opa
	OpaSet bool

	BlendMode BlendMode
	// Filters transform source colors before blending, in order.
	Filters []pixel.Filter
}

// opa returns the effective opacity of b.
func (b Base) opa() uint8 {
	if b.Opa == 0 && !b.OpaSet {
		return 255
	}
	return uint8(b.Opa)
}

// withFilter returns a copy of b with f appended to its filter chain.
func (b Base) withFilter(f pixel.Filter) Base {
	chain := make([]pixel.Filter, 0, len(b.Filters)+1)
	b.Filters = append(append(chain, b.Filters...), f)
	return b
}

// handler rasterizes one descriptor kind into area, which is the
// descriptor's bounds clipped to the layer clip.
type handler func(l *Layer, d Descriptor, area geom.Area) error

var dispatch = [kindCount]handler{
	KindRect:     drawRect,
	KindLine:     drawLine,
	KindArc:      drawArc,
	KindTriangle: drawTriangle,
	KindImage:    drawImage,
	KindLabel:    drawLabel,
}

// as extracts a descriptor of type D passed by value or by pointer.
func as[D any](d Descriptor) (D, bool) {
	if v, ok := any(d).(D); ok {
		return v, true
	}
	if v, ok := any(d).(*D); ok && v != nil {
		return *v, true
	}
	var zero D
	return zero, false
}

// defaultSlot names a descriptor field and the value it takes when left
// zero.
type defaultSlot[D any, V comparable] struct {
	field func(*D) *V
	value V
}

// applyDefaults fills every zero slot of d listed in table.
func applyDefaults[D any, V comparable](d *D, table []defaultSlot[D, V]) {
	var zero V
	for _, s := range table {
		if p := s.field(d); *p == zero {
			*p = s.value
		}
	}
}

// scaleOpa combines two opacities.
func scaleOpa(a uint8, b pixel.Opa) uint8 {
	return blend.Alpha(a, uint8(b))
}

// gradientAt returns the color at position t (0..255) between two stops.
func gradientAt(from, to pixel.Color, t uint8) pixel.Color {
	c := pixel.Mix(to, from, pixel.Opa(t))
	c.A = uint8((int(from.A)*(255-int(t)) + int(to.A)*int(t) + 127) / 255)
	return c
}
