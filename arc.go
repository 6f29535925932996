package lvdraw

import (
	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// ArcDsc draws a ring segment around Center. Angles are in degrees with 0
// pointing right and angles growing clockwise. The arc runs clockwise from
// Start to End unless CounterClockwise is set. Equal angles draw nothing
// and a span of 360 degrees or more draws the full ring.
type ArcDsc struct {
	Base
	Center geom.Point
	Radius float64 // outer radius
	Width  float64 // ring thickness; zero fills up to the center
	Start  float64
	End    float64
	Color  pixel.Color

	CounterClockwise bool
	// Rounded ends the arc with half-disc caps.
	Rounded bool
}

// Kind implements Descriptor.
func (ArcDsc) Kind() Kind { return KindArc }

// Bounds implements Descriptor.
func (d ArcDsc) Bounds() geom.Area {
	if !(d.Radius > 0) {
		return geom.Area{}
	}
	return raster.ArcBounds(d.Center, d.Radius)
}

func drawArc(l *Layer, d Descriptor, area geom.Area) error {
	dsc, ok := as[ArcDsc](d)
	if !ok {
		return badDescriptor(d)
	}
	opa := dsc.opa()
	if opa == 0 || dsc.Color.A == 0 {
		return nil
	}
	width := dsc.Width
	if width <= 0 {
		width = dsc.Radius + 1
	}
	m := raster.NewMask(area)
	raster.Arc(m, dsc.Center, raster.ArcStyle{
		Radius:           dsc.Radius,
		Width:            width,
		Start:            dsc.Start,
		End:              dsc.End,
		CounterClockwise: dsc.CounterClockwise,
		Rounded:          dsc.Rounded,
	})
	l.blendMask(m, dsc.Color, opa, dsc.Base)
	return nil
}
