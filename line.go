package lvdraw

import (
	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// LineDsc draws a straight segment from P1 to P2.
type LineDsc struct {
	Base
	P1, P2 geom.Point
	Color  pixel.Color
	Width  float64 // zero reads as 1
	// RoundStart and RoundEnd add a half-disc cap at P1 and P2.
	RoundStart bool
	RoundEnd   bool
	// DashWidth and DashGap split the line into dashes when both are
	// positive.
	DashWidth float64
	DashGap   float64
}

var lineWidthDefaults = []defaultSlot[LineDsc, float64]{
	{func(d *LineDsc) *float64 { return &d.Width }, 1},
}

// Kind implements Descriptor.
func (LineDsc) Kind() Kind { return KindLine }

// Bounds implements Descriptor.
func (d LineDsc) Bounds() geom.Area {
	return raster.LineBounds(d.P1, d.P2, d.Width)
}

func drawLine(l *Layer, d Descriptor, area geom.Area) error {
	dsc, ok := as[LineDsc](d)
	if !ok {
		return badDescriptor(d)
	}
	applyDefaults(&dsc, lineWidthDefaults)
	opa := dsc.opa()
	if opa == 0 || dsc.Color.A == 0 {
		return nil
	}
	m := raster.NewMask(area)
	raster.Line(m, dsc.P1, dsc.P2, raster.LineStyle{
		Width:      dsc.Width,
		RoundStart: dsc.RoundStart,
		RoundEnd:   dsc.RoundEnd,
		DashWidth:  dsc.DashWidth,
		DashGap:    dsc.DashGap,
	})
	l.blendMask(m, dsc.Color, opa, dsc.Base)
	return nil
}
