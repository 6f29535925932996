package lvdraw

import (
	"fmt"

	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// RectDsc draws a rectangle with optional rounded corners, background
// gradient, border, outline and shadow. The parts are drawn in the order
// shadow, background, border, outline.
//
// A part is skipped when its color is transparent or its width is zero.
// Part opacities left zero read as OpaCover.
type RectDsc struct {
	Base
	Area   geom.Area
	Radius int // corner radius; RadiusCircle for a pill

	BgColor     pixel.Color
	BgOpa       pixel.Opa
	BgGradColor pixel.Color
	BgGradDir   GradDir

	BorderColor pixel.Color
	BorderWidth int
	BorderOpa   pixel.Opa
	BorderSide  Side // zero reads as SideFull

	OutlineColor pixel.Color
	OutlineWidth int
	OutlinePad   int
	OutlineOpa   pixel.Opa

	ShadowColor   pixel.Color
	ShadowWidth   int
	ShadowSpread  int
	ShadowOffsetX int
	ShadowOffsetY int
	ShadowOpa     pixel.Opa
}

var rectOpaDefaults = []defaultSlot[RectDsc, pixel.Opa]{
	{func(d *RectDsc) *pixel.Opa { return &d.BgOpa }, pixel.OpaCover},
	{func(d *RectDsc) *pixel.Opa { return &d.BorderOpa }, pixel.OpaCover},
	{func(d *RectDsc) *pixel.Opa { return &d.OutlineOpa }, pixel.OpaCover},
	{func(d *RectDsc) *pixel.Opa { return &d.ShadowOpa }, pixel.OpaCover},
}

var rectSideDefaults = []defaultSlot[RectDsc, Side]{
	{func(d *RectDsc) *Side { return &d.BorderSide }, SideFull},
}

// NewRectDsc returns a filled rectangle with every default applied.
func NewRectDsc(area geom.Area, bg pixel.Color) RectDsc {
	d := RectDsc{Area: area, BgColor: bg}
	applyDefaults(&d, rectOpaDefaults)
	applyDefaults(&d, rectSideDefaults)
	return d
}

// Kind implements Descriptor.
func (RectDsc) Kind() Kind { return KindRect }

// Bounds implements Descriptor.
func (d RectDsc) Bounds() geom.Area {
	b := d.Area
	if b.IsEmpty() {
		return geom.Area{}
	}
	if d.OutlineWidth > 0 {
		b = b.Union(d.Area.Inflate(d.OutlinePad + d.OutlineWidth))
	}
	if d.ShadowWidth > 0 {
		b = b.Union(raster.ShadowBounds(d.Area, d.ShadowWidth, d.ShadowSpread, d.ShadowOffsetX, d.ShadowOffsetY))
	}
	return b.Clamp()
}

func drawRect(l *Layer, d Descriptor, area geom.Area) error {
	dsc, ok := as[RectDsc](d)
	if !ok {
		return badDescriptor(d)
	}
	applyDefaults(&dsc, rectOpaDefaults)
	applyDefaults(&dsc, rectSideDefaults)
	opa := dsc.opa()
	if opa == 0 || dsc.Area.IsEmpty() {
		return nil
	}

	if dsc.ShadowWidth > 0 && dsc.ShadowColor.A != 0 {
		a := raster.ShadowBounds(dsc.Area, dsc.ShadowWidth, dsc.ShadowSpread, dsc.ShadowOffsetX, dsc.ShadowOffsetY).Intersect(area)
		m := raster.NewMask(a)
		raster.Shadow(m, dsc.Area, dsc.Radius, dsc.ShadowWidth, dsc.ShadowSpread, dsc.ShadowOffsetX, dsc.ShadowOffsetY)
		l.blendMask(m, dsc.ShadowColor, scaleOpa(opa, dsc.ShadowOpa), dsc.Base)
	}

	l.rectBackground(&dsc, area.Intersect(dsc.Area), scaleOpa(opa, dsc.BgOpa))

	if dsc.BorderWidth > 0 && dsc.BorderColor.A != 0 {
		m := raster.NewMask(area.Intersect(dsc.Area))
		raster.Border(m, dsc.Area, dsc.Radius, dsc.BorderWidth, dsc.BorderSide)
		l.blendMask(m, dsc.BorderColor, scaleOpa(opa, dsc.BorderOpa), dsc.Base)
	}

	if dsc.OutlineWidth > 0 && dsc.OutlineColor.A != 0 {
		m := raster.NewMask(area.Intersect(dsc.Area.Inflate(dsc.OutlinePad + dsc.OutlineWidth)))
		raster.Outline(m, dsc.Area, dsc.Radius, dsc.OutlineWidth, dsc.OutlinePad)
		l.blendMask(m, dsc.OutlineColor, scaleOpa(opa, dsc.OutlineOpa), dsc.Base)
	}
	return nil
}

// rectBackground fills the inside of the rectangle, clipped to area.
func (l *Layer) rectBackground(dsc *RectDsc, area geom.Area, opa uint8) {
	grad := dsc.BgGradDir != GradNone
	if area.IsEmpty() || opa == 0 || (dsc.BgColor.A == 0 && (!grad || dsc.BgGradColor.A == 0)) {
		return
	}
	rounded := raster.ClampRadius(dsc.Area, dsc.Radius) > 0
	if !rounded && !grad {
		l.fillArea(area, dsc.BgColor, opa, dsc.Base)
		return
	}

	m := raster.NewMask(area)
	raster.FillRect(m, dsc.Area, dsc.Radius)
	if !grad {
		l.blendMask(m, dsc.BgColor, opa, dsc.Base)
		return
	}

	vertical := dsc.BgGradDir == GradVertical
	colors := make([]pixel.Color, area.Width())
	for y := area.Y1; y < area.Y2; y++ {
		for i := range colors {
			t := raster.GradientT(dsc.Area, area.X1+i, y, vertical)
			colors[i] = gradientAt(dsc.BgColor, dsc.BgGradColor, t)
		}
		mask := m.Row(y)
		if solid(mask) {
			mask = nil
		}
		l.blendColors(area.X1, y, colors, mask, opa, dsc.Base)
	}
}

// badDescriptor reports a descriptor whose type does not match its kind.
func badDescriptor(d Descriptor) error {
	return fmt.Errorf("%w: %T for kind %v", ErrUnknownDescriptor, d, d.Kind())
}
