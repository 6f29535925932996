package lvdraw

import (
	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// TriangleDsc draws a filled triangle. With a gradient direction the fill
// blends from Color to GradColor across the triangle's bounding box.
type TriangleDsc struct {
	Base
	Points    [3]geom.Point
	Color     pixel.Color
	GradColor pixel.Color
	GradDir   GradDir
}

// Kind implements Descriptor.
func (TriangleDsc) Kind() Kind { return KindTriangle }

// Bounds implements Descriptor.
func (d TriangleDsc) Bounds() geom.Area {
	return raster.TriangleBounds(d.Points)
}

func drawTriangle(l *Layer, d Descriptor, area geom.Area) error {
	dsc, ok := as[TriangleDsc](d)
	if !ok {
		return badDescriptor(d)
	}
	opa := dsc.opa()
	if opa == 0 {
		return nil
	}
	m := raster.NewMask(area)
	if !raster.Triangle(m, dsc.Points) {
		l.ctx.logger.Debug("lvdraw: degenerate triangle", "points", dsc.Points)
		return nil
	}
	if dsc.GradDir == GradNone {
		l.blendMask(m, dsc.Color, opa, dsc.Base)
		return nil
	}

	box := dsc.Bounds()
	vertical := dsc.GradDir == GradVertical
	colors := make([]pixel.Color, area.Width())
	for y := area.Y1; y < area.Y2; y++ {
		row := m.Row(y)
		lo, hi := span(row)
		if lo >= hi {
			continue
		}
		for i := lo; i < hi; i++ {
			colors[i] = gradientAt(dsc.Color, dsc.GradColor, raster.GradientT(box, area.X1+i, y, vertical))
		}
		l.blendColors(area.X1+lo, y, colors[lo:hi], row[lo:hi], opa, dsc.Base)
	}
	return nil
}

// span returns the range of row holding non-zero coverage.
func span(row []uint8) (lo, hi int) {
	lo = len(row)
	for i, v := range row {
		if v != 0 {
			lo = i
			break
		}
	}
	for hi = len(row); hi > lo && row[hi-1] == 0; hi-- {
	}
	return lo, hi
}
