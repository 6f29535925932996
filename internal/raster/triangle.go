package raster

import (
	"math"

	"github.com/gogpu/lvdraw/geom"
)

// degenerateArea is the doubled-area threshold below which a triangle is
// treated as collinear.
const degenerateArea = 1e-9

// TriangleBounds returns the area a triangle can touch.
func TriangleBounds(pts [3]geom.Point) geom.Area {
	return geom.BoundsOf(0, pts[0], pts[1], pts[2])
}

// edge is the edge function of one triangle side, oriented so that the
// interior is positive.
type edge struct {
	a       geom.Point
	dx, dy  float64
	topLeft bool
}

func newEdge(a, b geom.Point) edge {
	e := edge{a: a, dx: b.X - a.X, dy: b.Y - a.Y}
	// With y pointing down and a clockwise winding the top edge runs to
	// the right and left edges run upward.
	e.topLeft = (e.dy == 0 && e.dx > 0) || e.dy < 0
	return e
}

func (e edge) inside(x, y float64) bool {
	w := e.dx*(y-e.a.Y) - e.dy*(x-e.a.X)
	return w > 0 || (w == 0 && e.topLeft)
}

// Triangle writes full coverage for every pixel center inside the triangle,
// applying the top-left rule to centers that fall on an edge. It reports
// false for degenerate triangles, which cover nothing.
func Triangle(m *Mask, pts [3]geom.Point) bool {
	a, b, c := pts[0].Sanitize(), pts[1].Sanitize(), pts[2].Sanitize()
	area := b.Sub(a).Cross(c.Sub(a))
	if math.Abs(area) < degenerateArea {
		return false
	}
	if area < 0 {
		b, c = c, b
	}
	edges := [3]edge{newEdge(a, b), newEdge(b, c), newEdge(c, a)}

	w := m.Area.Width()
	for y := m.Area.Y1; y < m.Area.Y2; y++ {
		row := m.Cov[(y-m.Area.Y1)*w:]
		fy := float64(y)
		for x := m.Area.X1; x < m.Area.X2; x++ {
			fx := float64(x)
			if edges[0].inside(fx, fy) && edges[1].inside(fx, fy) && edges[2].inside(fx, fy) {
				row[x-m.Area.X1] = 255
			}
		}
	}
	return true
}
