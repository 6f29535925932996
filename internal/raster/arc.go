package raster

import (
	"math"

	"github.com/gogpu/lvdraw/geom"
)

// ArcStyle describes an arc ring segment. Angles are in degrees, 0 points
// along +x and angles grow clockwise on screen.
type ArcStyle struct {
	Radius           float64 // outer radius
	Width            float64
	Start, End       float64
	CounterClockwise bool
	Rounded          bool
}

// ArcBounds returns the area an arc around center can touch.
func ArcBounds(center geom.Point, radius float64) geom.Area {
	return geom.BoundsOf(radius+1, center)
}

// Sweep returns the start angle and the clockwise sweep in degrees covered
// by st. A sweep of 360 means a full ring; 0 means nothing is drawn.
func (st ArcStyle) Sweep() (start, sweep float64) {
	start, end := st.Start, st.End
	if st.CounterClockwise {
		start, end = end, start
	}
	if start == end || math.IsNaN(start) || math.IsNaN(end) {
		return 0, 0
	}
	if math.Abs(end-start) >= 360 {
		return 0, 360
	}
	sweep = math.Mod(end-start, 360)
	if sweep <= 0 {
		sweep += 360
	}
	start = math.Mod(start, 360)
	if start < 0 {
		start += 360
	}
	return start, sweep
}

// Arc writes the coverage of a ring segment around center. The ring spans
// from Radius-Width to Radius, measured to pixel edges. A Width beyond the
// radius leaves no hole.
func Arc(m *Mask, center geom.Point, st ArcStyle) {
	start, sweep := st.Sweep()
	if sweep == 0 || st.Radius <= 0 || st.Width <= 0 {
		return
	}
	c := center.Sanitize()
	ro := st.Radius + 0.5
	ri := ro - st.Width
	if ri <= 0 {
		ri = -1
	}
	ring := func(x, y float64) float64 {
		d := math.Hypot(x-c.X, y-c.Y)
		return math.Max(d-ro, ri-d)
	}
	if sweep >= 360 {
		m.fill(ring)
		return
	}

	ss, cs := math.Sincos(start * math.Pi / 180)
	se, ce := math.Sincos((start + sweep) * math.Pi / 180)
	hole := math.Max(ri, 0)
	mid := (ro + hole) / 2
	capR := (ro - hole) / 2

	m.fill(func(x, y float64) float64 {
		vx, vy := x-c.X, y-c.Y
		// Half planes bounded by the start and end rays; negative on the
		// side of the sweep.
		hs := -(cs*vy - ss*vx)
		he := ce*vy - se*vx
		ang := math.Max(hs, he)
		if sweep > 180 {
			ang = math.Min(hs, he)
		}
		d := math.Max(ring(x, y), ang)
		if st.Rounded {
			d = math.Min(d, sdfCircle(x, y, c.X+cs*mid, c.Y+ss*mid, capR))
			d = math.Min(d, sdfCircle(x, y, c.X+ce*mid, c.Y+se*mid, capR))
		}
		return d
	})
}
