package raster

import (
	"math"

	"github.com/gogpu/lvdraw/geom"
)

// RadiusCircle requests the largest possible corner radius, which turns a
// square into a circle and a rectangle into a pill.
const RadiusCircle = 0x7FFF

// Side selects the edges of a border.
type Side uint8

// Border sides.
const (
	SideNone   Side = 0x00
	SideBottom Side = 0x01
	SideTop    Side = 0x02
	SideLeft   Side = 0x04
	SideRight  Side = 0x08

	SideFull = SideBottom | SideTop | SideLeft | SideRight
)

// ClampRadius limits r to half of the shorter side of box.
func ClampRadius(box geom.Area, r int) int {
	if r < 0 {
		return 0
	}
	return min(r, min(box.Width(), box.Height())/2)
}

// rrect is a rounded box in continuous coordinates.
type rrect struct {
	cx, cy       float64
	halfW, halfH float64
	r            float64
}

func newRRect(box geom.Area, radius int) rrect {
	return rrect{
		cx:    float64(box.X1+box.X2-1) / 2,
		cy:    float64(box.Y1+box.Y2-1) / 2,
		halfW: float64(box.Width()) / 2,
		halfH: float64(box.Height()) / 2,
		r:     float64(ClampRadius(box, radius)),
	}
}

func (q rrect) sdf(x, y float64) float64 {
	return sdfRRect(x, y, q.cx, q.cy, q.halfW, q.halfH, q.r)
}

// FillRect writes the coverage of box with rounded corners of radius.
func FillRect(m *Mask, box geom.Area, radius int) {
	if box.IsEmpty() {
		return
	}
	q := newRRect(box, radius)
	if q.r == 0 {
		// Axis-aligned box with integral edges: full coverage inside.
		in := box.Intersect(m.Area)
		for y := in.Y1; y < in.Y2; y++ {
			row := m.Row(y)[in.X1-m.Area.X1 : in.X2-m.Area.X1]
			for i := range row {
				row[i] = 255
			}
		}
		return
	}
	m.fill(q.sdf)
}

// Border writes the coverage of an inset stroke of width along the
// selected sides of box.
func Border(m *Mask, box geom.Area, radius, width int, sides Side) {
	if box.IsEmpty() || width <= 0 || sides&SideFull == 0 {
		return
	}
	r := ClampRadius(box, radius)
	outer := newRRect(box, r)

	// Unselected sides push the inner box past the outer one so they stay
	// uncovered, including their rounded corners.
	ext := r + width
	inner := box
	if sides&SideTop != 0 {
		inner.Y1 += width
	} else {
		inner.Y1 -= ext
	}
	if sides&SideBottom != 0 {
		inner.Y2 -= width
	} else {
		inner.Y2 += ext
	}
	if sides&SideLeft != 0 {
		inner.X1 += width
	} else {
		inner.X1 -= ext
	}
	if sides&SideRight != 0 {
		inner.X2 -= width
	} else {
		inner.X2 += ext
	}

	if inner.IsEmpty() {
		m.fill(outer.sdf)
		return
	}
	in := newRRect(inner, max(r-width, 0))
	m.fill(func(x, y float64) float64 {
		return math.Max(outer.sdf(x, y), -in.sdf(x, y))
	})
}

// Outline writes the coverage of a stroke of width drawn outside box at
// distance pad.
func Outline(m *Mask, box geom.Area, radius, width, pad int) {
	if box.IsEmpty() || width <= 0 {
		return
	}
	r := ClampRadius(box, radius)
	inner := newRRect(box.Inflate(pad), r+pad)
	outerBox := box.Inflate(pad + width)
	outer := newRRect(outerBox, r+pad+width)
	m.fill(func(x, y float64) float64 {
		return math.Max(outer.sdf(x, y), -inner.sdf(x, y))
	})
}

// GradientT returns the position of pixel (x, y) along box for a two-stop
// gradient, in 0..255.
func GradientT(box geom.Area, x, y int, vertical bool) uint8 {
	lo, hi, v := box.X1, box.X2-1, x
	if vertical {
		lo, hi, v = box.Y1, box.Y2-1, y
	}
	if hi <= lo || v <= lo {
		return 0
	}
	if v >= hi {
		return 255
	}
	return uint8((v - lo) * 255 / (hi - lo))
}
