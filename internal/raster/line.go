package raster

import (
	"math"

	"github.com/gogpu/lvdraw/geom"
)

// LineStyle describes the stroke of a line segment.
type LineStyle struct {
	Width      float64
	RoundStart bool
	RoundEnd   bool
	// DashWidth and DashGap split the line into dashes along its length.
	// Both must be positive for dashing to apply.
	DashWidth float64
	DashGap   float64
}

// LineBounds returns the area a line from p1 to p2 can touch.
func LineBounds(p1, p2 geom.Point, width float64) geom.Area {
	return geom.BoundsOf(math.Max(width, 1)/2+1, p1, p2)
}

// Line writes the coverage of the segment p1-p2. Butt caps end exactly at
// the endpoints; round caps add a half disc. A zero-length segment with butt
// caps covers nothing.
func Line(m *Mask, p1, p2 geom.Point, st LineStyle) {
	p1, p2 = p1.Sanitize(), p2.Sanitize()
	hw := math.Max(st.Width, 1) / 2
	d := p2.Sub(p1)
	length := d.Len()

	if length == 0 {
		if !st.RoundStart && !st.RoundEnd {
			return
		}
		m.fill(func(x, y float64) float64 {
			return sdfCircle(x, y, p1.X, p1.Y, hw)
		})
		return
	}

	u := d.Mul(1 / length)
	dashed := st.DashWidth > 0 && st.DashGap > 0
	period := st.DashWidth + st.DashGap

	m.fill(func(x, y float64) float64 {
		v := geom.Pt(x, y).Sub(p1)
		t := v.Dot(u)
		n := math.Abs(u.Cross(v))

		switch {
		case t < 0 && st.RoundStart:
			return math.Hypot(t, n) - hw
		case t > length && st.RoundEnd:
			return math.Hypot(t-length, n) - hw
		}

		along := math.Inf(-1)
		if !st.RoundStart {
			along = -t
		}
		if !st.RoundEnd {
			along = math.Max(along, t-length)
		}
		if dashed && t >= 0 && t <= length {
			along = math.Max(along, dashDistance(t, st.DashWidth, period))
		}
		return sdfBox(along, n-hw)
	})
}

// dashDistance returns the signed distance along the line from t to the
// nearest dash [k*period, k*period+dash].
func dashDistance(t, dash, period float64) float64 {
	k := math.Floor(t / period)
	start := k * period
	in := math.Max(start-t, t-(start+dash))
	next := (k+1)*period - t
	return math.Min(in, next)
}
