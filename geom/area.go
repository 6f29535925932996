// Package geom provides the coordinate types of lvdraw: integer pixel areas,
// float points and 2D affine matrices.
//
// Pixel (x, y) is sampled at its center, which has continuous coordinates
// (x, y). An Area covers the half-open pixel range [X1, X2) x [Y1, Y2).
package geom

import (
	"math"
)

// CoordLimit bounds every coordinate accepted by the rasterizers. Values
// beyond it (including NaN and infinities) are clamped.
const CoordLimit = 1 << 20

// Area is an axis-aligned rectangle of pixels, half-open on the max side.
type Area struct {
	X1, Y1 int // top-left, inclusive
	X2, Y2 int // bottom-right, exclusive
}

// Rect returns the area of size w x h with its top-left corner at (x, y).
func Rect(x, y, w, h int) Area {
	return Area{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Width returns the width of a, or 0 for an empty area.
func (a Area) Width() int {
	if a.X2 <= a.X1 {
		return 0
	}
	return a.X2 - a.X1
}

// Height returns the height of a, or 0 for an empty area.
func (a Area) Height() int {
	if a.Y2 <= a.Y1 {
		return 0
	}
	return a.Y2 - a.Y1
}

// Size returns the number of pixels covered by a.
func (a Area) Size() int {
	return a.Width() * a.Height()
}

// IsEmpty reports whether a covers no pixels.
func (a Area) IsEmpty() bool {
	return a.X2 <= a.X1 || a.Y2 <= a.Y1
}

// Contains reports whether pixel (x, y) lies inside a.
func (a Area) Contains(x, y int) bool {
	return x >= a.X1 && x < a.X2 && y >= a.Y1 && y < a.Y2
}

// ContainsArea reports whether b lies fully within a. An empty b is
// contained by every area.
func (a Area) ContainsArea(b Area) bool {
	if b.IsEmpty() {
		return true
	}
	return b.X1 >= a.X1 && b.Y1 >= a.Y1 && b.X2 <= a.X2 && b.Y2 <= a.Y2
}

// Intersect returns the common part of a and b. Disjoint areas yield the
// zero Area.
func (a Area) Intersect(b Area) Area {
	r := Area{
		X1: max(a.X1, b.X1),
		Y1: max(a.Y1, b.Y1),
		X2: min(a.X2, b.X2),
		Y2: min(a.Y2, b.Y2),
	}
	if r.IsEmpty() {
		return Area{}
	}
	return r
}

// Union returns the smallest area holding both a and b. Empty operands are
// ignored.
func (a Area) Union(b Area) Area {
	switch {
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	}
	return Area{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
}

// Inflate grows a by d pixels on every side. Negative d shrinks it.
func (a Area) Inflate(d int) Area {
	return Area{X1: a.X1 - d, Y1: a.Y1 - d, X2: a.X2 + d, Y2: a.Y2 + d}
}

// Translate moves a by (dx, dy).
func (a Area) Translate(dx, dy int) Area {
	return Area{X1: a.X1 + dx, Y1: a.Y1 + dy, X2: a.X2 + dx, Y2: a.Y2 + dy}
}

// Clamp limits every coordinate of a to [-CoordLimit, CoordLimit].
func (a Area) Clamp() Area {
	return Area{
		X1: clampInt(a.X1, -CoordLimit, CoordLimit),
		Y1: clampInt(a.Y1, -CoordLimit, CoordLimit),
		X2: clampInt(a.X2, -CoordLimit, CoordLimit),
		Y2: clampInt(a.Y2, -CoordLimit, CoordLimit),
	}
}

// BoundsOf returns the pixel area touched by a shape whose continuous
// extent is the bounding box of pts, grown by pad on every side.
func BoundsOf(pad float64, pts ...Point) Area {
	if len(pts) == 0 {
		return Area{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		p = p.Sanitize()
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	// Pixel centers sit on integers, so pixel x spans [x-0.5, x+0.5).
	pad = SanitizeCoord(pad)
	return Area{
		X1: int(math.Floor(SanitizeCoord(minX-pad) + 0.5)),
		Y1: int(math.Floor(SanitizeCoord(minY-pad) + 0.5)),
		X2: int(math.Ceil(SanitizeCoord(maxX+pad)+0.5)) + 1,
		Y2: int(math.Ceil(SanitizeCoord(maxY+pad)+0.5)) + 1,
	}.Clamp()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
