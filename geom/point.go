package geom

import "math"

// Point is a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Len returns the distance of p from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Sanitize replaces NaN coordinates with 0 and clamps the rest to
// [-CoordLimit, CoordLimit].
func (p Point) Sanitize() Point {
	return Point{X: SanitizeCoord(p.X), Y: SanitizeCoord(p.Y)}
}

// SanitizeCoord clamps v to [-CoordLimit, CoordLimit] and maps NaN to 0.
func SanitizeCoord(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < -CoordLimit:
		return -CoordLimit
	case v > CoordLimit:
		return CoordLimit
	default:
		return v
	}
}
