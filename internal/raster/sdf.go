package raster

import "math"

// sdfRRect computes the signed distance from a point to a rounded rectangle.
// Negative values are inside, positive values are outside.
func sdfRRect(px, py, cx, cy, halfW, halfH, cornerRadius float64) float64 {
	// Work in the first quadrant by symmetry.
	dx := math.Abs(px-cx) - halfW + cornerRadius
	dy := math.Abs(py-cy) - halfH + cornerRadius
	return sdfBox(dx, dy) - cornerRadius
}

// sdfBox combines per-axis distances into a box distance: Euclidean outside
// the corner region, the nearest edge inside.
func sdfBox(dx, dy float64) float64 {
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside
}

// sdfCircle returns the signed distance to a disc.
func sdfCircle(px, py, cx, cy, radius float64) float64 {
	return math.Hypot(px-cx, py-cy) - radius
}
