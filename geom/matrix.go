package geom

import (
	"errors"
	"math"
)

// ErrSingular is returned when inverting a matrix with a zero determinant.
var ErrSingular = errors.New("geom: singular matrix")

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-10

// Matrix is a 2D affine transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The builder methods compose in call order: in
// Identity().Translate(..).Rotate(..) points are translated first and
// rotated second.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Multiply returns the transform that applies m first and then n.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: n.A*m.A + n.B*m.D,
		B: n.A*m.B + n.B*m.E,
		C: n.A*m.C + n.B*m.F + n.C,
		D: n.D*m.A + n.E*m.D,
		E: n.D*m.B + n.E*m.E,
		F: n.D*m.C + n.E*m.F + n.F,
	}
}

// Translate appends a translation by (dx, dy).
func (m Matrix) Translate(dx, dy float64) Matrix {
	return m.Multiply(Matrix{A: 1, C: dx, E: 1, F: dy})
}

// Scale appends a scale by (sx, sy) about the origin.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(Matrix{A: sx, E: sy})
}

// Rotate appends a rotation by deg degrees about the origin. With y
// pointing down, positive angles turn clockwise on screen.
func (m Matrix) Rotate(deg float64) Matrix {
	sin, cos := sinCosDeg(deg)
	return m.Multiply(Matrix{A: cos, B: -sin, D: sin, E: cos})
}

// Skew appends a shear of xDeg along the x axis and yDeg along the y axis.
func (m Matrix) Skew(xDeg, yDeg float64) Matrix {
	return m.Multiply(Matrix{
		A: 1, B: math.Tan(xDeg * math.Pi / 180),
		D: math.Tan(yDeg * math.Pi / 180), E: 1,
	})
}

// Apply maps the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ApplyPoint maps p.
func (m Matrix) ApplyPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse transformation, or ErrSingular when the matrix
// collapses the plane (for example a zero scale).
func (m Matrix) Invert() (Matrix, error) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, ErrSingular
	}

	inv := 1.0 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, nil
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// Pivoted returns the image placement transform: scale by
// (sx, sy) and rotate by deg around pivot.
func Pivoted(deg, sx, sy float64, pivot Point) Matrix {
	return Identity().
		Translate(-pivot.X, -pivot.Y).
		Scale(sx, sy).
		Rotate(deg).
		Translate(pivot.X, pivot.Y)
}

// sinCosDeg returns exact values for multiples of 90 degrees so that
// quarter turns map pixel centers onto pixel centers.
func sinCosDeg(deg float64) (sin, cos float64) {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	switch d {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(d * math.Pi / 180)
}
