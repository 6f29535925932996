// Package raster computes coverage masks for the primitive shapes of lvdraw.
//
// Every rasterizer writes into a Mask that spans the clipped draw area, so
// pixels outside the clip are never evaluated. Coverage is derived from a
// signed distance sdf (in pixels, negative inside) as clamp(0.5-sdf, 0, 1),
// which keeps shapes aligned to pixel edges crisp.
package raster

import (
	"math"

	"github.com/gogpu/lvdraw/geom"
)

// Mask holds one 8-bit coverage value per pixel of Area.
type Mask struct {
	Area geom.Area
	Cov  []uint8
}

// NewMask allocates a zero-coverage mask for a.
func NewMask(a geom.Area) *Mask {
	if a.IsEmpty() {
		return &Mask{}
	}
	return &Mask{Area: a, Cov: make([]uint8, a.Size())}
}

// Row returns the coverage values of row y, starting at Area.X1.
func (m *Mask) Row(y int) []uint8 {
	if y < m.Area.Y1 || y >= m.Area.Y2 {
		return nil
	}
	w := m.Area.Width()
	off := (y - m.Area.Y1) * w
	return m.Cov[off : off+w]
}

// At returns the coverage of pixel (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if !m.Area.Contains(x, y) {
		return 0
	}
	return m.Cov[(y-m.Area.Y1)*m.Area.Width()+x-m.Area.X1]
}

// Set stores the coverage of pixel (x, y). Points outside the mask are
// ignored.
func (m *Mask) Set(x, y int, v uint8) {
	if !m.Area.Contains(x, y) {
		return
	}
	m.Cov[(y-m.Area.Y1)*m.Area.Width()+x-m.Area.X1] = v
}

// Count returns the number of pixels with non-zero coverage.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Cov {
		if v != 0 {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no pixel is covered.
func (m *Mask) IsEmpty() bool {
	for _, v := range m.Cov {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bounds returns the smallest area holding every covered pixel.
func (m *Mask) Bounds() geom.Area {
	var b geom.Area
	w := m.Area.Width()
	for i, v := range m.Cov {
		if v == 0 {
			continue
		}
		x, y := m.Area.X1+i%w, m.Area.Y1+i/w
		b = b.Union(geom.Rect(x, y, 1, 1))
	}
	return b
}

// fill evaluates sdf at every pixel center of the mask.
func (m *Mask) fill(sdf func(x, y float64) float64) {
	w := m.Area.Width()
	for y := m.Area.Y1; y < m.Area.Y2; y++ {
		row := m.Cov[(y-m.Area.Y1)*w:]
		fy := float64(y)
		for x := m.Area.X1; x < m.Area.X2; x++ {
			row[x-m.Area.X1] = coverage(sdf(float64(x), fy))
		}
	}
}

// coverage maps a signed distance to an 8-bit coverage value.
func coverage(sdf float64) uint8 {
	c := 0.5 - sdf
	switch {
	case c >= 1:
		return 255
	case c <= 0 || math.IsNaN(c):
		return 0
	}
	return uint8(c*255 + 0.5)
}
