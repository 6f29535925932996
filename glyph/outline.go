package glyph

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// OutlineOp is the type of an outline segment.
type OutlineOp uint8

// Outline operations.
const (
	OpMoveTo OutlineOp = iota
	OpLineTo
	OpQuadTo
	OpCubeTo
)

// OutlinePoint is a point of an outline in pixels relative to the pen on
// the baseline, y down.
type OutlinePoint struct {
	X, Y float32
}

// OutlineSegment is one drawing command. MoveTo and LineTo use Points[0],
// QuadTo uses Points[0] (control) and Points[1], CubeTo all three.
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// Outline is a glyph shape given as path commands.
type Outline struct {
	Segments []OutlineSegment
}

// points returns how many points op consumes.
func (op OutlineOp) points() int {
	switch op {
	case OpQuadTo:
		return 2
	case OpCubeTo:
		return 3
	default:
		return 1
	}
}

// Bounds returns the integer pixel box of the control hull, which contains
// the outline.
func (o *Outline) Bounds() image.Rectangle {
	if o == nil || len(o.Segments) == 0 {
		return image.Rectangle{}
	}
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, s := range o.Segments {
		for _, p := range s.Points[:s.Op.points()] {
			minX, minY = min(minX, p.X), min(minY, p.Y)
			maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
		}
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// Rasterize renders the outline into an 8-bit alpha bitmap using the
// nonzero-area accumulation of golang.org/x/image/vector. The offsets place
// the bitmap relative to the pen.
func (o *Outline) Rasterize() (b *Bitmap, offX, offY int) {
	r := o.Bounds()
	if r.Empty() {
		return nil, 0, 0
	}
	w, h := r.Dx(), r.Dy()
	dx, dy := float32(-r.Min.X), float32(-r.Min.Y)

	z := vector.NewRasterizer(w, h)
	for _, s := range o.Segments {
		p := s.Points
		switch s.Op {
		case OpMoveTo:
			z.MoveTo(p[0].X+dx, p[0].Y+dy)
		case OpLineTo:
			z.LineTo(p[0].X+dx, p[0].Y+dy)
		case OpQuadTo:
			z.QuadTo(p[0].X+dx, p[0].Y+dy, p[1].X+dx, p[1].Y+dy)
		case OpCubeTo:
			z.CubeTo(p[0].X+dx, p[0].Y+dy, p[1].X+dx, p[1].Y+dy, p[2].X+dx, p[2].Y+dy)
		}
	}
	z.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &Bitmap{Width: w, Height: h, BPP: 8, Stride: dst.Stride, Data: dst.Pix}, r.Min.X, r.Min.Y
}
