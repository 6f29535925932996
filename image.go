package lvdraw

import (
	"fmt"
	"math"

	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/imgdec"
	"github.com/gogpu/lvdraw/pixel"
)

// ImageDsc draws a decoded image, optionally rotated and scaled.
//
// Without Transform the image is scaled by (ScaleX, ScaleY) and rotated by
// Angle degrees around Pivot, both relative to the image's top-left pixel,
// and then moved so that its top-left pixel lands on Pos.
type ImageDsc struct {
	Base
	Src imgdec.Source
	Pos geom.Point
	// Width and Height are the source size, if known. They only narrow
	// Bounds; the decoded header decides what is drawn.
	Width, Height int

	Angle          float64
	ScaleX, ScaleY float64 // zero reads as 1
	Pivot          geom.Point
	// Transform maps image pixel coordinates to layer coordinates and
	// replaces Pos, Angle, ScaleX, ScaleY and Pivot.
	Transform *geom.Matrix

	// Antialias selects bilinear sampling instead of nearest neighbor.
	Antialias bool
	// Color tints alpha-only images. Zero reads as black.
	Color pixel.Color
	// Recolor mixes every source pixel toward Recolor by RecolorOpa.
	Recolor    pixel.Color
	RecolorOpa pixel.Opa
}

var imageScaleDefaults = []defaultSlot[ImageDsc, float64]{
	{func(d *ImageDsc) *float64 { return &d.ScaleX }, 1},
	{func(d *ImageDsc) *float64 { return &d.ScaleY }, 1},
}

var imageColorDefaults = []defaultSlot[ImageDsc, pixel.Color]{
	{func(d *ImageDsc) *pixel.Color { return &d.Color }, pixel.Black},
}

// Kind implements Descriptor.
func (ImageDsc) Kind() Kind { return KindImage }

// Bounds implements Descriptor. Without a size hint the image may touch
// any pixel.
func (d ImageDsc) Bounds() geom.Area {
	if d.Src == nil {
		return geom.Area{}
	}
	if d.Width <= 0 || d.Height <= 0 {
		return geom.Area{X1: -geom.CoordLimit, Y1: -geom.CoordLimit, X2: geom.CoordLimit, Y2: geom.CoordLimit}
	}
	applyDefaults(&d, imageScaleDefaults)
	return imageBounds(d.matrix(), d.Width, d.Height)
}

// matrix returns the image-to-layer transform of d.
func (d *ImageDsc) matrix() geom.Matrix {
	if d.Transform != nil {
		return *d.Transform
	}
	return geom.Pivoted(d.Angle, d.ScaleX, d.ScaleY, d.Pivot).Translate(d.Pos.X, d.Pos.Y)
}

// imageBounds returns the pixels the transformed w x h image can cover.
func imageBounds(m geom.Matrix, w, h int) geom.Area {
	x0, y0 := -0.5, -0.5
	x1, y1 := float64(w)-0.5, float64(h)-0.5
	return geom.BoundsOf(0,
		m.ApplyPoint(geom.Pt(x0, y0)), m.ApplyPoint(geom.Pt(x1, y0)),
		m.ApplyPoint(geom.Pt(x0, y1)), m.ApplyPoint(geom.Pt(x1, y1)),
	)
}

func drawImage(l *Layer, d Descriptor, area geom.Area) error {
	dsc, ok := as[ImageDsc](d)
	if !ok {
		return badDescriptor(d)
	}
	applyDefaults(&dsc, imageScaleDefaults)
	applyDefaults(&dsc, imageColorDefaults)
	opa := dsc.opa()
	if opa == 0 {
		return nil
	}

	m := dsc.matrix()
	inv, err := m.Invert()
	if err != nil {
		l.ctx.logger.Debug("lvdraw: image transform not invertible", "matrix", m, "err", err)
		return nil
	}

	cache := l.ctx.cache
	e, err := cache.Open(dsc.Src)
	if err != nil {
		l.ctx.logger.Warn("lvdraw: image not drawn", "src", dsc.Src.Key(), "err", err)
		return fmt.Errorf("lvdraw: draw image: %w", err)
	}
	defer func() {
		if err := cache.Close(e); err != nil {
			l.ctx.logger.Warn("lvdraw: close image", "src", e.Key(), "err", err)
		}
	}()

	b := e.Bitmap()
	if b == nil || b.Width == 0 || b.Height == 0 {
		return nil
	}
	base := dsc.Base
	if dsc.RecolorOpa > 0 {
		base = base.withFilter(pixel.RecolorFilter(dsc.Recolor, dsc.RecolorOpa))
	}
	img := imageSampler{bitmap: b, tint: dsc.Color, bilinear: dsc.Antialias}

	if dx, dy, ok := integerOffset(m); ok {
		img.blit(l, geom.Rect(dx, dy, b.Width, b.Height).Intersect(area), dx, dy, opa, base)
		return nil
	}
	img.transform(l, imageBounds(m, b.Width, b.Height).Intersect(area), inv, opa, base)
	return nil
}

// integerOffset reports whether m only moves pixels by whole pixels.
func integerOffset(m geom.Matrix) (dx, dy int, ok bool) {
	if !m.IsTranslation() || m.C != math.Trunc(m.C) || m.F != math.Trunc(m.F) {
		return 0, 0, false
	}
	if math.Abs(m.C) > geom.CoordLimit || math.Abs(m.F) > geom.CoordLimit {
		return 0, 0, false
	}
	return int(m.C), int(m.F), true
}

// imageSampler reads colors of a decoded bitmap.
type imageSampler struct {
	bitmap   *imgdec.Bitmap
	tint     pixel.Color
	bilinear bool
}

// color returns the drawn color of a bitmap pixel.
func (s *imageSampler) color(c pixel.Color) pixel.Color {
	if !s.bitmap.AlphaOnly {
		return c
	}
	t := s.tint
	t.A = scaleOpa(c.A, pixel.Opa(t.A))
	return t
}

// blit copies rows of an untransformed image placed at (dx, dy).
func (s *imageSampler) blit(l *Layer, box geom.Area, dx, dy int, opa uint8, base Base) {
	if box.IsEmpty() {
		return
	}
	var buf []pixel.Color
	if s.bitmap.AlphaOnly {
		buf = make([]pixel.Color, box.Width())
	}
	for y := box.Y1; y < box.Y2; y++ {
		src := s.bitmap.Row(y - dy)[box.X1-dx : box.X2-dx]
		if buf != nil {
			for i, c := range src {
				buf[i] = s.color(c)
			}
			src = buf
		}
		l.blendColors(box.X1, y, src, nil, opa, base)
	}
}

// transform maps every pixel of box back into the bitmap through inv.
func (s *imageSampler) transform(l *Layer, box geom.Area, inv geom.Matrix, opa uint8, base Base) {
	if box.IsEmpty() {
		return
	}
	buf := make([]pixel.Color, box.Width())
	for y := box.Y1; y < box.Y2; y++ {
		for i := range buf {
			sx, sy := inv.Apply(float64(box.X1+i), float64(y))
			buf[i] = s.color(s.sample(sx, sy))
		}
		l.blendColors(box.X1, y, buf, nil, opa, base)
	}
}

// sample returns the bitmap color at continuous position (x, y). Positions
// outside the bitmap are transparent.
func (s *imageSampler) sample(x, y float64) pixel.Color {
	if !s.bilinear {
		return s.bitmap.At(int(math.Floor(x+0.5)), int(math.Floor(y+0.5)))
	}
	fx, fy := math.Floor(x), math.Floor(y)
	tx, ty := x-fx, y-fy
	ix, iy := int(fx), int(fy)
	if tx == 0 && ty == 0 {
		return s.bitmap.At(ix, iy)
	}

	// Interpolate premultiplied colors so that transparent neighbors do
	// not darken edges.
	var r, g, b, a float64
	add := func(c pixel.Color, w float64) {
		if w == 0 || c.A == 0 {
			return
		}
		wa := w * float64(c.A)
		r += float64(c.R) * wa
		g += float64(c.G) * wa
		b += float64(c.B) * wa
		a += wa
	}
	add(s.bitmap.At(ix, iy), (1-tx)*(1-ty))
	add(s.bitmap.At(ix+1, iy), tx*(1-ty))
	add(s.bitmap.At(ix, iy+1), (1-tx)*ty)
	add(s.bitmap.At(ix+1, iy+1), tx*ty)
	if a < 0.5 {
		return pixel.Transparent
	}
	return pixel.Color{
		R: uint8(r/a + 0.5),
		G: uint8(g/a + 0.5),
		B: uint8(b/a + 0.5),
		A: uint8(a + 0.5),
	}
}
