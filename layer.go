package lvdraw

import (
	"fmt"
	"image"

	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/internal/blend"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// Layer is a pixel buffer with a clip stack. Descriptors submitted to a
// layer are rasterized immediately.
//
// Layer is not safe for concurrent use.
type Layer struct {
	ctx    *Context
	buf    []byte
	width  int
	height int
	stride int
	format pixel.Format
	bpp    int

	clip     geom.Area
	clips    []geom.Area // previous clips, innermost last
	finished bool
}

func newLayer(c *Context, buf []byte, width, height, stride int, f pixel.Format) *Layer {
	return &Layer{
		ctx:    c,
		buf:    buf,
		width:  width,
		height: height,
		stride: stride,
		format: f,
		bpp:    f.BytesPerPixel(),
		clip:   geom.Rect(0, 0, width, height),
		clips:  make([]geom.Area, 0, 8),
	}
}

// Width returns the layer width in pixels.
func (l *Layer) Width() int { return l.width }

// Height returns the layer height in pixels.
func (l *Layer) Height() int { return l.height }

// Stride returns the number of bytes between rows.
func (l *Layer) Stride() int { return l.stride }

// Format returns the pixel format of the buffer.
func (l *Layer) Format() pixel.Format { return l.format }

// Bounds returns the area of the whole layer.
func (l *Layer) Bounds() geom.Area { return geom.Rect(0, 0, l.width, l.height) }

// Buffer returns the underlying pixel buffer.
func (l *Layer) Buffer() []byte { return l.buf }

// Clip returns the active clip area.
func (l *Layer) Clip() geom.Area { return l.clip }

// PushClip restricts drawing to the intersection of the active clip and a.
func (l *Layer) PushClip(a geom.Area) {
	l.clips = append(l.clips, l.clip)
	l.clip = l.clip.Intersect(a)
}

// PopClip restores the clip that was active before the last PushClip.
func (l *Layer) PopClip() error {
	n := len(l.clips)
	if n == 0 {
		return ErrClipUnderflow
	}
	l.clip = l.clips[n-1]
	l.clips = l.clips[:n-1]
	return nil
}

// WithClip runs fn with a pushed. The clip is popped when fn returns or
// panics.
func (l *Layer) WithClip(a geom.Area, fn func() error) error {
	saved, depth := l.clip, len(l.clips)
	l.PushClip(a)
	defer func() {
		l.clip = saved
		l.clips = l.clips[:min(depth, len(l.clips))]
	}()
	return fn()
}

// Submit rasterizes d into the layer, restricted to the active clip.
// Descriptors that miss the clip are skipped without error.
func (l *Layer) Submit(d Descriptor) error {
	if l.finished {
		return ErrFinished
	}
	if d == nil {
		return fmt.Errorf("%w: nil", ErrUnknownDescriptor)
	}
	k := d.Kind()
	if int(k) >= len(dispatch) || dispatch[k] == nil {
		return fmt.Errorf("%w: kind %d", ErrUnknownDescriptor, k)
	}
	area := d.Bounds().Intersect(l.clip)
	if area.IsEmpty() {
		l.ctx.logger.Debug("lvdraw: draw outside clip", "kind", k, "clip", l.clip)
		return nil
	}
	return dispatch[k](l, d, area)
}

// Fill covers the active clip with the opaque version of c.
func (l *Layer) Fill(c pixel.Color) error {
	if l.finished {
		return ErrFinished
	}
	l.fillArea(l.clip, c.Opaque(), 255, Base{})
	return nil
}

// Finish ends drawing and returns the buffer.
func (l *Layer) Finish() ([]byte, error) {
	if l.finished {
		return nil, ErrFinished
	}
	l.finished = true
	return l.buf, nil
}

// Pixel returns the color of pixel (x, y), or transparent outside the
// layer.
func (l *Layer) Pixel(x, y int) pixel.Color {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return pixel.Transparent
	}
	off := y*l.stride + x*l.bpp
	return pixel.Unpack(l.buf[off:off+l.bpp], l.format)
}

// Image converts the buffer into a standard library image, for example to
// encode it.
func (l *Layer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, l.width, l.height))
	for y := 0; y < l.height; y++ {
		row := l.buf[y*l.stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < l.width; x++ {
			c := pixel.Unpack(row[x*l.bpp:x*l.bpp+l.bpp], l.format)
			p := dst[x*4 : x*4+4 : x*4+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// row returns the bytes of pixels x1..x2-1 of row y.
func (l *Layer) row(y, x1, x2 int) []byte {
	off := y*l.stride + x1*l.bpp
	return l.buf[off : off+(x2-x1)*l.bpp]
}

// fillArea blends c over every pixel of a.
func (l *Layer) fillArea(a geom.Area, c pixel.Color, opa uint8, b Base) {
	a = a.Intersect(l.Bounds())
	for y := a.Y1; y < a.Y2; y++ {
		blend.Span(l.row(y, a.X1, a.X2), l.format, a.Width(), c, nil, opa, b.BlendMode, b.Filters)
	}
}

// blendMask blends c through the coverage of m.
func (l *Layer) blendMask(m *raster.Mask, c pixel.Color, opa uint8, b Base) {
	a := m.Area
	for y := a.Y1; y < a.Y2; y++ {
		mask := m.Row(y)
		if solid(mask) {
			mask = nil
		}
		blend.Span(l.row(y, a.X1, a.X2), l.format, a.Width(), c, mask, opa, b.BlendMode, b.Filters)
	}
}

// blendColors blends one color per pixel starting at (x, y).
func (l *Layer) blendColors(x, y int, src []pixel.Color, mask []uint8, opa uint8, b Base) {
	blend.ColorSpan(l.row(y, x, x+len(src)), l.format, src, mask, opa, b.BlendMode, b.Filters)
}

// solid reports whether every coverage value of row is 255.
func solid(row []uint8) bool {
	for _, v := range row {
		if v != 255 {
			return false
		}
	}
	return true
}
