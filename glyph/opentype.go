package glyph

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OpenTypeProvider rasterizes glyphs of a TrueType or OpenType font into
// 8-bit alpha bitmaps. Glyphs are cached by rune.
//
// OpenTypeProvider is not safe for concurrent use.
type OpenTypeProvider struct {
	face    font.Face
	size    float64
	metrics Metrics
	cache   map[rune]cachedGlyph
}

type cachedGlyph struct {
	g  Glyph
	ok bool
}

// NewOpenTypeProvider parses font data and prepares a face of size pixels
// per em.
func NewOpenTypeProvider(data []byte, size float64) (*OpenTypeProvider, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: create face: %w", err)
	}
	return &OpenTypeProvider{
		face:    face,
		size:    size,
		metrics: faceMetrics(face.Metrics(), size),
		cache:   make(map[rune]cachedGlyph),
	}, nil
}

// Close releases the font face.
func (p *OpenTypeProvider) Close() error {
	return p.face.Close()
}

// Metrics implements Provider.
func (p *OpenTypeProvider) Metrics() Metrics { return p.metrics }

// Glyph implements Provider.
func (p *OpenTypeProvider) Glyph(r, next rune) (Glyph, bool) {
	c, hit := p.cache[r]
	if !hit {
		c = p.render(r)
		p.cache[r] = c
	}
	if !c.ok {
		return Glyph{}, false
	}
	g := c.g
	if next != 0 {
		g.Advance += fixedToFloat64(p.face.Kern(r, next))
	}
	return g, true
}

func (p *OpenTypeProvider) render(r rune) cachedGlyph {
	dr, mask, mp, advance, ok := p.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return cachedGlyph{}
	}
	g := Glyph{Advance: fixedToFloat64(advance), OffsetX: dr.Min.X, OffsetY: dr.Min.Y}
	if !dr.Empty() {
		g.Bitmap = alphaBitmap(mask, mp, dr.Dx(), dr.Dy())
	}
	return cachedGlyph{g: g, ok: true}
}

// alphaBitmap copies a w x h region of mask starting at mp.
func alphaBitmap(mask image.Image, mp image.Point, w, h int) *Bitmap {
	b := &Bitmap{Width: w, Height: h, BPP: 8, Stride: w, Data: make([]byte, w*h)}
	if a, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			off := a.PixOffset(mp.X, mp.Y+y)
			copy(b.Data[y*w:(y+1)*w], a.Pix[off:off+w])
		}
		return b
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, av := mask.At(mp.X+x, mp.Y+y).RGBA()
			b.Data[y*w+x] = uint8(av >> 8)
		}
	}
	return b
}

// faceMetrics converts font metrics to pixel line metrics.
func faceMetrics(m font.Metrics, size float64) Metrics {
	thickness := max(1, int(math.Round(size/14)))
	return Metrics{
		LineHeight:         m.Height.Ceil(),
		Baseline:           m.Ascent.Ceil(),
		UnderlinePos:       max(1, m.Descent.Ceil()/2),
		UnderlineThickness: thickness,
	}
}

// fixedToFloat64 converts a 26.6 fixed-point value to pixels.
func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
