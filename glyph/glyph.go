// Package glyph defines the glyph contract consumed by lvdraw labels and
// provides glyph sources backed by golang.org/x/image fonts.
//
// A Provider resolves a rune to a Glyph: an advance plus either an alpha
// bitmap (1, 2, 4 or 8 bits per pixel) or an outline that is rasterized on
// demand. Positions are in pixels with y pointing down; glyph offsets are
// relative to the pen position on the baseline.
package glyph

import (
	"errors"
	"fmt"
)

// ErrInvalidBitmap is returned for bitmaps whose data does not match their
// size and depth.
var ErrInvalidBitmap = errors.New("glyph: invalid bitmap")

// Provider supplies glyphs and line metrics for one font at one size.
type Provider interface {
	// Glyph returns the glyph for r. next is the following rune (0 at the
	// end of a line) and may be used for kerning.
	Glyph(r, next rune) (Glyph, bool)
	Metrics() Metrics
}

// Metrics describes the vertical layout of a font.
type Metrics struct {
	LineHeight int // distance between baselines
	Baseline   int // distance from the top of a line to its baseline
	// UnderlinePos is the distance of the underline top below the
	// baseline. UnderlineThickness is its height.
	UnderlinePos       int
	UnderlineThickness int
}

// Glyph is one positioned glyph.
type Glyph struct {
	// Advance moves the pen after drawing, kerning included.
	Advance float64
	// OffsetX and OffsetY place the bitmap's top-left corner relative to
	// the pen on the baseline.
	OffsetX, OffsetY int

	Bitmap  *Bitmap
	Outline *Outline
}

// Mask returns the glyph's alpha bitmap and its offset, rasterizing the
// outline when the glyph has no bitmap. Blank glyphs return nil.
func (g Glyph) Mask() (b *Bitmap, offX, offY int) {
	if g.Bitmap != nil {
		return g.Bitmap, g.OffsetX, g.OffsetY
	}
	if g.Outline != nil {
		return g.Outline.Rasterize()
	}
	return nil, 0, 0
}

// Bitmap is an alpha-only glyph image. Rows start on byte boundaries and
// sub-byte pixels are packed most significant bits first.
type Bitmap struct {
	Width, Height int
	BPP           int
	Stride        int
	Data          []byte
}

// NewBitmap wraps packed alpha data of the given depth.
func NewBitmap(w, h, bpp int, data []byte) (*Bitmap, error) {
	switch bpp {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrInvalidBitmap, bpp)
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidBitmap, w, h)
	}
	stride := (w*bpp + 7) / 8
	if len(data) < stride*h {
		return nil, fmt.Errorf("%w: %dx%d at %d bpp needs %d bytes, have %d", ErrInvalidBitmap, w, h, bpp, stride*h, len(data))
	}
	return &Bitmap{Width: w, Height: h, BPP: bpp, Stride: stride, Data: data}, nil
}

// Alpha returns the coverage of pixel (x, y) scaled to 0..255.
func (b *Bitmap) Alpha(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	if b.BPP == 8 {
		return b.Data[y*b.Stride+x]
	}
	pos := x * b.BPP
	shift := 8 - b.BPP - pos%8
	v := b.Data[y*b.Stride+pos/8] >> shift & (1<<b.BPP - 1)
	return uint8(int(v) * 255 / (1<<b.BPP - 1))
}
