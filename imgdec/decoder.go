// Package imgdec provides pluggable image decoders and a reference-counted
// cache of decoded bitmaps.
//
// Decoders are registered on a Registry and tried in registration order.
// A Cache decodes each source at most once and keeps the bitmap alive while
// it is referenced. Neither type is safe for concurrent use.
package imgdec

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/lvdraw/pixel"
)

// Errors returned by decoders and the cache.
var (
	// ErrUnsupportedFormat is returned when no decoder accepts a source.
	ErrUnsupportedFormat = errors.New("imgdec: unsupported format")
	// ErrDecode wraps every failure of a decoder.
	ErrDecode = errors.New("imgdec: decode failed")
	// ErrDecodeInProgress is returned when a source is opened while its
	// own decode is still running. It wraps ErrDecode.
	ErrDecodeInProgress = fmt.Errorf("%w: decode in progress", ErrDecode)
	// ErrOutOfMemory is returned when a decoded image exceeds the size
	// limit or its size overflows.
	ErrOutOfMemory = errors.New("imgdec: out of memory")
	// ErrNotOpen is returned when closing an entry without references.
	ErrNotOpen = errors.New("imgdec: entry not open")
)

// CF is the color format of an image source. The numeric values match the
// header field of .bin image files.
type CF uint8

// Color formats.
const (
	CFUnknown CF = iota
	CFRaw
	CFRawAlpha
	CFRawChromaKeyed
	CFTrueColor
	CFTrueColorAlpha
	CFTrueColorChromaKeyed
	CFIndexed1
	CFIndexed2
	CFIndexed4
	CFIndexed8
	CFAlpha1
	CFAlpha2
	CFAlpha4
	CFAlpha8

	cfCount
)

var cfNames = [cfCount]string{
	"unknown", "raw", "raw_alpha", "raw_chroma_keyed",
	"true_color", "true_color_alpha", "true_color_chroma_keyed",
	"indexed_1", "indexed_2", "indexed_4", "indexed_8",
	"alpha_1", "alpha_2", "alpha_4", "alpha_8",
}

// String returns the format name.
func (cf CF) String() string {
	if cf >= cfCount {
		return fmt.Sprintf("CF(%d)", cf)
	}
	return cfNames[cf]
}

// Bits returns the bits per pixel of indexed and alpha-only formats, or 0.
func (cf CF) Bits() int {
	switch cf {
	case CFIndexed1, CFAlpha1:
		return 1
	case CFIndexed2, CFAlpha2:
		return 2
	case CFIndexed4, CFAlpha4:
		return 4
	case CFIndexed8, CFAlpha8:
		return 8
	}
	return 0
}

// IsIndexed reports whether cf uses a palette.
func (cf CF) IsIndexed() bool { return cf >= CFIndexed1 && cf <= CFIndexed8 }

// IsAlphaOnly reports whether cf stores only alpha.
func (cf CF) IsAlphaOnly() bool { return cf >= CFAlpha1 && cf <= CFAlpha8 }

// IsTrueColor reports whether cf stores packed pixels of a pixel.Format.
func (cf CF) IsTrueColor() bool { return cf >= CFTrueColor && cf <= CFTrueColorChromaKeyed }

// Header is the metadata of an image.
type Header struct {
	CF     CF
	Width  int
	Height int
	// Format is the pixel layout of true-color data.
	Format pixel.Format
}

// OpenFlags selects how much of an image a session prepares.
type OpenFlags uint8

const (
	// OpenInfo reads the header only.
	OpenInfo OpenFlags = iota
	// OpenFull prepares the session for pixel access.
	OpenFull
)

// Decoder turns a Source into pixels.
type Decoder interface {
	// Name identifies the decoder in logs.
	Name() string
	// Accept reports whether the decoder can handle src. It must be cheap.
	Accept(src Source) bool
	// Open starts a decode session.
	Open(src Source, flags OpenFlags) (Session, error)
}

// Session is one open image. Sessions opened with OpenInfo only support
// Header and Close.
type Session interface {
	Header() Header
	// ReadLine decodes len(dst) pixels of row y starting at column x.
	ReadLine(x, y int, dst []pixel.Color) error
	Close() error
}

// Framer is implemented by sessions that decode the whole image at once.
type Framer interface {
	Frame() (*Bitmap, error)
}

// Bitmap is a decoded image in straight-alpha colors. Bitmaps held by the
// cache are read-only.
type Bitmap struct {
	Width, Height int
	Pix           []pixel.Color
	// AlphaOnly marks images whose color is supplied at draw time.
	AlphaOnly bool
}

// NewBitmap allocates a transparent w x h bitmap. It returns ErrOutOfMemory
// when the size overflows.
func NewBitmap(w, h int) (*Bitmap, error) {
	if _, err := bitmapBytes(w, h); err != nil {
		return nil, err
	}
	return &Bitmap{Width: w, Height: h, Pix: make([]pixel.Color, w*h)}, nil
}

// At returns the pixel at (x, y), or transparent outside the bitmap.
func (b *Bitmap) At(x, y int) pixel.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return pixel.Transparent
	}
	return b.Pix[y*b.Width+x]
}

// Row returns the pixels of row y.
func (b *Bitmap) Row(y int) []pixel.Color {
	return b.Pix[y*b.Width : (y+1)*b.Width]
}

// Bytes returns the memory held by the pixels.
func (b *Bitmap) Bytes() int {
	return len(b.Pix) * 4
}

// bitmapBytes returns the decoded size of a w x h image.
func bitmapBytes(w, h int) (int, error) {
	if w < 0 || h < 0 {
		return 0, fmt.Errorf("%w: negative size %dx%d", ErrDecode, w, h)
	}
	if h != 0 && w > math.MaxInt/4/h {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrOutOfMemory, w, h)
	}
	return w * h * 4, nil
}

// readFrame decodes every row of s into a new bitmap.
func readFrame(s Session) (*Bitmap, error) {
	if f, ok := s.(Framer); ok {
		return f.Frame()
	}
	h := s.Header()
	b, err := NewBitmap(h.Width, h.Height)
	if err != nil {
		return nil, err
	}
	b.AlphaOnly = h.CF.IsAlphaOnly()
	for y := 0; y < h.Height; y++ {
		if err := s.ReadLine(0, y, b.Row(y)); err != nil {
			return nil, err
		}
	}
	return b, nil
}
