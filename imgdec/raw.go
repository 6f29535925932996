package imgdec

import (
	"fmt"
	"math"

	"github.com/gogpu/lvdraw/pixel"
)

// DefaultChromaKey is the transparent color of chroma-keyed images whose
// ChromaKey is unset.
var DefaultChromaKey = pixel.Green

// RawImage is an image descriptor compiled into the program: a header and
// the pixel data in the layout selected by Header.CF.
//
// Rows are packed without padding. Alpha-only and indexed rows start on a
// byte boundary with the leftmost pixel in the most significant bits.
// Indexed data is preceded by a palette of 2^bits ARGB8888 colors.
// CFTrueColorAlpha stores an extra alpha byte after each pixel unless
// Header.Format carries alpha itself.
//
// The CFRaw formats mark Data as an encoded file (PNG, JPEG, ...) that a
// format decoder handles.
//
// Sources are keyed by the address of the RawImage.
type RawImage struct {
	Header    Header
	ChromaKey pixel.Color
	Data      []byte
}

// Kind implements Source.
func (*RawImage) Kind() SourceKind { return SourceRaw }

// Key implements Source.
func (r *RawImage) Key() Key { return Key{kind: SourceRaw, raw: r} }

func (r *RawImage) encoded() bool {
	switch r.Header.CF {
	case CFRaw, CFRawAlpha, CFRawChromaKeyed:
		return true
	}
	return false
}

// RawDecoder decodes RawImage descriptors that carry pixel data.
type RawDecoder struct{}

// Name implements Decoder.
func (RawDecoder) Name() string { return "raw" }

// Accept implements Decoder.
func (RawDecoder) Accept(src Source) bool {
	r, ok := src.(*RawImage)
	return ok && r.Header.CF != CFUnknown && !r.encoded()
}

// Open implements Decoder.
func (RawDecoder) Open(src Source, flags OpenFlags) (Session, error) {
	r, ok := src.(*RawImage)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return newRawSession(r.Header, r.Data, r.ChromaKey, flags)
}

// layout describes how a header's pixels are stored.
type layout struct {
	palette  int // palette bytes before the rows
	rowBytes int
	pxBytes  int // bytes per pixel for true-color data
	alpha    bool
}

func newLayout(h Header) (layout, error) {
	if h.Width <= 0 || h.Height <= 0 {
		return layout{}, fmt.Errorf("%w: invalid size %dx%d", ErrDecode, h.Width, h.Height)
	}
	if h.Width > math.MaxInt/8 {
		return layout{}, fmt.Errorf("%w: width %d overflows", ErrOutOfMemory, h.Width)
	}
	switch {
	case h.CF.IsTrueColor():
		if !h.Format.IsValid() {
			return layout{}, fmt.Errorf("%w: %v data with format %v", ErrUnsupportedFormat, h.CF, h.Format)
		}
		l := layout{pxBytes: h.Format.BytesPerPixel()}
		if h.CF == CFTrueColorAlpha && !h.Format.HasAlpha() {
			l.pxBytes++
			l.alpha = true
		}
		l.rowBytes = h.Width * l.pxBytes
		return l, nil
	case h.CF.IsAlphaOnly():
		return layout{rowBytes: (h.Width*h.CF.Bits() + 7) / 8}, nil
	case h.CF.IsIndexed():
		return layout{
			palette:  (1 << h.CF.Bits()) * 4,
			rowBytes: (h.Width*h.CF.Bits() + 7) / 8,
		}, nil
	}
	return layout{}, fmt.Errorf("%w: color format %v", ErrUnsupportedFormat, h.CF)
}

// size returns the number of payload bytes for h rows.
func (l layout) size(height int) (int, error) {
	if height > (math.MaxInt-l.palette)/max(l.rowBytes, 1) {
		return 0, fmt.Errorf("%w: payload overflows", ErrOutOfMemory)
	}
	return l.palette + l.rowBytes*height, nil
}

// PayloadSize returns the number of data bytes a RawImage with header h
// must carry.
func PayloadSize(h Header) (int, error) {
	l, err := newLayout(h)
	if err != nil {
		return 0, err
	}
	return l.size(h.Height)
}

// rawSession reads pixels straight out of an uncompressed payload.
type rawSession struct {
	hdr     Header
	lay     layout
	rows    []byte
	palette []pixel.Color
	chroma  pixel.Color
}

func newRawSession(h Header, data []byte, chroma pixel.Color, flags OpenFlags) (*rawSession, error) {
	l, err := newLayout(h)
	if err != nil {
		return nil, err
	}
	s := &rawSession{hdr: h, lay: l}
	if flags == OpenInfo {
		return s, nil
	}

	need, err := l.size(h.Height)
	if err != nil {
		return nil, err
	}
	if len(data) < need {
		return nil, fmt.Errorf("%w: %v %dx%d needs %d bytes, have %d", ErrDecode, h.CF, h.Width, h.Height, need, len(data))
	}
	if l.palette > 0 {
		s.palette = make([]pixel.Color, l.palette/4)
		for i := range s.palette {
			s.palette[i] = pixel.Unpack(data[i*4:], pixel.FormatARGB8888)
		}
	}
	s.rows = data[l.palette:need]
	s.chroma = chroma
	if s.chroma == (pixel.Color{}) {
		s.chroma = DefaultChromaKey
	}
	return s, nil
}

// Header implements Session.
func (s *rawSession) Header() Header { return s.hdr }

// Close implements Session.
func (s *rawSession) Close() error {
	s.rows = nil
	s.palette = nil
	return nil
}

// ReadLine implements Session.
func (s *rawSession) ReadLine(x, y int, dst []pixel.Color) error {
	if s.rows == nil {
		return fmt.Errorf("%w: session not open for reading", ErrDecode)
	}
	if y < 0 || y >= s.hdr.Height || x < 0 || x+len(dst) > s.hdr.Width {
		return fmt.Errorf("%w: line (%d, %d)+%d outside %dx%d", ErrDecode, x, y, len(dst), s.hdr.Width, s.hdr.Height)
	}
	row := s.rows[y*s.lay.rowBytes : (y+1)*s.lay.rowBytes]

	switch cf := s.hdr.CF; {
	case cf.IsTrueColor():
		f := s.hdr.Format
		for i := range dst {
			px := row[(x+i)*s.lay.pxBytes:]
			c := pixel.Unpack(px, f)
			switch {
			case s.lay.alpha:
				c.A = px[f.BytesPerPixel()]
			case cf == CFTrueColorChromaKeyed && c.R == s.chroma.R && c.G == s.chroma.G && c.B == s.chroma.B:
				c = pixel.Transparent
			case cf != CFTrueColorAlpha:
				c.A = 255
			}
			dst[i] = c
		}
	case cf.IsAlphaOnly():
		bits := cf.Bits()
		maxV := uint16(1)<<bits - 1
		for i := range dst {
			v := uint16(unpackBits(row, x+i, bits))
			dst[i] = pixel.Color{A: uint8(v * 255 / maxV)}
		}
	case cf.IsIndexed():
		bits := cf.Bits()
		for i := range dst {
			dst[i] = s.palette[unpackBits(row, x+i, bits)]
		}
	}
	return nil
}

// unpackBits returns pixel i of a row packed at bits per pixel, MSB first.
func unpackBits(row []byte, i, bits int) uint8 {
	pos := i * bits
	shift := 8 - bits - pos%8
	mask := uint8(1)<<bits - 1
	return (row[pos/8] >> shift) & mask
}
