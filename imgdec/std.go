package imgdec

import (
	"bytes"
	"fmt"
	"image"

	// Codecs registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/clone"
	"github.com/h2non/filetype"

	"github.com/gogpu/lvdraw/pixel"
)

// sniffLen is the number of leading bytes filetype needs to match every
// image signature.
const sniffLen = 262

// stdExtensions lists the filetype extensions StdDecoder can decode.
var stdExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"bmp":  true,
	"tif":  true,
	"webp": true,
}

// StdDecoder decodes encoded image files: PNG, JPEG, GIF, BMP, TIFF and
// WebP. Sources are recognized by their magic bytes, not their names.
type StdDecoder struct{}

// Name implements Decoder.
func (StdDecoder) Name() string { return "std" }

// Accept implements Decoder.
func (StdDecoder) Accept(src Source) bool {
	buf, err := head(src, sniffLen)
	if err != nil || len(buf) == 0 {
		return false
	}
	kind, err := filetype.Match(buf)
	if err != nil || kind == filetype.Unknown {
		return false
	}
	return stdExtensions[kind.Extension]
}

// Open implements Decoder. Info sessions only decode the image config.
func (StdDecoder) Open(src Source, flags OpenFlags) (Session, error) {
	data, err := readAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if flags == OpenInfo {
		cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return &stdSession{hdr: stdHeader(cfg.Width, cfg.Height), name: name}, nil
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, src.Kind(), err)
	}
	b := img.Bounds()
	if _, err := bitmapBytes(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return &stdSession{hdr: stdHeader(b.Dx(), b.Dy()), name: name, img: img}, nil
}

func stdHeader(w, h int) Header {
	return Header{CF: CFRawAlpha, Width: w, Height: h, Format: pixel.FormatARGB8888}
}

// stdSession holds a decoded image until its first Frame call converts it.
type stdSession struct {
	hdr  Header
	name string
	img  image.Image
	bmp  *Bitmap
}

// Header implements Session.
func (s *stdSession) Header() Header { return s.hdr }

// Frame implements Framer.
func (s *stdSession) Frame() (*Bitmap, error) {
	if s.bmp != nil {
		return s.bmp, nil
	}
	if s.img == nil {
		return nil, fmt.Errorf("%w: %s session opened for info only", ErrDecode, s.name)
	}
	rgba := clone.AsRGBA(s.img)
	b, err := NewBitmap(s.hdr.Width, s.hdr.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Height; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		dst := b.Row(y)
		for x := range dst {
			p := row[x*4 : x*4+4]
			dst[x] = unpremultiply(p[0], p[1], p[2], p[3])
		}
	}
	s.bmp = b
	s.img = nil
	return b, nil
}

// ReadLine implements Session.
func (s *stdSession) ReadLine(x, y int, dst []pixel.Color) error {
	b, err := s.Frame()
	if err != nil {
		return err
	}
	if y < 0 || y >= b.Height || x < 0 || x+len(dst) > b.Width {
		return fmt.Errorf("%w: line (%d, %d)+%d outside %dx%d", ErrDecode, x, y, len(dst), b.Width, b.Height)
	}
	copy(dst, b.Row(y)[x:])
	return nil
}

// Close implements Session.
func (s *stdSession) Close() error {
	s.img = nil
	s.bmp = nil
	return nil
}

// unpremultiply converts a premultiplied RGBA pixel to straight alpha.
func unpremultiply(r, g, b, a uint8) pixel.Color {
	switch a {
	case 0:
		return pixel.Transparent
	case 255:
		return pixel.Color{R: r, G: g, B: b, A: 255}
	}
	half := uint16(a) / 2
	return pixel.Color{
		R: uint8(min((uint16(r)*255+half)/uint16(a), 255)),
		G: uint8(min((uint16(g)*255+half)/uint16(a), 255)),
		B: uint8(min((uint16(b)*255+half)/uint16(a), 255)),
		A: a,
	}
}
