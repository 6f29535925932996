package pixel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when a format identifier is not recognized.
var ErrInvalidFormat = errors.New("pixel: invalid format")

// Format identifies the memory layout of a destination pixel.
// Multi-byte formats are stored little-endian, blue first.
type Format uint8

const (
	// FormatRGB565 is 16-bit RGB, stored as a little-endian uint16 (r:5 g:6 b:5).
	FormatRGB565 Format = iota

	// FormatRGB565Swap is RGB565 with the two bytes swapped, as expected by
	// SPI displays fed a byte stream.
	FormatRGB565Swap

	// FormatRGB888 is 24-bit RGB stored as B, G, R.
	FormatRGB888

	// FormatXRGB8888 is 32-bit RGB stored as B, G, R, X. The X byte is
	// written as 0xFF and ignored on read.
	FormatXRGB8888

	// FormatARGB8888 is 32-bit straight-alpha color stored as B, G, R, A.
	FormatARGB8888

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Name is the canonical lower-case identifier.
	Name string

	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// Alignment is the required row alignment in bytes.
	Alignment int

	// HasAlpha indicates if the format stores an alpha channel.
	HasAlpha bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGB565:     {Name: "rgb565", BytesPerPixel: 2, Alignment: 2},
	FormatRGB565Swap: {Name: "rgb565swap", BytesPerPixel: 2, Alignment: 2},
	FormatRGB888:     {Name: "rgb888", BytesPerPixel: 3, Alignment: 1},
	FormatXRGB8888:   {Name: "xrgb8888", BytesPerPixel: 4, Alignment: 4},
	FormatARGB8888:   {Name: "argb8888", BytesPerPixel: 4, Alignment: 4, HasAlpha: true},
}

// Info returns the FormatInfo for f. Unknown formats return the zero value.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// Alignment returns the required row alignment in bytes.
func (f Format) Alignment() int {
	return f.Info().Alignment
}

// HasAlpha reports whether the format stores alpha.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns the canonical name of f.
func (f Format) String() string {
	if !f.IsValid() {
		return "unknown"
	}
	return formatInfoTable[f].Name
}

// ParseFormat looks up a format by its canonical name (case-insensitive).
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f := Format(0); f < formatCount; f++ {
		if formatInfoTable[f].Name == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// Stride returns the minimum number of bytes of a row of width pixels,
// rounded up to the format alignment. It returns 0 for unknown formats or
// a non-positive width.
func Stride(width int, f Format) int {
	info := f.Info()
	if width <= 0 || info.BytesPerPixel == 0 {
		return 0
	}
	n := width * info.BytesPerPixel
	if rem := n % info.Alignment; rem != 0 {
		n += info.Alignment - rem
	}
	return n
}

// Quantization helpers: round to nearest in both directions.

func to5(v uint8) uint16   { return (uint16(v)*31 + 127) / 255 }
func to6(v uint8) uint16   { return (uint16(v)*63 + 127) / 255 }
func from5(q uint16) uint8 { return uint8((q*255 + 15) / 31) }
func from6(q uint16) uint8 { return uint8((q*255 + 31) / 63) }

// Pack565 converts c to a 16-bit RGB565 value.
func Pack565(c Color) uint16 {
	return to5(c.R)<<11 | to6(c.G)<<5 | to5(c.B)
}

// Unpack565 expands a 16-bit RGB565 value to an opaque color.
func Unpack565(p uint16) Color {
	return Color{
		R: from5(p >> 11 & 0x1F),
		G: from6(p >> 5 & 0x3F),
		B: from5(p & 0x1F),
		A: 255,
	}
}

// Pack writes c into dst in format f. dst must hold at least
// f.BytesPerPixel() bytes. Formats without alpha discard c.A.
func Pack(dst []byte, c Color, f Format) {
	switch f {
	case FormatRGB565:
		p := Pack565(c)
		dst[0] = byte(p)
		dst[1] = byte(p >> 8)
	case FormatRGB565Swap:
		p := Pack565(c)
		dst[0] = byte(p >> 8)
		dst[1] = byte(p)
	case FormatRGB888:
		dst[0] = c.B
		dst[1] = c.G
		dst[2] = c.R
	case FormatXRGB8888:
		dst[0] = c.B
		dst[1] = c.G
		dst[2] = c.R
		dst[3] = 0xFF
	case FormatARGB8888:
		dst[0] = c.B
		dst[1] = c.G
		dst[2] = c.R
		dst[3] = c.A
	}
}

// Unpack reads a pixel in format f from src. Formats without alpha
// always report A = 255. Unknown formats return Transparent.
func Unpack(src []byte, f Format) Color {
	switch f {
	case FormatRGB565:
		return Unpack565(uint16(src[0]) | uint16(src[1])<<8)
	case FormatRGB565Swap:
		return Unpack565(uint16(src[1]) | uint16(src[0])<<8)
	case FormatRGB888, FormatXRGB8888:
		return Color{R: src[2], G: src[1], B: src[0], A: 255}
	case FormatARGB8888:
		return Color{R: src[2], G: src[1], B: src[0], A: src[3]}
	default:
		return Transparent
	}
}

// Quantize returns the color that survives a round trip through f.
func Quantize(c Color, f Format) Color {
	var buf [4]byte
	Pack(buf[:], c, f)
	return Unpack(buf[:], f)
}
