package pixel

import (
	"errors"
	"testing"
)

var allFormats = []Format{FormatRGB565, FormatRGB565Swap, FormatRGB888, FormatXRGB8888, FormatARGB8888}

func TestFormatInfo(t *testing.T) {
	tests := []struct {
		format    Format
		bpp       int
		alignment int
		hasAlpha  bool
	}{
		{FormatRGB565, 2, 2, false},
		{FormatRGB565Swap, 2, 2, false},
		{FormatRGB888, 3, 1, false},
		{FormatXRGB8888, 4, 4, false},
		{FormatARGB8888, 4, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerPixel(); got != tt.bpp {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.bpp)
			}
			if got := tt.format.Alignment(); got != tt.alignment {
				t.Errorf("Alignment() = %d, want %d", got, tt.alignment)
			}
			if got := tt.format.HasAlpha(); got != tt.hasAlpha {
				t.Errorf("HasAlpha() = %v, want %v", got, tt.hasAlpha)
			}
		})
	}

	if Format(200).IsValid() {
		t.Error("Format(200).IsValid() = true, want false")
	}
	if got := Format(200).String(); got != "unknown" {
		t.Errorf("Format(200).String() = %q, want unknown", got)
	}
}

func TestStride(t *testing.T) {
	tests := []struct {
		width  int
		format Format
		want   int
	}{
		{10, FormatRGB565, 20},
		{7, FormatRGB888, 21},
		{3, FormatARGB8888, 12},
		{0, FormatARGB8888, 0},
		{-4, FormatRGB565, 0},
		{5, Format(99), 0},
	}

	for _, tt := range tests {
		if got := Stride(tt.width, tt.format); got != tt.want {
			t.Errorf("Stride(%d, %v) = %d, want %d", tt.width, tt.format, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range allFormats {
		got, err := ParseFormat(" " + f.String() + " ")
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseFormat(%q) = %v, want %v", f.String(), got, f)
		}
	}

	if _, err := ParseFormat("RGB332"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseFormat(RGB332) error = %v, want ErrInvalidFormat", err)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// maxQuantError is the largest rounding error a channel may show after a
// round trip through a channel of the given bit depth.
func maxQuantError(bits uint) int {
	levels := (1 << bits) - 1
	return (255 + levels) / (2 * levels)
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, f := range allFormats {
		t.Run(f.String(), func(t *testing.T) {
			rBits, gBits, bBits := uint(8), uint(8), uint(8)
			if f == FormatRGB565 || f == FormatRGB565Swap {
				rBits, gBits, bBits = 5, 6, 5
			}

			buf := make([]byte, 4)
			for v := 0; v < 256; v++ {
				c := Color{R: uint8(v), G: uint8(255 - v), B: uint8(v * 7), A: uint8(v / 2)}
				Pack(buf, c, f)
				got := Unpack(buf, f)

				if d := absDiff(got.R, c.R); d > maxQuantError(rBits) {
					t.Fatalf("R: %v -> %v, error %d", c, got, d)
				}
				if d := absDiff(got.G, c.G); d > maxQuantError(gBits) {
					t.Fatalf("G: %v -> %v, error %d", c, got, d)
				}
				if d := absDiff(got.B, c.B); d > maxQuantError(bBits) {
					t.Fatalf("B: %v -> %v, error %d", c, got, d)
				}

				wantA := uint8(255)
				if f.HasAlpha() {
					wantA = c.A
				}
				if got.A != wantA {
					t.Fatalf("A: %v -> %v, want alpha %d", c, got, wantA)
				}

				// A second trip through the format must be lossless.
				if again := Quantize(got, f); again != got {
					t.Fatalf("Quantize(%v) = %v, want stable value", got, again)
				}
			}
		})
	}
}

func TestRGB565Exact(t *testing.T) {
	for p := 0; p <= 0xFFFF; p++ {
		c := Unpack565(uint16(p))
		if got := Pack565(c); got != uint16(p) {
			t.Fatalf("Pack565(Unpack565(%#04x)) = %#04x", p, got)
		}
	}
}

func TestRGB565RoundsToNearest(t *testing.T) {
	// 132 sits closer to level 16 (132.1) than to level 15 (123.9).
	if got := to5(132); got != 16 {
		t.Errorf("to5(132) = %d, want 16", got)
	}
	if got := from5(31); got != 255 {
		t.Errorf("from5(31) = %d, want 255", got)
	}
	if got := from6(63); got != 255 {
		t.Errorf("from6(63) = %d, want 255", got)
	}
}

func TestRGB565ByteOrder(t *testing.T) {
	buf := make([]byte, 2)
	Pack(buf, Red, FormatRGB565)
	if buf[0] != 0x00 || buf[1] != 0xF8 {
		t.Errorf("RGB565 red = % x, want 00 f8", buf)
	}
	Pack(buf, Red, FormatRGB565Swap)
	if buf[0] != 0xF8 || buf[1] != 0x00 {
		t.Errorf("RGB565Swap red = % x, want f8 00", buf)
	}
}

func TestPackXRGBIgnoresAlpha(t *testing.T) {
	buf := make([]byte, 4)
	Pack(buf, New(1, 2, 3, 4), FormatXRGB8888)
	if buf[3] != 0xFF {
		t.Errorf("X byte = %#x, want 0xff", buf[3])
	}
	if got := Unpack(buf, FormatXRGB8888); got != New(1, 2, 3, 255) {
		t.Errorf("Unpack() = %v, want #010203ff", got)
	}
}
