package blend

import (
	"bytes"
	"testing"

	"github.com/gogpu/lvdraw/pixel"
)

func TestMulDiv255Exact(t *testing.T) {
	for a := 0; a <= 255; a++ {
		for b := 0; b <= 255; b++ {
			want := uint8((a*b*2 + 255) / 510)
			if got := mulDiv255(uint8(a), uint8(b)); got != want {
				t.Fatalf("mulDiv255(%d, %d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestPixelZeroWeightKeepsDestination(t *testing.T) {
	dst := pixel.New(12, 34, 56, 78)
	src := pixel.Red
	tests := []struct {
		name          string
		coverage, opa uint8
	}{
		{"zero opa", 255, 0},
		{"zero coverage", 0, 255},
		{"rounds to zero", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pixel(dst, src, tt.coverage, tt.opa, ModeNormal, nil); got != dst {
				t.Errorf("Pixel() = %v, want %v", got, dst)
			}
		})
	}
}

func TestPixelFullWeightIsExact(t *testing.T) {
	src := pixel.RGB(17, 200, 99)
	for _, dst := range []pixel.Color{pixel.White, pixel.Transparent, pixel.New(1, 2, 3, 128)} {
		got := Pixel(dst, src, 255, 255, ModeNormal, nil)
		if got != src {
			t.Errorf("Pixel(%v, %v, 255, 255) = %v, want %v", dst, src, got, src)
		}
	}
}

func TestPixelHalfMix(t *testing.T) {
	got := Pixel(pixel.White, pixel.Black, 255, 128, ModeNormal, nil)
	want := pixel.RGB(127, 127, 127)
	if got != want {
		t.Errorf("Pixel(white, black, opa 128) = %v, want %v", got, want)
	}

	got = Pixel(pixel.Transparent, pixel.Red, 255, 128, ModeNormal, nil)
	if got != pixel.New(255, 0, 0, 128) {
		t.Errorf("Pixel(transparent, red, opa 128) = %v, want red at alpha 128", got)
	}
}

func TestPixelTranslucentDestination(t *testing.T) {
	// Half red over half blue: alpha 191, color normalized by it.
	got := Pixel(pixel.New(0, 0, 255, 128), pixel.Red, 255, 128, ModeNormal, nil)
	if got.A < 190 || got.A > 192 {
		t.Errorf("alpha = %d, want ~191", got.A)
	}
	if got.R < got.B {
		t.Errorf("Pixel() = %v, want red to dominate", got)
	}
}

func TestModes(t *testing.T) {
	dst := pixel.RGB(100, 200, 50)
	src := pixel.RGB(100, 100, 100)
	tests := []struct {
		mode Mode
		want pixel.Color
	}{
		{ModeNormal, pixel.RGB(100, 100, 100)},
		{ModeAdditive, pixel.RGB(200, 255, 150)},
		{ModeSubtractive, pixel.RGB(0, 100, 0)},
		{ModeMultiply, pixel.RGB(39, 78, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := Pixel(dst, src, 255, 255, tt.mode, nil); got != tt.want {
				t.Errorf("Pixel(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for m := ModeNormal; m < modeCount; m++ {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseMode("screen"); ok {
		t.Error("ParseMode(screen) should fail")
	}
}

func TestPixelAppliesFilters(t *testing.T) {
	got := Pixel(pixel.Black, pixel.White, 255, 255, ModeNormal, []pixel.Filter{pixel.DarkenFilter(255)})
	if got != pixel.Black.Opaque() {
		t.Errorf("Pixel(darkened white) = %v, want black", got)
	}
}

func TestSpanFastPathMatchesSlowPath(t *testing.T) {
	for _, f := range []pixel.Format{pixel.FormatRGB565, pixel.FormatRGB565Swap, pixel.FormatRGB888, pixel.FormatXRGB8888, pixel.FormatARGB8888} {
		t.Run(f.String(), func(t *testing.T) {
			const n = 7
			c := pixel.RGB(10, 20, 30)
			fast := make([]byte, n*f.BytesPerPixel())
			slow := make([]byte, n*f.BytesPerPixel())
			mask := bytes.Repeat([]byte{255}, n)

			Span(fast, f, n, c, nil, 255, ModeNormal, nil)
			Span(slow, f, n, c, mask, 255, ModeNormal, nil)
			if !bytes.Equal(fast, slow) {
				t.Errorf("fast span % x, want % x", fast, slow)
			}
			for i := 0; i < n; i++ {
				bpp := f.BytesPerPixel()
				if got := pixel.Unpack(fast[i*bpp:], f); got != pixel.Quantize(c, f) {
					t.Fatalf("pixel %d = %v, want %v", i, got, pixel.Quantize(c, f))
				}
			}
		})
	}
}

func TestSpanZeroOpaIsByteIdentical(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	orig := append([]byte(nil), buf...)
	Span(buf, pixel.FormatARGB8888, 2, pixel.Red, nil, 0, ModeNormal, nil)
	Span(buf, pixel.FormatARGB8888, 2, pixel.Red, []uint8{0, 0}, 255, ModeNormal, nil)
	if !bytes.Equal(buf, orig) {
		t.Errorf("buffer = % x, want % x", buf, orig)
	}
}

func TestSpanMask(t *testing.T) {
	buf := make([]byte, 3*4)
	for i := range 3 {
		pixel.Pack(buf[i*4:], pixel.White, pixel.FormatARGB8888)
	}
	Span(buf, pixel.FormatARGB8888, 3, pixel.Black, []uint8{0, 128, 255}, 255, ModeNormal, nil)

	want := []pixel.Color{pixel.White, pixel.RGB(127, 127, 127), pixel.Black.Opaque()}
	for i, w := range want {
		if got := pixel.Unpack(buf[i*4:], pixel.FormatARGB8888); got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestColorSpan(t *testing.T) {
	buf := make([]byte, 2*4)
	src := []pixel.Color{pixel.Red, pixel.New(0, 0, 255, 0)}
	ColorSpan(buf, pixel.FormatARGB8888, src, nil, 255, ModeNormal, nil)
	if got := pixel.Unpack(buf, pixel.FormatARGB8888); got != pixel.Red {
		t.Errorf("pixel 0 = %v, want red", got)
	}
	if got := pixel.Unpack(buf[4:], pixel.FormatARGB8888); got != pixel.Transparent {
		t.Errorf("pixel 1 = %v, want untouched", got)
	}
}
