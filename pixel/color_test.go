package pixel

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"000", Black},
		{"#f008", New(255, 0, 0, 136)},
		{"#0000ff", Blue},
		{"12345678", New(0x12, 0x34, 0x56, 0x78)},
		{"#ABCDEF", RGB(0xAB, 0xCD, 0xEF)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#gggggg", "#1234567", "#123456789"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestMix(t *testing.T) {
	fg := RGB(200, 100, 0)
	bg := New(0, 100, 200, 77)

	if got := Mix(fg, bg, OpaCover); got != New(200, 100, 0, 77) {
		t.Errorf("Mix(cover) = %v, want fg color with bg alpha", got)
	}
	if got := Mix(fg, bg, OpaTransp); got != bg {
		t.Errorf("Mix(transp) = %v, want %v", got, bg)
	}
	// (200*128 + 0*127 + 127) / 255 = 100.9 -> 100
	if got := Mix(fg, bg, 128); got.R != 100 || got.G != 100 || got.B != 100 {
		t.Errorf("Mix(128) = %v, want #646464", got)
	}
}

func TestBrightness(t *testing.T) {
	if got := White.Brightness(); got != 255 {
		t.Errorf("White.Brightness() = %d, want 255", got)
	}
	if got := Black.Brightness(); got != 0 {
		t.Errorf("Black.Brightness() = %d, want 0", got)
	}
	if Green.Brightness() <= Blue.Brightness() {
		t.Error("green should be brighter than blue")
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 64, G: 0, B: 0, A: 128})
	if got.A != 128 || got.R < 126 || got.R > 128 {
		t.Errorf("FromColor(premultiplied) = %v, want about #80000080", got)
	}
	if n := Red.NRGBA(); n != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("Red.NRGBA() = %v", n)
	}
}

func TestFilters(t *testing.T) {
	c := RGB(100, 150, 200)

	tests := []struct {
		name   string
		filter Filter
		want   Color
	}{
		{"darken full", DarkenFilter(OpaCover), Black},
		{"lighten full", LightenFilter(OpaCover), White},
		{"recolor full", RecolorFilter(Red, OpaCover), Red},
		{"zero strength", DarkenFilter(OpaTransp), c},
		{"nil func", Filter{Opa: OpaCover}, c},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Apply(c); got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}

	g := GrayscaleFilter(OpaCover).Apply(c)
	if g.R != g.G || g.G != g.B {
		t.Errorf("Grayscale() = %v, want equal channels", g)
	}
}

func TestApplyChainOrder(t *testing.T) {
	chain := []Filter{RecolorFilter(Red, OpaCover), DarkenFilter(Opa50)}
	got := ApplyChain(chain, Blue)
	// Recolor first (-> red), then darken by half.
	if got.B != 0 || got.R < 126 || got.R > 129 {
		t.Errorf("ApplyChain() = %v, want half-dark red", got)
	}
	if got := ApplyChain(nil, Blue); got != Blue {
		t.Errorf("ApplyChain(nil) = %v, want %v", got, Blue)
	}
}
