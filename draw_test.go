package lvdraw

import (
	"bytes"
	"testing"

	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/pixel"
)

func TestEndToEnd(t *testing.T) {
	l := newTestLayer(t, 100, 100, pixel.FormatARGB8888)
	if err := l.Fill(pixel.White); err != nil {
		t.Fatal(err)
	}
	rect := NewRectDsc(geom.Rect(10, 10, 40, 40), pixel.Blue)
	rect.Radius = 8
	if err := l.Submit(rect); err != nil {
		t.Fatalf("Submit(rect) error = %v", err)
	}
	if err := l.Submit(ArcDsc{Center: geom.Pt(80, 80), Radius: 15, Width: 4, Start: 0, End: 360, Color: pixel.Red}); err != nil {
		t.Fatalf("Submit(arc) error = %v", err)
	}

	tests := []struct {
		x, y int
		want pixel.Color
	}{
		{30, 30, pixel.Blue},
		{5, 5, pixel.White},
		{80, 65, pixel.Red},
		{80, 80, pixel.White},
		{10, 10, pixel.White}, // cut by the corner radius
		{10, 30, pixel.Blue},
		{95, 80, pixel.Red},
	}
	for _, tt := range tests {
		if got := l.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func countDrawn(l *Layer) (n int, bounds geom.Area) {
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			if l.Pixel(x, y) != pixel.Transparent {
				n++
				bounds = bounds.Union(geom.Rect(x, y, 1, 1))
			}
		}
	}
	return n, bounds
}

func TestRectClipped(t *testing.T) {
	l := newTestLayer(t, 64, 64, pixel.FormatARGB8888)
	clip := geom.Area{X1: 10, Y1: 10, X2: 30, Y2: 30}
	err := l.WithClip(clip, func() error {
		return l.Submit(NewRectDsc(geom.Rect(0, 0, 50, 50), pixel.Red))
	})
	if err != nil {
		t.Fatal(err)
	}
	n, b := countDrawn(l)
	if n != 400 || b != clip {
		t.Errorf("drawn %d pixels in %v, want 400 in %v", n, b, clip)
	}
}

func TestZeroOpacityLeavesBufferUntouched(t *testing.T) {
	ctx := NewContext()
	src := solidImage(4, 4, pixel.Green)
	hidden := Base{OpaSet: true}
	descs := []Descriptor{
		RectDsc{Base: hidden, Area: geom.Rect(2, 2, 20, 20), BgColor: pixel.Red, BorderColor: pixel.Blue, BorderWidth: 2, ShadowColor: pixel.Black, ShadowWidth: 6},
		LineDsc{Base: hidden, P1: geom.Pt(0, 0), P2: geom.Pt(30, 20), Width: 3, Color: pixel.Red},
		ArcDsc{Base: hidden, Center: geom.Pt(15, 15), Radius: 10, Width: 3, End: 360, Color: pixel.Red},
		TriangleDsc{Base: hidden, Points: [3]geom.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: 30}}, Color: pixel.Red},
		ImageDsc{Base: hidden, Src: src, Pos: geom.Pt(3, 3)},
		LabelDsc{Base: hidden, Area: geom.Rect(0, 0, 32, 32), Text: "AB", Font: testFont(), Color: pixel.Red},
	}
	for _, f := range []pixel.Format{pixel.FormatRGB565, pixel.FormatRGB888, pixel.FormatARGB8888} {
		l, err := ctx.NewLayer(32, 32, f)
		if err != nil {
			t.Fatal(err)
		}
		_ = l.Fill(pixel.RGB(90, 120, 200))
		before := bytes.Clone(l.Buffer())
		for _, d := range descs {
			if err := l.Submit(d); err != nil {
				t.Fatalf("Submit(%v) error = %v", d.Kind(), err)
			}
			if !bytes.Equal(before, l.Buffer()) {
				t.Errorf("%v: %v with zero opacity changed the buffer", f, d.Kind())
			}
		}
	}
}

func TestFullOpacityIsExact(t *testing.T) {
	c := pixel.RGB(12, 34, 56)
	l := newTestLayer(t, 8, 8, pixel.FormatARGB8888)
	_ = l.Fill(pixel.White)
	_ = l.Submit(NewRectDsc(geom.Rect(0, 0, 8, 8), c))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := l.Pixel(x, y); got != c {
				t.Fatalf("Pixel(%d, %d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestRectParts(t *testing.T) {
	t.Run("border only", func(t *testing.T) {
		l := newTestLayer(t, 20, 20, pixel.FormatARGB8888)
		_ = l.Submit(RectDsc{Area: geom.Rect(2, 2, 10, 10), BorderColor: pixel.Red, BorderWidth: 2})
		if got := l.Pixel(2, 6); got != pixel.Red {
			t.Errorf("border Pixel(2, 6) = %v, want red", got)
		}
		if got := l.Pixel(6, 6); got != pixel.Transparent {
			t.Errorf("inside Pixel(6, 6) = %v, want transparent", got)
		}
	})

	t.Run("border sides", func(t *testing.T) {
		l := newTestLayer(t, 20, 20, pixel.FormatARGB8888)
		_ = l.Submit(RectDsc{Area: geom.Rect(2, 2, 10, 10), BorderColor: pixel.Red, BorderWidth: 2, BorderSide: SideTop})
		if got := l.Pixel(6, 2); got != pixel.Red {
			t.Errorf("top Pixel(6, 2) = %v, want red", got)
		}
		if got := l.Pixel(2, 6); got != pixel.Transparent {
			t.Errorf("left Pixel(2, 6) = %v, want transparent", got)
		}
	})

	t.Run("outline", func(t *testing.T) {
		l := newTestLayer(t, 20, 20, pixel.FormatARGB8888)
		_ = l.Submit(RectDsc{Area: geom.Rect(5, 5, 6, 6), BgColor: pixel.Blue, OutlineColor: pixel.Red, OutlineWidth: 1, OutlinePad: 1})
		if got := l.Pixel(3, 7); got != pixel.Red {
			t.Errorf("outline Pixel(3, 7) = %v, want red", got)
		}
		if got := l.Pixel(4, 7); got != pixel.Transparent {
			t.Errorf("pad Pixel(4, 7) = %v, want transparent", got)
		}
		if got := l.Pixel(5, 7); got != pixel.Blue {
			t.Errorf("fill Pixel(5, 7) = %v, want blue", got)
		}
	})

	t.Run("shadow", func(t *testing.T) {
		l := newTestLayer(t, 40, 40, pixel.FormatARGB8888)
		_ = l.Fill(pixel.White)
		_ = l.Submit(RectDsc{
			Area: geom.Rect(10, 10, 10, 10), BgColor: pixel.Blue,
			ShadowColor: pixel.Black, ShadowWidth: 4, ShadowOffsetX: 6, ShadowOffsetY: 6,
		})
		if got := l.Pixel(24, 24); got.R >= 128 {
			t.Errorf("shadow Pixel(24, 24) = %v, want dark", got)
		}
		if got := l.Pixel(15, 15); got != pixel.Blue {
			t.Errorf("background over shadow Pixel(15, 15) = %v, want blue", got)
		}
		if got := l.Pixel(5, 5); got != pixel.White {
			t.Errorf("Pixel(5, 5) = %v, want white", got)
		}
	})

	t.Run("gradient", func(t *testing.T) {
		l := newTestLayer(t, 20, 4, pixel.FormatARGB8888)
		_ = l.Submit(RectDsc{Area: geom.Rect(0, 0, 18, 4), BgColor: pixel.Black, BgGradColor: pixel.White, BgGradDir: GradHorizontal})
		if got := l.Pixel(0, 1); got != pixel.Black {
			t.Errorf("left end = %v, want black", got)
		}
		if got := l.Pixel(17, 1); got != pixel.White {
			t.Errorf("right end = %v, want white", got)
		}
		if a, b := l.Pixel(5, 1), l.Pixel(10, 1); a.R >= b.R || a.A != 255 {
			t.Errorf("gradient not increasing: %v then %v", a, b)
		}
	})
}

func TestTriangleAndArcEdgeCases(t *testing.T) {
	l := newTestLayer(t, 32, 32, pixel.FormatARGB8888)
	_ = l.Submit(TriangleDsc{Points: [3]geom.Point{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 20, Y: 9}}, Color: pixel.Red})
	_ = l.Submit(ArcDsc{Center: geom.Pt(16, 16), Radius: 10, Width: 3, Start: 45, End: 45, Color: pixel.Red})
	if n, _ := countDrawn(l); n != 0 {
		t.Errorf("degenerate shapes drew %d pixels", n)
	}

	_ = l.Submit(ArcDsc{Center: geom.Pt(16, 16), Radius: 10, Width: 3, Start: 0, End: 360, Color: pixel.Red})
	for _, p := range [][2]int{{26, 16}, {6, 16}, {16, 6}, {16, 26}} {
		if got := l.Pixel(p[0], p[1]); got != pixel.Red {
			t.Errorf("ring Pixel(%d, %d) = %v, want red", p[0], p[1], got)
		}
	}
	if got := l.Pixel(16, 16); got != pixel.Transparent {
		t.Errorf("ring center = %v, want transparent", got)
	}
}

func TestArcFilledWithoutWidth(t *testing.T) {
	l := newTestLayer(t, 32, 32, pixel.FormatARGB8888)
	_ = l.Submit(ArcDsc{Center: geom.Pt(16, 16), Radius: 8, End: 360, Color: pixel.Red})
	if got := l.Pixel(16, 16); got != pixel.Red {
		t.Errorf("center = %v, want red", got)
	}
}

func TestHugeGeometryClampsToLayer(t *testing.T) {
	tests := []struct {
		name string
		dsc  Descriptor
		draw bool
	}{
		{"wide line", LineDsc{P1: geom.Pt(0, 5), P2: geom.Pt(9, 5), Width: 1e300, Color: pixel.Red}, true},
		{"huge filled arc", ArcDsc{Center: geom.Pt(5, 5), Radius: 1e300, End: 360, Color: pixel.Red}, true},
		{"huge thin arc", ArcDsc{Center: geom.Pt(5, 5), Radius: 1e300, Width: 4, End: 360, Color: pixel.Red}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLayer(t, 10, 10, pixel.FormatARGB8888)
			if got := tt.dsc.Bounds().Intersect(l.Bounds()); got != l.Bounds() {
				t.Errorf("Bounds() on layer = %v, want %v", got, l.Bounds())
			}
			if !tt.draw {
				return
			}
			if err := l.Submit(tt.dsc); err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			for _, p := range [][2]int{{1, 0}, {5, 5}, {8, 9}} {
				if got := l.Pixel(p[0], p[1]); got != pixel.Red {
					t.Errorf("Pixel(%d, %d) = %v, want red", p[0], p[1], got)
				}
			}
		})
	}
}

func TestTriangleGradient(t *testing.T) {
	l := newTestLayer(t, 32, 32, pixel.FormatARGB8888)
	pts := [3]geom.Point{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 0, Y: 30}}
	_ = l.Submit(TriangleDsc{Points: pts, Color: pixel.Black, GradColor: pixel.White, GradDir: GradVertical})
	top, low := l.Pixel(2, 1), l.Pixel(2, 25)
	if top.R >= low.R {
		t.Errorf("vertical gradient: top %v, bottom %v", top, low)
	}
	if got := l.Pixel(29, 29); got != pixel.Transparent {
		t.Errorf("outside Pixel(29, 29) = %v, want transparent", got)
	}
}

func TestLine(t *testing.T) {
	l := newTestLayer(t, 20, 10, pixel.FormatARGB8888)
	_ = l.Submit(LineDsc{P1: geom.Pt(2, 5), P2: geom.Pt(15, 5), Color: pixel.Red, Width: 1})
	n, b := countDrawn(l)
	if want := (geom.Area{X1: 2, Y1: 5, X2: 16, Y2: 6}); n != 14 || b != want {
		t.Errorf("line drew %d pixels in %v, want 14 in %v", n, b, want)
	}
}

func TestBlendModeThroughLayer(t *testing.T) {
	l := newTestLayer(t, 4, 4, pixel.FormatARGB8888)
	_ = l.Fill(pixel.RGB(100, 100, 100))
	d := NewRectDsc(l.Bounds(), pixel.RGB(100, 200, 10))
	d.BlendMode = BlendAdditive
	_ = l.Submit(d)
	if got, want := l.Pixel(1, 1), pixel.RGB(200, 255, 110); got != want {
		t.Errorf("additive = %v, want %v", got, want)
	}

	d.BlendMode = BlendNormal
	d.Filters = []pixel.Filter{pixel.DarkenFilter(pixel.OpaCover)}
	_ = l.Submit(d)
	if got := l.Pixel(1, 1); got != pixel.Black {
		t.Errorf("darkened = %v, want black", got)
	}
}

func TestFormatsQuantize(t *testing.T) {
	c := pixel.RGB(200, 100, 50)
	for _, f := range []pixel.Format{pixel.FormatRGB565, pixel.FormatRGB565Swap, pixel.FormatRGB888, pixel.FormatXRGB8888, pixel.FormatARGB8888} {
		l := newTestLayer(t, 6, 6, f)
		_ = l.Submit(NewRectDsc(geom.Rect(1, 1, 4, 4), c))
		if got, want := l.Pixel(2, 2), pixel.Quantize(c, f); got != want {
			t.Errorf("%v: Pixel() = %v, want %v", f, got, want)
		}
	}
}
