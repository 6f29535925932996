package imgdec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/lvdraw/pixel"
)

// testImage returns a 4x3 image with a red top-left pixel, a translucent
// green one next to it and blue elsewhere.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 128})
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStdDecoderAccept(t *testing.T) {
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  Source
		want bool
	}{
		{"png", Bytes(encodePNG(t)), true},
		{"bmp", Bytes(bmpBuf.Bytes()), true},
		{"text", Bytes([]byte("hello, world")), false},
		{"empty", Bytes(nil), false},
		{"raw png", &RawImage{Header: Header{CF: CFRawAlpha}, Data: encodePNG(t)}, true},
		{"raw pixels", &RawImage{Header: Header{CF: CFAlpha8}, Data: []byte{1}}, false},
		{"missing file", File(filepath.Join(t.TempDir(), "none.png")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (StdDecoder{}).Accept(tt.src); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStdDecoderPixels(t *testing.T) {
	c := NewCache(DefaultRegistry())
	e, err := c.Open(Bytes(encodePNG(t)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close(e)

	b := e.Bitmap()
	if b.Width != 4 || b.Height != 3 {
		t.Fatalf("bitmap size = %dx%d, want 4x3", b.Width, b.Height)
	}
	if got := b.At(0, 0); got != pixel.Red {
		t.Errorf("At(0, 0) = %v, want red", got)
	}
	if got := b.At(1, 0); got.G < 254 || got.A != 128 || got.R != 0 {
		t.Errorf("At(1, 0) = %v, want green at alpha 128", got)
	}
	if got := b.At(3, 2); got != pixel.Blue {
		t.Errorf("At(3, 2) = %v, want blue", got)
	}
	if e.Decoder() != "std" {
		t.Errorf("decoder = %q, want std", e.Decoder())
	}
}

func TestStdDecoderInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.dat")
	if err := os.WriteFile(path, encodePNG(t), 0o600); err != nil {
		t.Fatal(err)
	}
	h, err := DefaultRegistry().Info(File(path))
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if h.Width != 4 || h.Height != 3 || h.CF != CFRawAlpha {
		t.Errorf("Info() = %+v", h)
	}
}

func TestStdDecoderCorrupt(t *testing.T) {
	data := encodePNG(t)
	data = data[:len(data)/2]
	c := NewCache(DefaultRegistry())
	if _, err := c.Open(Bytes(data)); !errors.Is(err, ErrDecode) {
		t.Errorf("Open(truncated png) error = %v, want ErrDecode", err)
	}
	if s := c.Stats(); s.Entries != 0 || s.Bytes != 0 {
		t.Errorf("Stats() after failure = %+v, want no entries", s)
	}
}

func TestUnpremultiply(t *testing.T) {
	tests := []struct {
		r, g, b, a uint8
		want       pixel.Color
	}{
		{0, 0, 0, 0, pixel.Transparent},
		{10, 20, 30, 255, pixel.RGB(10, 20, 30)},
		{128, 0, 64, 128, pixel.New(255, 0, 128, 128)},
	}
	for _, tt := range tests {
		if got := unpremultiply(tt.r, tt.g, tt.b, tt.a); got != tt.want {
			t.Errorf("unpremultiply(%d, %d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, tt.a, got, tt.want)
		}
	}
}
