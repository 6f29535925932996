package imgdec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/lvdraw/pixel"
)

func binImage(t *testing.T, h Header, payload []byte) []byte {
	t.Helper()
	b, err := AppendBinHeader(nil, h)
	if err != nil {
		t.Fatalf("AppendBinHeader() error = %v", err)
	}
	return append(b, payload...)
}

func TestBinHeaderLayout(t *testing.T) {
	// cf=4 (true color), w=100, h=50.
	raw := uint32(4) | 100<<10 | 50<<21
	b := []byte{byte(raw), byte(raw >> 8), byte(raw >> 16), byte(raw >> 24)}

	h, err := ParseBinHeader(b, pixel.FormatRGB565)
	if err != nil {
		t.Fatalf("ParseBinHeader() error = %v", err)
	}
	want := Header{CF: CFTrueColor, Width: 100, Height: 50, Format: pixel.FormatRGB565}
	if h != want {
		t.Errorf("ParseBinHeader() = %+v, want %+v", h, want)
	}

	out, err := AppendBinHeader(nil, want)
	if err != nil || string(out) != string(b) {
		t.Errorf("AppendBinHeader() = % x, %v, want % x", out, err, b)
	}
}

func TestBinHeaderReservedBitsIgnored(t *testing.T) {
	raw := uint32(CFAlpha8) | 3<<8 | 2<<10 | 2<<21
	b := []byte{byte(raw), byte(raw >> 8), byte(raw >> 16), byte(raw >> 24)}
	h, err := ParseBinHeader(b, pixel.FormatRGB565)
	if err != nil {
		t.Fatalf("ParseBinHeader() error = %v", err)
	}
	if h.CF != CFAlpha8 || h.Width != 2 || h.Height != 2 {
		t.Errorf("ParseBinHeader() = %+v", h)
	}
}

func TestBinHeaderInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		n    int
	}{
		{"short", 0, 3},
		{"zero bits set", uint32(CFAlpha8) | 1<<5 | 1<<10 | 1<<21, 4},
		{"unknown cf", uint32(0) | 1<<10 | 1<<21, 4},
		{"cf out of range", uint32(20) | 1<<10 | 1<<21, 4},
		{"zero width", uint32(CFAlpha8) | 1<<21, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := []byte{byte(tt.raw), byte(tt.raw >> 8), byte(tt.raw >> 16), byte(tt.raw >> 24)}[:tt.n]
			if _, err := ParseBinHeader(b, pixel.FormatRGB565); !errors.Is(err, ErrDecode) {
				t.Errorf("ParseBinHeader() error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestAppendBinHeaderRejectsLargeImages(t *testing.T) {
	if _, err := AppendBinHeader(nil, Header{CF: CFAlpha8, Width: 2048, Height: 1}); err == nil {
		t.Error("AppendBinHeader(width 2048) should fail")
	}
}

func TestBinDecoderAccept(t *testing.T) {
	d := &BinDecoder{Format: pixel.FormatRGB565}
	valid := binImage(t, Header{CF: CFAlpha8, Width: 2, Height: 2}, []byte{1, 2, 3, 4})

	tests := []struct {
		name string
		src  Source
		want bool
	}{
		{"bytes", Bytes(valid), true},
		{"short payload", Bytes(valid[:7]), false},
		{"long payload", Bytes(append(append([]byte{}, valid...), 0)), false},
		{"garbage", Bytes([]byte("not an image")), false},
		{"bin file", File("icons/ok.BIN"), true},
		{"png file", File("icons/ok.png"), false},
		{"raw", &RawImage{Header: Header{CF: CFAlpha8}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Accept(tt.src); got != tt.want {
				t.Errorf("Accept() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBinDecoderFile(t *testing.T) {
	payload := []byte{0x00, 0xf8, 0xe0, 0x07, 0x1f, 0x00, 0xff, 0xff}
	data := binImage(t, Header{CF: CFTrueColor, Width: 2, Height: 2}, payload)
	path := filepath.Join(t.TempDir(), "img.bin")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	reg := DefaultRegistry()
	h, err := reg.Info(File(path))
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if h.Width != 2 || h.Height != 2 || h.Format != pixel.FormatRGB565 {
		t.Errorf("Info() = %+v", h)
	}

	c := NewCache(reg)
	e, err := c.Open(File(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close(e)

	if e.Decoder() != "bin" {
		t.Errorf("decoder = %q, want bin", e.Decoder())
	}
	want := []pixel.Color{pixel.Red, pixel.Green, pixel.Blue, pixel.White}
	for i, w := range want {
		if got := e.Bitmap().Pix[i]; got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}
