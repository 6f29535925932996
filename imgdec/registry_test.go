package imgdec

import (
	"errors"
	"testing"
)

// stubDecoder accepts everything and records its name on open.
type stubDecoder struct {
	name   string
	accept bool
	log    *[]string
}

func (d stubDecoder) Name() string           { return d.name }
func (d stubDecoder) Accept(src Source) bool { return d.accept }
func (d stubDecoder) Open(src Source, flags OpenFlags) (Session, error) {
	*d.log = append(*d.log, d.name)
	return nil, errors.New("stub")
}

func TestDefaultRegistryOrder(t *testing.T) {
	var names []string
	for _, d := range DefaultRegistry().Decoders() {
		names = append(names, d.Name())
	}
	want := []string{"raw", "bin", "std"}
	if len(names) != len(want) {
		t.Fatalf("Decoders() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Decoders()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDefaultRegistryIsFresh(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()
	a.Register(stubDecoder{name: "extra"})
	if len(b.Decoders()) != 3 {
		t.Error("DefaultRegistry() instances share state")
	}
}

func TestRegistryFirstAcceptWins(t *testing.T) {
	var log []string
	r := NewRegistry()
	r.Register(stubDecoder{name: "no", accept: false, log: &log})
	r.Register(stubDecoder{name: "first", accept: true, log: &log})
	r.Register(stubDecoder{name: "second", accept: true, log: &log})
	r.Register(nil)

	d, err := r.Find(File("x"))
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if d.Name() != "first" {
		t.Errorf("Find() = %q, want first", d.Name())
	}
	if len(r.Decoders()) != 3 {
		t.Errorf("Decoders() has %d entries, want 3", len(r.Decoders()))
	}
}

func TestRegistryDuplicatesKept(t *testing.T) {
	r := NewRegistry()
	r.Register(RawDecoder{})
	r.Register(RawDecoder{})
	if len(r.Decoders()) != 2 {
		t.Errorf("Decoders() has %d entries, want 2", len(r.Decoders()))
	}
}

func TestRegistryFindUnsupported(t *testing.T) {
	_, err := DefaultRegistry().Find(Bytes([]byte("plain text")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Find() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestRegistryInfoWrapsDecoderErrors(t *testing.T) {
	var log []string
	r := NewRegistry()
	r.Register(stubDecoder{name: "broken", accept: true, log: &log})
	if _, err := r.Info(File("x")); !errors.Is(err, ErrDecode) {
		t.Errorf("Info() error = %v, want ErrDecode", err)
	}
	if len(log) != 1 {
		t.Errorf("decoder opened %d times, want 1", len(log))
	}
}

func TestRegistryInfoRaw(t *testing.T) {
	h, err := DefaultRegistry().Info(alphaImage(3))
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if h.Width != 3 || h.Height != 3 || h.CF != CFAlpha8 {
		t.Errorf("Info() = %+v", h)
	}
}

func TestSourceKeys(t *testing.T) {
	a, b := alphaImage(1), alphaImage(1)
	if a.Key() == b.Key() {
		t.Error("distinct RawImages must have distinct keys")
	}
	if File("a.png").Key() != File("a.png").Key() {
		t.Error("equal paths must share a key")
	}
	if Bytes([]byte{1, 2}).Key() == Bytes([]byte{1, 3}).Key() {
		t.Error("different content must not share a key")
	}
	if File("a").Key().Kind() != SourceFile || a.Key().Kind() != SourceRaw {
		t.Error("Key().Kind() wrong")
	}
}
