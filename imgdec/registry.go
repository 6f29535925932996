package imgdec

import (
	"fmt"

	"github.com/gogpu/lvdraw/pixel"
)

// Registry holds decoders in registration order.
type Registry struct {
	decoders []Decoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a new registry with the built-in decoders: raw
// descriptors, .bin files (RGB565 true-color payloads) and encoded image
// formats, in that order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(RawDecoder{})
	r.Register(&BinDecoder{Format: pixel.FormatRGB565})
	r.Register(StdDecoder{})
	return r
}

// Register appends d. Decoders registered earlier take precedence.
func (r *Registry) Register(d Decoder) {
	if d == nil {
		return
	}
	r.decoders = append(r.decoders, d)
}

// Decoders returns the registered decoders in lookup order.
func (r *Registry) Decoders() []Decoder {
	out := make([]Decoder, len(r.decoders))
	copy(out, r.decoders)
	return out
}

// Find returns the first decoder that accepts src.
func (r *Registry) Find(src Source) (Decoder, error) {
	for _, d := range r.decoders {
		if d.Accept(src) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, src.Key())
}

// Info returns the header of src without decoding its pixels.
func (r *Registry) Info(src Source) (Header, error) {
	d, err := r.Find(src)
	if err != nil {
		return Header{}, err
	}
	s, err := d.Open(src, OpenInfo)
	if err != nil {
		return Header{}, wrapDecode(d, err)
	}
	h := s.Header()
	if err := s.Close(); err != nil {
		return h, wrapDecode(d, err)
	}
	return h, nil
}
