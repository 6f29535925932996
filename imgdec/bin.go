package imgdec

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/lvdraw/pixel"
)

// BinHeaderSize is the length of the header that starts a .bin image.
const BinHeaderSize = 4

// Bit layout of the little-endian .bin header word.
const (
	binCFBits    = 5
	binZeroShift = 5
	binZeroMask  = 0x7
	binResShift  = 8
	binWShift    = 10
	binHShift    = 21
	binSizeMask  = 0x7FF
)

// ParseBinHeader decodes the 4-byte header of a .bin image: color format
// in bits 0-4, three zero bits, two reserved bits, then 11 bits of width
// and 11 bits of height. True-color data is assumed to be stored in f.
func ParseBinHeader(b []byte, f pixel.Format) (Header, error) {
	if len(b) < BinHeaderSize {
		return Header{}, fmt.Errorf("%w: short .bin header", ErrDecode)
	}
	v := binary.LittleEndian.Uint32(b)
	h := Header{
		CF:     CF(v & (1<<binCFBits - 1)),
		Width:  int(v >> binWShift & binSizeMask),
		Height: int(v >> binHShift & binSizeMask),
	}
	if (v>>binZeroShift)&binZeroMask != 0 {
		return Header{}, fmt.Errorf("%w: .bin header has non-zero padding bits", ErrDecode)
	}
	if h.CF == CFUnknown || h.CF >= cfCount || h.Width == 0 || h.Height == 0 {
		return Header{}, fmt.Errorf("%w: invalid .bin header %08x", ErrDecode, v)
	}
	if h.CF.IsTrueColor() {
		h.Format = f
	}
	return h, nil
}

// AppendBinHeader appends the .bin header of h to b.
func AppendBinHeader(b []byte, h Header) ([]byte, error) {
	if h.CF == CFUnknown || h.CF >= cfCount || h.Width <= 0 || h.Height <= 0 || h.Width > binSizeMask || h.Height > binSizeMask {
		return b, fmt.Errorf("imgdec: header %v %dx%d does not fit a .bin file", h.CF, h.Width, h.Height)
	}
	v := uint32(h.CF) | uint32(h.Width)<<binWShift | uint32(h.Height)<<binHShift
	return binary.LittleEndian.AppendUint32(b, v), nil
}

// BinDecoder reads .bin image files: a header followed by a payload laid
// out like RawImage data.
type BinDecoder struct {
	// Format is the pixel layout of true-color payloads.
	Format pixel.Format
}

// Name implements Decoder.
func (*BinDecoder) Name() string { return "bin" }

// Accept implements Decoder. Files are accepted by extension; byte slices
// when the header is valid and the payload length matches it.
func (d *BinDecoder) Accept(src Source) bool {
	switch s := src.(type) {
	case FileSource:
		return s.Ext() == "bin"
	case *BytesSource:
		h, err := ParseBinHeader(s.data, d.Format)
		if err != nil {
			return false
		}
		n, err := PayloadSize(h)
		return err == nil && len(s.data)-BinHeaderSize == n
	}
	return false
}

// Open implements Decoder.
func (d *BinDecoder) Open(src Source, flags OpenFlags) (Session, error) {
	var data []byte
	var err error
	if flags == OpenInfo {
		data, err = head(src, BinHeaderSize)
	} else {
		data, err = readAll(src)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	h, err := ParseBinHeader(data, d.Format)
	if err != nil {
		return nil, err
	}
	return newRawSession(h, data[BinHeaderSize:], DefaultChromaKey, flags)
}
