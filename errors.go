package lvdraw

import (
	"errors"

	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/imgdec"
	"github.com/gogpu/lvdraw/pixel"
)

// Errors returned by layers and contexts.
var (
	// ErrInvalidDimensions is returned for layers without pixels.
	ErrInvalidDimensions = errors.New("lvdraw: invalid dimensions")
	// ErrInvalidStride is returned when an external buffer's stride is
	// shorter than a row or not a multiple of the format alignment.
	ErrInvalidStride = errors.New("lvdraw: invalid stride")
	// ErrBufferTooSmall is returned when an external buffer cannot hold
	// stride*height bytes.
	ErrBufferTooSmall = errors.New("lvdraw: buffer too small")
	// ErrClipUnderflow is returned by PopClip on an empty clip stack.
	ErrClipUnderflow = errors.New("lvdraw: clip stack underflow")
	// ErrFinished is returned when a finished layer is used.
	ErrFinished = errors.New("lvdraw: layer finished")
	// ErrUnknownDescriptor is returned for descriptors without a handler.
	ErrUnknownDescriptor = errors.New("lvdraw: unknown descriptor")
	// ErrClosed is returned when a closed context creates a layer.
	ErrClosed = errors.New("lvdraw: context closed")
)

// Errors of the sub-packages, re-exported for errors.Is checks.
var (
	ErrOutOfMemory       = imgdec.ErrOutOfMemory
	ErrUnsupportedFormat = imgdec.ErrUnsupportedFormat
	ErrDecode            = imgdec.ErrDecode
	ErrDecodeInProgress  = imgdec.ErrDecodeInProgress
	ErrSingular          = geom.ErrSingular
	ErrInvalidFormat     = pixel.ErrInvalidFormat
)
