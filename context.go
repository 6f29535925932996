package lvdraw

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/lvdraw/imgdec"
	"github.com/gogpu/lvdraw/pixel"
)

// Context owns the resources shared by layers: the decoder registry and the
// image cache.
//
// Context is not safe for concurrent use.
type Context struct {
	cache         *imgdec.Cache
	logger        *slog.Logger
	maxLayerBytes int
	closed        bool
}

// NewContext creates a context with the given options.
func NewContext(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	reg := o.registry
	if reg == nil {
		reg = imgdec.DefaultRegistry()
	}
	cacheOpts := append([]imgdec.CacheOption{imgdec.WithLogger(o.logger)}, o.cacheOpts...)
	return &Context{
		cache:         imgdec.NewCache(reg, cacheOpts...),
		logger:        o.logger,
		maxLayerBytes: o.maxLayerBytes,
	}
}

// Cache returns the image cache of c.
func (c *Context) Cache() *imgdec.Cache { return c.cache }

// Registry returns the decoder registry of c.
func (c *Context) Registry() *imgdec.Registry { return c.cache.Registry() }

// Logger returns the logger of c.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Close releases every unreferenced cached image. Layers created by c
// keep working, but c cannot create new ones.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.cache.Purge()
	if n := c.cache.Live(); n > 0 {
		c.logger.Warn("lvdraw: context closed with open images", "entries", n)
	}
	return nil
}

// NewLayer allocates a cleared width x height layer in format f.
func (c *Context) NewLayer(width, height int, f pixel.Format) (*Layer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if err := checkLayer(width, height, f); err != nil {
		return nil, err
	}
	stride := pixel.Stride(width, f)
	if stride > math.MaxInt/height {
		return nil, fmt.Errorf("lvdraw: layer %dx%d: %w", width, height, ErrOutOfMemory)
	}
	n := stride * height
	if c.maxLayerBytes > 0 && n > c.maxLayerBytes {
		return nil, fmt.Errorf("lvdraw: layer of %d bytes exceeds %d: %w", n, c.maxLayerBytes, ErrOutOfMemory)
	}
	return newLayer(c, make([]byte, n), width, height, stride, f), nil
}

// NewLayerWithBuffer wraps an existing buffer, such as a display frame
// buffer. The buffer is borrowed until the layer is finished.
func (c *Context) NewLayerWithBuffer(buf []byte, width, height, stride int, f pixel.Format) (*Layer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if err := checkLayer(width, height, f); err != nil {
		return nil, err
	}
	if stride < pixel.Stride(width, f) || stride%f.Alignment() != 0 {
		return nil, fmt.Errorf("%w: %d for %d %v pixels", ErrInvalidStride, stride, width, f)
	}
	if stride > math.MaxInt/height || len(buf) < stride*height {
		return nil, fmt.Errorf("%w: have %d bytes, need %dx%d", ErrBufferTooSmall, len(buf), stride, height)
	}
	return newLayer(c, buf, width, height, stride, f), nil
}

func checkLayer(width, height int, f pixel.Format) error {
	if !f.IsValid() {
		return fmt.Errorf("lvdraw: %w: %d", pixel.ErrInvalidFormat, f)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}
