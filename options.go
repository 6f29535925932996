package lvdraw

import (
	"log/slog"

	"github.com/gogpu/lvdraw/imgdec"
)

// DefaultMaxLayerBytes is the largest buffer NewLayer allocates unless
// WithMaxLayerBytes says otherwise.
const DefaultMaxLayerBytes = 64 << 20

// Option configures a Context during creation.
//
// Example:
//
//	ctx := lvdraw.NewContext(
//		lvdraw.WithCacheOptions(imgdec.WithMaxBytes(1<<20)),
//		lvdraw.WithLogger(slog.Default()),
//	)
type Option func(*options)

type options struct {
	registry      *imgdec.Registry
	cacheOpts     []imgdec.CacheOption
	maxLayerBytes int
	logger        *slog.Logger
}

func defaultOptions() options {
	return options{
		maxLayerBytes: DefaultMaxLayerBytes,
	}
}

// WithRegistry sets the decoder registry of the context's image cache.
// Without it the context uses imgdec.DefaultRegistry.
func WithRegistry(r *imgdec.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithCacheOptions passes options to the context's image cache.
func WithCacheOptions(opts ...imgdec.CacheOption) Option {
	return func(o *options) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithMaxLayerBytes limits the buffer size of layers allocated by the
// context. Larger layers fail with ErrOutOfMemory. Zero removes the limit.
func WithMaxLayerBytes(n int) Option {
	return func(o *options) {
		o.maxLayerBytes = max(n, 0)
	}
}

// WithLogger sets the logger of the context and its cache. Without it the
// context uses Logger at creation time.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
