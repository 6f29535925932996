package imgdec

import (
	"errors"
	"fmt"
	"log/slog"
)

// Cache defaults.
const (
	DefaultMaxBytes      = 4 << 20
	DefaultMaxEntryBytes = 64 << 20
)

// CacheOption configures a Cache.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	maxBytes      int
	maxEntryBytes int
	retain        bool
	logger        *slog.Logger
}

func defaultCacheOptions() cacheOptions {
	return cacheOptions{
		maxBytes:      DefaultMaxBytes,
		maxEntryBytes: DefaultMaxEntryBytes,
		retain:        true,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// WithMaxBytes sets the budget for bitmaps kept after their last close.
// Entries beyond it are evicted oldest first.
func WithMaxBytes(n int) CacheOption {
	return func(o *cacheOptions) {
		o.maxBytes = max(n, 0)
	}
}

// WithMaxEntryBytes sets the largest decoded bitmap the cache accepts.
// Larger images fail with ErrOutOfMemory. Zero removes the limit.
func WithMaxEntryBytes(n int) CacheOption {
	return func(o *cacheOptions) {
		o.maxEntryBytes = max(n, 0)
	}
}

// WithRetention enables or disables keeping unreferenced bitmaps.
func WithRetention(retain bool) CacheOption {
	return func(o *cacheOptions) {
		o.retain = retain
	}
}

// WithLogger sets the logger for cache events. Nil keeps the default
// silent logger.
func WithLogger(l *slog.Logger) CacheOption {
	return func(o *cacheOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Entry is a decoded image owned by the cache.
type Entry struct {
	key     Key
	header  Header
	bitmap  *Bitmap
	size    int
	refs    int
	pinned  bool
	dropped bool // removed from the index; freed at the last close
	decoder string
	session Session

	prev, next *Entry
	inLRU      bool
}

// Bitmap returns the decoded pixels. The bitmap must not be modified.
func (e *Entry) Bitmap() *Bitmap { return e.bitmap }

// Header returns the image header reported by the decoder.
func (e *Entry) Header() Header { return e.header }

// Key returns the source key of e.
func (e *Entry) Key() Key { return e.key }

// Refs returns the number of open references.
func (e *Entry) Refs() int { return e.refs }

// Pinned reports whether e is exempt from eviction.
func (e *Entry) Pinned() bool { return e.pinned }

// Size returns the bytes held by the bitmap.
func (e *Entry) Size() int { return e.size }

// Decoder returns the name of the decoder that produced e.
func (e *Entry) Decoder() string { return e.decoder }

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries   int
	Bytes     int
	Hits      int
	Misses    int
	Evictions int
}

// Cache maps sources to decoded bitmaps. Each source is decoded at most
// once while its entry is live or retained.
//
// Cache is not safe for concurrent use.
type Cache struct {
	reg     *Registry
	opts    cacheOptions
	entries map[Key]*Entry
	pending map[Key]struct{}
	lru     lruList
	bytes   int
	stats   Stats
}

// NewCache returns a cache that decodes with reg. A nil reg uses
// DefaultRegistry.
func NewCache(reg *Registry, opts ...CacheOption) *Cache {
	if reg == nil {
		reg = DefaultRegistry()
	}
	o := defaultCacheOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache{
		reg:     reg,
		opts:    o,
		entries: make(map[Key]*Entry),
		pending: make(map[Key]struct{}),
	}
}

// Registry returns the decoder registry of c.
func (c *Cache) Registry() *Registry { return c.reg }

// Open returns the entry for src, decoding it on a miss. Every successful
// Open must be paired with a Close.
func (c *Cache) Open(src Source) (*Entry, error) {
	key := src.Key()
	if _, busy := c.pending[key]; busy {
		return nil, fmt.Errorf("%w: %v", ErrDecodeInProgress, key)
	}
	if e, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.lru.remove(e)
		e.refs++
		c.opts.logger.Debug("imgdec: cache hit", "key", key, "refs", e.refs)
		return e, nil
	}

	c.stats.Misses++
	c.pending[key] = struct{}{}
	defer delete(c.pending, key)

	e, err := c.decode(src, key)
	if err != nil {
		c.opts.logger.Debug("imgdec: decode failed", "key", key, "err", err)
		return nil, err
	}
	c.entries[key] = e
	c.bytes += e.size
	c.opts.logger.Debug("imgdec: cache miss", "key", key, "decoder", e.decoder, "bytes", e.size)
	return e, nil
}

// decode runs the first accepting decoder on src. On failure the session is
// closed and nothing is kept.
func (c *Cache) decode(src Source, key Key) (*Entry, error) {
	d, err := c.reg.Find(src)
	if err != nil {
		return nil, err
	}
	s, err := d.Open(src, OpenFull)
	if err != nil {
		return nil, wrapDecode(d, err)
	}

	h := s.Header()
	size, err := bitmapBytes(h.Width, h.Height)
	if err == nil && c.opts.maxEntryBytes > 0 && size > c.opts.maxEntryBytes {
		err = fmt.Errorf("%w: %dx%d needs %d bytes, limit %d", ErrOutOfMemory, h.Width, h.Height, size, c.opts.maxEntryBytes)
	}
	var bmp *Bitmap
	if err == nil {
		bmp, err = readFrame(s)
	}
	if err != nil {
		if cerr := s.Close(); cerr != nil {
			c.opts.logger.Warn("imgdec: session close failed", "decoder", d.Name(), "err", cerr)
		}
		return nil, wrapDecode(d, err)
	}
	if h.CF.IsAlphaOnly() {
		bmp.AlphaOnly = true
	}

	return &Entry{
		key:     key,
		header:  h,
		bitmap:  bmp,
		size:    bmp.Bytes(),
		refs:    1,
		decoder: d.Name(),
		session: s,
	}, nil
}

// Close releases one reference to e. At zero the decoder session is closed
// and the bitmap is either retained for later hits or dropped.
func (c *Cache) Close(e *Entry) error {
	if e == nil || e.refs <= 0 {
		return ErrNotOpen
	}
	e.refs--
	if e.refs > 0 {
		return nil
	}

	var err error
	if e.session != nil {
		err = e.session.Close()
		e.session = nil
		if err != nil {
			c.opts.logger.Warn("imgdec: session close failed", "key", e.key, "err", err)
			err = fmt.Errorf("imgdec: close %v: %w", e.key, err)
		}
	}

	switch {
	case e.dropped || !c.opts.retain:
		c.drop(e)
	case !e.pinned:
		c.lru.pushFront(e)
		c.evict()
	}
	return err
}

// Pin exempts e from eviction until Unpin.
func (c *Cache) Pin(e *Entry) {
	if e == nil {
		return
	}
	e.pinned = true
	c.lru.remove(e)
}

// Unpin makes e evictable again.
func (c *Cache) Unpin(e *Entry) {
	if e == nil || !e.pinned {
		return
	}
	e.pinned = false
	if e.refs == 0 && !e.dropped {
		if !c.opts.retain {
			c.drop(e)
			return
		}
		c.lru.pushFront(e)
		c.evict()
	}
}

// Invalidate forgets src. A retained entry is freed now; a referenced one
// is freed at its last Close and later opens decode src again.
func (c *Cache) Invalidate(src Source) {
	e, ok := c.entries[src.Key()]
	if !ok {
		return
	}
	if e.refs == 0 {
		c.drop(e)
		return
	}
	delete(c.entries, e.key)
	c.bytes -= e.size
	e.dropped = true
}

// Purge frees every entry without references, pinned ones included.
func (c *Cache) Purge() {
	for _, e := range c.entries {
		if e.refs == 0 {
			c.drop(e)
		}
	}
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Entries = len(c.entries)
	s.Bytes = c.bytes
	return s
}

// Live returns the number of entries with open references.
func (c *Cache) Live() int {
	n := 0
	for _, e := range c.entries {
		if e.refs > 0 {
			n++
		}
	}
	return n
}

// evict frees retained entries, oldest first, until they fit the budget.
func (c *Cache) evict() {
	for c.lru.bytes > c.opts.maxBytes {
		e := c.lru.oldest()
		if e == nil {
			return
		}
		c.opts.logger.Debug("imgdec: evict", "key", e.key, "bytes", e.size)
		c.stats.Evictions++
		c.drop(e)
	}
}

// drop removes e from the index and the retention list.
func (c *Cache) drop(e *Entry) {
	c.lru.remove(e)
	if !e.dropped {
		if cur, ok := c.entries[e.key]; ok && cur == e {
			delete(c.entries, e.key)
			c.bytes -= e.size
		}
		e.dropped = true
	}
	e.bitmap = nil
}

// wrapDecode marks err as a decode failure of d unless it already carries
// one of the package sentinels.
func wrapDecode(d Decoder, err error) error {
	if errors.Is(err, ErrDecode) || errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrUnsupportedFormat) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrDecode, d.Name(), err)
}
