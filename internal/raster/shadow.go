package raster

import (
	"sync"

	"github.com/gogpu/lvdraw/geom"
)

// sumPool recycles the intermediate buffer of the horizontal blur pass.
var sumPool = sync.Pool{
	New: func() any {
		s := make([]uint32, 0, 1024)
		return &s
	},
}

func getSumBuffer(n int) *[]uint32 {
	p := sumPool.Get().(*[]uint32)
	if cap(*p) < n {
		*p = make([]uint32, n)
	}
	*p = (*p)[:n]
	return p
}

// ShadowBounds returns the area a shadow of box can touch.
func ShadowBounds(box geom.Area, width, spread, offsetX, offsetY int) geom.Area {
	return box.Inflate(spread+width/2+1).Translate(offsetX, offsetY)
}

// Shadow writes the coverage of the blurred silhouette of box. The
// silhouette is grown by spread and moved by (offsetX, offsetY), then
// smoothed by a separable box blur whose total width is width.
func Shadow(m *Mask, box geom.Area, radius, width, spread, offsetX, offsetY int) {
	sil := box.Inflate(spread).Translate(offsetX, offsetY)
	if sil.IsEmpty() || m.Area.IsEmpty() {
		return
	}
	r := ClampRadius(box, radius)
	if radius > 0 {
		r += spread
	}
	half := width / 2
	if half <= 0 {
		FillRect(m, sil, r)
		return
	}

	// Every box window of a mask pixel lies inside ext.
	ext := m.Area.Inflate(half)
	src := NewMask(ext)
	FillRect(src, sil, r)
	boxBlur(m, src, half)
}

// boxBlur writes into dst the box-filtered coverage of src, using a window
// of 2*half+1 pixels on each axis. src must span dst.Area grown by half.
func boxBlur(dst, src *Mask, half int) {
	size := uint32(2*half + 1)
	dw, dh := dst.Area.Width(), dst.Area.Height()
	sw, sh := src.Area.Width(), src.Area.Height()

	// Pass 1: horizontal running sums over every source row, restricted
	// to the destination columns.
	bufp := getSumBuffer(dw * sh)
	defer sumPool.Put(bufp)
	sums := *bufp
	for y := 0; y < sh; y++ {
		row := src.Cov[y*sw : (y+1)*sw]
		var acc uint32
		for k := 0; k < 2*half+1; k++ {
			acc += uint32(row[k])
		}
		out := sums[y*dw : (y+1)*dw]
		out[0] = acc
		for x := 1; x < dw; x++ {
			acc += uint32(row[x+2*half]) - uint32(row[x-1])
			out[x] = acc
		}
	}

	// Pass 2: vertical running sums, normalized by the window area.
	norm := size * size
	for x := 0; x < dw; x++ {
		var acc uint32
		for k := 0; k < 2*half+1; k++ {
			acc += sums[k*dw+x]
		}
		dst.Cov[x] = uint8((acc + norm/2) / norm)
		for y := 1; y < dh; y++ {
			acc += sums[(y+2*half)*dw+x] - sums[(y-1)*dw+x]
			dst.Cov[y*dw+x] = uint8((acc + norm/2) / norm)
		}
	}
}
