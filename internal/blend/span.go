package blend

import "github.com/gogpu/lvdraw/pixel"

// Span blends n pixels of the solid color c into the packed row dst.
//
// mask holds one coverage value per pixel; a nil mask means full coverage.
// The filter chain runs once for the whole span.
func Span(dst []byte, f pixel.Format, n int, c pixel.Color, mask []uint8, opa uint8, mode Mode, filters []pixel.Filter) {
	bpp := f.BytesPerPixel()
	if bpp == 0 || n <= 0 || opa == 0 {
		return
	}
	n = min(n, len(dst)/bpp)
	if mask != nil {
		n = min(n, len(mask))
	}
	if len(filters) > 0 {
		c = pixel.ApplyChain(filters, c)
	}

	if mask == nil && opa == 255 && mode == ModeNormal && c.A == 255 {
		fill(dst[:n*bpp], f, c)
		return
	}

	base := mulDiv255(opa, c.A)
	if base == 0 {
		return
	}
	for i := 0; i < n; i++ {
		cov := uint8(255)
		if mask != nil {
			cov = mask[i]
			if cov == 0 {
				continue
			}
		}
		a := mulDiv255(cov, base)
		if a == 0 {
			continue
		}
		px := dst[i*bpp : i*bpp+bpp]
		pixel.Pack(px, Over(pixel.Unpack(px, f), c, a, mode), f)
	}
}

// ColorSpan blends one source color per pixel into dst, as needed by image
// and gradient fills. Filters run per pixel.
func ColorSpan(dst []byte, f pixel.Format, src []pixel.Color, mask []uint8, opa uint8, mode Mode, filters []pixel.Filter) {
	bpp := f.BytesPerPixel()
	if bpp == 0 || opa == 0 {
		return
	}
	n := min(len(src), len(dst)/bpp)
	if mask != nil {
		n = min(n, len(mask))
	}
	for i := 0; i < n; i++ {
		cov := uint8(255)
		if mask != nil {
			cov = mask[i]
		}
		px := dst[i*bpp : i*bpp+bpp]
		d := pixel.Unpack(px, f)
		out := Pixel(d, src[i], cov, opa, mode, filters)
		if out != d {
			pixel.Pack(px, out, f)
		}
	}
}

// fill packs c once and replicates the bytes across dst.
func fill(dst []byte, f pixel.Format, c pixel.Color) {
	bpp := f.BytesPerPixel()
	if len(dst) < bpp {
		return
	}
	pixel.Pack(dst[:bpp], c, f)
	for filled := bpp; filled < len(dst); filled *= 2 {
		copy(dst[filled:], dst[:filled])
	}
}
