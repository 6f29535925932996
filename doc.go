// Package lvdraw is a software rendering and compositing engine for
// embedded-style user interfaces.
//
// # Overview
//
// lvdraw turns draw descriptors (rectangles, lines, arcs, triangles, images
// and labels) into pixels of a destination buffer. It handles clipping,
// blending, color format conversion, affine image transforms and a
// reference-counted image decoder cache.
//
// # Quick Start
//
//	ctx := lvdraw.NewContext()
//	defer ctx.Close()
//
//	layer, err := ctx.NewLayer(320, 240, pixel.FormatRGB565)
//	if err != nil {
//		return err
//	}
//	layer.Fill(pixel.White)
//	layer.Submit(lvdraw.NewRectDsc(geom.Rect(10, 10, 100, 40), pixel.Blue))
//	buf, err := layer.Finish()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Context, Layer, the descriptor types
//   - pixel: working color, destination formats, color filters
//   - geom: areas, points and affine matrices
//   - imgdec: decoder registry and cache
//   - glyph: glyph providers consumed by labels
//   - Internal: raster (coverage masks), blend (compositing)
//
// # Coordinate System
//
// Origin (0,0) is the top-left pixel, x grows right and y grows down.
// Pixel (x, y) is sampled at its center, which has continuous coordinates
// (x, y). Angles are in degrees, 0 points right and angles grow clockwise.
//
// # Concurrency
//
// Rendering is single-threaded and run-to-completion. A Context, its cache
// and its layers must be used from one goroutine at a time.
package lvdraw
