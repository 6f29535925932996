package scenefile

import (
	"fmt"
	"strings"

	"github.com/gogpu/lvdraw"
	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/pixel"
)

// fields converts raw field values. The first failure sticks and later
// conversions return zero values.
type fields struct {
	err error
}

func (f *fields) fail(name string, format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf("%w: %s: %s", ErrInvalidField, name, fmt.Sprintf(format, args...))
	}
}

func (f *fields) color(name, s string) pixel.Color {
	if s == "" || f.err != nil {
		return pixel.Color{}
	}
	c, err := pixel.ParseHex(s)
	if err != nil {
		f.fail(name, "%v", err)
	}
	return c
}

func (f *fields) opa(name string, v *int, def pixel.Opa) (pixel.Opa, bool) {
	if v == nil {
		return def, false
	}
	if *v < 0 || *v > 255 {
		f.fail(name, "opacity %d out of range", *v)
		return 0, true
	}
	return pixel.Opa(*v), true
}

func (f *fields) area(name string, v []int) geom.Area {
	if len(v) != 4 {
		f.fail(name, "want [x, y, width, height], have %v", v)
		return geom.Area{}
	}
	return geom.Rect(v[0], v[1], v[2], v[3])
}

func (f *fields) point(name string, v []float64) geom.Point {
	if v == nil {
		return geom.Point{}
	}
	if len(v) != 2 {
		f.fail(name, "want [x, y], have %v", v)
		return geom.Point{}
	}
	return geom.Pt(v[0], v[1])
}

func (f *fields) points(name string, v [][]float64, n int) []geom.Point {
	if len(v) != n {
		f.fail(name, "want %d points, have %d", n, len(v))
		return make([]geom.Point, n)
	}
	pts := make([]geom.Point, n)
	for i, p := range v {
		pts[i] = f.point(name, p)
	}
	return pts
}

func (f *fields) base(d *Draw) lvdraw.Base {
	var b lvdraw.Base
	b.Opa, b.OpaSet = f.opa("opa", d.Opa, 0)
	if d.Blend != "" {
		m, ok := lvdraw.ParseBlendMode(d.Blend)
		if !ok {
			f.fail("blend", "unknown mode %q", d.Blend)
		}
		b.BlendMode = m
	}
	if d.Filter != "" {
		opa := pixel.OpaCover
		if d.FilterOpa > 0 {
			opa = pixel.Opa(min(d.FilterOpa, 255))
		}
		switch strings.ToLower(d.Filter) {
		case "darken":
			b.Filters = append(b.Filters, pixel.DarkenFilter(opa))
		case "lighten":
			b.Filters = append(b.Filters, pixel.LightenFilter(opa))
		case "grayscale":
			b.Filters = append(b.Filters, pixel.GrayscaleFilter(opa))
		default:
			f.fail("filter", "unknown filter %q", d.Filter)
		}
	}
	return b
}

// lookup returns the value named s in names, or def for an empty s.
func lookup[T any](f *fields, field, s string, def T, names map[string]T) T {
	if s == "" {
		return def
	}
	v, ok := names[strings.ToLower(s)]
	if !ok {
		f.fail(field, "unknown value %q", s)
	}
	return v
}

var (
	gradDirs = map[string]lvdraw.GradDir{
		"none":       lvdraw.GradNone,
		"horizontal": lvdraw.GradHorizontal,
		"vertical":   lvdraw.GradVertical,
	}
	sides = map[string]lvdraw.Side{
		"top":    lvdraw.SideTop,
		"bottom": lvdraw.SideBottom,
		"left":   lvdraw.SideLeft,
		"right":  lvdraw.SideRight,
		"full":   lvdraw.SideFull,
	}
	aligns = map[string]lvdraw.TextAlign{
		"auto":   lvdraw.AlignAuto,
		"left":   lvdraw.AlignLeft,
		"center": lvdraw.AlignCenter,
		"right":  lvdraw.AlignRight,
	}
	dirs = map[string]lvdraw.BaseDir{
		"auto": lvdraw.DirAuto,
		"ltr":  lvdraw.DirLTR,
		"rtl":  lvdraw.DirRTL,
	}
	decors = map[string]lvdraw.TextDecor{
		"none":          lvdraw.DecorNone,
		"underline":     lvdraw.DecorUnderline,
		"strikethrough": lvdraw.DecorStrikethrough,
	}
)

// flags ors together the named values of a list field.
func flags[T ~uint8](f *fields, field string, list []string, names map[string]T) T {
	var v, zero T
	for _, s := range list {
		v |= lookup(f, field, s, zero, names)
	}
	return v
}
