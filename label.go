package lvdraw

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/glyph"
	"github.com/gogpu/lvdraw/internal/raster"
	"github.com/gogpu/lvdraw/pixel"
)

// TextAlign is the horizontal alignment of label lines.
type TextAlign uint8

// Text alignments. AlignAuto aligns right-to-left lines to the right and
// every other line to the left.
const (
	AlignAuto TextAlign = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// BaseDir is the paragraph direction used for bidirectional reordering.
type BaseDir uint8

// Base directions. DirAuto takes the direction of the first strong
// character of each line.
const (
	DirAuto BaseDir = iota
	DirLTR
	DirRTL
)

// TextDecor is a set of text decorations.
type TextDecor uint8

// Text decorations.
const (
	DecorNone          TextDecor = 0
	DecorUnderline     TextDecor = 1 << 0
	DecorStrikethrough TextDecor = 1 << 1
)

// LabelDsc draws text inside Area. Lines break at '\n' only; glyphs that
// leave Area are clipped.
//
// With Recolor set, "#rrggbb text#" draws text in the given color and "##"
// stands for a literal '#'.
type LabelDsc struct {
	Base
	Area  geom.Area
	Text  string
	Font  glyph.Provider
	Color pixel.Color // zero reads as black

	LetterSpace int
	LineSpace   int
	Align       TextAlign
	Dir         BaseDir
	Recolor     bool
	Decor       TextDecor
	// OffsetX and OffsetY scroll the text inside Area.
	OffsetX, OffsetY int
}

var labelColorDefaults = []defaultSlot[LabelDsc, pixel.Color]{
	{func(d *LabelDsc) *pixel.Color { return &d.Color }, pixel.Black},
}

// Kind implements Descriptor.
func (LabelDsc) Kind() Kind { return KindLabel }

// Bounds implements Descriptor.
func (d LabelDsc) Bounds() geom.Area { return d.Area.Clamp() }

func drawLabel(l *Layer, d Descriptor, area geom.Area) error {
	dsc, ok := as[LabelDsc](d)
	if !ok {
		return badDescriptor(d)
	}
	applyDefaults(&dsc, labelColorDefaults)
	opa := dsc.opa()
	if opa == 0 || dsc.Font == nil || dsc.Text == "" {
		return nil
	}

	m := dsc.Font.Metrics()
	y := dsc.Area.Y1 + dsc.OffsetY
	for _, ln := range splitLabel(dsc.Text, dsc.Recolor, dsc.Color, dsc.Dir) {
		if y >= area.Y2 {
			break
		}
		if y+m.LineHeight > area.Y1 {
			l.drawTextLine(&dsc, ln, m, y, area, opa)
		}
		y += m.LineHeight + dsc.LineSpace
	}
	return nil
}

// textLine is one line of a label in visual order.
type textLine struct {
	runes  []rune
	colors []pixel.Color
	rtl    bool
}

// splitLabel breaks text into lines, resolves recolor markup and reorders
// each line for display.
func splitLabel(text string, recolor bool, color pixel.Color, dir BaseDir) []textLine {
	src := strings.Split(text, "\n")
	lines := make([]textLine, 0, len(src))
	for _, s := range src {
		s = strings.TrimSuffix(s, "\r")
		var runes []rune
		var colors []pixel.Color
		if recolor {
			runes, colors = parseRecolor(s, color)
		} else {
			runes = []rune(s)
			colors = make([]pixel.Color, len(runes))
			for i := range colors {
				colors[i] = color
			}
		}

		rtl := dir == DirRTL || (dir == DirAuto && firstStrongRTL(runes))
		ln := textLine{runes: make([]rune, len(runes)), colors: make([]pixel.Color, len(runes)), rtl: rtl}
		for i, j := range visualOrder(runes, rtl) {
			ln.runes[i] = runes[j]
			ln.colors[i] = colors[j]
		}
		lines = append(lines, ln)
	}
	return lines
}

// parseRecolor strips recolor commands from s and returns the color of
// every remaining rune.
func parseRecolor(s string, base pixel.Color) ([]rune, []pixel.Color) {
	rs := []rune(s)
	runes := make([]rune, 0, len(rs))
	colors := make([]pixel.Color, 0, len(rs))
	cur, colored := base, false
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '#' {
			switch {
			case i+1 < len(rs) && rs[i+1] == '#':
				i++
			case colored:
				cur, colored = base, false
				continue
			case i+7 < len(rs) && rs[i+7] == ' ':
				if c, err := pixel.ParseHex(string(rs[i+1 : i+7])); err == nil {
					c.A = base.A
					cur, colored = c, true
					i += 7
					continue
				}
			}
		}
		runes = append(runes, r)
		colors = append(colors, cur)
	}
	return runes, colors
}

// firstStrongRTL reports whether the first strongly directional rune of rs
// is right-to-left.
func firstStrongRTL(rs []rune) bool {
	for _, r := range rs {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return false
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}

// visualOrder returns the logical indices of rs in display order.
func visualOrder(rs []rune, rtl bool) []int {
	order := make([]int, len(rs))
	for i := range order {
		order[i] = i
	}
	if len(rs) == 0 {
		return order
	}
	levels := bidiLevels(rs, rtl)

	// Reverse every run at or above each level, highest level first.
	var top uint8
	for _, lv := range levels {
		top = max(top, lv)
	}
	for level := top; level >= 1; level-- {
		for i := 0; i < len(levels); {
			if levels[i] < level {
				i++
				continue
			}
			j := i
			for j < len(levels) && levels[j] >= level {
				j++
			}
			reverse(order[i:j])
			reverse(levels[i:j])
			i = j
		}
	}
	return order
}

// bidiLevels returns the embedding level of every rune: even for
// left-to-right text, odd for right-to-left.
func bidiLevels(rs []rune, rtl bool) []uint8 {
	var base uint8
	dir := bidi.LeftToRight
	if rtl {
		base, dir = 1, bidi.RightToLeft
	}
	levels := make([]uint8, len(rs))
	for i := range levels {
		levels[i] = base
	}

	var p bidi.Paragraph
	if _, err := p.SetString(string(rs), bidi.DefaultDirection(dir)); err != nil {
		return levels
	}
	o, err := p.Order()
	if err != nil {
		return levels
	}
	// Run positions are rune indices, end inclusive.
	for i := 0; i < o.NumRuns(); i++ {
		run := o.Run(i)
		start, end := run.Pos()
		lv := base
		switch run.Direction() {
		case bidi.RightToLeft:
			lv = 1
		case bidi.LeftToRight:
			if rtl {
				lv = 2
			} else {
				lv = 0
			}
		}
		for j := max(start, 0); j <= end && j < len(levels); j++ {
			levels[j] = lv
		}
	}
	return levels
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// drawTextLine draws one line whose top is at y.
func (l *Layer) drawTextLine(dsc *LabelDsc, ln textLine, m glyph.Metrics, y int, area geom.Area, opa uint8) {
	n := len(ln.runes)
	glyphs := make([]glyph.Glyph, n)
	width := 0.0
	for i, r := range ln.runes {
		var next rune
		if !ln.rtl && i+1 < n {
			next = ln.runes[i+1]
		}
		g, ok := dsc.Font.Glyph(r, next)
		if !ok {
			continue
		}
		glyphs[i] = g
		width += g.Advance
		if i+1 < n {
			width += float64(dsc.LetterSpace)
		}
	}

	x := float64(dsc.Area.X1 + dsc.OffsetX)
	free := float64(dsc.Area.Width()) - width
	switch align := dsc.Align; {
	case align == AlignCenter:
		x += math.Floor(free / 2)
	case align == AlignRight, align == AlignAuto && ln.rtl:
		x += free
	}
	baseline := y + m.Baseline

	pen := x
	for i, g := range glyphs {
		if b, ox, oy := g.Mask(); b != nil {
			gx, gy := int(math.Round(pen))+ox, baseline+oy
			box := geom.Rect(gx, gy, b.Width, b.Height).Intersect(area)
			if !box.IsEmpty() {
				l.blendMask(glyphMask(b, gx, gy, box), ln.colors[i], opa, dsc.Base)
			}
		}
		pen += g.Advance + float64(dsc.LetterSpace)
	}

	if dsc.Decor == DecorNone || width <= 0 {
		return
	}
	x1, x2 := int(math.Round(x)), int(math.Round(x+width))
	thick := max(m.UnderlineThickness, 1)
	if dsc.Decor&DecorUnderline != 0 {
		top := baseline + m.UnderlinePos
		l.fillArea(geom.Area{X1: x1, Y1: top, X2: x2, Y2: top + thick}.Intersect(area), dsc.Color, opa, dsc.Base)
	}
	if dsc.Decor&DecorStrikethrough != 0 {
		top := baseline - m.Baseline/3 - thick/2
		l.fillArea(geom.Area{X1: x1, Y1: top, X2: x2, Y2: top + thick}.Intersect(area), dsc.Color, opa, dsc.Base)
	}
}

// glyphMask copies the part of a glyph bitmap placed at (gx, gy) that lies
// within box.
func glyphMask(b *glyph.Bitmap, gx, gy int, box geom.Area) *raster.Mask {
	m := raster.NewMask(box)
	for y := box.Y1; y < box.Y2; y++ {
		row := m.Row(y)
		for x := box.X1; x < box.X2; x++ {
			row[x-box.X1] = b.Alpha(x-gx, y-gy)
		}
	}
	return m
}
