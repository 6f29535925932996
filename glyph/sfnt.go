package glyph

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// OutlineProvider returns glyph outlines loaded from an SFNT font. Labels
// rasterize them on demand.
//
// OutlineProvider is not safe for concurrent use.
type OutlineProvider struct {
	font    *sfnt.Font
	buf     sfnt.Buffer
	ppem    fixed.Int26_6
	metrics Metrics
}

// NewOutlineProvider parses font data for glyphs of size pixels per em.
func NewOutlineProvider(data []byte, size float64) (*OutlineProvider, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	p := &OutlineProvider{font: f, ppem: fixed.Int26_6(size * 64)}
	m, err := f.Metrics(&p.buf, p.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("glyph: font metrics: %w", err)
	}
	p.metrics = faceMetrics(m, size)
	return p, nil
}

// Metrics implements Provider.
func (p *OutlineProvider) Metrics() Metrics { return p.metrics }

// Glyph implements Provider. Runes missing from the font report false.
func (p *OutlineProvider) Glyph(r, next rune) (Glyph, bool) {
	idx, err := p.font.GlyphIndex(&p.buf, r)
	if err != nil || idx == 0 {
		return Glyph{}, false
	}
	adv, err := p.font.GlyphAdvance(&p.buf, idx, p.ppem, font.HintingNone)
	if err != nil {
		return Glyph{}, false
	}
	g := Glyph{Advance: fixedToFloat64(adv)}

	if next != 0 {
		if nidx, err := p.font.GlyphIndex(&p.buf, next); err == nil && nidx != 0 {
			k, err := p.font.Kern(&p.buf, idx, nidx, p.ppem, font.HintingNone)
			if err == nil {
				g.Advance += fixedToFloat64(k)
			} else if !errors.Is(err, sfnt.ErrNotFound) {
				return Glyph{}, false
			}
		}
	}

	segs, err := p.font.LoadGlyph(&p.buf, idx, p.ppem, nil)
	if err != nil {
		return Glyph{}, false
	}
	if len(segs) > 0 {
		g.Outline = convertSegments(segs)
	}
	return g, true
}

// convertSegments turns sfnt segments into outline commands.
func convertSegments(segs sfnt.Segments) *Outline {
	o := &Outline{Segments: make([]OutlineSegment, 0, len(segs))}
	for _, s := range segs {
		var out OutlineSegment
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = OpMoveTo
		case sfnt.SegmentOpLineTo:
			out.Op = OpLineTo
		case sfnt.SegmentOpQuadTo:
			out.Op = OpQuadTo
		case sfnt.SegmentOpCubeTo:
			out.Op = OpCubeTo
		}
		for i := 0; i < out.Op.points(); i++ {
			out.Points[i] = OutlinePoint{X: float32(s.Args[i].X) / 64, Y: float32(s.Args[i].Y) / 64}
		}
		o.Segments = append(o.Segments, out)
	}
	return o
}
