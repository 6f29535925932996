package glyph

// BitmapFont is a font of pre-rendered glyphs, as compiled into firmware
// images. Runes without a glyph fall back to Fallback when it is set.
type BitmapFont struct {
	LineMetrics Metrics
	Glyphs      map[rune]Glyph
	// Kerning holds extra advance for rune pairs.
	Kerning  map[[2]rune]float64
	Fallback rune
}

// Metrics implements Provider.
func (f *BitmapFont) Metrics() Metrics { return f.LineMetrics }

// Glyph implements Provider.
func (f *BitmapFont) Glyph(r, next rune) (Glyph, bool) {
	g, ok := f.Glyphs[r]
	if !ok && f.Fallback != 0 {
		g, ok = f.Glyphs[f.Fallback]
	}
	if !ok {
		return Glyph{}, false
	}
	if k, ok := f.Kerning[[2]rune{r, next}]; ok {
		g.Advance += k
	}
	return g, true
}
