package blend

import "github.com/gogpu/lvdraw/pixel"

// Mode selects how the source color combines with the destination before
// the coverage-weighted mix.
type Mode uint8

const (
	// ModeNormal is plain alpha compositing.
	ModeNormal Mode = iota
	// ModeAdditive adds source to destination, clamped to white.
	ModeAdditive
	// ModeSubtractive subtracts source from destination, clamped to black.
	ModeSubtractive
	// ModeMultiply multiplies source and destination channels.
	ModeMultiply

	modeCount
)

var modeNames = [modeCount]string{"normal", "additive", "subtractive", "multiply"}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode returns the mode named s. Unknown names yield ModeNormal and
// false.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), true
		}
	}
	return ModeNormal, false
}

// Alpha returns the effective mix weight for a coverage and opacity pair.
func Alpha(coverage, opa uint8) uint8 {
	return mulDiv255(coverage, opa)
}

// Pixel composites src with the given coverage and opacity onto dst.
//
// The filter chain runs on src first. The source alpha scales the weight,
// so a translucent image pixel blends like partial coverage.
func Pixel(dst, src pixel.Color, coverage, opa uint8, mode Mode, filters []pixel.Filter) pixel.Color {
	a := mulDiv255(coverage, opa)
	if a == 0 {
		return dst
	}
	if len(filters) > 0 {
		src = pixel.ApplyChain(filters, src)
	}
	return Over(dst, src, mulDiv255(a, src.A), mode)
}

// Over mixes src onto dst with weight a. The source alpha is not consulted.
func Over(dst, src pixel.Color, a uint8, mode Mode) pixel.Color {
	if a == 0 {
		return dst
	}
	c := apply(src, dst, mode)
	if a == 255 {
		return pixel.Color{R: c.R, G: c.G, B: c.B, A: 255}
	}

	switch dst.A {
	case 255:
		return pixel.Color{
			R: lerp255(c.R, dst.R, a),
			G: lerp255(c.G, dst.G, a),
			B: lerp255(c.B, dst.B, a),
			A: 255,
		}
	case 0:
		return pixel.Color{R: c.R, G: c.G, B: c.B, A: a}
	}

	// Translucent destination: straight-alpha source-over, normalized by
	// the output alpha. Weights are scaled by 255*255.
	sa := uint32(a) * 255
	da := uint32(dst.A) * uint32(255-a)
	out := sa + da
	half := out / 2
	return pixel.Color{
		R: uint8((uint32(c.R)*sa + uint32(dst.R)*da + half) / out),
		G: uint8((uint32(c.G)*sa + uint32(dst.G)*da + half) / out),
		B: uint8((uint32(c.B)*sa + uint32(dst.B)*da + half) / out),
		A: uint8((out + 127) / 255),
	}
}

// apply returns the color that replaces dst at full weight under mode.
func apply(src, dst pixel.Color, mode Mode) pixel.Color {
	switch mode {
	case ModeAdditive:
		return pixel.Color{R: addClamp(dst.R, src.R), G: addClamp(dst.G, src.G), B: addClamp(dst.B, src.B), A: src.A}
	case ModeSubtractive:
		return pixel.Color{R: subClamp(dst.R, src.R), G: subClamp(dst.G, src.G), B: subClamp(dst.B, src.B), A: src.A}
	case ModeMultiply:
		return pixel.Color{R: mulDiv255(dst.R, src.R), G: mulDiv255(dst.G, src.G), B: mulDiv255(dst.B, src.B), A: src.A}
	default:
		return src
	}
}
