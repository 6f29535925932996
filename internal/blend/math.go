// Package blend is the compositor of lvdraw: it combines a source color and
// its coverage with a destination pixel.
//
// All operations work with straight (non-premultiplied) alpha values in the
// range 0-255 and round to nearest, so full coverage reproduces the source
// exactly and zero coverage leaves the destination untouched.
//
// References:
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// mulDiv255 returns round(a*b/255) without a division.
//
// Formula: t = a*b + 128; (t + (t >> 8)) >> 8
//
// The result is exact for every pair of bytes.
func mulDiv255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 128
	return uint8((t + (t >> 8)) >> 8)
}

// lerp255 mixes s over d with weight a: round((s*a + d*(255-a)) / 255).
func lerp255(s, d, a uint8) uint8 {
	t := uint32(s)*uint32(a) + uint32(d)*uint32(255-a) + 128
	return uint8((t + (t >> 8)) >> 8)
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// subClamp subtracts b from a, clamping to 0.
func subClamp(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
