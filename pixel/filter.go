package pixel

// FilterFunc transforms a source color before it is blended. opa is the
// strength of the filter.
type FilterFunc func(c Color, opa Opa) Color

// Filter is one step of a color filter chain.
type Filter struct {
	Fn  FilterFunc
	Opa Opa
}

// Apply runs the filter on c. A nil Fn or a zero strength returns c.
func (f Filter) Apply(c Color) Color {
	if f.Fn == nil || f.Opa == OpaTransp {
		return c
	}
	return f.Fn(c, f.Opa)
}

// ApplyChain runs every filter of chain on c in order.
func ApplyChain(chain []Filter, c Color) Color {
	for _, f := range chain {
		c = f.Apply(c)
	}
	return c
}

// Darken mixes c toward black.
func Darken(c Color, opa Opa) Color {
	return Mix(Black, c, opa)
}

// Lighten mixes c toward white.
func Lighten(c Color, opa Opa) Color {
	return Mix(White, c, opa)
}

// Grayscale mixes c toward its own brightness.
func Grayscale(c Color, opa Opa) Color {
	l := c.Brightness()
	return Mix(Color{l, l, l, 255}, c, opa)
}

// DarkenFilter returns a chain step that darkens by opa.
func DarkenFilter(opa Opa) Filter {
	return Filter{Fn: Darken, Opa: opa}
}

// LightenFilter returns a chain step that lightens by opa.
func LightenFilter(opa Opa) Filter {
	return Filter{Fn: Lighten, Opa: opa}
}

// GrayscaleFilter returns a chain step that desaturates by opa.
func GrayscaleFilter(opa Opa) Filter {
	return Filter{Fn: Grayscale, Opa: opa}
}

// RecolorFilter returns a chain step that mixes the source toward target.
// Images use it for their recolor property.
func RecolorFilter(target Color, opa Opa) Filter {
	return Filter{
		Fn: func(c Color, opa Opa) Color {
			return Mix(target, c, opa)
		},
		Opa: opa,
	}
}
