// Package scenefile loads scenes of draw descriptors from TOML or YAML
// files and renders them into a layer.
//
// A scene names the layer size, format and background and lists one
// [[draw]] entry per descriptor:
//
//	width = 100
//	height = 100
//	format = "argb8888"
//	background = "#ffffff"
//
//	[[draw]]
//	kind = "rect"
//	area = [10, 10, 50, 50]
//	color = "#0000ff"
//	radius = 8
//
// Image sources are resolved relative to the scene file.
package scenefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownFormat is returned for scene files that are neither TOML
	// nor YAML.
	ErrUnknownFormat = errors.New("scenefile: unknown file format")
	// ErrInvalidField is returned when a field value cannot be used.
	ErrInvalidField = errors.New("scenefile: invalid field")
)

// Scene is a decoded scene file.
type Scene struct {
	Width      int     `toml:"width" yaml:"width"`
	Height     int     `toml:"height" yaml:"height"`
	Format     string  `toml:"format" yaml:"format"`
	Background string  `toml:"background" yaml:"background"`
	FontSize   float64 `toml:"font_size" yaml:"font_size"`
	Draw       []Draw  `toml:"draw" yaml:"draw"`

	// dir is the directory image sources are relative to.
	dir string
}

// Draw is one [[draw]] entry. Which fields apply depends on Kind.
type Draw struct {
	Kind  string `toml:"kind" yaml:"kind"`
	Area  []int  `toml:"area" yaml:"area"` // x, y, width, height
	Clip  []int  `toml:"clip" yaml:"clip"`
	Color string `toml:"color" yaml:"color"`
	// Opa is a pointer so that an explicit 0 draws nothing. The same
	// holds for border_opa and shadow_opa, which drop their part.
	Opa       *int   `toml:"opa" yaml:"opa"`
	Blend     string `toml:"blend" yaml:"blend"`
	Filter    string `toml:"filter" yaml:"filter"`
	FilterOpa int    `toml:"filter_opa" yaml:"filter_opa"`

	// Rectangles.
	Radius       float64  `toml:"radius" yaml:"radius"`
	GradColor    string   `toml:"grad_color" yaml:"grad_color"`
	GradDir      string   `toml:"grad_dir" yaml:"grad_dir"`
	BorderColor  string   `toml:"border_color" yaml:"border_color"`
	BorderWidth  int      `toml:"border_width" yaml:"border_width"`
	BorderOpa    *int     `toml:"border_opa" yaml:"border_opa"`
	BorderSide   []string `toml:"border_side" yaml:"border_side"`
	OutlineColor string   `toml:"outline_color" yaml:"outline_color"`
	OutlineWidth int      `toml:"outline_width" yaml:"outline_width"`
	OutlinePad   int      `toml:"outline_pad" yaml:"outline_pad"`
	ShadowColor  string   `toml:"shadow_color" yaml:"shadow_color"`
	ShadowWidth  int      `toml:"shadow_width" yaml:"shadow_width"`
	ShadowSpread int      `toml:"shadow_spread" yaml:"shadow_spread"`
	ShadowOffset []int    `toml:"shadow_offset" yaml:"shadow_offset"`
	ShadowOpa    *int     `toml:"shadow_opa" yaml:"shadow_opa"`
	Circle       bool     `toml:"circle" yaml:"circle"`

	// Lines, arcs and triangles.
	Points     [][]float64 `toml:"points" yaml:"points"`
	Width      float64     `toml:"width" yaml:"width"`
	RoundStart bool        `toml:"round_start" yaml:"round_start"`
	RoundEnd   bool        `toml:"round_end" yaml:"round_end"`
	DashWidth  float64     `toml:"dash_width" yaml:"dash_width"`
	DashGap    float64     `toml:"dash_gap" yaml:"dash_gap"`
	Center     []float64   `toml:"center" yaml:"center"`
	Start      float64     `toml:"start" yaml:"start"`
	End        float64     `toml:"end" yaml:"end"`
	Rounded    bool        `toml:"rounded" yaml:"rounded"`
	CCW        bool        `toml:"ccw" yaml:"ccw"`

	// Images.
	Source     string    `toml:"source" yaml:"source"`
	Pos        []float64 `toml:"pos" yaml:"pos"`
	Angle      float64   `toml:"angle" yaml:"angle"`
	Scale      []float64 `toml:"scale" yaml:"scale"` // uniform, or x and y
	Pivot      []float64 `toml:"pivot" yaml:"pivot"`
	Antialias  bool      `toml:"antialias" yaml:"antialias"`
	Recolor    string    `toml:"recolor" yaml:"recolor"`
	RecolorOpa int       `toml:"recolor_opa" yaml:"recolor_opa"`

	// Labels.
	Text        string   `toml:"text" yaml:"text"`
	Align       string   `toml:"align" yaml:"align"`
	Dir         string   `toml:"dir" yaml:"dir"`
	Decor       []string `toml:"decor" yaml:"decor"`
	Markup      bool     `toml:"markup" yaml:"markup"`
	LetterSpace int      `toml:"letter_space" yaml:"letter_space"`
	LineSpace   int      `toml:"line_space" yaml:"line_space"`
	Offset      []int    `toml:"offset" yaml:"offset"`
}

// Load reads the scene file at path. The extension selects the syntax:
// .toml, or .yaml and .yml.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	defer f.Close()

	s, err := Decode(bufio.NewReader(f), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Decode reads a scene in the syntax named by ext, with or without the
// leading dot. Unknown fields are rejected.
func Decode(r io.Reader, ext string) (*Scene, error) {
	s := new(Scene)
	var err error
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(s)
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: scene size %dx%d", ErrInvalidField, s.Width, s.Height)
	}
	return s, nil
}
