package scenefile

import (
	"fmt"
	"path/filepath"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/lvdraw"
	"github.com/gogpu/lvdraw/geom"
	"github.com/gogpu/lvdraw/glyph"
	"github.com/gogpu/lvdraw/imgdec"
	"github.com/gogpu/lvdraw/pixel"
)

// DefaultFontSize is the label size of scenes without font_size.
const DefaultFontSize = 16

// Render draws the scene into a new layer of ctx and finishes it.
func (s *Scene) Render(ctx *lvdraw.Context) (*lvdraw.Layer, error) {
	format := pixel.FormatARGB8888
	if s.Format != "" {
		f, err := pixel.ParseFormat(s.Format)
		if err != nil {
			return nil, fmt.Errorf("scenefile: %w", err)
		}
		format = f
	}
	l, err := ctx.NewLayer(s.Width, s.Height, format)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %w", err)
	}

	if s.Background != "" {
		var fv fields
		bg := fv.color("background", s.Background)
		if fv.err != nil {
			return nil, fv.err
		}
		if err := l.Fill(bg); err != nil {
			return nil, err
		}
	}

	r := renderer{scene: s, ctx: ctx}
	defer r.close()
	for i := range s.Draw {
		d := &s.Draw[i]
		if err := r.draw(l, d); err != nil {
			return nil, fmt.Errorf("scenefile: draw %d (%s): %w", i, d.Kind, err)
		}
	}
	ctx.Logger().Debug("scenefile: rendered", "draws", len(s.Draw), "width", s.Width, "height", s.Height, "format", format)

	if _, err := l.Finish(); err != nil {
		return nil, err
	}
	return l, nil
}

// renderer holds per-render state shared by draws.
type renderer struct {
	scene *Scene
	ctx   *lvdraw.Context
	font  *glyph.OpenTypeProvider
}

func (r *renderer) close() {
	if r.font != nil {
		_ = r.font.Close()
	}
}

func (r *renderer) draw(l *lvdraw.Layer, d *Draw) error {
	dsc, err := r.descriptor(d)
	if err != nil {
		return err
	}
	if d.Clip == nil {
		return l.Submit(dsc)
	}
	var fv fields
	clip := fv.area("clip", d.Clip)
	if fv.err != nil {
		return fv.err
	}
	return l.WithClip(clip, func() error { return l.Submit(dsc) })
}

func (r *renderer) descriptor(d *Draw) (lvdraw.Descriptor, error) {
	var f fields
	var dsc lvdraw.Descriptor
	switch d.Kind {
	case "rect":
		dsc = rectDsc(&f, d)
	case "line":
		pts := f.points("points", d.Points, 2)
		dsc = lvdraw.LineDsc{
			Base:       f.base(d),
			P1:         pts[0],
			P2:         pts[1],
			Color:      f.color("color", d.Color),
			Width:      d.Width,
			RoundStart: d.RoundStart,
			RoundEnd:   d.RoundEnd,
			DashWidth:  d.DashWidth,
			DashGap:    d.DashGap,
		}
	case "arc":
		dsc = lvdraw.ArcDsc{
			Base:             f.base(d),
			Center:           f.point("center", d.Center),
			Radius:           d.Radius,
			Width:            d.Width,
			Start:            d.Start,
			End:              d.End,
			Color:            f.color("color", d.Color),
			CounterClockwise: d.CCW,
			Rounded:          d.Rounded,
		}
	case "triangle":
		pts := f.points("points", d.Points, 3)
		dsc = lvdraw.TriangleDsc{
			Base:      f.base(d),
			Points:    [3]geom.Point{pts[0], pts[1], pts[2]},
			Color:     f.color("color", d.Color),
			GradColor: f.color("grad_color", d.GradColor),
			GradDir:   lookup(&f, "grad_dir", d.GradDir, lvdraw.GradNone, gradDirs),
		}
	case "image":
		dsc = r.imageDsc(&f, d)
	case "label":
		font, err := r.labelFont()
		if err != nil {
			return nil, err
		}
		dsc = labelDsc(&f, d, font)
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidField, d.Kind)
	}
	if f.err != nil {
		return nil, f.err
	}
	return dsc, nil
}

func rectDsc(f *fields, d *Draw) lvdraw.RectDsc {
	dsc := lvdraw.NewRectDsc(f.area("area", d.Area), f.color("color", d.Color))
	dsc.Base = f.base(d)
	dsc.Radius = int(d.Radius)
	if d.Circle {
		dsc.Radius = lvdraw.RadiusCircle
	}
	dsc.BgGradColor = f.color("grad_color", d.GradColor)
	dsc.BgGradDir = lookup(f, "grad_dir", d.GradDir, lvdraw.GradNone, gradDirs)

	dsc.BorderColor = f.color("border_color", d.BorderColor)
	dsc.BorderWidth = d.BorderWidth
	dsc.BorderOpa, _ = f.opa("border_opa", d.BorderOpa, pixel.OpaCover)
	if dsc.BorderOpa == 0 {
		dsc.BorderWidth = 0
	}
	if d.BorderSide != nil {
		dsc.BorderSide = flags(f, "border_side", d.BorderSide, sides)
	}

	dsc.OutlineColor = f.color("outline_color", d.OutlineColor)
	dsc.OutlineWidth = d.OutlineWidth
	dsc.OutlinePad = d.OutlinePad

	dsc.ShadowColor = f.color("shadow_color", d.ShadowColor)
	dsc.ShadowWidth = d.ShadowWidth
	dsc.ShadowSpread = d.ShadowSpread
	dsc.ShadowOpa, _ = f.opa("shadow_opa", d.ShadowOpa, pixel.OpaCover)
	if dsc.ShadowOpa == 0 {
		dsc.ShadowWidth = 0
	}
	switch len(d.ShadowOffset) {
	case 0:
	case 2:
		dsc.ShadowOffsetX, dsc.ShadowOffsetY = d.ShadowOffset[0], d.ShadowOffset[1]
	default:
		f.fail("shadow_offset", "want [x, y], have %v", d.ShadowOffset)
	}
	return dsc
}

func (r *renderer) imageDsc(f *fields, d *Draw) lvdraw.ImageDsc {
	if d.Source == "" {
		f.fail("source", "missing image path")
		return lvdraw.ImageDsc{}
	}
	path := d.Source
	if !filepath.IsAbs(path) && r.scene.dir != "" {
		path = filepath.Join(r.scene.dir, path)
	}
	src := imgdec.File(path)
	dsc := lvdraw.ImageDsc{
		Base:       f.base(d),
		Src:        src,
		Pos:        f.point("pos", d.Pos),
		Angle:      d.Angle,
		Pivot:      f.point("pivot", d.Pivot),
		Antialias:  d.Antialias,
		Color:      f.color("color", d.Color),
		Recolor:    f.color("recolor", d.Recolor),
		RecolorOpa: pixel.Opa(min(max(d.RecolorOpa, 0), 255)),
	}
	switch len(d.Scale) {
	case 0:
	case 1:
		dsc.ScaleX, dsc.ScaleY = d.Scale[0], d.Scale[0]
	case 2:
		dsc.ScaleX, dsc.ScaleY = d.Scale[0], d.Scale[1]
	default:
		f.fail("scale", "want one or two factors, have %v", d.Scale)
	}
	if d.Recolor != "" && d.RecolorOpa == 0 {
		dsc.RecolorOpa = pixel.OpaCover
	}

	// The header bounds the draw; decode errors surface on Submit.
	if h, err := r.ctx.Registry().Info(src); err == nil {
		dsc.Width, dsc.Height = h.Width, h.Height
	} else {
		r.ctx.Logger().Debug("scenefile: image info", "path", path, "err", err)
	}
	return dsc
}

func labelDsc(f *fields, d *Draw, font glyph.Provider) lvdraw.LabelDsc {
	dsc := lvdraw.LabelDsc{
		Base:        f.base(d),
		Area:        f.area("area", d.Area),
		Text:        d.Text,
		Font:        font,
		Color:       f.color("color", d.Color),
		LetterSpace: d.LetterSpace,
		LineSpace:   d.LineSpace,
		Align:       lookup(f, "align", d.Align, lvdraw.AlignAuto, aligns),
		Dir:         lookup(f, "dir", d.Dir, lvdraw.DirAuto, dirs),
		Recolor:     d.Markup,
		Decor:       flags(f, "decor", d.Decor, decors),
	}
	switch len(d.Offset) {
	case 0:
	case 2:
		dsc.OffsetX, dsc.OffsetY = d.Offset[0], d.Offset[1]
	default:
		f.fail("offset", "want [x, y], have %v", d.Offset)
	}
	return dsc
}

// labelFont returns the scene font, loading it on first use.
func (r *renderer) labelFont() (glyph.Provider, error) {
	if r.font != nil {
		return r.font, nil
	}
	size := r.scene.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	font, err := glyph.NewOpenTypeProvider(goregular.TTF, size)
	if err != nil {
		return nil, err
	}
	r.font = font
	return font, nil
}
