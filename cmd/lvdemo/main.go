// Command lvdemo renders a scene file, or a built-in demo scene, to PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/lvdraw"
	"github.com/gogpu/lvdraw/internal/scenefile"
)

func main() {
	var (
		scene   = flag.String("scene", "", "scene file (.toml or .yaml); empty renders the demo")
		output  = flag.String("output", "lvdemo.png", "output file")
		format  = flag.String("format", "", "override the scene pixel format")
		verbose = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *scene, *output, *format); err != nil {
		logger.Error("lvdemo failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, scenePath, output, format string) error {
	s := demoScene()
	if scenePath != "" {
		var err error
		if s, err = scenefile.Load(scenePath); err != nil {
			return err
		}
	}
	if format != "" {
		s.Format = format
	}

	ctx := lvdraw.NewContext(lvdraw.WithLogger(logger))
	defer func() {
		if err := ctx.Close(); err != nil {
			logger.Warn("close context", "err", err)
		}
	}()

	l, err := s.Render(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, l.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	st := ctx.Cache().Stats()
	logger.Info("scene saved", "output", output,
		"width", l.Width(), "height", l.Height(), "format", l.Format(),
		"draws", len(s.Draw), "decoded", st.Misses)
	return nil
}

func ip(v int) *int { return &v }

// demoScene exercises every descriptor kind.
func demoScene() *scenefile.Scene {
	return &scenefile.Scene{
		Width:      320,
		Height:     240,
		Format:     "argb8888",
		Background: "#20304a",
		FontSize:   18,
		Draw: []scenefile.Draw{
			{
				Kind: "rect", Area: []int{20, 20, 130, 90}, Color: "#3c78d8", GradColor: "#9fc5e8", GradDir: "vertical",
				Radius: 12, BorderColor: "#ffffff", BorderWidth: 2,
				ShadowColor: "#000000", ShadowWidth: 12, ShadowOffset: []int{4, 6}, ShadowOpa: ip(160),
			},
			{Kind: "rect", Area: []int{170, 20, 60, 60}, Color: "#e06666", Circle: true, OutlineColor: "#f6b26b", OutlineWidth: 3, OutlinePad: 2},
			{Kind: "arc", Center: []float64{270, 60}, Radius: 30, Width: 8, Start: 135, End: 45, Color: "#93c47d", Rounded: true},
			{Kind: "line", Points: [][]float64{{20, 140}, {300, 160}}, Color: "#ffd966", Width: 4, RoundStart: true, RoundEnd: true},
			{Kind: "line", Points: [][]float64{{20, 150}, {300, 170}}, Color: "#ffffff", Width: 2, DashWidth: 10, DashGap: 6},
			{Kind: "triangle", Points: [][]float64{{40, 230}, {100, 180}, {160, 230}}, Color: "#8e7cc3", GradColor: "#ead1dc", GradDir: "horizontal"},
			{Kind: "rect", Area: []int{0, 175, 320, 65}, Color: "#000000", Opa: ip(60), Blend: "multiply"},
			{Kind: "label", Area: []int{170, 185, 140, 50}, Text: "lvdraw\n#ffd966 software# draw", Color: "#ffffff", Markup: true, Align: "right"},
		},
	}
}
