package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	frameviewport "github.com/menta2k/frame-viewport"
	"github.com/menta2k/frame-viewport/internal/config"
	"github.com/menta2k/frame-viewport/internal/utils"
	"github.com/menta2k/frame-viewport/pkg/overlay"
	"github.com/menta2k/frame-viewport/pkg/probe"
	"github.com/menta2k/frame-viewport/pkg/types"
)

func main() {
	var in, size, preview, mode, configPath, outDir, ext string
	var portrait, flipH, flipV, debug, quiet bool

	flag.StringVar(&in, "in", "", "stream frame image (jpg/png/webp/gif/bmp/tiff)")
	flag.StringVar(&size, "size", "", "stream size WIDTHxHEIGHT, used when -in is not given")
	flag.StringVar(&preview, "preview", "", "preview size WIDTHxHEIGHT (overrides config)")
	flag.StringVar(&mode, "mode", "", "aspect ratio mode: adjust|fill|none (overrides config)")
	flag.BoolVar(&portrait, "portrait", false, "encode in portrait orientation")
	flag.BoolVar(&flipH, "fliph", false, "mirror horizontally")
	flag.BoolVar(&flipV, "flipv", false, "mirror vertically")
	flag.StringVar(&configPath, "config", config.GetConfigPath(), "configuration file")
	flag.StringVar(&outDir, "out", "", "output directory for overlays (overrides config)")
	flag.StringVar(&ext, "ext", "", "overlay format: png|jpg|webp (overrides config)")
	flag.BoolVar(&debug, "debug", false, "write a debug overlay of the computed viewports (needs -in)")
	flag.BoolVar(&quiet, "quiet", false, "only print the layout JSON")
	flag.Parse()

	if in == "" && size == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -in frame.jpg | -size 1920x1080 [-preview 1080x1920] [-mode fill] [-portrait] [-fliph] [-flipv] [-debug]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if err := applyFlags(cfg, set, preview, mode, outDir, ext, portrait, flipH, flipV); err != nil {
		logrus.Fatal(err)
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		logrus.Fatal(err)
	}
	if quiet {
		logger.SetLevel(logrus.WarnLevel)
	}

	calc := frameviewport.NewWithConfig(cfg)
	calc.SetLogger(logger)

	var layout frameviewport.Layout
	if in != "" {
		layout, err = calc.PlanFile(in)
	} else {
		var stream types.FrameInfo
		if stream, err = probe.ParseSize(size); err == nil {
			layout, err = calc.Plan(stream)
		}
	}
	if err != nil {
		logger.Fatal(err)
	}

	logger.WithFields(logrus.Fields{
		"preview":           probe.FormatSize(cfg.Preview.Width, cfg.Preview.Height),
		"preview_viewport":  layout.Preview,
		"preview_by_height": layout.PreviewByHeight,
		"encoder":           layout.Encoder,
		"flip":              fmt.Sprintf("%v,%v", layout.Flip.ScaleX, layout.Flip.ScaleY),
	}).Info("layout")

	js, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Println(string(js))

	if !debug {
		return
	}
	if in == "" {
		logger.Warn("debug overlay needs a frame, pass -in")
		return
	}
	if err := writeOverlays(calc, cfg, in, layout, logger); err != nil {
		logger.Fatal(err)
	}
}

// applyFlags overrides cfg with the flags named in set; boolean flags left
// off the command line keep the configured value.
func applyFlags(cfg *config.Config, set map[string]bool, preview, mode, outDir, ext string, portrait, flipH, flipV bool) error {
	if preview != "" {
		p, err := probe.ParseSize(preview)
		if err != nil {
			return err
		}
		cfg.Preview.Width, cfg.Preview.Height = p.Width, p.Height
	}
	if mode != "" {
		m, err := types.ParseAspectRatioMode(mode)
		if err != nil {
			return err
		}
		cfg.Preview.Mode = m
	}
	if outDir != "" {
		cfg.Output.OutputDir = outDir
	}
	if ext != "" {
		cfg.Output.DefaultFormat = ext
	}
	if set["portrait"] {
		cfg.Encoder.Portrait = portrait
	}
	if set["fliph"] {
		cfg.Flip.Horizontal = flipH
	}
	if set["flipv"] {
		cfg.Flip.Vertical = flipV
	}
	return cfg.Validate()
}

func writeOverlays(calc *frameviewport.Calculator, cfg *config.Config, in string, layout frameviewport.Layout, logger *logrus.Logger) error {
	out := cfg.Output
	if err := utils.EnsureDir(out.OutputDir); err != nil {
		return err
	}

	frame, err := calc.LoadFrame(in)
	if err != nil {
		return err
	}

	// preview viewports are in preview space; scale them onto the frame to compare
	sx := float64(layout.Stream.Width) / float64(cfg.Preview.Width)
	sy := float64(layout.Stream.Height) / float64(cfg.Preview.Height)
	boxes := []overlay.Box{
		{Viewport: layout.Encoder, Label: "encoder", Color: color.NRGBA{255, 204, 0, 255}},
		{Viewport: scaleViewport(layout.PreviewByHeight, sx, sy), Label: "preview by height", Color: color.NRGBA{0, 255, 0, 255}},
	}

	framePath := utils.GenerateOutputFilename(in, out.OutputDir, out.Prefix, out.Suffix, out.DefaultFormat)
	if err := overlay.Save(overlay.Draw(frame, boxes), framePath, out.DefaultFormat, out.Quality, out.Lossless); err != nil {
		return err
	}
	logger.Infof("wrote %s", framePath)

	flipPath := utils.GenerateOutputFilename(in, out.OutputDir, out.Prefix, out.Suffix+"_flip", out.DefaultFormat)
	if err := overlay.Save(overlay.FlipGlyph(128, layout.Flip), flipPath, out.DefaultFormat, out.Quality, out.Lossless); err != nil {
		return err
	}
	logger.Infof("wrote %s", flipPath)
	return nil
}

func scaleViewport(vp types.Viewport, sx, sy float64) types.Viewport {
	r := image.Rect(
		int(float64(vp.X)*sx), int(float64(vp.Y)*sy),
		int(float64(vp.X+vp.Width)*sx), int(float64(vp.Y+vp.Height)*sy),
	)
	return types.Viewport{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}
