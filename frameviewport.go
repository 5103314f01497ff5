// Package frameviewport computes the rectangles used to place a video
// stream's frames on a preview surface and to crop them for encoding.
//
// The geometry lives in pkg/sizecalc and is usable on its own. This package
// wraps it with configuration, input validation and logging, and can read the
// stream size from a frame file.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		frameviewport "github.com/menta2k/frame-viewport"
//		"github.com/menta2k/frame-viewport/pkg/probe"
//	)
//
//	func main() {
//		calc := frameviewport.New()
//
//		stream, err := probe.ParseSize("1920x1080")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		layout, err := calc.Plan(stream)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("preview %v, encoder %v\n", layout.PreviewByHeight, layout.Encoder)
//	}
//
// The package consists of:
//
// 1. Size calculation (pkg/sizecalc): preview, encoder and flip geometry
// 2. Probe (pkg/probe): reads frame dimensions from image files
// 3. Overlay (pkg/overlay): draws computed viewports on a frame for inspection
package frameviewport

import (
	"image"
	"io"

	"github.com/cbsinteractive/pkg/video"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/menta2k/frame-viewport/internal/config"
	"github.com/menta2k/frame-viewport/pkg/probe"
	"github.com/menta2k/frame-viewport/pkg/sizecalc"
	"github.com/menta2k/frame-viewport/pkg/types"
)

// Version of the frame viewport library
const Version = "1.0.0"

// Calculator applies the configured preview, encoder and flip settings to streams
type Calculator struct {
	config *config.Config
	prober *probe.Prober
	logger *logrus.Logger
}

// Layout is every viewport computed for one stream
type Layout struct {
	Stream          types.FrameInfo       `json:"stream"`
	Mode            types.AspectRatioMode `json:"mode"`
	Preview         types.Viewport        `json:"preview"`
	PreviewByHeight types.Viewport        `json:"preview_by_height"`
	Encoder         types.Viewport        `json:"encoder"`
	EncoderCrop     video.Crop            `json:"encoder_crop"`
	EncoderAspect   image.Point           `json:"encoder_aspect"`
	Flip            types.FlipFactors     `json:"flip"`
}

// New creates a Calculator with the default configuration and a silent logger
func New() *Calculator {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates a Calculator with custom configuration
func NewWithConfig(cfg *config.Config) *Calculator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Calculator{
		config: cfg,
		prober: probe.NewWithConfig(probe.Config{
			SupportedFormats: cfg.Probe.SupportedFormats,
			MinFrameSize:     cfg.Probe.MinFrameSize,
		}),
		logger: logger,
	}
}

// SetLogger replaces the logger; nil restores the silent one
func (c *Calculator) SetLogger(logger *logrus.Logger) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	c.logger = logger
}

// Config returns the configuration in use
func (c *Calculator) Config() *config.Config {
	return c.config
}

func (c *Calculator) validate(stream types.FrameInfo) error {
	if err := sizecalc.ValidateDimensions("preview", c.config.Preview.Width, c.config.Preview.Height); err != nil {
		return err
	}
	return sizecalc.ValidateDimensions("stream", stream.Width, stream.Height)
}

func (c *Calculator) entry(stream types.FrameInfo) *logrus.Entry {
	return c.logger.WithFields(logrus.Fields{
		"stream": probe.FormatSize(stream.Width, stream.Height),
		"mode":   c.config.Preview.Mode,
	})
}

// Preview returns the viewport for showing stream on the configured preview.
// It is always the whole preview; see sizecalc.CalculateViewPort.
func (c *Calculator) Preview(stream types.FrameInfo) (types.Viewport, error) {
	if err := c.validate(stream); err != nil {
		return types.Viewport{}, err
	}

	p := c.config.Preview
	vp := sizecalc.CalculateViewPort(p.Mode, p.Width, p.Height, stream.Width, stream.Height)
	c.entry(stream).WithField("viewport", vp).Debug("preview viewport")
	return vp, nil
}

// PreviewByHeight returns the crop-to-fill viewport for stream on the configured preview
func (c *Calculator) PreviewByHeight(stream types.FrameInfo) (types.Viewport, error) {
	if err := c.validate(stream); err != nil {
		return types.Viewport{}, err
	}

	p := c.config.Preview
	vp := sizecalc.CalculateViewPortByHeight(p.Mode, p.Width, p.Height, stream.Width, stream.Height)
	c.entry(stream).WithField("viewport", vp).Debug("preview viewport by height")
	return vp, nil
}

// Encoder returns the region of stream kept when encoding in the configured orientation
func (c *Calculator) Encoder(stream types.FrameInfo) (types.Viewport, error) {
	if err := sizecalc.ValidateDimensions("stream", stream.Width, stream.Height); err != nil {
		return types.Viewport{}, err
	}

	vp := sizecalc.CalculateViewPortEncoder(stream.Width, stream.Height, c.config.Encoder.Portrait)
	c.entry(stream).WithFields(logrus.Fields{
		"viewport": vp,
		"portrait": c.config.Encoder.Portrait,
	}).Debug("encoder viewport")
	return vp, nil
}

// Flip returns the scale factors for the configured flips
func (c *Calculator) Flip() types.FlipFactors {
	return sizecalc.CalculateFlip(c.config.Flip.Horizontal, c.config.Flip.Vertical)
}

// Plan computes every viewport for stream
func (c *Calculator) Plan(stream types.FrameInfo) (Layout, error) {
	preview, err := c.Preview(stream)
	if err != nil {
		return Layout{}, errors.Wrap(err, "computing preview viewport")
	}

	byHeight, err := c.PreviewByHeight(stream)
	if err != nil {
		return Layout{}, errors.Wrap(err, "computing preview viewport by height")
	}

	encoder, err := c.Encoder(stream)
	if err != nil {
		return Layout{}, errors.Wrap(err, "computing encoder viewport")
	}

	layout := Layout{
		Stream:          stream,
		Mode:            c.config.Preview.Mode,
		Preview:         preview,
		PreviewByHeight: byHeight,
		Encoder:         encoder,
		EncoderCrop:     sizecalc.ToCrop(encoder, stream.Width, stream.Height),
		EncoderAspect:   sizecalc.Aspect(encoder),
		Flip:            c.Flip(),
	}

	c.entry(stream).WithFields(logrus.Fields{
		"orientation": stream.Orientation(),
		"encoder":     encoder,
		"aspect":      layout.EncoderAspect,
	}).Info("planned stream layout")

	return layout, nil
}

// PlanFile reads the stream size from the frame file at path and plans it
func (c *Calculator) PlanFile(path string) (Layout, error) {
	stream, err := c.prober.Probe(path)
	if err != nil {
		return Layout{}, errors.Wrap(err, "probing frame")
	}
	return c.Plan(stream)
}

// ProbeFile returns the dimensions of the frame file at path
func (c *Calculator) ProbeFile(path string) (types.FrameInfo, error) {
	return c.prober.Probe(path)
}

// LoadFrame decodes the frame file at path
func (c *Calculator) LoadFrame(path string) (image.Image, error) {
	return c.prober.LoadFrame(path)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
