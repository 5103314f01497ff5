// Package probe reads stream frame dimensions from image files without
// decoding pixel data where the format allows it.
package probe

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/frame-viewport/pkg/types"
)

// Prober reads and checks frame sizes
type Prober struct {
	config Config
}

// Config holds the formats a Prober accepts and the smallest frame side it allows
type Config struct {
	SupportedFormats []string
	MinFrameSize     int
}

// New creates a Prober accepting every registered format
func New() *Prober {
	return &Prober{
		config: Config{
			SupportedFormats: []string{"jpeg", "png", "webp", "gif", "bmp", "tiff"},
			MinFrameSize:     1,
		},
	}
}

// NewWithConfig creates a Prober with custom configuration
func NewWithConfig(config Config) *Prober {
	return &Prober{config: config}
}

// Probe returns the dimensions of the frame stored at path
func (p *Prober) Probe(path string) (types.FrameInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.FrameInfo{}, errors.Wrap(err, "reading frame file")
	}

	info, err := p.probeBytes(data)
	if err != nil {
		return types.FrameInfo{}, errors.Wrapf(err, "probing %s", path)
	}

	return info, p.Validate(info)
}

// ProbeReader returns the dimensions of the frame read from r
func (p *Prober) ProbeReader(r io.Reader) (types.FrameInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.FrameInfo{}, errors.Wrap(err, "reading frame")
	}

	info, err := p.probeBytes(data)
	if err != nil {
		return types.FrameInfo{}, err
	}
	return info, p.Validate(info)
}

func (p *Prober) probeBytes(data []byte) (types.FrameInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		return types.NewFrameInfo(cfg.Width, cfg.Height, format), nil
	}

	// x/image/webp does not read every VP8X variant, libwebp does
	if w, h, _, werr := webp.GetInfo(data); werr == nil {
		return types.NewFrameInfo(w, h, "webp"), nil
	}

	return types.FrameInfo{}, errors.Wrap(err, "decoding frame header")
}

// Validate checks a frame against the supported formats and minimum size
func (p *Prober) Validate(info types.FrameInfo) error {
	if info.Format != "" && !p.isFormatSupported(info.Format) {
		return errors.Errorf("unsupported frame format: %s", info.Format)
	}

	if info.Width < p.config.MinFrameSize || info.Height < p.config.MinFrameSize {
		return errors.Errorf("frame too small: %dx%d (minimum: %d)",
			info.Width, info.Height, p.config.MinFrameSize)
	}
	return nil
}

func (p *Prober) isFormatSupported(format string) bool {
	for _, supported := range p.config.SupportedFormats {
		if strings.EqualFold(format, supported) || (format == "jpeg" && strings.EqualFold(supported, "jpg")) {
			return true
		}
	}
	return false
}

// LoadFrame decodes the frame at path, falling back to libwebp for WebP files
func (p *Prober) LoadFrame(path string) (image.Image, error) {
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading frame file")
	}
	img, err := webp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Errorf("frame: unknown format for %s", path)
	}
	return img, nil
}

// ParseSize parses a "WIDTHxHEIGHT" string such as "1920x1080" into a FrameInfo
func ParseSize(s string) (types.FrameInfo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return types.FrameInfo{}, errors.Errorf("invalid size %q, expected WIDTHxHEIGHT", s)
	}

	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return types.FrameInfo{}, errors.Wrapf(err, "invalid width in %q", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return types.FrameInfo{}, errors.Wrapf(err, "invalid height in %q", s)
	}

	return types.NewFrameInfo(w, h, ""), nil
}

// FormatSize is the inverse of ParseSize
func FormatSize(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
