package types

import (
	"fmt"
	"image"
	"strings"

	"github.com/pkg/errors"
)

// Viewport is an axis-aligned region in pixel coordinates: origin plus extent.
// Values are not checked; a viewport may have a negative origin when it
// overflows the surface it is laid on.
type Viewport struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect returns the viewport as an image.Rectangle
func (v Viewport) Rect() image.Rectangle {
	return image.Rect(v.X, v.Y, v.X+v.Width, v.Y+v.Height)
}

// Size returns the viewport extent
func (v Viewport) Size() image.Point {
	return image.Pt(v.Width, v.Height)
}

// AspectRatio returns width divided by height
func (v Viewport) AspectRatio() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Contains reports whether the viewport lies inside a w×h surface anchored at (0,0)
func (v Viewport) Contains(w, h int) bool {
	return v.X >= 0 && v.Y >= 0 && v.X+v.Width <= w && v.Y+v.Height <= h
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", v.Width, v.Height, v.X, v.Y)
}

// AspectRatioMode selects how a stream is fitted into a preview.
// The preview calculations accept it but do not branch on it yet.
type AspectRatioMode int

const (
	Adjust AspectRatioMode = iota
	Fill
	None
)

var modeNames = [...]string{"adjust", "fill", "none"}

func (m AspectRatioMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("AspectRatioMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseAspectRatioMode converts a mode name (case-insensitive) into an AspectRatioMode
func ParseAspectRatioMode(s string) (AspectRatioMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return AspectRatioMode(i), nil
		}
	}
	return Adjust, errors.Errorf("unknown aspect ratio mode %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m AspectRatioMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *AspectRatioMode) UnmarshalText(text []byte) error {
	parsed, err := ParseAspectRatioMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Decode lets envconfig read a mode from the environment
func (m *AspectRatioMode) Decode(value string) error {
	return m.UnmarshalText([]byte(value))
}

// FlipFactors holds the signed unit scales applied along each axis to mirror an image
type FlipFactors struct {
	ScaleX float32 `json:"scale_x"`
	ScaleY float32 `json:"scale_y"`
}

// Mirrored reports which axes are flipped
func (f FlipFactors) Mirrored() (horizontal, vertical bool) {
	return f.ScaleX < 0, f.ScaleY < 0
}

// FrameInfo describes the dimensions of a stream frame
type FrameInfo struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
	Format      string  `json:"format,omitempty"`
}

// NewFrameInfo builds a FrameInfo from raw dimensions
func NewFrameInfo(width, height int, format string) FrameInfo {
	info := FrameInfo{Width: width, Height: height, Format: format}
	if height != 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// Orientation returns "landscape" for frames at least as wide as they are tall, "portrait" otherwise
func (f FrameInfo) Orientation() string {
	if f.Width >= f.Height {
		return "landscape"
	}
	return "portrait"
}

// Portrait reports whether the frame is taller than it is wide
func (f FrameInfo) Portrait() bool {
	return f.Orientation() == "portrait"
}
