package sizecalc

import (
	"image"

	"github.com/cbsinteractive/pkg/video"

	"github.com/menta2k/frame-viewport/pkg/types"
)

// ToCrop expresses a viewport inside a frameWidth×frameHeight frame as the
// per-edge pixel offsets transcoders take. Parts of the viewport outside the
// frame are ignored.
func ToCrop(vp types.Viewport, frameWidth, frameHeight int) video.Crop {
	frame := image.Rect(0, 0, frameWidth, frameHeight)
	r := vp.Rect().Intersect(frame)
	if r.Empty() {
		return video.Crop{}
	}
	return video.Crop{
		Top:    r.Min.Y,
		Bottom: frame.Max.Y - r.Max.Y,
		Left:   r.Min.X,
		Right:  frame.Max.X - r.Max.X,
	}
}

// FromCrop is the inverse of ToCrop
func FromCrop(c video.Crop, frameWidth, frameHeight int) types.Viewport {
	return types.Viewport{
		X:      c.Left,
		Y:      c.Top,
		Width:  frameWidth - c.Left - c.Right,
		Height: frameHeight - c.Top - c.Bottom,
	}
}

// Aspect reduces the viewport extent to its integral aspect, e.g. 1920x1080 -> 16:9
func Aspect(vp types.Viewport) image.Point {
	return video.Aspect(image.Rect(0, 0, vp.Width, vp.Height))
}
