// Package sizecalc derives the rectangles used to lay a stream frame onto a
// preview surface or to crop it for an encoder, and the scale factors used to
// mirror it.
//
// Ratios are computed in single precision and extents are truncated toward
// zero, so results match renderers that do the same float32 arithmetic.
// Nothing here validates its input: a zero height yields an infinite or NaN
// ratio. Extents are converted the way a Java (int) cast does (NaN to 0,
// infinities saturated at the int32 limits) and centering offsets use wrapping
// 32-bit arithmetic, so degenerate sizes give the same viewports as
// renderers built on those casts. Use ValidateDimensions first when the sizes come from an
// untrusted source.
package sizecalc

import (
	"math"

	"github.com/menta2k/frame-viewport/pkg/types"
)

const (
	// PreviewWidthScale is applied to the stream width before CalculateViewPort
	// computes the stream ratio.
	PreviewWidthScale = 0.3
	// PreviewHeightScale is applied to the stream height before
	// CalculateViewPortByHeight computes the stream ratio.
	PreviewHeightScale = 1.3
)

// CalculateViewPort returns the viewport for drawing a stream onto a preview.
//
// It runs the same crop-to-fill placement as CalculateViewPortByHeight (with
// the stream width scaled by PreviewWidthScale) but always returns the whole
// preview, (0, 0, previewWidth, previewHeight); the placement is discarded.
// TODO: return the placement once preview renderers stop assuming a
// full-surface viewport.
// mode is not used.
func CalculateViewPort(mode types.AspectRatioMode, previewWidth, previewHeight, streamWidth, streamHeight int) types.Viewport {
	scaledStreamWidth := truncate(float64(streamWidth) * PreviewWidthScale)
	streamRatio := float32(scaledStreamWidth) / float32(streamHeight)
	_ = fillPreview(previewWidth, previewHeight, streamRatio)

	return types.Viewport{X: 0, Y: 0, Width: previewWidth, Height: previewHeight}
}

// CalculateViewPortByHeight returns a crop-to-fill viewport for the stream on
// the preview, after scaling the stream height by PreviewHeightScale.
//
// A stream relatively wider than the preview is fitted to the preview width
// and centered vertically, so it stays inside the preview. Otherwise it is
// fitted to the preview height; when that leaves the preview width unfilled
// it is refitted to the width instead, which makes it taller than the preview
// and gives it a negative Y origin. mode is not used.
func CalculateViewPortByHeight(mode types.AspectRatioMode, previewWidth, previewHeight, streamWidth, streamHeight int) types.Viewport {
	scaledStreamHeight := truncate(float64(streamHeight) * PreviewHeightScale)
	streamRatio := float32(streamWidth) / float32(scaledStreamHeight)

	return fillPreview(previewWidth, previewHeight, streamRatio)
}

func fillPreview(previewWidth, previewHeight int, streamRatio float32) types.Viewport {
	previewRatio := float32(previewWidth) / float32(previewHeight)
	if streamRatio > previewRatio {
		return fitWidth(previewWidth, previewHeight, streamRatio)
	}

	width := truncate(float64(float32(previewHeight) * streamRatio))
	if width < previewWidth {
		return fitWidth(previewWidth, previewHeight, streamRatio)
	}
	return types.Viewport{
		X:      centerOffset(previewWidth, width),
		Y:      0,
		Width:  width,
		Height: previewHeight,
	}
}

func fitWidth(previewWidth, previewHeight int, streamRatio float32) types.Viewport {
	height := truncate(float64(float32(previewWidth) / streamRatio))
	return types.Viewport{
		X:      0,
		Y:      centerOffset(previewHeight, height),
		Width:  previewWidth,
		Height: height,
	}
}

// CalculateViewPortEncoder returns the part of a stream frame that is kept
// when encoding in the requested orientation.
//
// When the frame already has that orientation (square frames count as
// landscape) the whole frame is returned. Otherwise the long axis is cropped
// around the center and the short axis is kept.
func CalculateViewPortEncoder(streamWidth, streamHeight int, isPortrait bool) types.Viewport {
	factor := float32(streamWidth) / float32(streamHeight)

	if factor >= 1 {
		if !isPortrait {
			return types.Viewport{Width: streamWidth, Height: streamHeight}
		}
		width := truncate(float64(float32(streamHeight) / factor))
		return types.Viewport{
			X:      centerOffset(streamWidth, width),
			Y:      0,
			Width:  width,
			Height: streamHeight,
		}
	}

	if isPortrait {
		return types.Viewport{Width: streamWidth, Height: streamHeight}
	}
	height := truncate(float64(float32(streamWidth) * factor))
	return types.Viewport{
		X:      0,
		Y:      centerOffset(streamHeight, height),
		Width:  streamWidth,
		Height: height,
	}
}

// truncate converts like a Java (int) cast: toward zero, NaN to 0 and
// out-of-range values saturated at the int32 limits.
func truncate(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// centerOffset is (total-extent)/2 in wrapping 32-bit arithmetic
func centerOffset(total, extent int) int {
	return int((int32(total) - int32(extent)) / 2)
}

// CalculateFlip maps each flip flag to a scale factor: -1 when set, 1 otherwise
func CalculateFlip(flipHorizontal, flipVertical bool) types.FlipFactors {
	return types.FlipFactors{ScaleX: flipScale(flipHorizontal), ScaleY: flipScale(flipVertical)}
}

func flipScale(flip bool) float32 {
	if flip {
		return -1
	}
	return 1
}
