// Package overlay draws computed viewports on top of a copy of a frame so a
// layout can be checked by eye. Frame pixels are never resampled.
package overlay

import (
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/menta2k/frame-viewport/pkg/types"
)

// Box is a viewport to outline, with an optional label drawn at its corner
type Box struct {
	Viewport types.Viewport
	Label    string
	Color    color.Color
}

// Palette used by Draw for boxes without a color
var Palette = []color.Color{
	color.NRGBA{0, 255, 0, 255},   // green
	color.NRGBA{255, 204, 0, 255}, // gold
	color.NRGBA{255, 0, 0, 255},   // red
	color.NRGBA{0, 170, 255, 255}, // blue
}

// Draw returns a copy of frame with every box outlined and its center marked.
// Boxes may extend past the frame; the visible part is drawn.
func Draw(frame image.Image, boxes []Box) image.Image {
	dc := gg.NewContextForImage(imaging.Clone(frame))
	w, h := dc.Width(), dc.Height()

	stroke := math.Max(2, 0.004*float64(minInt(w, h))) // ~0.4% of min side
	cross := math.Max(4, 0.01*float64(minInt(w, h)))   // ~1% of min side
	dc.SetLineWidth(stroke)

	for i, box := range boxes {
		c := box.Color
		if c == nil {
			c = Palette[i%len(Palette)]
		}
		dc.SetColor(c)

		vp := box.Viewport
		half := stroke / 2
		dc.DrawRectangle(float64(vp.X)+half, float64(vp.Y)+half, float64(vp.Width)-stroke, float64(vp.Height)-stroke)
		dc.Stroke()

		cx := float64(vp.X) + float64(vp.Width)/2
		cy := float64(vp.Y) + float64(vp.Height)/2
		dc.DrawLine(cx-cross, cy, cx+cross, cy)
		dc.DrawLine(cx, cy-cross, cx, cy+cross)
		dc.Stroke()

		if box.Label != "" {
			lx := math.Max(float64(vp.X), 0) + stroke + 2
			ly := math.Max(float64(vp.Y), 0) + stroke + 2
			dc.DrawStringAnchored(box.Label, lx, ly, 0, 1)
		}
	}

	return dc.Image()
}

// FlipGlyph draws a size×size marker whose filled quadrant shows where the
// top-right corner of a frame ends up after applying the flip factors.
func FlipGlyph(size int, flip types.FlipFactors) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetColor(color.NRGBA{255, 255, 255, 255})
	dc.Clear()

	half := float64(size) / 2
	dc.Translate(half, half)
	dc.Scale(float64(flip.ScaleX), float64(flip.ScaleY))

	dc.SetColor(color.NRGBA{0, 0, 0, 255})
	dc.DrawRectangle(0, -half, half, half)
	dc.Fill()

	return dc.Image()
}

// Save writes img to path in the given format (png, jpg or webp)
func Save(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating overlay file")
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return errors.Wrap(webp.Encode(f, img, opts), "encoding webp overlay")
	case "png":
		return errors.Wrap(imaging.Save(img, path), "saving png overlay")
	default: // jpg/jpeg
		return errors.Wrap(imaging.Save(img, path, imaging.JPEGQuality(quality)), "saving jpeg overlay")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
