package sizecalc

import (
	"image"
	"testing"

	"github.com/cbsinteractive/pkg/video"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/menta2k/frame-viewport/pkg/types"
)

func TestToCrop(t *testing.T) {
	tests := []struct {
		name string
		vp   types.Viewport
		w, h int
		want video.Crop
	}{
		{"full frame", types.Viewport{Width: 1920, Height: 1080}, 1920, 1080, video.Crop{}},
		{"portrait crop of landscape frame", types.Viewport{X: 656, Width: 607, Height: 1080}, 1920, 1080,
			video.Crop{Left: 656, Right: 657}},
		{"overflowing viewport is clipped", types.Viewport{X: 0, Y: -1678, Width: 1920, Height: 4437}, 1920, 1080,
			video.Crop{}},
		{"disjoint viewport", types.Viewport{X: 5000, Y: 0, Width: 10, Height: 10}, 1920, 1080, video.Crop{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCrop(tt.vp, tt.w, tt.h)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToCrop() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCropRoundTrip(t *testing.T) {
	for _, portrait := range []bool{false, true} {
		vp := CalculateViewPortEncoder(1080, 1920, portrait)
		crop := ToCrop(vp, 1080, 1920)
		if got := FromCrop(crop, 1080, 1920); got != vp {
			t.Errorf("FromCrop(ToCrop(%v)) = %v", vp, got)
		}
	}
}

func TestAspect(t *testing.T) {
	if got := Aspect(types.Viewport{Width: 1920, Height: 1080}); got != image.Pt(16, 9) {
		t.Errorf("Expected 16:9, got %v", got)
	}
	if got := Aspect(types.Viewport{Width: 640, Height: 480}); got != image.Pt(4, 3) {
		t.Errorf("Expected 4:3, got %v", got)
	}
}

func TestValidateDimensions(t *testing.T) {
	if err := ValidateDimensions("stream", 1920, 1080); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	for _, size := range [][2]int{{0, 1080}, {1920, 0}, {-1, 10}, {10, -1}} {
		err := ValidateDimensions("preview", size[0], size[1])
		if err == nil {
			t.Fatalf("Expected error for %dx%d", size[0], size[1])
		}
		if errors.Cause(err) != ErrInvalidDimension {
			t.Errorf("Expected ErrInvalidDimension cause, got %v", err)
		}
	}
}
