package main

import (
	"testing"

	"github.com/menta2k/frame-viewport/internal/config"
	"github.com/menta2k/frame-viewport/pkg/types"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	set := map[string]bool{"portrait": true, "fliph": true, "flipv": true}
	if err := applyFlags(cfg, set, "1080x1920", "fill", "dbg", "webp", true, true, false); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}

	if cfg.Preview.Width != 1080 || cfg.Preview.Height != 1920 {
		t.Errorf("Expected preview 1080x1920, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}
	if cfg.Preview.Mode != types.Fill {
		t.Errorf("Expected fill mode, got %v", cfg.Preview.Mode)
	}
	if cfg.Output.OutputDir != "dbg" || cfg.Output.DefaultFormat != "webp" {
		t.Errorf("Unexpected output config: %+v", cfg.Output)
	}
	if !cfg.Encoder.Portrait || !cfg.Flip.Horizontal || cfg.Flip.Vertical {
		t.Errorf("Unexpected orientation/flip: %+v %+v", cfg.Encoder, cfg.Flip)
	}
}

func TestApplyFlagsOverridesConfiguredBooleans(t *testing.T) {
	cfg := config.Default()
	cfg.Encoder.Portrait = true
	cfg.Flip.Horizontal = true
	cfg.Flip.Vertical = true

	// -portrait=false -fliph=false given, -flipv left off
	set := map[string]bool{"portrait": true, "fliph": true}
	if err := applyFlags(cfg, set, "", "", "", "", false, false, false); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}

	if cfg.Encoder.Portrait {
		t.Error("Expected -portrait=false to turn off configured portrait")
	}
	if cfg.Flip.Horizontal {
		t.Error("Expected -fliph=false to turn off configured horizontal flip")
	}
	if !cfg.Flip.Vertical {
		t.Error("Expected unset -flipv to keep configured vertical flip")
	}
}

func TestApplyFlagsErrors(t *testing.T) {
	tests := []struct {
		name, preview, mode, ext string
	}{
		{"bad preview", "1080", "", ""},
		{"zero preview", "0x1920", "", ""},
		{"bad mode", "", "stretch", ""},
		{"bad format", "", "", "gif"},
	}
	for _, tt := range tests {
		if err := applyFlags(config.Default(), nil, tt.preview, tt.mode, "", tt.ext, false, false, false); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestScaleViewport(t *testing.T) {
	vp := types.Viewport{X: 0, Y: 565, Width: 1080, Height: 789}
	got := scaleViewport(vp, 0.5, 0.25)
	want := types.Viewport{X: 0, Y: 141, Width: 540, Height: 197}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
