package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/menta2k/frame-viewport/pkg/types"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero preview width", func(c *Config) { c.Preview.Width = 0 }},
		{"negative preview height", func(c *Config) { c.Preview.Height = -1 }},
		{"no formats", func(c *Config) { c.Probe.SupportedFormats = nil }},
		{"zero min size", func(c *Config) { c.Probe.MinFrameSize = 0 }},
		{"quality too high", func(c *Config) { c.Output.Quality = 101 }},
		{"unknown output format", func(c *Config) { c.Output.DefaultFormat = "gif" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Preview.Width = 1080
	cfg.Preview.Height = 1920
	cfg.Preview.Mode = types.Fill
	cfg.Flip.Horizontal = true

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv("VIEWPORT_PREVIEW_WIDTH", "720")
	t.Setenv("VIEWPORT_PREVIEW_HEIGHT", "1280")
	t.Setenv("VIEWPORT_PREVIEW_MODE", "none")
	t.Setenv("VIEWPORT_ENCODER_PORTRAIT", "true")
	t.Setenv("VIEWPORT_FLIP_VERTICAL", "true")
	t.Setenv("VIEWPORT_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Preview.Width != 720 || cfg.Preview.Height != 1280 {
		t.Errorf("Expected preview 720x1280, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}
	if cfg.Preview.Mode != types.None {
		t.Errorf("Expected mode none, got %v", cfg.Preview.Mode)
	}
	if !cfg.Encoder.Portrait {
		t.Error("Expected portrait encoder")
	}
	if cfg.Flip.Horizontal || !cfg.Flip.Vertical {
		t.Errorf("Unexpected flips: %+v", cfg.Flip)
	}
	if cfg.Output.Quality != Default().Output.Quality {
		t.Errorf("Unset variables should keep defaults, got quality %d", cfg.Output.Quality)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("VIEWPORT_PREVIEW_MODE", "stretch")
	if _, err := Load(""); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestLogger(t *testing.T) {
	logger, err := LogConfig{Level: "warn", Format: "json"}.Logger()
	if err != nil {
		t.Fatalf("Logger failed: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %v", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", logger.Formatter)
	}
}
