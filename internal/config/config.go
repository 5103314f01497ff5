package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/menta2k/frame-viewport/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. VIEWPORT_PREVIEW_WIDTH
const EnvPrefix = "viewport"

// Config holds the application configuration
type Config struct {
	Preview PreviewConfig `json:"preview"`
	Encoder EncoderConfig `json:"encoder"`
	Flip    FlipConfig    `json:"flip"`
	Probe   ProbeConfig   `json:"probe"`
	Output  OutputConfig  `json:"output"`
	Log     LogConfig     `json:"log"`
}

// PreviewConfig describes the surface the stream is shown on
type PreviewConfig struct {
	Width  int                   `json:"width" envconfig:"width"`
	Height int                   `json:"height" envconfig:"height"`
	Mode   types.AspectRatioMode `json:"mode" envconfig:"mode"`
}

// EncoderConfig holds the orientation frames are encoded in
type EncoderConfig struct {
	Portrait bool `json:"portrait" envconfig:"portrait"`
}

// FlipConfig selects the mirrored axes
type FlipConfig struct {
	Horizontal bool `json:"horizontal" envconfig:"horizontal"`
	Vertical   bool `json:"vertical" envconfig:"vertical"`
}

// ProbeConfig controls which frame files are accepted
type ProbeConfig struct {
	SupportedFormats []string `json:"supported_formats" envconfig:"formats"`
	MinFrameSize     int      `json:"min_frame_size" envconfig:"min_size"`
}

// OutputConfig holds configuration for debug overlay output
type OutputConfig struct {
	DefaultFormat string `json:"default_format" envconfig:"format"`
	OutputDir     string `json:"output_dir" envconfig:"dir"`
	Prefix        string `json:"prefix" envconfig:"prefix"`
	Suffix        string `json:"suffix" envconfig:"suffix"`
	Quality       int    `json:"quality" envconfig:"quality"`
	Lossless      bool   `json:"lossless" envconfig:"lossless"`
}

// LogConfig configures the logrus logger
type LogConfig struct {
	Level  string `json:"level" envconfig:"level"`
	Format string `json:"format" envconfig:"format"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Preview: PreviewConfig{
			Width:  1280,
			Height: 720,
			Mode:   types.Adjust,
		},
		Encoder: EncoderConfig{
			Portrait: false,
		},
		Probe: ProbeConfig{
			SupportedFormats: []string{"jpeg", "png", "webp", "gif", "bmp", "tiff"},
			MinFrameSize:     1,
		},
		Output: OutputConfig{
			DefaultFormat: "png",
			OutputDir:     "./output",
			Suffix:        "_viewport",
			Quality:       90,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFromFile loads configuration from a JSON file on top of the defaults
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	return config, nil
}

// ApplyEnv overrides fields from VIEWPORT_* environment variables. Unset
// variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return errors.Wrap(err, "reading environment overrides")
	}
	return nil
}

// Load reads filename when it exists, falls back to the defaults otherwise,
// then applies environment overrides and validates the result.
func Load(filename string) (*Config, error) {
	config := Default()
	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			if config, err = LoadFromFile(filename); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "checking config file")
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return errors.Errorf("preview size must be positive, got %dx%d", c.Preview.Width, c.Preview.Height)
	}

	if len(c.Probe.SupportedFormats) == 0 {
		return errors.New("probe.supported_formats cannot be empty")
	}

	if c.Probe.MinFrameSize < 1 {
		return errors.New("probe.min_frame_size must be positive")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return errors.New("output.quality must be between 1 and 100")
	}

	switch strings.ToLower(c.Output.DefaultFormat) {
	case "png", "jpg", "jpeg", "webp":
	default:
		return errors.Errorf("output.default_format %q is not one of png, jpg, webp", c.Output.DefaultFormat)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}

	return nil
}

// Logger builds a logrus logger from the log section
func (c LogConfig) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parsing log level")
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if strings.EqualFold(c.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "frame-viewport", "config.json")
}
