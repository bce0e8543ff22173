package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every setting; a YAML file supplies defaults and flags
// override it.
type Config struct {
	Accuracy       int           `yaml:"accuracy"`
	TolerateHidden bool          `yaml:"tolerate_hidden"`
	Repeat         int           `yaml:"repeat"`
	Interval       time.Duration `yaml:"interval"`
	LogLevel       string        `yaml:"log_level"`
	IconColor      string        `yaml:"icon_color"`
	Tooltip        string        `yaml:"tooltip"`
	WindowWidth    int32         `yaml:"window_width"`
	WindowHeight   int32         `yaml:"window_height"`
	HoldDuration   time.Duration `yaml:"hold_duration"`
}

func DefaultConfig() *Config {
	return &Config{
		Accuracy:     0,
		Repeat:       1,
		Interval:     time.Second,
		LogLevel:     "info",
		IconColor:    "#1e90ff",
		Tooltip:      "traylocate",
		WindowWidth:  320,
		WindowHeight: 200,
		HoldDuration: 600 * time.Millisecond,
	}
}

// LoadConfig reads path over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Accuracy < 0 {
		errs = append(errs, fmt.Errorf("accuracy must not be negative, got %d", c.Accuracy))
	}
	if c.Repeat < 1 {
		errs = append(errs, fmt.Errorf("repeat must be at least 1, got %d", c.Repeat))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Color(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

// Color parses IconColor as #rrggbb.
func (c *Config) Color() (color.RGBA, error) {
	s := strings.TrimPrefix(c.IconColor, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid icon color %q", c.IconColor)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid icon color %q", c.IconColor)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
