// Package config loads and validates the winpin YAML configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the effective daemon configuration.
type Config struct {
	// TargetTitle is the exact window title to pin the overlay to,
	// compared after trimming surrounding whitespace.
	TargetTitle string `yaml:"target_title"`

	// PollIntervalMs is the tracker tick period in milliseconds.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	Offset  OffsetConfig  `yaml:"offset"`
	Overlay OverlayConfig `yaml:"overlay"`

	LogLevel string `yaml:"log_level"`
}

// OffsetConfig anchors the overlay relative to the target's top-right corner.
type OffsetConfig struct {
	DX int `yaml:"dx"`
	DY int `yaml:"dy"`
}

// OverlayConfig sets the strip geometry and fill.
type OverlayConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  string `yaml:"color"`
}

// ValidationError reports a config field that failed validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func DefaultConfig() *Config {
	return &Config{
		TargetTitle:    "Steam",
		PollIntervalMs: 10,
		Offset:         OffsetConfig{DX: -617, DY: 7},
		Overlay:        OverlayConfig{Width: 170, Height: 25, Color: "#1a1a1a"},
		LogLevel:       "info",
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.TargetTitle) == "" {
		return &ValidationError{Path: "target_title", Err: fmt.Errorf("target_title is required")}
	}
	if c.PollIntervalMs < 1 {
		return &ValidationError{Path: "poll_interval_ms", Err: fmt.Errorf("poll_interval_ms must be >= 1")}
	}
	if c.Overlay.Width < 1 {
		return &ValidationError{Path: "overlay.width", Err: fmt.Errorf("overlay width must be >= 1")}
	}
	if c.Overlay.Height < 1 {
		return &ValidationError{Path: "overlay.height", Err: fmt.Errorf("overlay height must be >= 1")}
	}
	if _, err := ParseColor(c.Overlay.Color); err != nil {
		return &ValidationError{Path: "overlay.color", Err: err}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warn" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	return nil
}

// Interval returns the tracker tick period.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// OverlayColor returns the strip fill as 0xRRGGBB. Call Validate first;
// an invalid color here falls back to black.
func (c *Config) OverlayColor() uint32 {
	v, err := ParseColor(c.Overlay.Color)
	if err != nil {
		return 0
	}
	return v
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseColor parses a "#rrggbb" color into 0xRRGGBB.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("color must look like #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color must look like #rrggbb, got %q", s)
	}
	return uint32(v), nil
}

// Save validates and writes the config to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates and writes the config to path, creating parent
// directories as needed.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
