package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Offset.DX != -617 || cfg.Offset.DY != 7 {
		t.Errorf("default offset = (%d, %d), want (-617, 7)", cfg.Offset.DX, cfg.Offset.DY)
	}
	if cfg.Overlay.Width != 170 || cfg.Overlay.Height != 25 {
		t.Errorf("default overlay = %dx%d, want 170x25", cfg.Overlay.Width, cfg.Overlay.Height)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{
			name:     "empty target title",
			mutate:   func(c *Config) { c.TargetTitle = "" },
			wantPath: "target_title",
		},
		{
			name:     "whitespace target title",
			mutate:   func(c *Config) { c.TargetTitle = "   " },
			wantPath: "target_title",
		},
		{
			name:     "zero poll interval",
			mutate:   func(c *Config) { c.PollIntervalMs = 0 },
			wantPath: "poll_interval_ms",
		},
		{
			name:     "negative poll interval",
			mutate:   func(c *Config) { c.PollIntervalMs = -5 },
			wantPath: "poll_interval_ms",
		},
		{
			name:     "zero overlay width",
			mutate:   func(c *Config) { c.Overlay.Width = 0 },
			wantPath: "overlay.width",
		},
		{
			name:     "zero overlay height",
			mutate:   func(c *Config) { c.Overlay.Height = 0 },
			wantPath: "overlay.height",
		},
		{
			name:     "color without hash",
			mutate:   func(c *Config) { c.Overlay.Color = "1a1a1a" },
			wantPath: "overlay.color",
		},
		{
			name:     "color too short",
			mutate:   func(c *Config) { c.Overlay.Color = "#fff" },
			wantPath: "overlay.color",
		},
		{
			name:     "color with bad hex",
			mutate:   func(c *Config) { c.Overlay.Color = "#zzzzzz" },
			wantPath: "overlay.color",
		},
		{
			name:     "unknown log level",
			mutate:   func(c *Config) { c.LogLevel = "verbose" },
			wantPath: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() returned %T, want *ValidationError", err)
			}
			if verr.Path != tt.wantPath {
				t.Errorf("validation error path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath with missing file failed: %v", err)
	}
	if cfg.TargetTitle != DefaultConfig().TargetTitle {
		t.Errorf("missing file yielded target_title %q, want default %q", cfg.TargetTitle, DefaultConfig().TargetTitle)
	}
}

func TestLoadFromPathPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("target_title: \"Status Board\"\noffset:\n  dx: 12\n  dy: -4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.TargetTitle != "Status Board" {
		t.Errorf("target_title = %q, want %q", cfg.TargetTitle, "Status Board")
	}
	if cfg.Offset.DX != 12 || cfg.Offset.DY != -4 {
		t.Errorf("offset = (%d, %d), want (12, -4)", cfg.Offset.DX, cfg.Offset.DY)
	}
	// Fields absent from the file keep their defaults.
	if cfg.PollIntervalMs != 10 {
		t.Errorf("poll_interval_ms = %d, want default 10", cfg.PollIntervalMs)
	}
	if cfg.Overlay.Width != 170 {
		t.Errorf("overlay.width = %d, want default 170", cfg.Overlay.Width)
	}
}

func TestLoadFromPathRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("target_title: \"Status Board\"\ntarget_class: \"steam\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("LoadFromPath accepted a config with unknown keys")
	}
}

func TestLoadFromPathRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("poll_interval_ms: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("LoadFromPath accepted poll_interval_ms: 0")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("LoadFromPath returned %T, want *ValidationError", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	orig := DefaultConfig()
	orig.TargetTitle = "Status Board"
	orig.PollIntervalMs = 25
	orig.Offset = OffsetConfig{DX: -10, DY: 3}
	orig.Overlay = OverlayConfig{Width: 200, Height: 30, Color: "#ff8800"}
	orig.LogLevel = "debug"

	if err := orig.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath after save failed: %v", err)
	}
	if *loaded != *orig {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", loaded, orig)
	}
}

func TestSaveToRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.TargetTitle = ""

	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("SaveTo accepted an invalid config")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("SaveTo wrote a file for an invalid config")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{in: "#1a1a1a", want: 0x1a1a1a},
		{in: "#FFFFFF", want: 0xffffff},
		{in: "#000000", want: 0},
		{in: "  #ff8800  ", want: 0xff8800},
		{in: "1a1a1a", wantErr: true},
		{in: "#fff", wantErr: true},
		{in: "#1a1a1a1a", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) = %#x, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "warning", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
