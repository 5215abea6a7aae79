package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/idate-tech/luminous/internal/layout"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "luminous.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "width: 1280\ncooldown: 750ms\nmute: true\ndevice: touch\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 1280 {
		t.Errorf("Expected width 1280, got %d", cfg.Width)
	}
	if cfg.Height != 950 {
		t.Errorf("Expected default height to survive, got %d", cfg.Height)
	}
	if cfg.Cooldown != 750*time.Millisecond {
		t.Errorf("Expected 750ms cooldown, got %v", cfg.Cooldown)
	}
	if !cfg.Mute {
		t.Error("Expected mute from file")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
	if _, err := Load(writeConfig(t, "width: [1, 2]\n")); err == nil {
		t.Error("Expected parse error")
	}
	_, err := Load(writeConfig(t, "volume: 3\n"))
	if err == nil || !strings.Contains(err.Error(), "volume") {
		t.Errorf("Expected volume validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"size", func(c *Config) { c.Width = 0 }, "window size"},
		{"device", func(c *Config) { c.Device = "tablet" }, "device"},
		{"damping", func(c *Config) { c.PositionDamping = 1.5 }, "position damping"},
		{"mouse damping", func(c *Config) { c.MouseDamping = 0 }, "mouse damping"},
		{"cooldown", func(c *Config) { c.Cooldown = -time.Second }, "cooldown"},
		{"sample rate", func(c *Config) { c.SampleRate = 100 }, "sample rate"},
		{"thresholds", func(c *Config) { c.WheelThreshold = -1 }, "thresholds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	path := writeConfig(t, "width: 1280\nheight: 720\nvolume: 0.2\n")
	cfg, err := Parse(newFlagSet(), []string{"-config", path, "-width", "1024", "-mute"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Width != 1024 {
		t.Errorf("Expected flag to win over file, got width %d", cfg.Width)
	}
	if cfg.Height != 720 {
		t.Errorf("Expected file to win over default, got height %d", cfg.Height)
	}
	if cfg.Volume != 0.2 {
		t.Errorf("Expected volume from file, got %v", cfg.Volume)
	}
	if !cfg.Mute {
		t.Error("Expected -mute flag")
	}
	if cfg.Cooldown != time.Second {
		t.Errorf("Expected default cooldown, got %v", cfg.Cooldown)
	}
}

func TestParseWithoutFile(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{"-cooldown", "250ms", "-device", "desktop"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Cooldown != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", cfg.Cooldown)
	}
	if _, err := Parse(newFlagSet(), []string{"-device", "watch"}); err == nil {
		t.Error("Expected invalid device to fail")
	}
	if _, err := Parse(newFlagSet(), []string{"-nope"}); err == nil {
		t.Error("Expected unknown flag to fail")
	}
}

func TestDeviceClass(t *testing.T) {
	cfg := Default()
	if cfg.DeviceClass(400, "linux") != layout.Touch {
		t.Error("Expected auto to classify a narrow window as touch")
	}
	cfg.Device = DeviceDesktop
	if cfg.DeviceClass(400, "android") != layout.Desktop {
		t.Error("Expected desktop override")
	}
	cfg.Device = DeviceTouch
	if cfg.DeviceClass(1920, "linux") != layout.Touch {
		t.Error("Expected touch override")
	}
}

func TestViewOptions(t *testing.T) {
	cfg := Default()
	cfg.Normalize = true
	cfg.Cooldown = 300 * time.Millisecond
	opts := cfg.ViewOptions(layout.Touch)
	if !opts.Camera.Normalize {
		t.Error("Expected normalize to carry over")
	}
	if opts.Nav.Cooldown != 300*time.Millisecond {
		t.Errorf("Expected cooldown to carry over, got %v", opts.Nav.Cooldown)
	}
	if !opts.Nav.TouchPrimary {
		t.Error("Expected touch class to disable the wheel")
	}
	if opts.Submitter == nil {
		t.Error("Expected a submitter")
	}
}

func TestRegistry(t *testing.T) {
	cfg := Default()
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("embedded Registry: %v", err)
	}
	if reg.Len() == 0 {
		t.Error("Expected embedded scenes")
	}

	cfg.Scenes = writeConfig(t, "name: Solo\nscenes:\n  - id: ONLY\n    nav: ONLY\n    title: [ONLY]\n    accent: \"#ffffff\"\n    position: [0, 0]\n    final: true\n")
	reg, err = cfg.Registry()
	if err != nil {
		t.Fatalf("file Registry: %v", err)
	}
	if reg.Len() != 1 || reg.Name != "Solo" {
		t.Errorf("Expected the single-scene table, got %d scenes named %q", reg.Len(), reg.Name)
	}

	cfg.Scenes = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.Registry(); err == nil {
		t.Error("Expected an error for a missing table")
	}
}
