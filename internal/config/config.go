// Package config holds the runtime settings shared by both frontends.
// Settings come from built-in defaults, then an optional YAML file, then
// command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idate-tech/luminous/assets"
	"github.com/idate-tech/luminous/internal/contact"
	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/world"
)

// EmbeddedScenes is the scene table shipped in the binary.
const EmbeddedScenes = "scenes/idate.yaml"

// Device overrides for the device-class heuristic.
const (
	DeviceAuto    = "auto"
	DeviceDesktop = "desktop"
	DeviceTouch   = "touch"
)

type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Device     string `yaml:"device"`
	Scenes     string `yaml:"scenes"` // external scene table; empty uses the embedded one
	Seed       int64  `yaml:"seed"`
	ShowFPS    bool   `yaml:"show_fps"`
	LogWidth   int    `yaml:"log_width"`

	PositionDamping float64 `yaml:"position_damping"`
	MouseDamping    float64 `yaml:"mouse_damping"`
	Normalize       bool    `yaml:"normalize"`

	WheelThreshold float64       `yaml:"wheel_threshold"`
	SwipeThreshold float64       `yaml:"swipe_threshold"`
	Cooldown       time.Duration `yaml:"cooldown"`

	Mute       bool    `yaml:"mute"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`

	SubmitDelay time.Duration `yaml:"submit_delay"`
	FailEvery   int           `yaml:"fail_every"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Width:    1600,
		Height:   950,
		Device:   DeviceAuto,
		Seed:     1,
		LogWidth: 56,

		PositionDamping: game.DefaultPositionDamping,
		MouseDamping:    game.DefaultMouseDamping,

		WheelThreshold: game.DefaultWheelThreshold,
		SwipeThreshold: game.DefaultSwipeThreshold,
		Cooldown:       game.DefaultCooldown,

		Volume:     0.5,
		SampleRate: 44100,

		SubmitDelay: 2 * time.Second,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	switch c.Device {
	case DeviceAuto, DeviceDesktop, DeviceTouch:
	default:
		errs = append(errs, fmt.Errorf("device %q: want auto, desktop or touch", c.Device))
	}
	if !(c.PositionDamping > 0 && c.PositionDamping <= 1) {
		errs = append(errs, fmt.Errorf("position damping %v outside (0,1]", c.PositionDamping))
	}
	if !(c.MouseDamping > 0 && c.MouseDamping <= 1) {
		errs = append(errs, fmt.Errorf("mouse damping %v outside (0,1]", c.MouseDamping))
	}
	if c.WheelThreshold < 0 || c.SwipeThreshold < 0 {
		errs = append(errs, errors.New("input thresholds must not be negative"))
	}
	if c.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("cooldown %v is negative", c.Cooldown))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v outside [0,1]", c.Volume))
	}
	if c.SampleRate < 8000 {
		errs = append(errs, fmt.Errorf("sample rate %d too low", c.SampleRate))
	}
	if c.SubmitDelay < 0 || c.FailEvery < 0 {
		errs = append(errs, errors.New("submit delay and fail-every must not be negative"))
	}
	return errors.Join(errs...)
}

// Bind registers a flag for every setting, writing into c.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "Window width")
	fs.IntVar(&c.Height, "height", c.Height, "Window height")
	fs.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Start fullscreen")
	fs.StringVar(&c.Device, "device", c.Device, "Device class: auto, desktop, touch")
	fs.StringVar(&c.Scenes, "scenes", c.Scenes, "YAML scene table (default: embedded)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Backdrop layout seed")
	fs.BoolVar(&c.ShowFPS, "fps", c.ShowFPS, "Show FPS counter")
	fs.IntVar(&c.LogWidth, "log-width", c.LogWidth, "Activity log wrap width in characters")

	fs.Float64Var(&c.PositionDamping, "position-damping", c.PositionDamping, "Camera position damping per tick")
	fs.Float64Var(&c.MouseDamping, "mouse-damping", c.MouseDamping, "Parallax damping per tick")
	fs.BoolVar(&c.Normalize, "normalize", c.Normalize, "Make camera speed independent of frame rate")

	fs.Float64Var(&c.WheelThreshold, "wheel-threshold", c.WheelThreshold, "Minimum wheel delta")
	fs.Float64Var(&c.SwipeThreshold, "swipe-threshold", c.SwipeThreshold, "Minimum swipe distance")
	fs.DurationVar(&c.Cooldown, "cooldown", c.Cooldown, "Wheel cooldown")

	fs.BoolVar(&c.Mute, "mute", c.Mute, "Disable the transition chime")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "Chime volume 0-1")
	fs.IntVar(&c.SampleRate, "sample-rate", c.SampleRate, "Audio sample rate")

	fs.DurationVar(&c.SubmitDelay, "submit-delay", c.SubmitDelay, "Simulated transmission time")
	fs.IntVar(&c.FailEvery, "fail-every", c.FailEvery, "Fail every nth transmission (0 never)")
}

// Parse builds a Config from args. An explicit -config file is applied over
// the defaults and flags given on the command line win over the file.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()
	var path string
	fs.StringVar(&path, "config", "", "YAML config file")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if path != "" {
		set := map[string]string{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		for name, v := range set {
			if err := fs.Set(name, v); err != nil {
				return nil, fmt.Errorf("reapply -%s: %w", name, err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DeviceClass resolves the device override for a viewport width and host OS.
func (c *Config) DeviceClass(width int, osName string) layout.DeviceClass {
	switch c.Device {
	case DeviceDesktop:
		return layout.Desktop
	case DeviceTouch:
		return layout.Touch
	default:
		return layout.Classify(width, osName)
	}
}

// ViewOptions converts the settings into options for a game.View.
func (c *Config) ViewOptions(class layout.DeviceClass) game.ViewOptions {
	opts := game.DefaultViewOptions()
	opts.Camera.PositionDamping = c.PositionDamping
	opts.Camera.MouseDamping = c.MouseDamping
	opts.Camera.Normalize = c.Normalize
	opts.Nav.WheelThreshold = c.WheelThreshold
	opts.Nav.SwipeThreshold = c.SwipeThreshold
	opts.Nav.Cooldown = c.Cooldown
	opts.Nav.TouchPrimary = class == layout.Touch
	opts.Submitter = contact.NewDispatcher(contact.NewSimulated(c.SubmitDelay, c.FailEvery))
	opts.Seed = c.Seed
	opts.LogWidth = c.LogWidth
	return opts
}

// Registry loads the scene table named by Scenes, or the embedded one.
func (c *Config) Registry() (*world.Registry, error) {
	var (
		data []byte
		err  error
	)
	if c.Scenes != "" {
		data, err = os.ReadFile(c.Scenes)
	} else {
		data, err = assets.Scenes.ReadFile(EmbeddedScenes)
	}
	if err != nil {
		return nil, fmt.Errorf("read scenes: %w", err)
	}
	return world.LoadRegistry(data)
}
