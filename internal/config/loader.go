package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-escape/internal/core"
	"github.com/vovakirdan/tui-escape/internal/data"
	"github.com/vovakirdan/tui-escape/internal/sim"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Load loads the configuration.
// Search order: customPath -> ~/.escape/config.yaml -> ./configs/escape.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		raw, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(raw)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if raw, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(raw); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if raw, err := os.ReadFile("configs/escape.yaml"); err == nil {
		if cfg, err := Parse(raw); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultEscapeYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults, applies the preset and
// validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	preset, ok := ParsePreset(string(cfg.Preset))
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q", ErrInvalid, cfg.Preset)
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value the simulation depends on.
func (c Config) Validate() error {
	switch c.Guards.Recovery {
	case RecoveryReinstantiate, RecoveryResume:
	default:
		return fmt.Errorf("%w: guards.recovery %q", ErrInvalid, c.Guards.Recovery)
	}
	if c.Game.Nation < 0 || c.Game.Nation >= data.NbNations {
		return fmt.Errorf("%w: game.nation %d", ErrInvalid, c.Game.Nation)
	}
	if c.Timing.AnimationMs <= 0 || c.Timing.RepositionMs <= 0 || c.Timing.MinuteMs <= 0 {
		return fmt.Errorf("%w: timing intervals must be positive", ErrInvalid)
	}
	if c.Timing.PictureMs < 0 {
		return fmt.Errorf("%w: timing.picture_ms %d", ErrInvalid, c.Timing.PictureMs)
	}
	if c.Display.FrameRate <= 0 || c.Display.Speed <= 0 {
		return fmt.Errorf("%w: display frame_rate and speed must be positive", ErrInvalid)
	}
	return nil
}

// SimOptions returns the world options for this configuration.
func (c Config) SimOptions(logger *log.Logger, host sim.Host) sim.Options {
	opts := sim.DefaultOptions()
	opts.Logger = logger
	opts.Host = host
	if c.Guards.Recovery == RecoveryResume {
		opts.Recovery = sim.RecoverResumeRoute
	}
	opts.FooledByPass = c.Guards.FooledByPass
	opts.AnimationInterval = time.Duration(c.Timing.AnimationMs) * time.Millisecond
	opts.RepositionInterval = time.Duration(c.Timing.RepositionMs) * time.Millisecond
	opts.TimeMarker = time.Duration(c.Timing.MinuteMs) * time.Millisecond
	opts.Seed = c.Game.Seed
	opts.Nation = c.Game.Nation
	return opts
}

// Runtime returns the driver settings for this configuration.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.FrameRate = c.Display.FrameRate
	rc.Speed = c.Display.Speed
	rc.Seed = c.Game.Seed
	rc.Step = time.Duration(c.Timing.RepositionMs) * time.Millisecond
	return rc
}

// PictureDuration returns how long hosts show a static screen.
func (c Config) PictureDuration() time.Duration {
	return time.Duration(c.Timing.PictureMs) * time.Millisecond
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".escape", filename)
}
