// Package config provides YAML-based configuration loading for the escape
// simulation and its hosts.
package config

// Config contains all settings of the simulation and its drivers.
type Config struct {
	DataDir  string        `yaml:"data_dir"`
	Database string        `yaml:"database"`
	Preset   Preset        `yaml:"preset"`
	Guards   GuardConfig   `yaml:"guards"`
	Timing   TimingConfig  `yaml:"timing"`
	Game     GameConfig    `yaml:"game"`
	Display  DisplayConfig `yaml:"display"`
	Server   ServerConfig  `yaml:"server"`
}

// GuardConfig defines how guards behave after a pursuit.
type GuardConfig struct {
	Recovery     string `yaml:"recovery"` // "reinstantiate" or "resume"
	FooledByPass bool   `yaml:"fooled_by_pass"`
}

// TimingConfig defines the tick cadences, in milliseconds of game time.
type TimingConfig struct {
	AnimationMs  int `yaml:"animation_ms"`
	RepositionMs int `yaml:"reposition_ms"`
	MinuteMs     int `yaml:"minute_ms"`  // game time per in-game minute
	PictureMs    int `yaml:"picture_ms"` // how long hosts show a static screen
}

// GameConfig defines how a new game starts.
type GameConfig struct {
	Nation int   `yaml:"nation"`
	Seed   int64 `yaml:"seed"` // 0 = random based on time
}

// DisplayConfig defines the terminal driver pacing.
type DisplayConfig struct {
	FrameRate int     `yaml:"frame_rate"`
	Speed     float64 `yaml:"speed"` // game time multiplier
}

// ServerConfig defines the SSH viewer server.
type ServerConfig struct {
	Address string `yaml:"address"`
	HostKey string `yaml:"host_key"`
}

// Recovery mode names.
const (
	RecoveryReinstantiate = "reinstantiate"
	RecoveryResume        = "resume"
)
