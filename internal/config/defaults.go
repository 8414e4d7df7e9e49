package config

import (
	_ "embed"
)

//go:embed defaults/escape.yaml
var defaultEscapeYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		DataDir:  "./data",
		Database: "~/.escape/escape.db",
		Preset:   PresetClassic,
		Guards: GuardConfig{
			Recovery:     RecoveryReinstantiate,
			FooledByPass: false,
		},
		Timing: TimingConfig{
			AnimationMs:  120,
			RepositionMs: 15,
			MinuteMs:     10000,
			PictureMs:    2000,
		},
		Game: GameConfig{
			Nation: 0,
			Seed:   0,
		},
		Display: DisplayConfig{
			FrameRate: 60,
			Speed:     1,
		},
		Server: ServerConfig{
			Address: ":2222",
			HostKey: "~/.escape/ssh_host_ed25519",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultEscapeYAML
}
