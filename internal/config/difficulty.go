package config

import "strings"

// Preset represents a named guard behaviour preset.
type Preset string

const (
	// PresetClassic sends guards straight back to their route start.
	PresetClassic Preset = "classic"
	// PresetEnhanced makes guards walk back to their route and remember
	// the passes they were shown.
	PresetEnhanced Preset = "enhanced"
	// PresetCustom keeps the guard settings as configured.
	PresetCustom Preset = "custom"
)

// ParsePreset returns the preset with the given name.
func ParsePreset(name string) (Preset, bool) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(name))); p {
	case PresetClassic, PresetEnhanced, PresetCustom:
		return p, true
	case "":
		return PresetCustom, true
	default:
		return "", false
	}
}

// ApplyPreset modifies the guard settings for a preset.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetClassic:
		cfg.Guards.Recovery = RecoveryReinstantiate
		cfg.Guards.FooledByPass = false
	case PresetEnhanced:
		cfg.Guards.Recovery = RecoveryResume
		cfg.Guards.FooledByPass = true
	}
	cfg.Preset = preset
}
