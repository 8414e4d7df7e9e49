package core

import "time"

// RuntimeConfig contains configuration passed to the driver at initialization.
// The driver uses it to size the view and to pace the simulation.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	FrameRate int           // Driver frames per second (default 60)
	Seed      int64         // RNG seed for deterministic gameplay
	Speed     float64       // Game time multiplier (1 = real time)
	MaxFrame  time.Duration // Longest frame fed to the simulation at once
	Step      time.Duration // Game time per simulation step
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
		Seed:      0, // 0 means use current time in platform layer
		Speed:     1,
		MaxFrame:  250 * time.Millisecond,
		Step:      15 * time.Millisecond,
	}
}

// FrameDuration returns the wall-clock time between two driver frames.
func (c RuntimeConfig) FrameDuration() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// GameTime converts a wall-clock interval into game time, applying the
// speed multiplier and the frame cap.
func (c RuntimeConfig) GameTime(wall time.Duration) time.Duration {
	speed := c.Speed
	if speed <= 0 {
		speed = 1
	}
	d := time.Duration(float64(wall) * speed)
	if c.MaxFrame > 0 && d > c.MaxFrame {
		d = c.MaxFrame
	}
	return d
}

// StepSize returns the game time the driver feeds the simulation per step.
func (c RuntimeConfig) StepSize() time.Duration {
	if c.Step <= 0 {
		return DefaultConfig().Step
	}
	return c.Step
}
