// Package config provides YAML-based game configuration loading and
// difficulty presets for the blocks games.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Minimum well dimensions. A piece box is 4x4.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 4
)

// BlocksConfig contains all configuration for the falling-block games.
type BlocksConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Speed     SpeedConfig     `yaml:"speed"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Challenge ChallengeConfig `yaml:"challenge"`
	Generator GeneratorConfig `yaml:"generator"`
}

// BoardConfig defines the well.
type BoardConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Ghost  bool `yaml:"ghost"` // Draw the landing shadow of the active piece
}

// SpeedConfig defines gravity and level progression.
type SpeedConfig struct {
	InitialDelayMS int     `yaml:"initial_delay_ms"` // Gravity interval at level 1
	Multiplier     float64 `yaml:"multiplier"`       // Delay factor applied per level
	PointsPerLevel int     `yaml:"points_per_level"`
	Progression    bool    `yaml:"progression"` // false keeps level 1 speed forever
}

// ScoringConfig defines optional scoring rules for normal mode.
type ScoringConfig struct {
	LevelMultiplier bool `yaml:"level_multiplier"` // Scale clear bonus by level
	InstantLock     bool `yaml:"instant_lock"`     // Lock as soon as a piece lands
}

// ChallengeConfig defines the obstructed-visibility mode.
type ChallengeConfig struct {
	RevealDurationMS int `yaml:"reveal_duration_ms"`
	RevealIntervalMS int `yaml:"reveal_interval_ms"`
	CountdownSeconds int `yaml:"countdown_seconds"`
	DelayMS          int `yaml:"delay_ms"` // Fixed gravity interval
}

// GeneratorConfig selects the piece randomizer.
type GeneratorConfig struct {
	Policy string `yaml:"policy"` // "random" or "bag"
}

// InitialDelay returns the level 1 gravity interval.
func (s SpeedConfig) InitialDelay() time.Duration {
	return time.Duration(s.InitialDelayMS) * time.Millisecond
}

// RevealDuration returns how long the well stays visible.
func (c ChallengeConfig) RevealDuration() time.Duration {
	return time.Duration(c.RevealDurationMS) * time.Millisecond
}

// RevealInterval returns the time between reveal windows.
func (c ChallengeConfig) RevealInterval() time.Duration {
	return time.Duration(c.RevealIntervalMS) * time.Millisecond
}

// Delay returns the fixed gravity interval of challenge mode.
func (c ChallengeConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects configurations no game can run with.
func (c BlocksConfig) Validate() error {
	if c.Board.Width < MinBoardWidth || c.Board.Height < MinBoardHeight {
		return fmt.Errorf("config: board %dx%d smaller than %dx%d: %w",
			c.Board.Width, c.Board.Height, MinBoardWidth, MinBoardHeight, ErrInvalidConfig)
	}
	if c.Speed.InitialDelayMS <= 0 {
		return fmt.Errorf("config: speed.initial_delay_ms must be positive: %w", ErrInvalidConfig)
	}
	if c.Speed.Multiplier <= 0 || c.Speed.Multiplier >= 1 {
		return fmt.Errorf("config: speed.multiplier %.2f outside (0, 1): %w", c.Speed.Multiplier, ErrInvalidConfig)
	}
	if c.Speed.PointsPerLevel <= 0 {
		return fmt.Errorf("config: speed.points_per_level must be positive: %w", ErrInvalidConfig)
	}
	if c.Challenge.RevealDurationMS <= 0 || c.Challenge.RevealIntervalMS <= 0 {
		return fmt.Errorf("config: challenge reveal timings must be positive: %w", ErrInvalidConfig)
	}
	if c.Challenge.DelayMS <= 0 {
		return fmt.Errorf("config: challenge.delay_ms must be positive: %w", ErrInvalidConfig)
	}
	switch c.Generator.Policy {
	case "", "random", "bag":
	default:
		return fmt.Errorf("config: unknown generator policy %q: %w", c.Generator.Policy, ErrInvalidConfig)
	}
	return nil
}
