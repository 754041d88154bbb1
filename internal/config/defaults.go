package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the hardcoded blocks configuration, used when
// no YAML source can be read.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
			Ghost:  true,
		},
		Speed: SpeedConfig{
			InitialDelayMS: 400,
			Multiplier:     0.85,
			PointsPerLevel: 1000,
			Progression:    true,
		},
		Scoring: ScoringConfig{
			LevelMultiplier: false,
			InstantLock:     true,
		},
		Challenge: ChallengeConfig{
			RevealDurationMS: 4000,
			RevealIntervalMS: 10000,
			CountdownSeconds: 3,
			DelayMS:          400,
		},
		Generator: GeneratorConfig{
			Policy: "random",
		},
	}
}
