package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the built-in configuration. It mirrors
// defaults/pong.yaml and is used when the embedded file cannot be parsed.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallSpeed:    0.5,
			PaddleSpeed:  1.0,
			MaxBallSpeed: 1.5,
			SpinFactor:   0.3,
			SpeedUp:      1.02,
		},
		Paddles: PongPaddles{
			Height: 0,
			Width:  1,
			Offset: 2,
		},
		Gameplay: PongGameplay{
			ServeDelay: 60,
		},
		CPU: PongCPU{
			MinSkill: 0.6,
			MaxSkill: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "points",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.arcade/pong.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPongYAML
}
