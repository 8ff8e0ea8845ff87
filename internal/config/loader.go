package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the board configuration and applies environment overrides and
// the difficulty preset.
// Search order: customPath -> ~/.arcade/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
func Load(customPath string) (PongConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if !ValidPreset(cfg.Preset) {
		return cfg, fmt.Errorf("config: unknown difficulty preset %q", cfg.Preset)
	}
	ApplyPreset(&cfg, cfg.Preset)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (PongConfig, error) {
	// Start from the defaults so a partial file only overrides what it names.
	cfg := DefaultPongConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("pong.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultPongConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "pong.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultPongConfig()
	}

	if err := yaml.Unmarshal(defaultPongYAML, &cfg); err != nil {
		return DefaultPongConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *PongConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Preset = preset

	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.CPU.MaxSkill = min(cfg.CPU.MaxSkill, 0.7)
	case DifficultyHard:
		cfg.CPU.MinSkill = max(cfg.CPU.MinSkill, 0.75)
		cfg.CPU.MaxSkill = max(cfg.CPU.MaxSkill, 0.95)
	}
}

// Validate checks that the values can drive a board.
func (c PongConfig) Validate() error {
	switch {
	case c.Physics.BallSpeed <= 0:
		return fmt.Errorf("config: physics.ball_speed must be positive")
	case c.Physics.PaddleSpeed <= 0:
		return fmt.Errorf("config: physics.paddle_speed must be positive")
	case c.Physics.MaxBallSpeed < c.Physics.BallSpeed:
		return fmt.Errorf("config: physics.max_ball_speed must be at least ball_speed")
	case c.Paddles.Width <= 0:
		return fmt.Errorf("config: paddles.width must be positive")
	case c.Paddles.Height < 0 || c.Paddles.Offset < 0:
		return fmt.Errorf("config: paddles.height and paddles.offset must not be negative")
	case c.Gameplay.ServeDelay < 0:
		return fmt.Errorf("config: gameplay.serve_delay must not be negative")
	case c.CPU.MinSkill < 0 || c.CPU.MaxSkill > 1 || c.CPU.MinSkill > c.CPU.MaxSkill:
		return fmt.Errorf("config: cpu skill must satisfy 0 <= min_skill <= max_skill <= 1")
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg PongConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
