// Package config provides YAML-based configuration loading and difficulty
// management for the board.
package config

// PongConfig contains all tunable settings of the board and the process.
// Tick rate and match point are fixed and deliberately absent.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Log        LogConfig        `yaml:"log"`

	// Preset names a difficulty preset applied on top of the file values.
	Preset DifficultyPreset `yaml:"preset" env:"PONG_DIFFICULTY"`
}

// PongPhysics defines ball and paddle speeds in cells per tick.
type PongPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`
	PaddleSpeed  float64 `yaml:"paddle_speed"`
	MaxBallSpeed float64 `yaml:"max_ball_speed"`
	SpinFactor   float64 `yaml:"spin_factor"` // vertical speed added by an off-centre hit
	SpeedUp      float64 `yaml:"speed_up"`    // horizontal speed multiplier per paddle hit
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	Height int `yaml:"height"` // 0 = derive from board height
	Width  int `yaml:"width"`
	Offset int `yaml:"offset"` // distance from the side wall
}

// PongGameplay defines round pacing.
type PongGameplay struct {
	ServeDelay int `yaml:"serve_delay"` // ticks the ball waits before moving
}

// PongCPU bounds the CPU paddle's tracking skill (0..1).
type PongCPU struct {
	MinSkill float64 `yaml:"min_skill"`
	MaxSkill float64 `yaml:"max_skill"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level string `yaml:"level" env:"PONG_LOG_LEVEL"`
	File  string `yaml:"file" env:"PONG_LOG_FILE"` // used by the interactive mode
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "points", "time", or "none"
	MaxAt int    `yaml:"max_at"` // points played / ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to serve speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ValidPreset reports whether preset is empty or one of the known presets.
func ValidPreset(preset DifficultyPreset) bool {
	switch preset {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}
