package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/logging"
)

// loadConfig loads the config file and applies the global flags on top.
// Flags win over environment variables, which win over the file.
func loadConfig() (config.PongConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if !config.ValidPreset(preset) {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.PongConfig, out io.Writer) (*log.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Prefix: "pong",
		Output: out,
	})
}
