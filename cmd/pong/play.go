package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play against the CPU",
	Long: `Start an interactive match against the CPU. First to three points wins.

Controls:
  W/Up, S/Down - Move paddle
  Space        - Serve / resume
  P/Esc        - Pause
  R            - Rematch (after the match)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Logs go to the log file (default ~/.arcade/pong.log) because the terminal
is taken by the board.

Examples:
  pong play
  pong play --difficulty easy
  pong play --log-level debug --log-file ./pong.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer f.Close()

	logger, err := newLogger(cfg, f)
	if err != nil {
		return err
	}

	// Initial board size; the TUI resizes on the first window size message.
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rt := core.DefaultConfig()
	rt.ScreenW = width
	rt.ScreenH = max(height-3, 0)
	rt.Seed = flagSeed

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.Options{Config: cfg, Runtime: rt, Logger: logger})
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("play needs a log file; set log.file or --log-file")
	}
	return logging.OpenFile(path)
}
