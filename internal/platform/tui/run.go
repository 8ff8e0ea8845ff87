package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gameloop"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/notify"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

// Options configures Run.
type Options struct {
	Config  config.PongConfig
	Runtime core.RuntimeConfig
	Logger  *log.Logger
}

// Run plays one interactive session in the alternate screen until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := notify.NewBridge()
	defer bridge.Close()

	table := pong.New(opts.Config, opts.Runtime, pong.WithLogger(logger))
	surf := NewSurface(pong.MinWidth, pong.MinHeight)
	loop := gameloop.New(table, surface.NewGate(surf, logger), bridge, gameloop.WithLogger(logger))

	logger.Info("match created", "match", loop.ID(), "seed", opts.Runtime.Seed)
	if err := loop.Start(ctx); err != nil {
		return err
	}

	match := Match{Loop: loop, Outcomes: table.Outcomes(), Nudge: table.Nudge}
	p := tea.NewProgram(
		NewModel(ctx, match, surf, bridge, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	killed := errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil

	loop.Stop()
	cancel()
	loop.Wait()

	st := loop.Stats()
	logger.Info("session ended",
		"ticks", st.Ticks, "updates", st.Updates, "draws", st.Draws,
		"failures", st.Failures, "overruns", st.Overruns)

	if killed {
		return nil
	}
	return err
}
