package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gameloop"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/notify"
	"github.com/vovakirdan/tui-pong/internal/platform/headless"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

var (
	flagSimWidth      int
	flagSimHeight     int
	flagSimTimeout    time.Duration
	flagSimServeAfter time.Duration
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a CPU vs CPU match without a terminal",
	Long: `Run a full match between two CPU paddles on an in-memory board.
Status and score updates are written to the log on stderr; the result and
loop statistics are printed when the match ends.

Examples:
  pong sim
  pong sim --seed 7 --difficulty hard
  pong sim --width 60 --height 16 --timeout 2m`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Board width")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 20, "Board height")
	simCmd.Flags().DurationVar(&flagSimTimeout, "timeout", 5*time.Minute, "Give up after this long")
	simCmd.Flags().DurationVar(&flagSimServeAfter, "serve-after", headless.DefaultServeAfter, "Pause between a point and the next serve")
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimWidth < pong.MinWidth || flagSimHeight < pong.MinHeight {
		return fmt.Errorf("board must be at least %dx%d", pong.MinWidth, pong.MinHeight)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagSimTimeout)
	defer cancel()

	rt := core.RuntimeConfig{ScreenW: flagSimWidth, ScreenH: flagSimHeight, Seed: flagSeed}
	table := pong.New(cfg, rt, pong.WithAutoPlayer(), pong.WithLogger(logger))
	platform := headless.NewPlatform(rt.ScreenW, rt.ScreenH)

	bridge := notify.NewBridge()
	sink := headless.NewSink(bridge, logger)
	sinkDone := make(chan struct{})
	go func() {
		sink.Run(ctx)
		close(sinkDone)
	}()

	loop := gameloop.New(table, surface.NewGate(platform, logger), bridge, gameloop.WithLogger(logger))
	if err := loop.Start(ctx); err != nil {
		bridge.Close()
		return err
	}

	ref := headless.NewReferee(loop, table.Outcomes(),
		headless.WithServeAfter(flagSimServeAfter),
		headless.WithRefereeLogger(logger))
	refErr := ref.Run(ctx)

	loop.Stop()
	loop.Wait()
	bridge.Close()
	<-sinkDone

	if refErr != nil {
		return fmt.Errorf("match not finished: %w", refErr)
	}

	score := loop.Scores()
	st := loop.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Match %s\n", loop.ID())
	fmt.Fprintf(out, "Result: %s (%d - %d)\n", resultText(loop.State()), score.Player, score.Opponent)
	fmt.Fprintf(out, "Ticks: %d  Updates: %d  Draws: %d  Frames: %d\n", st.Ticks, st.Updates, st.Draws, platform.Frames())
	fmt.Fprintf(out, "Failures: %d  Overruns: %d\n", st.Failures, st.Overruns)
	fmt.Fprintln(out)
	fmt.Fprintln(out, platform.Last())
	return nil
}

func resultText(s gameloop.State) string {
	if s == gameloop.StateLose {
		return "left CPU loses"
	}
	return "left CPU wins"
}
