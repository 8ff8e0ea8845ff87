package headless

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/gameloop"
	"github.com/vovakirdan/tui-pong/internal/logging"
)

// DefaultServeAfter is the pause between a point and the next serve.
const DefaultServeAfter = 500 * time.Millisecond

// Referee is the control goroutine of an unattended match. It serves, applies
// each round outcome and serves again until the match is over.
type Referee struct {
	loop       *gameloop.Loop
	outcomes   <-chan gameloop.State
	serveAfter time.Duration
	logger     *log.Logger
}

// RefereeOption configures a Referee.
type RefereeOption func(*Referee)

// WithServeAfter sets the pause before each serve after a point.
func WithServeAfter(d time.Duration) RefereeOption {
	return func(r *Referee) {
		r.serveAfter = d
	}
}

// WithRefereeLogger sets the logger.
func WithRefereeLogger(logger *log.Logger) RefereeOption {
	return func(r *Referee) {
		r.logger = logger
	}
}

// NewReferee creates a referee for a started loop and the board's outcome
// channel.
func NewReferee(loop *gameloop.Loop, outcomes <-chan gameloop.State, opts ...RefereeOption) *Referee {
	r := &Referee{
		loop:       loop,
		outcomes:   outcomes,
		serveAfter: DefaultServeAfter,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	return r
}

// Run officiates until the match is over, the loop stops or ctx is done. It
// returns nil when the match finished and ctx.Err() when ctx ended it.
func (r *Referee) Run(ctx context.Context) error {
	if err := r.serve(); err != nil {
		return err
	}

	done := r.loop.Done()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-done:
			if r.loop.Finished() {
				return nil
			}
			return errors.New("headless: loop stopped before the match was over")

		case s := <-r.outcomes:
			if err := r.loop.SetState(s); err != nil {
				return err
			}
			if r.loop.Finished() {
				r.logger.Info("match decided", "result", s)
				return nil
			}

			timer := time.NewTimer(r.serveAfter)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			if err := r.serve(); err != nil {
				return err
			}
		}
	}
}

func (r *Referee) serve() error {
	score := r.loop.Scores()
	r.logger.Debug("serve", "player", score.Player, "opponent", score.Opponent)
	return r.loop.SetState(gameloop.StateRunning)
}
