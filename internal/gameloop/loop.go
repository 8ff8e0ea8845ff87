package gameloop

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

// Stats counts what the loop has done since it was created.
type Stats struct {
	Ticks    uint64 // loop iterations
	Updates  uint64 // Model.Update calls
	Draws    uint64 // Model.Draw calls
	Failures uint64 // ticks that ended in an error or panic
	Overruns uint64 // ticks that finished after their deadline
}

// Loop owns the tick goroutine and the match state.
type Loop struct {
	id       string
	model    Model
	gate     *surface.Gate
	notifier Notifier
	logger   *log.Logger

	tick  time.Duration
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)

	surfaceMu sync.Mutex
	state     State
	finished  bool

	runMu   sync.Mutex
	running bool
	active  bool // a loop goroutine is alive
	done    chan struct{}

	wake chan struct{}

	ticks    atomic.Uint64
	updates  atomic.Uint64
	draws    atomic.Uint64
	failures atomic.Uint64
	overruns atomic.Uint64
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger. The match ID is attached to every line.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithID overrides the generated match ID.
func WithID(id string) Option {
	return func(l *Loop) {
		l.id = id
	}
}

// New creates a loop in the READY state. The loop does not run until Start.
func New(model Model, gate *surface.Gate, notifier Notifier, opts ...Option) *Loop {
	l := &Loop{
		id:       uuid.NewString(),
		model:    model,
		gate:     gate,
		notifier: notifier,
		tick:     TickLength,
		now:      time.Now,
		state:    StateReady,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	close(l.done)
	l.sleep = l.wait

	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.Discard()
	}
	l.logger = l.logger.With("match", l.id)
	return l
}

// ID returns the match identifier used in log lines.
func (l *Loop) ID() string {
	return l.id
}

// Start sets running and launches the loop goroutine. The goroutine exits
// when running becomes false or ctx is cancelled.
func (l *Loop) Start(ctx context.Context) error {
	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()
	if l.finished {
		return ErrMatchOver
	}

	l.runMu.Lock()
	defer l.runMu.Unlock()

	if l.active {
		return ErrAlreadyRunning
	}

	select {
	case <-l.wake:
	default:
	}

	l.active = true
	l.running = true
	l.done = make(chan struct{})
	go l.run(ctx, l.done)

	l.logger.Info("loop started", "tick", l.tick)
	return nil
}

// SetRunning sets the running flag. Clearing it stops the loop at the next
// loop-top check and closes the draw gate immediately; setting it does not
// start a goroutine, use Start for that. Setting it on a finished match is a
// no-op.
func (l *Loop) SetRunning(running bool) {
	if !running {
		l.runMu.Lock()
		l.running = false
		l.runMu.Unlock()
		l.Interrupt()
		return
	}

	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()
	if l.finished {
		l.logger.Debug("running not set, match is over")
		return
	}
	l.runMu.Lock()
	l.running = true
	l.runMu.Unlock()
}

// Stop clears the running flag. Calling it more than once has no further effect.
func (l *Loop) Stop() {
	l.SetRunning(false)
}

// Running reports the running flag.
func (l *Loop) Running() bool {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	return l.running
}

// Interrupt wakes the loop if it is sleeping. The loop then re-checks the
// running flag and carries on with the next tick.
func (l *Loop) Interrupt() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done returns a channel that is closed when the current loop goroutine has
// exited. Before the first Start it is already closed.
func (l *Loop) Done() <-chan struct{} {
	l.runMu.Lock()
	defer l.runMu.Unlock()
	return l.done
}

// Wait blocks until the loop goroutine has exited.
func (l *Loop) Wait() {
	<-l.Done()
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Ticks:    l.ticks.Load(),
		Updates:  l.updates.Load(),
		Draws:    l.draws.Load(),
		Failures: l.failures.Load(),
		Overruns: l.overruns.Load(),
	}
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer func() {
		l.runMu.Lock()
		l.running = false
		l.active = false
		l.runMu.Unlock()
		close(done)
		l.logger.Info("loop stopped", "ticks", l.ticks.Load())
	}()

	deadline := l.now()
	for l.Running() {
		if ctx.Err() != nil {
			return
		}

		// Schedule relative: a late tick shortens the next sleep but never
		// triggers extra updates.
		deadline = deadline.Add(l.tick)

		l.ticks.Add(1)
		if err := l.step(); err != nil {
			l.failures.Add(1)
			l.logger.Error("tick failed", "error", err)
		}

		sleep := deadline.Sub(l.now())
		if sleep <= 0 {
			if sleep < 0 {
				l.overruns.Add(1)
				l.logger.Debug("tick overran its deadline", "late", -sleep)
			}
			continue
		}
		l.sleep(ctx, sleep)
	}
}

// step performs one tick of work. The surface is released on every path,
// including a panic in the platform or the model.
func (l *Loop) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gameloop: tick panicked: %v", r)
		}
	}()

	s, ok := l.gate.Acquire()
	if !ok {
		return nil
	}
	defer l.gate.Release(s)

	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()

	if l.state == StateRunning {
		l.updates.Add(1)
		if err := l.model.Update(s); err != nil {
			return fmt.Errorf("gameloop: update: %w", err)
		}
	}

	return l.drawIfRunning(s)
}

// drawIfRunning draws when the running flag is still set. Requires surfaceMu.
func (l *Loop) drawIfRunning(s *core.Screen) error {
	l.runMu.Lock()
	defer l.runMu.Unlock()

	if !l.running {
		return nil
	}
	l.draws.Add(1)
	if err := l.model.Draw(s); err != nil {
		return fmt.Errorf("gameloop: draw: %w", err)
	}
	return nil
}

// wait sleeps for d. A wake-up from Interrupt or ctx ends the sleep early and
// is otherwise ignored.
func (l *Loop) wait(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-l.wake:
	case <-ctx.Done():
	}
}
