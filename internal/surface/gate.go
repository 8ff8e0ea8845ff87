// Package surface wraps the platform call that hands out the drawable target
// for one tick.
package surface

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/logging"
)

// ErrUnavailable is returned by platforms that have no surface to offer yet,
// e.g. before the terminal size is known.
var ErrUnavailable = errors.New("surface: not available")

// Platform is the rendering collaborator. LockCanvas may block. Every screen
// it returns is handed back exactly once through UnlockCanvasAndPost.
type Platform interface {
	LockCanvas() (*core.Screen, error)
	UnlockCanvasAndPost(s *core.Screen)
}

// Gate acquires and releases the surface on behalf of the loop.
// Acquire and Release are called from the loop goroutine only; Failures may
// be read from any goroutine.
type Gate struct {
	platform Platform
	logger   *log.Logger

	mu       sync.Mutex
	streak   int // consecutive failed acquisitions
	failures int // total failed acquisitions
}

// NewGate creates a gate in front of the given platform.
func NewGate(p Platform, logger *log.Logger) *Gate {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Gate{platform: p, logger: logger}
}

// Acquire returns the surface for this tick, or false when the platform could
// not provide one. A nil screen with a nil error counts as a failure.
func (g *Gate) Acquire() (*core.Screen, bool) {
	s, err := g.platform.LockCanvas()
	if err == nil && s == nil {
		err = ErrUnavailable
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		g.failures++
		g.streak++
		if g.streak == 1 {
			g.logger.Warn("surface acquisition failed", "error", err)
		}
		return nil, false
	}

	if g.streak > 0 {
		g.logger.Info("surface available again", "failed_ticks", g.streak)
		g.streak = 0
	}
	return s, true
}

// Release hands the surface back to the platform. Nil is ignored.
func (g *Gate) Release(s *core.Screen) {
	if s == nil {
		return
	}
	g.platform.UnlockCanvasAndPost(s)
}

// Failures returns the total number of failed acquisitions.
func (g *Gate) Failures() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failures
}
