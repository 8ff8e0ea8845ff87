package headless

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/logging"
	"github.com/vovakirdan/tui-pong/internal/notify"
)

// Sink drains a Bridge into the log and remembers the last update of each
// channel.
type Sink struct {
	bridge *notify.Bridge
	logger *log.Logger

	mu     sync.Mutex
	status notify.StatusUpdate
	score  notify.ScoreUpdate
}

// NewSink creates a sink for bridge.
func NewSink(bridge *notify.Bridge, logger *log.Logger) *Sink {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Sink{
		bridge: bridge,
		logger: logger,
		score:  notify.ScoreUpdate{Player: "0", Opponent: "0"},
	}
}

// Run consumes both channels until the bridge is closed or ctx is done.
func (s *Sink) Run(ctx context.Context) {
	status, scores := s.bridge.Status(), s.bridge.Scores()
	for status != nil || scores != nil {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-status:
			if !ok {
				status = nil
				continue
			}
			s.mu.Lock()
			s.status = u
			s.mu.Unlock()
			s.logger.Info("status", "text", u.Text, "visibility", u.Visibility)
		case u, ok := <-scores:
			if !ok {
				scores = nil
				continue
			}
			s.mu.Lock()
			s.score = u
			s.mu.Unlock()
			s.logger.Info("score", "player", u.Player, "opponent", u.Opponent)
		}
	}
}

// Status returns the last status update received.
func (s *Sink) Status() notify.StatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Score returns the last score update received.
func (s *Sink) Score() notify.ScoreUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}
