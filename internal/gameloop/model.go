// Package gameloop runs the fixed-tick render/physics loop of a two-paddle
// match and the win/lose state machine that the control goroutine drives.
//
// Locking: surfaceMu guards the match state and every call into the Model;
// runMu guards the running flag and gates Draw. When both are needed
// surfaceMu is taken first. SetState and SetRunning(true) take surfaceMu;
// Stop and SetRunning(false) take only runMu.
package gameloop

import (
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/notify"
)

// Score holds both sides' points. The Model owns it; only the state
// machine's WIN and LOSE transitions change it.
type Score struct {
	Player   int
	Opponent int
}

// Model is the board simulation driven by the loop. All methods are called
// with the surface lock held, so implementations must not call back into the
// Loop from them.
type Model interface {
	// Update advances the board by one step.
	Update(dst *core.Screen) error

	// Draw renders the board into dst.
	Draw(dst *core.Screen) error

	// SetupTable puts ball and paddles back to their serve positions.
	SetupTable()

	// Score returns the model's score counters.
	Score() *Score
}

// Notifier receives status and score text for the UI. Both methods must
// return without blocking.
type Notifier interface {
	PostStatus(u notify.StatusUpdate)
	PostScore(u notify.ScoreUpdate)
}
