// Package pong implements the two-paddle board driven by the game loop.
// The left paddle belongs to the player, the right one to the CPU.
package pong

import (
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gameloop"
	"github.com/vovakirdan/tui-pong/internal/logging"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
	WallChar   = '─'
)

// Smallest board the physics can run on.
const (
	MinWidth  = 20
	MinHeight = 8
)

// ErrBoardTooSmall is returned by Update and Draw for a surface below
// MinWidth x MinHeight.
var ErrBoardTooSmall = errors.New("pong: board too small")

// side identifies a paddle.
type side int

const (
	sidePlayer side = iota
	sideOpponent
)

// Table is the board simulation. Update, Draw, SetupTable and Score are
// called by the loop with its surface lock held; Nudge and Outcomes are safe
// to use from any goroutine.
type Table struct {
	cfg        config.PongConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	width  int
	height int

	// Paddles
	playerY   float64
	opponentY float64

	// Ball
	ballX  float64
	ballY  float64
	ballVX float64
	ballVY float64

	serving    bool
	serveDelay int
	frozen     bool // a point was scored; waits for SetupTable
	server     side // side the next serve travels towards

	paddleHeight int
	cpuSkill     float64
	ticks        int
	score        gameloop.Score

	autoPlayer bool
	nudge      atomic.Int32
	outcomes   chan gameloop.State
}

// Option configures a Table.
type Option func(*Table)

// WithAutoPlayer lets the CPU steer the player's paddle as well.
func WithAutoPlayer() Option {
	return func(t *Table) {
		t.autoPlayer = true
	}
}

// WithLogger sets the logger used for point events.
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// New creates a board sized by runtime and set up for the first serve.
func New(cfg config.PongConfig, runtime core.RuntimeConfig, opts ...Option) *Table {
	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	t := &Table{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)), //nolint:gosec // gameplay randomness
		outcomes:   make(chan gameloop.State, 1),
		server:     sidePlayer,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.Discard()
	}
	t.resize(runtime.ScreenW, runtime.ScreenH)
	t.SetupTable()
	return t
}

// Outcomes delivers StateWin when the player scores and StateLose when the
// CPU does. At most one outcome is pending per round.
func (t *Table) Outcomes() <-chan gameloop.State {
	return t.outcomes
}

// Nudge queues paddle movement for the player: negative moves up, positive
// moves down. It is applied on the next Update.
func (t *Table) Nudge(dir int) {
	switch {
	case dir < 0:
		t.nudge.Add(-1)
	case dir > 0:
		t.nudge.Add(1)
	}
}

// Score returns the score counters owned by the board.
func (t *Table) Score() *gameloop.Score {
	return &t.score
}

// SetupTable centres both paddles and puts the ball on the serve spot.
func (t *Table) SetupTable() {
	centerY := float64(t.height) / 2.0
	t.playerY = centerY - float64(t.paddleHeight)/2.0
	t.opponentY = t.playerY
	t.nudge.Store(0)
	t.frozen = false

	points := t.score.Player + t.score.Opponent
	t.cpuSkill = t.difficulty.Skill(t.cfg.CPU.MinSkill, t.cfg.CPU.MaxSkill, points, t.ticks)
	t.startServe(t.difficulty.Speed(t.cfg.Physics.BallSpeed, points, t.ticks))
}

// startServe centres the ball and aims it at t.server.
func (t *Table) startServe(speed float64) {
	t.serving = true
	t.serveDelay = t.cfg.Gameplay.ServeDelay

	t.ballX = float64(t.width) / 2.0
	t.ballY = float64(t.height) / 2.0

	if t.server == sidePlayer {
		t.ballVX = -speed
	} else {
		t.ballVX = speed
	}

	// Random vertical angle
	angle := (t.rng.Float64() - 0.5) * 0.6 // -0.3 to 0.3
	t.ballVY = speed * angle
}

// resize adapts the board to a new surface size, keeping paddles on it.
func (t *Table) resize(w, h int) {
	if w == t.width && h == t.height {
		return
	}
	t.width, t.height = w, h

	t.paddleHeight = t.cfg.Paddles.Height
	if t.paddleHeight <= 0 {
		t.paddleHeight = core.Clamp(h/5, 3, 7)
	}

	maxY := float64(h - t.paddleHeight - 1)
	t.playerY = core.ClampF(t.playerY, 1, maxY)
	t.opponentY = core.ClampF(t.opponentY, 1, maxY)
	t.ballX = core.ClampF(t.ballX, 0, float64(w))
	t.ballY = core.ClampF(t.ballY, 1, float64(h-2))
}
