package pong

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/gameloop"
)

// Update advances the board by one tick. After a point the board stays
// frozen until SetupTable.
func (t *Table) Update(dst *core.Screen) error {
	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		return fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, dst.Width(), dst.Height())
	}
	t.resize(dst.Width(), dst.Height())

	if t.frozen {
		return nil
	}
	t.ticks++

	// Player paddle
	if n := t.nudge.Swap(0); n != 0 {
		t.playerY += float64(n) * t.cfg.Physics.PaddleSpeed
	}
	if t.autoPlayer {
		t.playerY = t.track(t.playerY, t.ballVX < 0)
	}
	t.opponentY = t.track(t.opponentY, t.ballVX > 0)

	maxY := float64(t.height - t.paddleHeight - 1)
	t.playerY = core.ClampF(t.playerY, 1, maxY)
	t.opponentY = core.ClampF(t.opponentY, 1, maxY)

	if t.serving {
		if t.serveDelay > 0 {
			t.serveDelay--
			return nil
		}
		t.serving = false
	}

	t.updateBall()
	return nil
}

// track moves a CPU paddle towards the ball while it approaches.
func (t *Table) track(y float64, approaching bool) float64 {
	if !approaching {
		return y
	}

	targetY := t.ballY - float64(t.paddleHeight)/2.0
	diff := targetY - y

	moveSpeed := t.cfg.Physics.PaddleSpeed * t.cpuSkill
	if math.Abs(diff) <= moveSpeed {
		return y
	}
	if diff > 0 {
		return y + moveSpeed
	}
	return y - moveSpeed
}

// updateBall handles ball physics and collision.
func (t *Table) updateBall() {
	t.ballX += t.ballVX
	t.ballY += t.ballVY

	// Bounce off top/bottom walls
	if t.ballY <= 1 {
		t.ballY = 1
		t.ballVY = -t.ballVY
	}
	if t.ballY >= float64(t.height-2) {
		t.ballY = float64(t.height - 2)
		t.ballVY = -t.ballVY
	}

	width := float64(t.cfg.Paddles.Width)
	playerX := float64(t.cfg.Paddles.Offset)
	opponentX := float64(t.width - t.cfg.Paddles.Offset - t.cfg.Paddles.Width)

	if t.ballX <= playerX+width && t.ballVX < 0 && t.hits(t.playerY) {
		t.ballX = playerX + width
		t.bounce(t.playerY)
	}
	if t.ballX >= opponentX && t.ballVX > 0 && t.hits(t.opponentY) {
		t.ballX = opponentX - 1
		t.bounce(t.opponentY)
	}

	maxSpeed := t.cfg.Physics.MaxBallSpeed
	if math.Abs(t.ballVX) > maxSpeed {
		t.ballVX = maxSpeed * math.Copysign(1, t.ballVX)
	}
	if math.Abs(t.ballVY) > maxSpeed/2 {
		t.ballVY = maxSpeed / 2 * math.Copysign(1, t.ballVY)
	}

	switch {
	case t.ballX < 0:
		t.point(sideOpponent)
	case t.ballX > float64(t.width):
		t.point(sidePlayer)
	}
}

func (t *Table) hits(paddleY float64) bool {
	return t.ballY >= paddleY && t.ballY <= paddleY+float64(t.paddleHeight)
}

// bounce reflects the ball off a paddle, adding spin by hit position.
func (t *Table) bounce(paddleY float64) {
	t.ballVX = -t.ballVX * t.cfg.Physics.SpeedUp
	hitPos := (t.ballY - paddleY) / float64(t.paddleHeight)
	t.ballVY += (hitPos - 0.5) * t.cfg.Physics.SpinFactor
}

// point freezes the board and reports the round result. Scores are left to
// the state machine.
func (t *Table) point(scorer side) {
	t.frozen = true

	result := gameloop.StateWin
	t.server = sideOpponent
	if scorer == sideOpponent {
		result = gameloop.StateLose
		t.server = sidePlayer
	}

	select {
	case t.outcomes <- result:
	default:
		t.logger.Warn("outcome dropped, previous one not consumed", "result", result)
	}
	t.logger.Debug("point", "result", result, "ticks", t.ticks)
}
