package pong

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Draw renders the board into dst. Status text is not drawn here; the UI
// shows it from the notification bridge.
func (t *Table) Draw(dst *core.Screen) error {
	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		return fmt.Errorf("%w: %dx%d", ErrBoardTooSmall, dst.Width(), dst.Height())
	}
	t.resize(dst.Width(), dst.Height())
	dst.Clear()

	// Walls the ball bounces off; the top one doubles as the score line.
	dst.DrawHLine(0, 0, dst.Width(), WallChar, core.ColorGray)
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), WallChar, core.ColorGray)

	// Net
	centerX := dst.Width() / 2
	for y := 1; y < dst.Height()-1; y += 2 {
		dst.SetColored(centerX, y, NetChar, core.ColorGray)
	}

	playerX := t.cfg.Paddles.Offset
	opponentX := dst.Width() - t.cfg.Paddles.Offset - t.cfg.Paddles.Width
	for w := range t.cfg.Paddles.Width {
		dst.DrawVLine(playerX+w, int(t.playerY), t.paddleHeight, PaddleChar, core.ColorCyan)
		dst.DrawVLine(opponentX+w, int(t.opponentY), t.paddleHeight, PaddleChar, core.ColorOrange)
	}

	// Blink during serve
	if !t.frozen && (!t.serving || (t.serveDelay/10)%2 == 0) {
		dst.SetColored(int(t.ballX), int(t.ballY), BallChar, core.ColorBrightWhite)
	}

	playerText := strconv.Itoa(t.score.Player)
	opponentText := strconv.Itoa(t.score.Opponent)
	for i, r := range playerText {
		dst.SetColored(centerX-5+i, 0, r, core.ColorYellow)
	}
	for i, r := range opponentText {
		dst.SetColored(centerX+4+i, 0, r, core.ColorYellow)
	}

	label := "P1"
	if t.autoPlayer {
		label = "CPU"
	}
	dst.DrawText(1, 0, label)
	dst.DrawText(dst.Width()-4, 0, "CPU")
	return nil
}
