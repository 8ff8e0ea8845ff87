// Package headless runs a match without a terminal: an in-memory surface, a
// log sink for UI notifications and a referee that plays the control role.
package headless

import (
	"sync"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Platform is an in-memory surface of a fixed size.
type Platform struct {
	mu     sync.Mutex // held from LockCanvas to UnlockCanvasAndPost
	screen *core.Screen

	frameMu sync.Mutex
	frames  uint64
	last    string
}

// NewPlatform creates a w x h surface.
func NewPlatform(w, h int) *Platform {
	return &Platform{screen: core.NewScreen(w, h)}
}

// LockCanvas returns the surface and holds it until UnlockCanvasAndPost.
func (p *Platform) LockCanvas() (*core.Screen, error) {
	p.mu.Lock()
	return p.screen, nil
}

// UnlockCanvasAndPost records the frame and releases the surface.
func (p *Platform) UnlockCanvasAndPost(s *core.Screen) {
	text := s.String()
	p.mu.Unlock()

	p.frameMu.Lock()
	p.frames++
	p.last = text
	p.frameMu.Unlock()
}

// Frames returns how many frames were posted.
func (p *Platform) Frames() uint64 {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	return p.frames
}

// Last returns the last posted frame as plain text.
func (p *Platform) Last() string {
	p.frameMu.Lock()
	defer p.frameMu.Unlock()
	return p.last
}
