package tui

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

// Surface is the terminal drawing surface. The loop draws into a back buffer
// between LockCanvas and UnlockCanvasAndPost; posting copies it to the front
// buffer and signals the Bubble Tea model. Styling happens on the UI side,
// when the model asks for the frame.
type Surface struct {
	minW, minH int

	mu     sync.Mutex // held from LockCanvas to UnlockCanvasAndPost
	back   *core.Screen
	usable bool

	frameMu sync.Mutex
	front   *core.Screen
	frame   string // styled front, valid while !dirty
	dirty   bool
	posts   uint64

	posted chan struct{}
}

// NewSurface creates a surface that is unavailable until Resize reports a
// size of at least minW x minH.
func NewSurface(minW, minH int) *Surface {
	return &Surface{
		minW:   minW,
		minH:   minH,
		back:   core.NewScreen(0, 0),
		front:  core.NewScreen(0, 0),
		posted: make(chan struct{}, 1),
	}
}

// Resize sets the board size. It waits for a frame in progress.
func (s *Surface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.back.Resize(w, h)
	s.usable = w >= s.minW && h >= s.minH
}

// Usable reports whether the last Resize was large enough to draw on.
func (s *Surface) Usable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usable
}

// LockCanvas hands out the back buffer. On success the surface stays locked
// until UnlockCanvasAndPost.
func (s *Surface) LockCanvas() (*core.Screen, error) {
	s.mu.Lock()
	if !s.usable {
		w, h := s.back.Width(), s.back.Height()
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: terminal %dx%d", surface.ErrUnavailable, w, h)
	}
	return s.back, nil
}

// UnlockCanvasAndPost publishes the frame drawn into scr and unlocks the
// surface. It never blocks on the UI.
func (s *Surface) UnlockCanvasAndPost(scr *core.Screen) {
	s.frameMu.Lock()
	s.front.CopyFrom(scr)
	s.dirty = true
	s.posts++
	s.frameMu.Unlock()
	s.mu.Unlock()

	select {
	case s.posted <- struct{}{}:
	default:
	}
}

// Posted signals that a new frame is available. Signals coalesce.
func (s *Surface) Posted() <-chan struct{} {
	return s.posted
}

// Frame returns the last posted frame, styled. The front buffer is rendered
// at most once per post.
func (s *Surface) Frame() string {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	if s.dirty {
		s.frame = RenderScreen(s.front)
		s.dirty = false
	}
	return s.frame
}

// Plain returns the last posted frame without styling.
func (s *Surface) Plain() string {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	return s.front.String()
}

// Posts returns the number of frames posted so far.
func (s *Surface) Posts() uint64 {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	return s.posts
}
