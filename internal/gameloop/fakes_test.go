package gameloop

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/notify"
	"github.com/vovakirdan/tui-pong/internal/surface"
)

// fakeModel records calls. Its methods run under the loop's surface lock.
type fakeModel struct {
	score Score

	updates atomic.Int64
	draws   atomic.Int64
	setups  atomic.Int64

	onUpdate func() error
	onDraw   func() error
}

func (m *fakeModel) Update(_ *core.Screen) error {
	m.updates.Add(1)
	if m.onUpdate != nil {
		return m.onUpdate()
	}
	return nil
}

func (m *fakeModel) Draw(_ *core.Screen) error {
	m.draws.Add(1)
	if m.onDraw != nil {
		return m.onDraw()
	}
	return nil
}

func (m *fakeModel) SetupTable() {
	m.setups.Add(1)
}

func (m *fakeModel) Score() *Score {
	return &m.score
}

// recorder is a Notifier that keeps everything it was sent.
type recorder struct {
	mu       sync.Mutex
	statuses []notify.StatusUpdate
	scores   []notify.ScoreUpdate
}

func (r *recorder) PostStatus(u notify.StatusUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, u)
}

func (r *recorder) PostScore(u notify.ScoreUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, u)
}

func (r *recorder) snapshot() ([]notify.StatusUpdate, []notify.ScoreUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.StatusUpdate(nil), r.statuses...), append([]notify.ScoreUpdate(nil), r.scores...)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = nil
	r.scores = nil
}

// fakePlatform hands out a single screen and can be told to fail.
type fakePlatform struct {
	screen *core.Screen

	failNext atomic.Int64 // number of upcoming LockCanvas calls that fail
	locks    atomic.Int64
	posts    atomic.Int64
	held     atomic.Int64 // screens currently locked
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{screen: core.NewScreen(20, 10)}
}

func (p *fakePlatform) LockCanvas() (*core.Screen, error) {
	p.locks.Add(1)
	if p.failNext.Load() > 0 {
		p.failNext.Add(-1)
		return nil, surface.ErrUnavailable
	}
	p.held.Add(1)
	return p.screen, nil
}

func (p *fakePlatform) UnlockCanvasAndPost(_ *core.Screen) {
	p.held.Add(-1)
	p.posts.Add(1)
}

var errBoom = errors.New("boom")

type fixture struct {
	loop     *Loop
	model    *fakeModel
	notes    *recorder
	platform *fakePlatform
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		model:    &fakeModel{},
		notes:    &recorder{},
		platform: newFakePlatform(),
	}
	f.loop = New(f.model, surface.NewGate(f.platform, nil), f.notes, WithID("test"))
	f.loop.tick = time.Millisecond
	return f
}

// eventually polls cond until it holds or two seconds pass.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitDone(t *testing.T, l *Loop) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop goroutine did not exit")
	}
}
