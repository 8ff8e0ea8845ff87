package gameloop

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/notify"
)

func TestTransitionTableIsTotal(t *testing.T) {
	for s := StateReady; s < stateCount; s++ {
		if transitions[s] == nil {
			t.Errorf("state %v has no transition", s)
		}
	}
}

func TestSingleCounterPerTransition(t *testing.T) {
	tests := []struct {
		state        State
		wantPlayer   int
		wantOpponent int
	}{
		{StateWin, 1, 0},
		{StateLose, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			f := newFixture(t)
			f.loop.SetRunning(true)

			if err := f.loop.SetState(tt.state); err != nil {
				t.Fatalf("SetState(%v) failed: %v", tt.state, err)
			}

			got := f.loop.Scores()
			if got.Player != tt.wantPlayer || got.Opponent != tt.wantOpponent {
				t.Errorf("score = %+v, expected %d-%d", got, tt.wantPlayer, tt.wantOpponent)
			}

			_, scores := f.notes.snapshot()
			if len(scores) != 1 {
				t.Fatalf("expected one score update, got %d", len(scores))
			}
			want := notify.ScoreUpdate{Player: strconv.Itoa(tt.wantPlayer), Opponent: strconv.Itoa(tt.wantOpponent)}
			if scores[0] != want {
				t.Errorf("score update = %+v, expected %+v", scores[0], want)
			}
			if f.model.setups.Load() != 1 {
				t.Errorf("expected a new round to be set up, setups = %d", f.model.setups.Load())
			}
			if !f.loop.Running() {
				t.Error("running should stay true below match point")
			}
		})
	}
}

func TestThreeWinsEndMatch(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)

	for i := 1; i <= MatchPoint; i++ {
		if err := f.loop.SetState(StateWin); err != nil {
			t.Fatalf("win #%d: %v", i, err)
		}
		if got := f.loop.Scores().Player; got != i {
			t.Fatalf("after win #%d player score = %d", i, got)
		}
		if i < MatchPoint {
			if !f.loop.Running() {
				t.Fatalf("running cleared early after win #%d", i)
			}
			if statuses, _ := f.notes.snapshot(); len(statuses) != 0 {
				t.Fatalf("status posted before match point: %+v", statuses)
			}
		}
	}

	if f.loop.Running() {
		t.Error("running should be false at match point")
	}
	if !f.loop.Finished() {
		t.Error("match should be finished")
	}
	if f.loop.State() != StateWin {
		t.Errorf("state = %v, expected win", f.loop.State())
	}

	statuses, scores := f.notes.snapshot()
	if len(scores) != MatchPoint {
		t.Errorf("expected %d score updates, got %d", MatchPoint, len(scores))
	}
	if len(statuses) != 1 || statuses[0] != notify.ShowStatus(StatusWin) {
		t.Errorf("expected exactly one win status, got %+v", statuses)
	}
	// Round setup runs after the first two wins only.
	if f.model.setups.Load() != MatchPoint-1 {
		t.Errorf("setups = %d, expected %d", f.model.setups.Load(), MatchPoint-1)
	}

	// A fourth win is not a live transition.
	f.notes.reset()
	if err := f.loop.SetState(StateWin); !errors.Is(err, ErrMatchOver) {
		t.Errorf("fourth win error = %v, expected ErrMatchOver", err)
	}
	if got := f.loop.Scores(); got.Player != MatchPoint || got.Opponent != 0 {
		t.Errorf("score changed after match end: %+v", got)
	}
	statuses, scores = f.notes.snapshot()
	if len(statuses) != 0 || len(scores) != 0 {
		t.Errorf("rejected transition produced notifications: %v %v", statuses, scores)
	}
}

func TestLoseAtMatchPoint(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)
	f.model.score = Score{Player: 2, Opponent: MatchPoint - 1}

	if err := f.loop.SetState(StateLose); err != nil {
		t.Fatalf("SetState(lose) failed: %v", err)
	}

	if f.loop.Running() {
		t.Error("running should be false after the opponent reaches match point")
	}
	statuses, _ := f.notes.snapshot()
	if len(statuses) != 1 || statuses[0] != notify.ShowStatus(StatusLose) {
		t.Errorf("statuses = %+v, expected a single lose message", statuses)
	}
	if f.model.setups.Load() != 0 {
		t.Error("no round should be set up once the match is over")
	}
}

func TestPausedWhileRunning(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)
	f.model.score = Score{Player: 1, Opponent: 2}

	if err := f.loop.SetState(StateRunning); err != nil {
		t.Fatalf("SetState(running) failed: %v", err)
	}
	f.notes.reset()

	if err := f.loop.SetState(StatePaused); err != nil {
		t.Fatalf("SetState(paused) failed: %v", err)
	}

	statuses, scores := f.notes.snapshot()
	if len(statuses) != 1 || statuses[0] != notify.ShowStatus(StatusPaused) {
		t.Errorf("statuses = %+v, expected exactly one paused message", statuses)
	}
	if len(scores) != 0 {
		t.Errorf("pause must not send score updates, got %+v", scores)
	}
	if got := f.loop.Scores(); got != (Score{Player: 1, Opponent: 2}) {
		t.Errorf("pause changed the score: %+v", got)
	}
}

func TestRunningHidesStatus(t *testing.T) {
	f := newFixture(t)

	if err := f.loop.SetState(StateRunning); err != nil {
		t.Fatalf("SetState(running) failed: %v", err)
	}
	statuses, _ := f.notes.snapshot()
	if len(statuses) != 1 || statuses[0] != notify.HideStatus() {
		t.Errorf("statuses = %+v, expected one hide update", statuses)
	}
}

func TestReadyOnlyTouchesBoard(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)
	f.model.score = Score{Player: 2, Opponent: 1}

	if err := f.loop.SetState(StateReady); err != nil {
		t.Fatalf("SetState(ready) failed: %v", err)
	}

	if f.model.setups.Load() != 1 {
		t.Errorf("setups = %d, expected 1", f.model.setups.Load())
	}
	if got := f.loop.Scores(); got != (Score{Player: 2, Opponent: 1}) {
		t.Errorf("round setup changed the score: %+v", got)
	}
	if !f.loop.Running() {
		t.Error("round setup must not touch running")
	}
	statuses, scores := f.notes.snapshot()
	if len(statuses) != 0 || len(scores) != 0 {
		t.Errorf("round setup sent notifications: %v %v", statuses, scores)
	}
}

func TestRoundSetupAtMatchPointDoesNotIncrement(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)
	f.model.score = Score{Player: 0, Opponent: MatchPoint}

	if err := f.loop.SetState(StateReady); err != nil {
		t.Fatalf("SetState(ready) failed: %v", err)
	}

	if got := f.loop.Scores(); got.Opponent != MatchPoint || got.Player != 0 {
		t.Errorf("score = %+v, expected it untouched", got)
	}
	if f.loop.State() != StateLose || !f.loop.Finished() {
		t.Errorf("state = %v finished = %v, expected a finished lose", f.loop.State(), f.loop.Finished())
	}
	if f.loop.Running() {
		t.Error("running should be cleared")
	}
	statuses, scores := f.notes.snapshot()
	if len(scores) != 0 {
		t.Errorf("no score update expected, got %+v", scores)
	}
	if len(statuses) != 1 || statuses[0] != notify.ShowStatus(StatusLose) {
		t.Errorf("statuses = %+v, expected a single lose message", statuses)
	}
}

func TestWinWhileOpponentSitsOnMatchPoint(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)
	f.model.score = Score{Player: 1, Opponent: MatchPoint}

	if err := f.loop.SetState(StateWin); err != nil {
		t.Fatalf("SetState(win) failed: %v", err)
	}

	if got := f.loop.Scores(); got != (Score{Player: 2, Opponent: MatchPoint}) {
		t.Errorf("score = %+v, expected only the player counter to move", got)
	}
	if f.loop.State() != StateLose {
		t.Errorf("state = %v, expected lose", f.loop.State())
	}
}

func TestUnknownState(t *testing.T) {
	f := newFixture(t)

	if err := f.loop.SetState(State(42)); !errors.Is(err, ErrUnknownState) {
		t.Errorf("SetState(42) error = %v, expected ErrUnknownState", err)
	}
	if f.loop.State() != StateReady {
		t.Error("an unknown state must not be stored")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)

	f.loop.Stop()
	first := f.loop.Running()
	f.loop.Stop()
	second := f.loop.Running()

	if first || second {
		t.Errorf("running after stops = %v, %v; expected false, false", first, second)
	}
	statuses, scores := f.notes.snapshot()
	if len(statuses) != 0 || len(scores) != 0 {
		t.Error("stop must not notify the UI")
	}
	if f.loop.Finished() {
		t.Error("an external stop does not finish the match")
	}
}

func TestResetAfterMatch(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)
	for i := 0; i < MatchPoint; i++ {
		f.loop.SetState(StateLose)
	}
	f.notes.reset()

	f.loop.Reset()

	if f.loop.Finished() || f.loop.State() != StateReady {
		t.Errorf("after Reset finished = %v state = %v", f.loop.Finished(), f.loop.State())
	}
	if got := f.loop.Scores(); got != (Score{}) {
		t.Errorf("after Reset score = %+v", got)
	}
	statuses, scores := f.notes.snapshot()
	if len(scores) != 1 || scores[0] != (notify.ScoreUpdate{Player: "0", Opponent: "0"}) {
		t.Errorf("expected a zero score update, got %+v", scores)
	}
	if len(statuses) != 1 || statuses[0] != notify.HideStatus() {
		t.Errorf("expected the overlay to be hidden, got %+v", statuses)
	}
	if err := f.loop.SetState(StateRunning); err != nil {
		t.Errorf("transitions should be accepted after Reset: %v", err)
	}
}

func TestIsBetweenRounds(t *testing.T) {
	f := newFixture(t)
	if !f.loop.IsBetweenRounds() {
		t.Error("ready is between rounds")
	}
	f.loop.SetState(StateRunning)
	if f.loop.IsBetweenRounds() {
		t.Error("running is not between rounds")
	}
	f.loop.SetState(StatePaused)
	if !f.loop.IsBetweenRounds() {
		t.Error("paused is between rounds")
	}
}

func TestSetRunningIgnoredAfterMatchOver(t *testing.T) {
	f := newFixture(t)
	f.loop.SetRunning(true)

	for range MatchPoint {
		if err := f.loop.SetState(StateWin); err != nil {
			t.Fatal(err)
		}
	}
	if f.loop.Running() {
		t.Fatal("running still set at match point")
	}

	f.loop.SetRunning(true)
	if f.loop.Running() {
		t.Error("SetRunning(true) revived a finished match")
	}
	if err := f.loop.Start(context.Background()); !errors.Is(err, ErrMatchOver) {
		t.Errorf("Start() = %v, expected ErrMatchOver", err)
	}

	f.loop.Reset()
	f.loop.SetRunning(true)
	if !f.loop.Running() {
		t.Error("SetRunning(true) ignored after Reset")
	}
}

func TestStateNames(t *testing.T) {
	seen := make(map[string]State)
	for s := StateReady; s < stateCount; s++ {
		name := s.String()
		if name == "" || name == "unknown" {
			t.Errorf("state %d has no name", int(s))
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("states %v and %d share the name %q", prev, int(s), name)
		}
		seen[name] = s
	}
	if State(99).String() != "unknown" {
		t.Error("out of range state should print as unknown")
	}
}
