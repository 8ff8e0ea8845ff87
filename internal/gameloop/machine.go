package gameloop

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-pong/internal/notify"
)

// transitions holds the entry action of every state. The table is total:
// each State value has exactly one entry.
var transitions = [stateCount]func(l *Loop){
	StateReady:   (*Loop).enterReady,
	StatePaused:  (*Loop).enterPaused,
	StateRunning: (*Loop).enterRunning,
	StateWin:     (*Loop).enterWin,
	StateLose:    (*Loop).enterLose,
}

// SetState moves the match to s and runs its entry action. It serializes with
// the loop's read of the state. Once a side has reached MatchPoint every call
// returns ErrMatchOver without side effects.
func (l *Loop) SetState(s State) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownState, int(s))
	}

	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()

	if l.finished {
		l.logger.Debug("transition rejected", "state", s, "current", l.state)
		return ErrMatchOver
	}

	l.logger.Debug("transition", "from", l.state, "to", s)
	l.state = s
	transitions[s](l)
	return nil
}

func (l *Loop) enterReady() {
	l.setUpNewRound()
}

func (l *Loop) enterRunning() {
	l.notifier.PostStatus(notify.HideStatus())
}

func (l *Loop) enterPaused() {
	l.notifier.PostStatus(notify.ShowStatus(StatusPaused))
}

func (l *Loop) enterWin() {
	score := l.model.Score()
	score.Player++
	l.postScore(score)

	if score.Player == MatchPoint {
		l.finish(StateWin)
		return
	}
	l.setUpNewRound()
}

func (l *Loop) enterLose() {
	score := l.model.Score()
	score.Opponent++
	l.postScore(score)

	if score.Opponent == MatchPoint {
		l.finish(StateLose)
		return
	}
	l.setUpNewRound()
}

// setUpNewRound resets the board. If either side already sits on MatchPoint
// the match is finished instead of starting another round; no score changes.
// Requires surfaceMu.
func (l *Loop) setUpNewRound() {
	l.model.SetupTable()

	score := l.model.Score()
	switch {
	case score.Player == MatchPoint:
		l.finish(StateWin)
	case score.Opponent == MatchPoint:
		l.finish(StateLose)
	}
}

// finish ends the match with result. It runs at most once per match because
// SetState refuses to enter any state after finished is set.
// Requires surfaceMu; takes runMu nested.
func (l *Loop) finish(result State) {
	l.state = result
	l.finished = true

	text := StatusWin
	if result == StateLose {
		text = StatusLose
	}
	l.notifier.PostStatus(notify.ShowStatus(text))

	l.runMu.Lock()
	l.running = false
	l.runMu.Unlock()
	l.Interrupt()

	score := l.model.Score()
	l.logger.Info("match over", "result", result, "player", score.Player, "opponent", score.Opponent)
}

func (l *Loop) postScore(score *Score) {
	l.notifier.PostScore(notify.ScoreUpdate{
		Player:   strconv.Itoa(score.Player),
		Opponent: strconv.Itoa(score.Opponent),
	})
}

// Reset starts a new match: scores go back to zero, the board is set up and
// the state returns to READY. Call Start afterwards to run the loop again.
func (l *Loop) Reset() {
	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()

	*l.model.Score() = Score{}
	l.finished = false
	l.state = StateReady
	l.model.SetupTable()

	l.postScore(l.model.Score())
	l.notifier.PostStatus(notify.HideStatus())
	l.logger.Info("match reset")
}

// State returns the current match state.
func (l *Loop) State() State {
	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()
	return l.state
}

// Scores returns a copy of the current score.
func (l *Loop) Scores() Score {
	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()
	return *l.model.Score()
}

// Finished reports whether a side has reached MatchPoint.
func (l *Loop) Finished() bool {
	l.surfaceMu.Lock()
	defer l.surfaceMu.Unlock()
	return l.finished
}

// IsBetweenRounds reports whether the ball is not in play.
func (l *Loop) IsBetweenRounds() bool {
	return l.State() != StateRunning
}
