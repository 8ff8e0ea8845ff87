package gameloop

import (
	"errors"
	"time"
)

// Fixed match parameters. They are not configurable.
const (
	TickRate   = 60
	TickLength = time.Second / TickRate
	MatchPoint = 3
)

// Status texts shown through the notifier.
const (
	StatusPaused = "Paused"
	StatusWin    = "You win!"
	StatusLose   = "You lose!"
)

var (
	// ErrMatchOver is returned by SetState and Start once a side reached MatchPoint.
	ErrMatchOver = errors.New("gameloop: match is over")

	// ErrAlreadyRunning is returned by Start while a loop goroutine is alive.
	ErrAlreadyRunning = errors.New("gameloop: loop already running")

	// ErrUnknownState is returned by SetState for values outside the State enum.
	ErrUnknownState = errors.New("gameloop: unknown state")
)

// State is the match state driven by the control goroutine.
type State int

const (
	StateReady State = iota
	StatePaused
	StateRunning
	StateWin
	StateLose

	stateCount
)

var stateName = map[State]string{
	StateReady:   "ready",
	StatePaused:  "paused",
	StateRunning: "running",
	StateWin:     "win",
	StateLose:    "lose",
}

func (s State) String() string {
	if name, ok := stateName[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s >= StateReady && s < stateCount
}
