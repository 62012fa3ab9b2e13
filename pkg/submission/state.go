package submission

import (
	"fmt"
	"slices"
	"time"
)

// State is the lifecycle position of one form instance.
//
//	Idle ──► Pending ──► Succeeded ──► Idle
//	 │  ▲       │  │
//	 │  │       │  └──► Idle (attempt cancelled)
//	 ▼  │       ▼
//	Failed ◄────┘ (transport failure)
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

var validTransitions = map[State][]State{
	StateIdle:      {StatePending, StateFailed},
	StatePending:   {StateSucceeded, StateFailed, StateIdle},
	StateSucceeded: {StateIdle},
	StateFailed:    {StateIdle},
}

// ParseState converts a raw string into a State.
func ParseState(raw string) (State, error) {
	st := State(raw)
	if _, ok := validTransitions[st]; ok {
		return st, nil
	}
	return "", fmt.Errorf("submission: unknown state %q", raw)
}

func (s State) String() string {
	return string(s)
}

// AcceptsSubmissions reports whether a new attempt may start from s.
func (s State) AcceptsSubmissions() bool {
	return s == StateIdle || s == StateFailed
}

// IsTransitionAllowed reports whether from → to is an edge of the state
// machine.
func IsTransitionAllowed(from, to State) bool {
	return slices.Contains(validTransitions[from], to)
}

// Transition records one state change of a controller.
type Transition struct {
	Attempt string
	From    State
	To      State
	Message string
	At      time.Time
}
