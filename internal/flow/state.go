package flow

import "fmt"

// State is the position of a booking-flow session. It replaces the SPA's
// per-transition session flags with one forward-only state machine stored
// alongside the draft. Checking a state never clears it, so back/forward
// navigation inside the same session passes the guard again. This is a UX
// safeguard against out-of-order screen access, not an authorization
// boundary.
type State string

const (
	StateNotStarted       State = "NOT_STARTED"
	StateSeatsChosen      State = "SEATS_CHOSEN"
	StateDetailsSubmitted State = "DETAILS_SUBMITTED"
	StatePaid             State = "PAID"
	StateConfirmed        State = "CONFIRMED"
)

var stateRank = map[State]int{
	StateNotStarted:       0,
	StateSeatsChosen:      1,
	StateDetailsSubmitted: 2,
	StatePaid:             3,
	StateConfirmed:        4,
}

// Valid reports whether s is a known state
func (s State) Valid() bool {
	_, ok := stateRank[s]
	return ok
}

// AtLeast reports whether s has reached min
func (s State) AtLeast(min State) bool {
	return stateRank[s] >= stateRank[min]
}

// CanAdvanceTo reports whether moving to next is a forward transition
func (s State) CanAdvanceTo(next State) bool {
	return stateRank[next] > stateRank[s]
}

func (s State) String() string {
	return string(s)
}

// ErrInvalidTransition is returned when a session tries to move backwards
// or to an unknown state.
type ErrInvalidTransition struct {
	From State
	To   State
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid flow transition %s -> %s", e.From, e.To)
}
