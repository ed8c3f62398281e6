package routine

import (
	"errors"
	"fmt"

	"github.com/thruflo/kaprekar/internal/kaprekar"
)

// RunState is the lifecycle state of a Simulator.
type RunState int

const (
	StateIdle    RunState = iota // No run; Start accepted
	StateRunning                 // Ticking toward the constant
	StateReached                 // Trajectory ended at kaprekar.Constant
	StateStalled                 // Hit the trajectory bound first
	StateInvalid                 // Start was given bad input
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateReached:
		return "reached"
	case StateStalled:
		return "stalled"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further ticks can occur in this state
// without a Reset.
func (s RunState) Terminal() bool {
	return s == StateReached || s == StateStalled || s == StateInvalid
}

// Snapshot is a copy of the simulator's observable state.
type Snapshot struct {
	// Version increases with every change. Observers may receive
	// notifications out of order across goroutines and should drop any
	// snapshot older than the last one they handled.
	Version uint64 `json:"version"`

	State RunState `json:"state"`

	// Trajectory starts with the input and gains one value per tick.
	Trajectory []int `json:"trajectory"`

	// Steps holds the transform behind each trajectory transition, so
	// len(Steps) == len(Trajectory)-1 whenever Trajectory is non-empty.
	Steps []kaprekar.Step `json:"steps,omitempty"`

	// Error is the user-visible message while State is StateInvalid.
	Error string `json:"error,omitempty"`
}

// Current returns the last trajectory value, if any.
func (s Snapshot) Current() (int, bool) {
	if len(s.Trajectory) == 0 {
		return 0, false
	}
	return s.Trajectory[len(s.Trajectory)-1], true
}

// Sentinel errors returned by Start when a request is rejected.
var (
	// ErrRunActive is returned when Start is called while a run is ticking.
	ErrRunActive = errors.New("a run is already active")

	// ErrNotIdle is returned when Start is called from a terminal state.
	// Reset must be called first.
	ErrNotIdle = errors.New("simulator is not idle; reset first")
)

// InputError reports input that cannot start a run.
type InputError struct {
	Input  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// IsInputError checks if an error is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ParseInput validates a start request and returns the starting number.
// Input must be one to kaprekar.Width ASCII digits.
func ParseInput(input string) (int, error) {
	if input == "" {
		return 0, &InputError{Input: input, Reason: "must not be empty"}
	}
	if len(input) > kaprekar.Width {
		return 0, &InputError{Input: input, Reason: fmt.Sprintf("must be at most %d digits", kaprekar.Width)}
	}

	n := 0
	for _, c := range input {
		if c < '0' || c > '9' {
			return 0, &InputError{Input: input, Reason: "must contain only digits 0-9"}
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
