package statetree

import "errors"

var (
	// ErrNoStates is returned when a machine is constructed without any states.
	ErrNoStates = errors.New("no states provided")

	// ErrNilState is returned when a nil state is attached to a machine or parent.
	ErrNilState = errors.New("nil state")

	// ErrDuplicateState is returned when two siblings share a name.
	ErrDuplicateState = errors.New("duplicate state name")

	// ErrUnknownState is returned when a path does not resolve to a state.
	// A failed resolution never mutates the machine: on a bad transition
	// target the current state is left untouched.
	ErrUnknownState = errors.New("unknown state path")

	// ErrNotStarted is returned when a transition is requested before Start.
	ErrNotStarted = errors.New("machine not started")

	// ErrAlreadyAttached is returned when a state that already belongs to a
	// machine is attached again. States must not be shared between machines.
	ErrAlreadyAttached = errors.New("state already attached to a machine")

	// ErrEmptyPath is returned for empty or all-separator paths.
	ErrEmptyPath = errors.New("empty state path")
)
