package statetree

// Observer receives lifecycle notifications from a machine and its states.
// Components reacting to state changes (animation layers, audio, metrics)
// subscribe explicitly instead of reaching into the machine.
//
// Notifications are dispatched synchronously on the goroutine driving the
// machine, in registration order. Transitioned fires only after the target
// state's enter hook has completed, so observers always see a consistent
// current state.
type Observer interface {
	// Entered is called after a state's enter hook has run.
	Entered(s *State)

	// Exited is called after a state's exit hook has run.
	Exited(s *State)

	// Transitioned is called once per completed transition with the resolved
	// target path.
	Transitioned(m *Machine, path string)
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil fields
// are skipped.
type ObserverFuncs struct {
	EnteredFunc      func(s *State)
	ExitedFunc       func(s *State)
	TransitionedFunc func(m *Machine, path string)
}

func (o ObserverFuncs) Entered(s *State) {
	if o.EnteredFunc != nil {
		o.EnteredFunc(s)
	}
}

func (o ObserverFuncs) Exited(s *State) {
	if o.ExitedFunc != nil {
		o.ExitedFunc(s)
	}
}

func (o ObserverFuncs) Transitioned(m *Machine, path string) {
	if o.TransitionedFunc != nil {
		o.TransitionedFunc(m, path)
	}
}

var _ Observer = ObserverFuncs{}
