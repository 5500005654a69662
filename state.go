package statetree

import "fmt"

// State is a single named behavioral unit with an enter/exit lifecycle and
// per-tick hooks. States nest: a State may own child States, forming the
// tree a Machine addresses by path. State is a passive lifecycle container;
// no transition logic lives here.
//
// All hooks are optional. A nil hook is a no-op, so a State with no work to
// do is always safe to enter, exit and tick.
type State struct {
	name     string
	parent   *State
	children []*State
	byName   map[string]*State
	machine  *Machine

	// EnterFunc runs exactly once each time this state becomes current,
	// before it starts receiving tick callbacks. The message is never nil.
	EnterFunc func(msg Message)

	// ExitFunc runs exactly once each time this state stops being current,
	// before the next state's EnterFunc runs.
	ExitFunc func()

	// TickFunc runs once per simulation frame while this state is current.
	TickFunc func(delta float64)

	// PhysicsTickFunc runs once per fixed physics step while this state is
	// current.
	PhysicsTickFunc func(delta float64)

	// InputFunc runs when the host offers an input event no higher-priority
	// handler claimed.
	InputFunc func(event any)
}

// NewState creates a detached state with the given name. The name must not
// contain the path separator; names are validated when the state is attached
// to a parent or machine.
func NewState(name string) *State {
	return &State{name: name}
}

// Name returns the state's name, unique among its siblings.
func (s *State) Name() string { return s.name }

// Parent returns the parent state, or nil when this state hangs directly off
// the machine. A nil parent is a valid, expected configuration.
func (s *State) Parent() *State { return s.parent }

// Machine returns the machine governing this state, or nil while detached.
// The machine owns the state; this is only a back-reference, recorded when
// the state becomes part of the machine's tree.
func (s *State) Machine() *Machine { return s.machine }

// Children returns a copy of the child states in attachment order.
func (s *State) Children() []*State {
	out := make([]*State, len(s.children))
	copy(out, s.children)
	return out
}

// Child returns the direct child with the given name, or nil.
func (s *State) Child(name string) *State {
	return s.byName[name]
}

// Path returns the slash-separated path of this state from the machine root
// (or from the detached subtree root while unattached).
func (s *State) Path() string {
	if s.parent == nil {
		return s.name
	}
	return s.parent.Path() + PathSeparator + s.name
}

// AddChild attaches child under this state. The child must be detached and
// its name unique among the new siblings. When this state already belongs to
// a machine the child subtree is indexed immediately and becomes addressable
// by path.
func (s *State) AddChild(child *State) error {
	if child == nil {
		return ErrNilState
	}
	if child.parent != nil || child.machine != nil {
		return fmt.Errorf("state %q: %w", child.name, ErrAlreadyAttached)
	}
	if err := validateName(child.name); err != nil {
		return err
	}
	if _, exists := s.byName[child.name]; exists {
		return fmt.Errorf("state %q under %q: %w", child.name, s.Path(), ErrDuplicateState)
	}
	if s.byName == nil {
		s.byName = make(map[string]*State)
	}
	child.parent = s
	s.children = append(s.children, child)
	s.byName[child.name] = child
	if s.machine != nil {
		if err := s.machine.indexSubtree(child); err != nil {
			// Roll the attachment back so a failed index leaves no orphan.
			delete(s.byName, child.name)
			s.children = s.children[:len(s.children)-1]
			child.parent = nil
			return err
		}
	}
	return nil
}

// OnEnter sets the enter hook and returns the state for chaining.
func (s *State) OnEnter(fn func(Message)) *State {
	s.EnterFunc = fn
	return s
}

// OnExit sets the exit hook and returns the state for chaining.
func (s *State) OnExit(fn func()) *State {
	s.ExitFunc = fn
	return s
}

// OnTick sets the per-frame hook and returns the state for chaining.
func (s *State) OnTick(fn func(delta float64)) *State {
	s.TickFunc = fn
	return s
}

// OnPhysicsTick sets the fixed-step hook and returns the state for chaining.
func (s *State) OnPhysicsTick(fn func(delta float64)) *State {
	s.PhysicsTickFunc = fn
	return s
}

// OnInput sets the unhandled-input hook and returns the state for chaining.
func (s *State) OnInput(fn func(event any)) *State {
	s.InputFunc = fn
	return s
}

// enter runs the enter hook and emits the "entered" notification. Called by
// the owning machine only.
func (s *State) enter(msg Message) {
	if msg == nil {
		msg = Message{}
	}
	if s.EnterFunc != nil {
		s.EnterFunc(msg)
	}
	if s.machine != nil {
		s.machine.notifyEntered(s)
	}
}

// exit runs the exit hook and emits the "exited" notification. Called by the
// owning machine only.
func (s *State) exit() {
	if s.ExitFunc != nil {
		s.ExitFunc()
	}
	if s.machine != nil {
		s.machine.notifyExited(s)
	}
}

// OwningMachine walks upward from s through its ancestors and returns the
// nearest machine governing the tree, or nil when s is nil or the subtree is
// detached. It terminates on any tree shape: "no parent" means "not found",
// never an error.
func OwningMachine(s *State) *Machine {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.machine != nil {
			return cur.machine
		}
	}
	return nil
}

// validateName rejects names that would break path addressing.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("state name is required: %w", ErrEmptyPath)
	}
	if len(SplitPath(name)) != 1 || SplitPath(name)[0] != name {
		return fmt.Errorf("state name %q must not contain %q", name, PathSeparator)
	}
	return nil
}
