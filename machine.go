package statetree

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Machine owns a tree of states, tracks which one is current and performs
// path-addressed transitions between them. Exactly one state is current at
// any time after Start; only the current state receives tick and input
// forwarding.
//
// The machine is strictly single-threaded: all operations run to completion
// on the caller's goroutine and no mutation of the current pointer happens
// outside TransitionTo. Use realtime.Driver to drive a machine from a fixed
// timestep loop with cross-goroutine request queuing.
type Machine struct {
	id      string
	logger  *zap.Logger
	initial string

	roots []*State
	paths map[string]*State

	current    *State
	started    bool
	observers  []Observer
	blackboard *Blackboard
}

// NewMachine builds a machine owning the given top-level states and their
// descendants. initial is the path entered by Start; it must resolve to a
// state reachable from the machine by then, but is only resolved at Start.
//
// Construction fails on an empty state list, nil states, sibling name
// collisions, or states already owned by another machine.
func NewMachine(initial string, states []*State, opts ...Option) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}
	normalized, err := normalizePath(initial)
	if err != nil {
		return nil, fmt.Errorf("initial state path: %w", err)
	}

	m := &Machine{
		initial:    normalized,
		paths:      make(map[string]*State),
		blackboard: NewBlackboard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.id == "" {
		m.id = uuid.NewString()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}

	for _, s := range states {
		if s == nil {
			return nil, ErrNilState
		}
		if s.parent != nil || s.machine != nil {
			return nil, fmt.Errorf("state %q: %w", s.name, ErrAlreadyAttached)
		}
		if err := validateName(s.name); err != nil {
			return nil, err
		}
		if _, exists := m.paths[s.name]; exists {
			return nil, fmt.Errorf("state %q: %w", s.name, ErrDuplicateState)
		}
		m.roots = append(m.roots, s)
		if err := m.indexSubtree(s); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ID returns the machine's identifier, generated when not configured.
func (m *Machine) ID() string { return m.id }

// InitialPath returns the configured initial state path.
func (m *Machine) InitialPath() string { return m.initial }

// Start resolves the initial path and enters it with an empty message.
// An unresolvable initial path is a configuration error: Start fails and the
// machine has no current state. Start is idempotent after success.
func (m *Machine) Start() error {
	if m.started {
		return nil
	}
	target, ok := m.paths[m.initial]
	if !ok {
		err := fmt.Errorf("initial state %q: %w", m.initial, ErrUnknownState)
		m.logger.Error("start failed",
			zap.String("machine", m.id),
			zap.String("initial", m.initial),
			zap.Error(err))
		return err
	}
	m.started = true
	m.current = target
	target.enter(Message{})
	m.logger.Debug("started",
		zap.String("machine", m.id),
		zap.String("state", target.Path()))
	return nil
}

// TransitionTo makes the state at path the current state, running the strict
// sequence exit(current) -> reassign -> enter(target) -> notify. The message
// is forwarded to the target's enter hook; nil means empty.
//
// A path that does not resolve fails loudly with ErrUnknownState before the
// exit hook runs, leaving current untouched: silently ignoring a bad target
// would desynchronize callers reacting to the transitioned notification.
// Transitioning to the already-current path is legal and still runs the full
// exit/enter sequence, supporting state re-entry.
func (m *Machine) TransitionTo(path string, msg Message) error {
	if !m.started {
		return fmt.Errorf("transition to %q: %w", path, ErrNotStarted)
	}
	normalized, err := normalizePath(path)
	if err != nil {
		return fmt.Errorf("transition target: %w", err)
	}
	target, ok := m.paths[normalized]
	if !ok {
		err := fmt.Errorf("transition target %q: %w", normalized, ErrUnknownState)
		m.logger.Error("transition failed",
			zap.String("machine", m.id),
			zap.String("from", m.current.Path()),
			zap.String("target", normalized),
			zap.Error(err))
		return err
	}

	prev := m.current
	prev.exit()
	m.current = target
	target.enter(msg)
	for _, o := range m.observers {
		o.Transitioned(m, normalized)
	}
	m.logger.Debug("transitioned",
		zap.String("machine", m.id),
		zap.String("from", prev.Path()),
		zap.String("to", normalized))
	return nil
}

// Tick forwards one simulation frame to the current state. A no-op before
// Start.
func (m *Machine) Tick(delta float64) {
	if m.current != nil && m.current.TickFunc != nil {
		m.current.TickFunc(delta)
	}
}

// PhysicsTick forwards one fixed physics step to the current state. A no-op
// before Start.
func (m *Machine) PhysicsTick(delta float64) {
	if m.current != nil && m.current.PhysicsTickFunc != nil {
		m.current.PhysicsTickFunc(delta)
	}
}

// HandleInput forwards an unclaimed input event to the current state. A
// no-op before Start.
func (m *Machine) HandleInput(event any) {
	if m.current != nil && m.current.InputFunc != nil {
		m.current.InputFunc(event)
	}
}

// Current returns the current state, or nil before Start.
func (m *Machine) Current() *State { return m.current }

// CurrentName returns the current state's name, or "" before Start.
func (m *Machine) CurrentName() string {
	if m.current == nil {
		return ""
	}
	return m.current.name
}

// CurrentPath returns the current state's full path, or "" before Start.
func (m *Machine) CurrentPath() string {
	if m.current == nil {
		return ""
	}
	return m.current.Path()
}

// Find resolves a path against the machine's tree without transitioning.
func (m *Machine) Find(path string) (*State, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	s, ok := m.paths[normalized]
	if !ok {
		return nil, fmt.Errorf("state %q: %w", normalized, ErrUnknownState)
	}
	return s, nil
}

// Roots returns a copy of the top-level states in attachment order.
func (m *Machine) Roots() []*State {
	out := make([]*State, len(m.roots))
	copy(out, m.roots)
	return out
}

// Attach adds a detached state subtree under parentPath, or as a new
// top-level state when parentPath is empty. The subtree becomes addressable
// by path immediately, including as a transition target — states may be
// added after Start and validated per call.
func (m *Machine) Attach(parentPath string, s *State) error {
	if s == nil {
		return ErrNilState
	}
	if parentPath == "" {
		if s.parent != nil || s.machine != nil {
			return fmt.Errorf("state %q: %w", s.name, ErrAlreadyAttached)
		}
		if err := validateName(s.name); err != nil {
			return err
		}
		if _, exists := m.paths[s.name]; exists {
			return fmt.Errorf("state %q: %w", s.name, ErrDuplicateState)
		}
		m.roots = append(m.roots, s)
		return m.indexSubtree(s)
	}
	parent, err := m.Find(parentPath)
	if err != nil {
		return fmt.Errorf("attach under %q: %w", parentPath, err)
	}
	return parent.AddChild(s)
}

// Subscribe registers an observer for entered/exited/transitioned
// notifications. Dispatch order follows registration order.
func (m *Machine) Subscribe(o Observer) {
	if o != nil {
		m.observers = append(m.observers, o)
	}
}

// Blackboard returns the machine's shared extended state store.
func (m *Machine) Blackboard() *Blackboard { return m.blackboard }

// indexSubtree records machine back-references and path index entries for s
// and all of its descendants. s must already be linked to its parent.
func (m *Machine) indexSubtree(s *State) error {
	path := s.Path()
	if _, exists := m.paths[path]; exists {
		return fmt.Errorf("state %q: %w", path, ErrDuplicateState)
	}
	s.machine = m
	m.paths[path] = s
	for _, child := range s.children {
		if err := m.indexSubtree(child); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) notifyEntered(s *State) {
	for _, o := range m.observers {
		o.Entered(s)
	}
}

func (m *Machine) notifyExited(s *State) {
	for _, o := range m.observers {
		o.Exited(s)
	}
}
