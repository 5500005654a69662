package statetree

import (
	"errors"
	"fmt"
)

// Builder provides a fluent API for constructing a state tree by path
// instead of wiring State values by hand. Referencing a nested path
// auto-creates the intermediate states, so declaration order does not
// matter:
//
//	m, err := statetree.NewBuilder("Idle").
//		State("Idle").Enter(playIdle).Done().
//		State("Move/Jump").Enter(playJump).Done().
//		Build()
type Builder struct {
	initial string
	roots   []*State
	index   map[string]*State
	opts    []Option
	errs    []error
}

// StateBuilder configures a single state created by Builder.State.
type StateBuilder struct {
	b *Builder
	s *State
}

// NewBuilder creates a builder whose machine will enter initial on Start.
func NewBuilder(initial string) *Builder {
	return &Builder{
		initial: initial,
		index:   make(map[string]*State),
	}
}

// Options appends machine options applied at Build.
func (b *Builder) Options(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// State creates or retrieves the state at path, auto-creating any missing
// ancestors. Errors are collected and reported by Build so call chains stay
// uninterrupted.
func (b *Builder) State(path string) *StateBuilder {
	segments := SplitPath(path)
	if segments == nil {
		b.errs = append(b.errs, fmt.Errorf("builder state %q: %w", path, ErrEmptyPath))
		return &StateBuilder{b: b}
	}

	var cur *State
	walked := ""
	for _, seg := range segments {
		walked = JoinPath(walked, seg)
		next, ok := b.index[walked]
		if !ok {
			next = NewState(seg)
			b.index[walked] = next
			if cur == nil {
				b.roots = append(b.roots, next)
			} else if err := cur.AddChild(next); err != nil {
				b.errs = append(b.errs, err)
				return &StateBuilder{b: b}
			}
		}
		cur = next
	}
	return &StateBuilder{b: b, s: cur}
}

// Build validates the accumulated tree and constructs the machine.
func (b *Builder) Build() (*Machine, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return NewMachine(b.initial, b.roots, b.opts...)
}

// Enter sets the enter hook.
func (sb *StateBuilder) Enter(fn func(Message)) *StateBuilder {
	if sb.s != nil {
		sb.s.EnterFunc = fn
	}
	return sb
}

// Exit sets the exit hook.
func (sb *StateBuilder) Exit(fn func()) *StateBuilder {
	if sb.s != nil {
		sb.s.ExitFunc = fn
	}
	return sb
}

// Tick sets the per-frame hook.
func (sb *StateBuilder) Tick(fn func(delta float64)) *StateBuilder {
	if sb.s != nil {
		sb.s.TickFunc = fn
	}
	return sb
}

// PhysicsTick sets the fixed-step hook.
func (sb *StateBuilder) PhysicsTick(fn func(delta float64)) *StateBuilder {
	if sb.s != nil {
		sb.s.PhysicsTickFunc = fn
	}
	return sb
}

// Input sets the unhandled-input hook.
func (sb *StateBuilder) Input(fn func(event any)) *StateBuilder {
	if sb.s != nil {
		sb.s.InputFunc = fn
	}
	return sb
}

// Done returns to the parent builder for chaining.
func (sb *StateBuilder) Done() *Builder {
	return sb.b
}
