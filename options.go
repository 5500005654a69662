// Options for configuring Machine instances.
package statetree

import "go.uber.org/zap"

// Option applies configuration to a Machine via the functional options
// pattern.
type Option func(*Machine)

// WithID configures an explicit machine identifier, used in logs and by
// observers such as metrics exporters. Defaults to a generated UUID.
func WithID(id string) Option {
	return func(m *Machine) {
		m.id = id
	}
}

// WithLogger configures structured logging for the machine. Defaults to a
// no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver registers an observer at construction time, before any
// notification can fire.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers = append(m.observers, o)
		}
	}
}

// WithBlackboard replaces the machine's extended state store, preserving a
// store shared with outside systems.
func WithBlackboard(b *Blackboard) Option {
	return func(m *Machine) {
		if b != nil {
			m.blackboard = b
		}
	}
}
