// Package chartfile loads declarative state-tree definitions from YAML and
// builds statetree machines from them. Hooks stay in code: a definition
// references them by name and a Hooks registry supplies the functions, so
// designers can re-shape a character's state tree without recompiling.
//
// A minimal chart:
//
//	id: player
//	initial: Idle
//	states:
//	  - name: Idle
//	    enter: playIdle
//	  - name: Move
//	    tick: steer
//	    children:
//	      - name: Jump
//	        enter: applyImpulse
package chartfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ludokit/statetree"
)

// ErrUnknownHook is returned when a definition references a hook name the
// registry does not provide.
var ErrUnknownHook = errors.New("unknown hook reference")

// Definition is the top-level chart document.
type Definition struct {
	ID      string      `yaml:"id,omitempty"`
	Initial string      `yaml:"initial"`
	States  []*StateDef `yaml:"states"`
}

// StateDef declares one state. Hook fields name entries in the Hooks
// registry; empty fields leave the hook unset.
type StateDef struct {
	Name        string      `yaml:"name"`
	Enter       string      `yaml:"enter,omitempty"`
	Exit        string      `yaml:"exit,omitempty"`
	Tick        string      `yaml:"tick,omitempty"`
	PhysicsTick string      `yaml:"physicsTick,omitempty"`
	Input       string      `yaml:"input,omitempty"`
	Children    []*StateDef `yaml:"children,omitempty"`
}

// Hooks is the registry of named hook implementations a definition may
// reference. Nil maps are treated as empty.
type Hooks struct {
	Enter       map[string]func(statetree.Message)
	Exit        map[string]func()
	Tick        map[string]func(delta float64)
	PhysicsTick map[string]func(delta float64)
	Input       map[string]func(event any)
}

// Parse decodes a chart document from YAML and validates it.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a chart file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", path, err)
	}
	return def, nil
}

// Validate checks the definition tree:
// - Initial is present and resolves through the tree
// - every state has a name without the path separator
// - sibling names are unique
func (d *Definition) Validate() error {
	if d.Initial == "" {
		return errors.New("initial state path is required")
	}
	if len(d.States) == 0 {
		return errors.New("at least one state is required")
	}
	if err := validateSiblings(d.States, ""); err != nil {
		return err
	}
	if d.findByPath(d.Initial) == nil {
		return fmt.Errorf("initial state %q not found in chart", d.Initial)
	}
	return nil
}

// Machine builds a statetree.Machine from the definition, resolving hook
// references against the registry. Unknown references fail the build.
func (d *Definition) Machine(hooks Hooks, opts ...statetree.Option) (*statetree.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	states := make([]*statetree.State, 0, len(d.States))
	for _, sd := range d.States {
		s, err := sd.build(hooks)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}

	if d.ID != "" {
		opts = append([]statetree.Option{statetree.WithID(d.ID)}, opts...)
	}
	return statetree.NewMachine(d.Initial, states, opts...)
}

func (sd *StateDef) build(hooks Hooks) (*statetree.State, error) {
	s := statetree.NewState(sd.Name)

	if sd.Enter != "" {
		fn, ok := hooks.Enter[sd.Enter]
		if !ok {
			return nil, hookErr(sd.Name, "enter", sd.Enter)
		}
		s.EnterFunc = fn
	}
	if sd.Exit != "" {
		fn, ok := hooks.Exit[sd.Exit]
		if !ok {
			return nil, hookErr(sd.Name, "exit", sd.Exit)
		}
		s.ExitFunc = fn
	}
	if sd.Tick != "" {
		fn, ok := hooks.Tick[sd.Tick]
		if !ok {
			return nil, hookErr(sd.Name, "tick", sd.Tick)
		}
		s.TickFunc = fn
	}
	if sd.PhysicsTick != "" {
		fn, ok := hooks.PhysicsTick[sd.PhysicsTick]
		if !ok {
			return nil, hookErr(sd.Name, "physicsTick", sd.PhysicsTick)
		}
		s.PhysicsTickFunc = fn
	}
	if sd.Input != "" {
		fn, ok := hooks.Input[sd.Input]
		if !ok {
			return nil, hookErr(sd.Name, "input", sd.Input)
		}
		s.InputFunc = fn
	}

	for _, cd := range sd.Children {
		child, err := cd.build(hooks)
		if err != nil {
			return nil, err
		}
		if err := s.AddChild(child); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func hookErr(state, kind, ref string) error {
	return fmt.Errorf("state %q %s hook %q: %w", state, kind, ref, ErrUnknownHook)
}

func validateSiblings(defs []*StateDef, parentPath string) error {
	seen := make(map[string]struct{}, len(defs))
	for _, sd := range defs {
		if sd == nil {
			return fmt.Errorf("nil state under %q", parentPath)
		}
		if sd.Name == "" {
			return fmt.Errorf("state under %q has no name", parentPath)
		}
		if len(statetree.SplitPath(sd.Name)) != 1 || statetree.SplitPath(sd.Name)[0] != sd.Name {
			return fmt.Errorf("state name %q must not contain %q", sd.Name, statetree.PathSeparator)
		}
		if _, dup := seen[sd.Name]; dup {
			return fmt.Errorf("duplicate sibling %q under %q", sd.Name, parentPath)
		}
		seen[sd.Name] = struct{}{}
		if err := validateSiblings(sd.Children, statetree.JoinPath(parentPath, sd.Name)); err != nil {
			return err
		}
	}
	return nil
}

// findByPath resolves a slash path against the definition tree.
func (d *Definition) findByPath(path string) *StateDef {
	segments := statetree.SplitPath(path)
	if segments == nil {
		return nil
	}
	level := d.States
	var cur *StateDef
	for _, seg := range segments {
		cur = nil
		for _, sd := range level {
			if sd != nil && sd.Name == seg {
				cur = sd
				break
			}
		}
		if cur == nil {
			return nil
		}
		level = cur.Children
	}
	return cur
}
