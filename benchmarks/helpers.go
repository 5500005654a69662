// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/ludokit/statetree"
)

// GenFlatMachine creates a machine with n sibling leaf states, started in s0.
func GenFlatMachine(n int) (*statetree.Machine, error) {
	if n < 1 {
		n = 1
	}
	states := make([]*statetree.State, 0, n)
	for i := 0; i < n; i++ {
		states = append(states, statetree.NewState(fmt.Sprintf("s%d", i)))
	}
	m, err := statetree.NewMachine("s0", states)
	if err != nil {
		return nil, err
	}
	if err := m.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// GenDeepMachine creates a single chain of nested states depth levels deep
// and returns the machine started in the leaf, plus the leaf path.
func GenDeepMachine(depth int) (*statetree.Machine, string, error) {
	if depth < 1 {
		depth = 1
	}
	root := statetree.NewState("c0")
	cur := root
	path := "c0"
	for i := 1; i < depth; i++ {
		next := statetree.NewState(fmt.Sprintf("c%d", i))
		if err := cur.AddChild(next); err != nil {
			return nil, "", err
		}
		cur = next
		path = statetree.JoinPath(path, cur.Name())
	}
	m, err := statetree.NewMachine(path, []*statetree.State{root})
	if err != nil {
		return nil, "", err
	}
	if err := m.Start(); err != nil {
		return nil, "", err
	}
	return m, path, nil
}
