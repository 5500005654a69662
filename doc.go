// Package statetree implements a hierarchical state machine for frame-driven
// hosts such as game characters and simulation agents.
//
// A Machine owns a tree of named States and tracks exactly one current State.
// States are addressed by slash-separated paths mirroring the tree nesting
// ("Move/Jump" is the child "Jump" under the top-level state "Move"). The
// current pointer is flat: transitioning into a nested path makes that state
// current directly, without separately entering its ancestors.
//
// Each simulation frame the host forwards Tick, PhysicsTick and HandleInput
// to the Machine, which forwards them to the current State only. Transitions
// run the strict sequence exit(current) -> reassign -> enter(target) ->
// notify, and a self-transition runs the full sequence so a state can be
// re-entered (for example to restart an animation).
//
// The core is single-threaded and synchronous: every operation runs to
// completion on the caller's goroutine. Hosts that need a fixed-timestep
// loop or cross-goroutine request queuing should use the realtime package.
//
// # Example
//
//	idle := statetree.NewState("Idle").OnEnter(func(msg statetree.Message) {
//		fmt.Println("idle")
//	})
//	move := statetree.NewState("Move")
//
//	m, err := statetree.NewMachine("Idle", []*statetree.State{idle, move})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := m.Start(); err != nil {
//		log.Fatal(err)
//	}
//	m.Tick(1.0 / 60.0)
//	m.TransitionTo("Move", nil)
package statetree
