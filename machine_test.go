package statetree_test

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	. "github.com/ludokit/statetree"
	"github.com/ludokit/statetree/testutil"
)

// Test that Start resolves the initial path and enters it exactly once with
// an empty, non-nil message.
func TestStartEntersInitialState(t *testing.T) {
	var enterCalled int
	var gotMsg Message

	idle := NewState("Idle").OnEnter(func(msg Message) {
		enterCalled++
		gotMsg = msg
	})
	move := NewState("Move")

	rec := &testutil.Recorder{}
	m, err := NewMachine("Idle", []*State{idle, move}, WithObserver(rec))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	if enterCalled != 1 {
		t.Errorf("expected enter called 1 time, got %d", enterCalled)
	}
	if gotMsg == nil {
		t.Error("expected empty message, got nil")
	}
	if m.CurrentName() != "Idle" {
		t.Errorf("expected current Idle, got %q", m.CurrentName())
	}
	if rec.Count(testutil.KindEntered) != 1 {
		t.Errorf("expected 1 entered notification, got %d", rec.Count(testutil.KindEntered))
	}

	// Idempotent: a second Start must not re-enter.
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	if enterCalled != 1 {
		t.Errorf("expected enter still called 1 time after second Start, got %d", enterCalled)
	}
}

func TestStartFailsOnUnresolvableInitialPath(t *testing.T) {
	m, err := NewMachine("Nope", []*State{NewState("Idle")})
	if err != nil {
		t.Fatal(err)
	}

	err = m.Start()
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
	if m.Current() != nil {
		t.Error("expected no current state after failed Start")
	}
}

// Test the strict transition order: exit(A), enter(B), transitioned.
func TestTransitionOrder(t *testing.T) {
	var order []string

	idle := NewState("Idle").
		OnEnter(func(Message) { order = append(order, "enter Idle") }).
		OnExit(func() { order = append(order, "exit Idle") })
	move := NewState("Move").
		OnEnter(func(Message) { order = append(order, "enter Move") }).
		OnExit(func() { order = append(order, "exit Move") })

	m, err := NewMachine("Idle", []*State{idle, move},
		WithLogger(zaptest.NewLogger(t)),
		WithObserver(ObserverFuncs{
			TransitionedFunc: func(_ *Machine, path string) {
				order = append(order, "transitioned "+path)
			},
		}))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	if err := m.TransitionTo("Move", nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"enter Idle", "exit Idle", "enter Move", "transitioned Move"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("step %d: expected %q, got %q (full order %v)", i, want[i], order[i], order)
		}
	}
	if m.Current() != move {
		t.Error("expected current == Move")
	}
}

// Self-transition is legal and still runs the full exit/enter sequence.
func TestSelfTransitionReenters(t *testing.T) {
	var enterCalled, exitCalled int

	idle := NewState("Idle").
		OnEnter(func(Message) { enterCalled++ }).
		OnExit(func() { exitCalled++ })

	rec := &testutil.Recorder{}
	m, err := NewMachine("Idle", []*State{idle}, WithObserver(rec))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	if err := m.TransitionTo("Idle", nil); err != nil {
		t.Fatal(err)
	}

	if exitCalled != 1 {
		t.Errorf("expected exit called 1 time, got %d", exitCalled)
	}
	if enterCalled != 2 {
		t.Errorf("expected enter called 2 times (Start + re-entry), got %d", enterCalled)
	}
	if rec.Count(testutil.KindTransitioned) != 1 {
		t.Errorf("expected 1 transitioned notification, got %d", rec.Count(testutil.KindTransitioned))
	}
}

// An unresolvable target fails before exit runs and leaves current unchanged.
func TestInvalidTargetLeavesCurrentUnchanged(t *testing.T) {
	var enterCalled, exitCalled int

	idle := NewState("Idle").
		OnEnter(func(Message) { enterCalled++ }).
		OnExit(func() { exitCalled++ })
	move := NewState("Move").
		OnEnter(func(Message) { t.Error("Move must not be entered") })

	m, err := NewMachine("Idle", []*State{idle, move})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	err = m.TransitionTo("NonexistentPath", nil)
	if !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
	if m.CurrentName() != "Idle" {
		t.Errorf("expected current still Idle, got %q", m.CurrentName())
	}
	if exitCalled != 0 {
		t.Errorf("expected exit called 0 times, got %d", exitCalled)
	}
	if enterCalled != 1 {
		t.Errorf("expected enter called 1 time (Start only), got %d", enterCalled)
	}
}

func TestTransitionBeforeStartFails(t *testing.T) {
	m, err := NewMachine("Idle", []*State{NewState("Idle")})
	if err != nil {
		t.Fatal(err)
	}

	if err := m.TransitionTo("Idle", nil); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

// Nested paths transition into the leaf directly: flat current-pointer
// semantics, the intermediate state is never separately entered.
func TestNestedPathTransitionsDirectly(t *testing.T) {
	var moveEntered, jumpEntered int

	move := NewState("Move").OnEnter(func(Message) { moveEntered++ })
	jump := NewState("Jump").OnEnter(func(Message) { jumpEntered++ })
	if err := move.AddChild(jump); err != nil {
		t.Fatal(err)
	}
	idle := NewState("Idle")

	m, err := NewMachine("Idle", []*State{idle, move})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	if err := m.TransitionTo("Move/Jump", nil); err != nil {
		t.Fatal(err)
	}

	if m.CurrentName() != "Jump" {
		t.Errorf("expected current Jump, got %q", m.CurrentName())
	}
	if m.CurrentPath() != "Move/Jump" {
		t.Errorf("expected current path Move/Jump, got %q", m.CurrentPath())
	}
	if jumpEntered != 1 {
		t.Errorf("expected Jump entered once, got %d", jumpEntered)
	}
	if moveEntered != 0 {
		t.Errorf("expected Move never entered, got %d", moveEntered)
	}
}

// The transition message is forwarded untouched to the target's enter hook.
func TestTransitionMessageDelivered(t *testing.T) {
	var got Message

	idle := NewState("Idle")
	jump := NewState("Jump").OnEnter(func(msg Message) { got = msg })

	m, err := NewMachine("Idle", []*State{idle, jump})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	if err := m.TransitionTo("Jump", Message{"impulse": 4.5, "double": true}); err != nil {
		t.Fatal(err)
	}

	if f, ok := got.Float("impulse"); !ok || f != 4.5 {
		t.Errorf("expected impulse 4.5, got %v (%v)", f, ok)
	}
	if b, ok := got.Bool("double"); !ok || !b {
		t.Errorf("expected double true, got %v (%v)", b, ok)
	}
}

// Tick, PhysicsTick and HandleInput reach the current state only, and are
// no-ops before Start.
func TestForwardingReachesCurrentStateOnly(t *testing.T) {
	var idleTicks, idlePhysics, moveTicks int
	var gotEvent any

	idle := NewState("Idle").
		OnTick(func(delta float64) { idleTicks++ }).
		OnPhysicsTick(func(delta float64) { idlePhysics++ }).
		OnInput(func(event any) { gotEvent = event })
	move := NewState("Move").
		OnTick(func(delta float64) { moveTicks++ })

	m, err := NewMachine("Idle", []*State{idle, move})
	if err != nil {
		t.Fatal(err)
	}

	// Before Start: all forwarding is a no-op.
	m.Tick(0.016)
	m.PhysicsTick(0.016)
	m.HandleInput("jump_pressed")
	if idleTicks != 0 || idlePhysics != 0 || gotEvent != nil {
		t.Fatal("expected no forwarding before Start")
	}

	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	m.Tick(0.016)
	m.PhysicsTick(0.016)
	m.HandleInput("jump_pressed")

	if idleTicks != 1 || idlePhysics != 1 {
		t.Errorf("expected Idle ticked once each, got tick=%d physics=%d", idleTicks, idlePhysics)
	}
	if gotEvent != "jump_pressed" {
		t.Errorf("expected input forwarded, got %v", gotEvent)
	}
	if moveTicks != 0 {
		t.Errorf("expected Move never ticked, got %d", moveTicks)
	}

	if err := m.TransitionTo("Move", nil); err != nil {
		t.Fatal(err)
	}
	m.Tick(0.016)
	if moveTicks != 1 {
		t.Errorf("expected Move ticked once after transition, got %d", moveTicks)
	}
	if idleTicks != 1 {
		t.Errorf("expected Idle no longer ticked, got %d", idleTicks)
	}
}

// Scenario from the kit: Idle <-> Move round trip with observable
// notifications.
func TestIdleMoveRoundTrip(t *testing.T) {
	idle := NewState("Idle")
	move := NewState("Move")

	rec := &testutil.Recorder{}
	m, err := NewMachine("Idle", []*State{idle, move}, WithObserver(rec))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	if err := m.TransitionTo("Move", nil); err != nil {
		t.Fatal(err)
	}
	if m.CurrentName() != "Move" {
		t.Errorf("expected current Move, got %q", m.CurrentName())
	}

	if err := m.TransitionTo("Idle", nil); err != nil {
		t.Fatal(err)
	}
	if m.CurrentName() != "Idle" {
		t.Errorf("expected current Idle, got %q", m.CurrentName())
	}

	if rec.Count(testutil.KindTransitioned) != 2 {
		t.Errorf("expected 2 transitioned notifications, got %d", rec.Count(testutil.KindTransitioned))
	}
	// transitioned fires after enter, so the final notification is the
	// second transitioned one.
	events := rec.Events()
	last := events[len(events)-1]
	if last.Kind != testutil.KindTransitioned || last.Path != "Idle" {
		t.Errorf("unexpected final notification %+v", last)
	}
}

// States attached after Start are addressable per call.
func TestAttachAfterStart(t *testing.T) {
	idle := NewState("Idle")
	move := NewState("Move")

	m, err := NewMachine("Idle", []*State{idle, move})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}

	jump := NewState("Jump")
	if err := m.Attach("Move", jump); err != nil {
		t.Fatal(err)
	}
	if err := m.TransitionTo("Move/Jump", nil); err != nil {
		t.Fatal(err)
	}
	if m.CurrentPath() != "Move/Jump" {
		t.Errorf("expected current path Move/Jump, got %q", m.CurrentPath())
	}

	dash := NewState("Dash")
	if err := m.Attach("", dash); err != nil {
		t.Fatal(err)
	}
	if err := m.TransitionTo("Dash", nil); err != nil {
		t.Fatal(err)
	}
	if m.CurrentName() != "Dash" {
		t.Errorf("expected current Dash, got %q", m.CurrentName())
	}
}

func TestConstructionErrors(t *testing.T) {
	if _, err := NewMachine("Idle", nil); !errors.Is(err, ErrNoStates) {
		t.Errorf("expected ErrNoStates, got %v", err)
	}
	if _, err := NewMachine("Idle", []*State{nil}); !errors.Is(err, ErrNilState) {
		t.Errorf("expected ErrNilState, got %v", err)
	}
	if _, err := NewMachine("", []*State{NewState("Idle")}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got %v", err)
	}
	if _, err := NewMachine("A", []*State{NewState("A"), NewState("A")}); !errors.Is(err, ErrDuplicateState) {
		t.Errorf("expected ErrDuplicateState, got %v", err)
	}

	shared := NewState("Shared")
	if _, err := NewMachine("Shared", []*State{shared}); err != nil {
		t.Fatal(err)
	}
	if _, err := NewMachine("Shared", []*State{shared}); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}
