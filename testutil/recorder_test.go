package testutil_test

import (
	"testing"

	"github.com/ludokit/statetree"
	"github.com/ludokit/statetree/testutil"
)

func TestRecorderCapturesDispatchOrder(t *testing.T) {
	idle := statetree.NewState("Idle")
	move := statetree.NewState("Move")

	rec := &testutil.Recorder{}
	m, err := statetree.NewMachine("Idle", []*statetree.State{idle, move},
		statetree.WithObserver(rec))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Start(); err != nil {
		t.Fatal(err)
	}
	if err := m.TransitionTo("Move", nil); err != nil {
		t.Fatal(err)
	}

	want := []testutil.Notification{
		{Kind: testutil.KindEntered, Path: "Idle"},
		{Kind: testutil.KindExited, Path: "Idle"},
		{Kind: testutil.KindEntered, Path: "Move"},
		{Kind: testutil.KindTransitioned, Path: "Move"},
	}
	got := rec.Events()
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	if rec.Count(testutil.KindEntered) != 2 {
		t.Errorf("expected 2 entered, got %d", rec.Count(testutil.KindEntered))
	}

	rec.Reset()
	if len(rec.Events()) != 0 {
		t.Error("expected no events after Reset")
	}
}
