// Package testutil provides shared helpers for exercising statetree
// machines in tests.
package testutil

import (
	"sync"

	"github.com/ludokit/statetree"
)

// Notification kinds recorded by Recorder.
const (
	KindEntered      = "entered"
	KindExited       = "exited"
	KindTransitioned = "transitioned"
)

// Notification is one recorded observer callback.
type Notification struct {
	Kind string
	// Path is the state path for entered/exited, or the transition target
	// path for transitioned.
	Path string
}

// Recorder is an Observer that captures notifications in dispatch order.
// Safe for concurrent use so it can observe a machine driven by a realtime
// loop.
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

var _ statetree.Observer = (*Recorder)(nil)

func (r *Recorder) Entered(s *statetree.State) {
	r.record(Notification{Kind: KindEntered, Path: s.Path()})
}

func (r *Recorder) Exited(s *statetree.State) {
	r.record(Notification{Kind: KindExited, Path: s.Path()})
}

func (r *Recorder) Transitioned(_ *statetree.Machine, path string) {
	r.record(Notification{Kind: KindTransitioned, Path: path})
}

func (r *Recorder) record(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

// Events returns a copy of all recorded notifications in order.
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many notifications of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
