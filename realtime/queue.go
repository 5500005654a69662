package realtime

import (
	"errors"
	"sort"

	"github.com/ludokit/statetree"
)

// ErrQueueFull is returned when the per-tick request queue is at capacity.
var ErrQueueFull = errors.New("request queue full")

type requestKind int

const (
	kindTransition requestKind = iota
	kindInput
)

// request carries one queued transition or input event with sequencing
// metadata for deterministic ordering.
type request struct {
	kind     requestKind
	path     string
	msg      statetree.Message
	event    any
	seq      uint64
	priority int
}

// RequestTransition queues a transition for the next tick. Thread-safe.
// The target path is validated when the request is applied; a failed
// resolution is logged and the machine keeps its current state.
func (d *Driver) RequestTransition(path string, msg statetree.Message) error {
	return d.enqueue(request{kind: kindTransition, path: path, msg: msg})
}

// RequestTransitionWithPriority queues a transition processed before lower
// priority requests in the same tick.
func (d *Driver) RequestTransitionWithPriority(path string, msg statetree.Message, priority int) error {
	return d.enqueue(request{kind: kindTransition, path: path, msg: msg, priority: priority})
}

// OfferInput queues an unhandled input event for the next tick. Thread-safe.
func (d *Driver) OfferInput(event any) error {
	return d.enqueue(request{kind: kindInput, event: event})
}

func (d *Driver) enqueue(r request) error {
	d.batchMu.Lock()
	defer d.batchMu.Unlock()

	if len(d.batch) >= cap(d.batch) {
		return ErrQueueFull
	}
	r.seq = d.sequenceNum
	d.sequenceNum++
	d.batch = append(d.batch, r)
	return nil
}

// collect atomically retrieves and clears the queued batch.
func (d *Driver) collect() []request {
	d.batchMu.Lock()
	defer d.batchMu.Unlock()

	batch := d.batch
	d.batch = make([]request, 0, cap(d.batch))
	return batch
}

// sortRequests orders a batch deterministically: higher priority first,
// earlier submission first for equal priorities. Stable sort preserves
// relative order.
func sortRequests(batch []request) {
	sort.SliceStable(batch, func(i, j int) bool {
		if batch[i].priority != batch[j].priority {
			return batch[i].priority > batch[j].priority
		}
		return batch[i].seq < batch[j].seq
	})
}
