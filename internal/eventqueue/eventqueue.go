// Package eventqueue implements the simulator's time-ordered event queue: a
// min-heap over events keyed by time, with insertion order as a stable
// tie-break for equal timestamps so traces are reproducible.
//
// No third-party priority-queue implementation appears anywhere in this
// codebase's dependency tree or across the reference examples; container/
// heap is the idiomatic standard-library fit for this concern, so it is
// used directly rather than introduced as a new dependency.
package eventqueue

import (
	"container/heap"

	"github.com/mdub555/schedsim/internal/simtypes"
)

type item struct {
	event *simtypes.Event
	seq   uint64
}

type heapSlice []item

func (h heapSlice) Len() int { return len(h) }

func (h heapSlice) Less(i, j int) bool {
	if h[i].event.Time != h[j].event.Time {
		return h[i].event.Time < h[j].event.Time
	}
	return h[i].seq < h[j].seq
}

func (h heapSlice) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *heapSlice) Push(x interface{}) {
	*h = append(*h, x.(item))
}

func (h *heapSlice) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Queue is a min-priority queue over events ordered by (Time, insertion
// order). The queue owns events between Push and Pop.
type Queue struct {
	h      heapSlice
	nextSeq uint64
}

// New returns an empty event queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push inserts event, taking ownership of it until it is popped.
func (q *Queue) Push(event *simtypes.Event) {
	heap.Push(&q.h, item{event: event, seq: q.nextSeq})
	q.nextSeq++
}

// Pop removes and returns the earliest event (by time, then insertion
// order), transferring ownership to the caller. Pop on an empty queue
// returns nil.
func (q *Queue) Pop() *simtypes.Event {
	if len(q.h) == 0 {
		return nil
	}
	it := heap.Pop(&q.h).(item)
	return it.event
}

// Empty reports whether the queue has no events left.
func (q *Queue) Empty() bool {
	return len(q.h) == 0
}

// Len reports how many events remain.
func (q *Queue) Len() int {
	return len(q.h)
}
