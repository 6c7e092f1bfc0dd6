// Package schedpolicy implements the ready-queue scheduling contract and
// its four policies: FCFS, round-robin, static priority, and multilevel
// feedback.
package schedpolicy

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// Scheduler is the ready-queue contract every policy implements. All four
// concrete policies in this package satisfy it through an explicit
// capability interface rather than open subtype polymorphism, since no
// open extensibility is required by the contract.
type Scheduler interface {
	// Enqueue admits a ready thread. The caller is responsible for having
	// already set thread.CurrentState = READY.
	Enqueue(event *simtypes.Event, thread *simtypes.Thread)

	// Next chooses and removes one ready thread, filling in its
	// SchedulingDecision. Returns nil iff the queue is empty.
	Next(event *simtypes.Event) *simtypes.SchedulingDecision

	// PreemptOnArrival reports whether an arriving thread should preempt
	// the currently running one. Every policy here returns false.
	PreemptOnArrival(event *simtypes.Event) bool

	// Size reports the number of ready threads currently held.
	Size() int
}

// DefaultQuantum is the round-robin / multilevel-feedback time slice used
// when none is configured explicitly.
const DefaultQuantum = 3

// New constructs the named policy ("fcfs", "rr", "priority", "mlfq").
// quantum is only consulted by rr and mlfq; pass DefaultQuantum for the
// conventional 3-tick default.
func New(name string, quantum int) (Scheduler, error) {
	switch name {
	case "fcfs":
		return NewFCFS(), nil
	case "rr":
		return NewRoundRobin(quantum), nil
	case "priority":
		return NewPriority(), nil
	case "mlfq":
		return NewMLFQ(quantum), nil
	default:
		return nil, fmt.Errorf("schedpolicy: unknown policy %q (want fcfs, rr, priority, or mlfq)", name)
	}
}
