package schedpolicy

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// FCFS is a single FIFO ready queue; the chosen thread always runs to
// completion of its current burst.
type FCFS struct {
	threads []*simtypes.Thread
}

// NewFCFS returns an empty first-come-first-served scheduler.
func NewFCFS() *FCFS {
	return &FCFS{}
}

func (f *FCFS) Enqueue(event *simtypes.Event, thread *simtypes.Thread) {
	if thread == nil {
		return
	}
	f.threads = append(f.threads, thread)
}

func (f *FCFS) Next(event *simtypes.Event) *simtypes.SchedulingDecision {
	if f.Size() == 0 {
		return nil
	}
	n := f.Size()
	thread := f.threads[0]
	f.threads = f.threads[1:]

	return &simtypes.SchedulingDecision{
		Thread:      thread,
		TimeSlice:   simtypes.InfiniteQuantum(),
		Explanation: fmt.Sprintf("Selected from %d threads; will run to completion of burst", n),
	}
}

func (f *FCFS) PreemptOnArrival(event *simtypes.Event) bool { return false }

func (f *FCFS) Size() int { return len(f.threads) }
