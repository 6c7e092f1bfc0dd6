package schedpolicy

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// RoundRobin composes an FCFS queue with a fixed time slice.
type RoundRobin struct {
	fcfs      *FCFS
	timeSlice int
}

// NewRoundRobin returns a round-robin scheduler with the given quantum in
// ticks.
func NewRoundRobin(timeSlice int) *RoundRobin {
	return &RoundRobin{fcfs: NewFCFS(), timeSlice: timeSlice}
}

func (r *RoundRobin) Enqueue(event *simtypes.Event, thread *simtypes.Thread) {
	r.fcfs.Enqueue(event, thread)
}

func (r *RoundRobin) Next(event *simtypes.Event) *simtypes.SchedulingDecision {
	n := r.Size()
	dec := r.fcfs.Next(event)
	if dec == nil {
		return nil
	}
	dec.TimeSlice = simtypes.FixedQuantum(r.timeSlice)
	dec.Explanation = fmt.Sprintf("Selected from %d threads; will run for at most %d ticks", n, r.timeSlice)
	return dec
}

func (r *RoundRobin) PreemptOnArrival(event *simtypes.Event) bool { return false }

func (r *RoundRobin) Size() int { return r.fcfs.Size() }
