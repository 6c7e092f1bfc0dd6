package schedpolicy

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// Priority is a static, per-process-type priority scheduler: four FCFS
// queues indexed by simtypes.ProcessType, scanned in index order (SYSTEM
// first) so a ready thread of a lower-numbered type is always chosen ahead
// of one of a higher-numbered type. A running thread is never preempted.
// No aging.
type Priority struct {
	queues [simtypes.NumProcessTypes]*FCFS
}

// NewPriority returns a priority scheduler with one empty FCFS queue per
// process type.
func NewPriority() *Priority {
	p := &Priority{}
	for i := range p.queues {
		p.queues[i] = NewFCFS()
	}
	return p
}

func (p *Priority) Enqueue(event *simtypes.Event, thread *simtypes.Thread) {
	if thread == nil {
		return
	}
	p.queues[thread.Process.Type].Enqueue(event, thread)
}

func (p *Priority) Next(event *simtypes.Event) *simtypes.SchedulingDecision {
	for i, q := range p.queues {
		if q.Size() == 0 {
			continue
		}
		dec := q.Next(event)
		dec.Explanation = fmt.Sprintf("Selected from queue %d [S:%d I:%d N:%d B:%d]",
			i, p.queues[simtypes.SYSTEM].Size(), p.queues[simtypes.INTERACTIVE].Size(),
			p.queues[simtypes.NORMAL].Size(), p.queues[simtypes.BATCH].Size())
		return dec
	}
	return nil
}

func (p *Priority) PreemptOnArrival(event *simtypes.Event) bool { return false }

func (p *Priority) Size() int {
	total := 0
	for _, q := range p.queues {
		total += q.Size()
	}
	return total
}
