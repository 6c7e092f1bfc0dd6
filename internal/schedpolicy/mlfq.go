package schedpolicy

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// NumLevels is the fixed number of multilevel-feedback queues.
const NumLevels = 8

// MLFQ is a multilevel-feedback scheduler: NumLevels round-robin queues,
// all sharing one time slice. A thread starts at the level matching its
// process type (clamped into range) and is demoted one level on every
// subsequent re-enqueue, including after I/O, not only after preemption.
type MLFQ struct {
	queues  [NumLevels]*RoundRobin
	levelOf map[int]int // thread id -> current level
}

// NewMLFQ returns a multilevel-feedback scheduler with NumLevels queues,
// each using the given time slice.
func NewMLFQ(timeSlice int) *MLFQ {
	m := &MLFQ{levelOf: make(map[int]int)}
	for i := range m.queues {
		m.queues[i] = NewRoundRobin(timeSlice)
	}
	return m
}

func (m *MLFQ) Enqueue(event *simtypes.Event, thread *simtypes.Thread) {
	if thread == nil {
		return
	}
	level, seen := m.levelOf[thread.ID]
	if !seen {
		level = int(thread.Process.Type)
		if level >= NumLevels {
			level = NumLevels - 1
		}
		if level < 0 {
			level = 0
		}
	} else {
		level++
		if level >= NumLevels {
			level = NumLevels - 1
		}
	}
	m.levelOf[thread.ID] = level
	m.queues[level].Enqueue(event, thread)
}

func (m *MLFQ) Next(event *simtypes.Event) *simtypes.SchedulingDecision {
	for i, q := range m.queues {
		if q.Size() == 0 {
			continue
		}
		n := q.Size()
		dec := q.Next(event)
		dec.Explanation = fmt.Sprintf("Selected from %d threads in level %d/%d; will run for at most %d ticks",
			n, i+1, NumLevels, dec.TimeSlice.Ticks)
		return dec
	}
	return nil
}

func (m *MLFQ) PreemptOnArrival(event *simtypes.Event) bool { return false }

func (m *MLFQ) Size() int {
	total := 0
	for _, q := range m.queues {
		total += q.Size()
	}
	return total
}

// LevelOf reports the current queue level of a thread that has been
// enqueued at least once (for tests verifying the monotonic-demotion
// invariant). Returns -1 if the thread has never been enqueued.
func (m *MLFQ) LevelOf(threadID int) int {
	if l, ok := m.levelOf[threadID]; ok {
		return l
	}
	return -1
}
