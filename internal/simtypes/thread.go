package simtypes

import "fmt"

// ThreadState enumerates the states a thread can occupy.
type ThreadState int

const (
	NEW ThreadState = iota
	READY
	RUNNING
	BLOCKED
	EXIT
)

func (s ThreadState) String() string {
	switch s {
	case NEW:
		return "NEW"
	case READY:
		return "READY"
	case RUNNING:
		return "RUNNING"
	case BLOCKED:
		return "BLOCKED"
	case EXIT:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// transitions enumerates every legal (from, to) pair. The bookkeeping each
// one performs is applied by SetState.
var transitions = map[ThreadState][]ThreadState{
	NEW:     {READY},
	READY:   {RUNNING},
	RUNNING: {READY, BLOCKED, EXIT},
	BLOCKED: {READY},
	EXIT:    {},
}

// CanTransitionTo reports whether the state machine permits from -> to.
func (s ThreadState) CanTransitionTo(to ThreadState) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Thread is a unit of scheduling: a sequence of alternating CPU/IO bursts
// belonging to a Process.
type Thread struct {
	ID      int
	Process *Process

	ArrivalTime     int
	StartTime       int
	HasStarted      bool
	EndTime         int
	ServiceTime     int
	IOTime          int
	StateChangeTime int

	CurrentState  ThreadState
	PreviousState ThreadState

	bursts []Burst
}

// NewThread constructs a thread in state NEW, owned by process, with the
// given (already-validated) burst sequence.
func NewThread(id int, process *Process, arrival int, bursts []Burst) *Thread {
	return &Thread{
		ID:              id,
		Process:         process,
		ArrivalTime:     arrival,
		StateChangeTime: arrival,
		CurrentState:    NEW,
		bursts:          bursts,
	}
}

// FrontBurst returns a pointer to the burst at the head of the queue, or nil
// if the thread has no remaining bursts.
func (t *Thread) FrontBurst() *Burst {
	if len(t.bursts) == 0 {
		return nil
	}
	return &t.bursts[0]
}

// PopBurst removes the burst at the head of the queue.
func (t *Thread) PopBurst() {
	if len(t.bursts) == 0 {
		return
	}
	t.bursts = t.bursts[1:]
}

// RemainingBursts reports how many bursts (CPU and IO) are left.
func (t *Thread) RemainingBursts() int {
	return len(t.bursts)
}

// SetState performs the legal transition current -> state at the given
// virtual time, applying the bookkeeping side effects (service time, I/O
// time, start/end time) owed for that transition. It panics with an
// InvariantViolation on an illegal transition, matching this simulator's
// fail-fast error policy: a bad transition means the simulator itself has
// a bug, not the input.
func (t *Thread) SetState(state ThreadState, now int) {
	if !t.CurrentState.CanTransitionTo(state) {
		panic(InvariantViolation{
			Reason: fmt.Sprintf("illegal thread state transition %s -> %s", t.CurrentState, state),
			Thread: t,
		})
	}

	switch {
	case t.CurrentState == READY && state == RUNNING:
		if !t.HasStarted {
			t.StartTime = now
			t.HasStarted = true
		}
	case t.CurrentState == RUNNING && state == READY:
		t.ServiceTime += now - t.StateChangeTime
	case t.CurrentState == RUNNING && state == BLOCKED:
		t.ServiceTime += now - t.StateChangeTime
	case t.CurrentState == BLOCKED && state == READY:
		t.IOTime += now - t.StateChangeTime
	case t.CurrentState == RUNNING && state == EXIT:
		t.ServiceTime += now - t.StateChangeTime
		t.EndTime = now
	}

	t.PreviousState = t.CurrentState
	t.CurrentState = state
	t.StateChangeTime = now
}

// ResponseTime is start_time - arrival_time. Zero is valid: a thread
// dispatched at its own arrival tick with zero overhead has responded
// immediately.
func (t *Thread) ResponseTime() int {
	return t.StartTime - t.ArrivalTime
}

// TurnaroundTime is end_time - arrival_time.
func (t *Thread) TurnaroundTime() int {
	return t.EndTime - t.ArrivalTime
}

// InvariantViolation is the fatal, unrecoverable error kind covering
// illegal state transitions, burst-kind mismatches, bad preemptions, and
// duplicate scheduling decisions. The simulator never attempts to recover
// from one; it always propagates up and aborts the run.
type InvariantViolation struct {
	Reason string
	Event  *Event
	Thread *Thread
}

func (e InvariantViolation) Error() string {
	if e.Thread != nil {
		return fmt.Sprintf("invariant violation: %s (thread %d)", e.Reason, e.Thread.ID)
	}
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}
