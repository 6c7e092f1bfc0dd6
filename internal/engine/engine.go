// Package engine implements the event-driven simulation engine: the main
// dispatch loop, the eight event handlers, dispatcher invocation, and the
// time accounting and thread-state bookkeeping a CPU-scheduling simulation
// needs.
package engine

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/eventqueue"
	"github.com/mdub555/schedsim/internal/schedpolicy"
	"github.com/mdub555/schedsim/internal/simtypes"
)

// Sink receives state-transition notifications and the final per-process
// and statistics output.
type Sink interface {
	StateTransition(event *simtypes.Event, from, to simtypes.ThreadState)
	Dispatch(event *simtypes.Event, decision *simtypes.SchedulingDecision)
	Final(processes []*simtypes.Process, stats *simtypes.Stats)
}

// QueueObserver is notified of the scheduler's ready-queue size every time
// the dispatcher runs, feeding a ready-queue pressure monitor without it
// needing to reach into engine internals.
type QueueObserver interface {
	Observe(now int, depth int)
}

// noopSink discards every notification; used when the caller attaches no
// sink of its own.
type noopSink struct{}

func (noopSink) StateTransition(*simtypes.Event, simtypes.ThreadState, simtypes.ThreadState) {}
func (noopSink) Dispatch(*simtypes.Event, *simtypes.SchedulingDecision)                       {}
func (noopSink) Final([]*simtypes.Process, *simtypes.Stats)                                   {}

// Config are the engine's fixed dispatch overheads.
type Config struct {
	ThreadSwitchOverhead  int
	ProcessSwitchOverhead int
}

// Engine owns the event queue, the process/thread graph, the scheduler,
// and the running statistics accumulator for one simulation run.
type Engine struct {
	cfg       Config
	scheduler schedpolicy.Scheduler
	queue     *eventqueue.Queue
	processes []*simtypes.Process

	activeThread *simtypes.Thread
	prevThread   *simtypes.Thread

	// dispatcherPending tracks whether a DISPATCHER_INVOKED event is
	// already queued and not yet processed. Without this, two threads
	// arriving at the identical tick would each find active_thread still
	// unset (the first DISPATCHER_INVOKED hasn't run yet) and each post
	// their own dispatcher invocation, letting the scheduler hand out two
	// decisions for what is a single hypothetical CPU. Guarding on
	// "already pending" as well as "already busy" keeps exactly one
	// dispatch in flight per idle period.
	dispatcherPending bool

	stats *simtypes.Stats
	sink  Sink
	qobs  QueueObserver
}

// New constructs an engine over the given processes, ready to run once
// seeded with initial THREAD_ARRIVED events (see Seed).
func New(cfg Config, scheduler schedpolicy.Scheduler, processes []*simtypes.Process) *Engine {
	return &Engine{
		cfg:       cfg,
		scheduler: scheduler,
		queue:     eventqueue.New(),
		processes: processes,
		stats:     &simtypes.Stats{},
		sink:      noopSink{},
	}
}

// SetSink attaches the sink that receives transition and final
// notifications. Passing nil restores the no-op sink.
func (e *Engine) SetSink(sink Sink) {
	if sink == nil {
		sink = noopSink{}
	}
	e.sink = sink
}

// SetQueueObserver attaches the optional ready-queue depth observer.
func (e *Engine) SetQueueObserver(obs QueueObserver) {
	e.qobs = obs
}

// Seed pushes the workload's initial THREAD_ARRIVED events.
func (e *Engine) Seed(arrivals []*simtypes.Event) {
	for _, ev := range arrivals {
		e.queue.Push(ev)
	}
}

// Run drains the event queue to completion, dispatching every event to its
// handler, then finalizes and returns the statistics. Panics with a
// simtypes.InvariantViolation if a handler's contract is violated; callers
// that want InvariantViolation surfaced as an error rather than a panic
// should recover it themselves. Invariant violations are fatal: the engine
// does not attempt to continue past a broken state.
func (e *Engine) Run() *simtypes.Stats {
	for !e.queue.Empty() {
		event := e.queue.Pop()

		var before simtypes.ThreadState
		if event.Thread != nil {
			before = event.Thread.CurrentState
		}

		e.dispatch(event)

		e.stats.TotalTime = event.Time

		if event.Thread != nil && event.Thread.CurrentState != before {
			e.sink.StateTransition(event, before, event.Thread.CurrentState)
		}
	}

	e.stats.Finalize(e.processes)
	e.sink.Final(e.processes, e.stats)
	return e.stats
}

func (e *Engine) dispatch(event *simtypes.Event) {
	switch event.Type {
	case simtypes.ThreadArrived:
		e.handleThreadArrived(event)
	case simtypes.DispatcherInvoked:
		e.handleDispatcherInvoked(event)
	case simtypes.ProcessDispatchCompleted:
		e.handleDispatchCompleted(event)
	case simtypes.ThreadDispatchCompleted:
		e.handleDispatchCompleted(event)
	case simtypes.CPUBurstCompleted:
		e.handleCPUBurstCompleted(event)
	case simtypes.IOBurstCompleted:
		e.handleIOBurstCompleted(event)
	case simtypes.ThreadPreempted:
		e.handleThreadPreempted(event)
	case simtypes.ThreadCompleted:
		e.handleThreadCompleted(event)
	default:
		panic(simtypes.InvariantViolation{Reason: fmt.Sprintf("unknown event type %v", event.Type), Event: event})
	}
}

// invokeDispatcher posts a DISPATCHER_INVOKED event at time iff the CPU is
// idle and no dispatch is already in flight; otherwise a future completion
// event (or the pending dispatch itself) will invoke it instead. The
// pending check matters when several threads become ready at the exact
// same tick: without it, each would see the CPU still idle and post its
// own invocation before the first one ever runs.
func (e *Engine) invokeDispatcher(time int) {
	if e.activeThread != nil || e.dispatcherPending {
		return
	}
	e.queue.Push(&simtypes.Event{Type: simtypes.DispatcherInvoked, Time: time})
	e.dispatcherPending = true
}
