package engine

import (
	"fmt"

	"github.com/mdub555/schedsim/internal/simtypes"
)

func violate(reason string, event *simtypes.Event, thread *simtypes.Thread) {
	panic(simtypes.InvariantViolation{Reason: reason, Event: event, Thread: thread})
}

func (e *Engine) handleThreadArrived(event *simtypes.Event) {
	t := event.Thread
	if t.CurrentState != simtypes.NEW {
		violate(fmt.Sprintf("THREAD_ARRIVED requires state NEW, got %s", t.CurrentState), event, t)
	}
	t.SetState(simtypes.READY, event.Time)
	e.scheduler.Enqueue(event, t)
	e.invokeDispatcher(event.Time)
}

func (e *Engine) handleDispatcherInvoked(event *simtypes.Event) {
	e.dispatcherPending = false
	decision := e.scheduler.Next(event)
	if e.qobs != nil {
		e.qobs.Observe(event.Time, e.scheduler.Size())
	}
	if decision == nil {
		return // CPU stays idle; a future completion event will re-invoke us.
	}

	nextThread := decision.Thread

	var overhead int
	var followUp simtypes.EventType
	if e.prevThread == nil || nextThread.Process != e.prevThread.Process {
		overhead = e.cfg.ProcessSwitchOverhead
		followUp = simtypes.ProcessDispatchCompleted
	} else {
		overhead = e.cfg.ThreadSwitchOverhead
		followUp = simtypes.ThreadDispatchCompleted
	}
	e.stats.DispatchTime += overhead

	e.queue.Push(&simtypes.Event{
		Type:     followUp,
		Time:     event.Time + overhead,
		Thread:   nextThread,
		Decision: decision,
	})

	e.sink.Dispatch(event, decision)
	e.activeThread = nextThread
}

// handleDispatchCompleted handles both THREAD_DISPATCH_COMPLETED and
// PROCESS_DISPATCH_COMPLETED: behaviorally identical in the core, the two
// event types exist only so a sink can tell them apart.
func (e *Engine) handleDispatchCompleted(event *simtypes.Event) {
	t := event.Thread
	if t.CurrentState != simtypes.READY {
		violate(fmt.Sprintf("dispatch completion requires state READY, got %s", t.CurrentState), event, t)
	}
	t.SetState(simtypes.RUNNING, event.Time)
	e.prevThread = e.activeThread
	e.activeThread = t

	burst := t.FrontBurst()
	if burst == nil || burst.Kind != simtypes.CPU {
		violate("dispatch completion requires a CPU burst at the front of the queue", event, t)
	}

	quantum := event.Decision.TimeSlice
	if quantum.LessThan(burst.Length) {
		e.queue.Push(&simtypes.Event{
			Type:     simtypes.ThreadPreempted,
			Time:     event.Time + quantum.Ticks,
			Thread:   t,
			Decision: event.Decision,
		})
		e.stats.ServiceTime += quantum.Ticks
	} else {
		e.queue.Push(&simtypes.Event{
			Type:   simtypes.CPUBurstCompleted,
			Time:   event.Time + burst.Length,
			Thread: t,
		})
		e.stats.ServiceTime += burst.Length
	}
}

func (e *Engine) handleCPUBurstCompleted(event *simtypes.Event) {
	t := event.Thread
	burst := t.FrontBurst()
	if burst == nil || burst.Kind != simtypes.CPU {
		violate("CPU_BURST_COMPLETED requires a CPU burst at the front of the queue", event, t)
	}
	t.PopBurst()

	e.prevThread = e.activeThread
	e.activeThread = nil
	e.invokeDispatcher(event.Time)

	if t.RemainingBursts() == 0 {
		e.queue.Push(&simtypes.Event{Type: simtypes.ThreadCompleted, Time: event.Time, Thread: t})
		return
	}

	t.SetState(simtypes.BLOCKED, event.Time)
	ioBurst := t.FrontBurst()
	e.queue.Push(&simtypes.Event{Type: simtypes.IOBurstCompleted, Time: event.Time + ioBurst.Length, Thread: t})
}

func (e *Engine) handleIOBurstCompleted(event *simtypes.Event) {
	t := event.Thread
	if t.CurrentState != simtypes.BLOCKED {
		violate(fmt.Sprintf("IO_BURST_COMPLETED requires state BLOCKED, got %s", t.CurrentState), event, t)
	}
	t.SetState(simtypes.READY, event.Time)

	ioBurst := t.FrontBurst()
	if ioBurst == nil || ioBurst.Kind != simtypes.IO {
		violate("IO_BURST_COMPLETED requires an IO burst at the front of the queue", event, t)
	}
	e.stats.IOTime += ioBurst.Length
	t.PopBurst()

	e.scheduler.Enqueue(event, t)
	e.invokeDispatcher(event.Time)
}

func (e *Engine) handleThreadPreempted(event *simtypes.Event) {
	t := event.Thread
	if t.CurrentState != simtypes.RUNNING {
		violate(fmt.Sprintf("THREAD_PREEMPTED requires state RUNNING, got %s", t.CurrentState), event, t)
	}
	burst := t.FrontBurst()
	timeSlice := event.Decision.TimeSlice
	if burst == nil || burst.Kind != simtypes.CPU || burst.Length <= timeSlice.Ticks {
		violate("THREAD_PREEMPTED requires a CPU burst longer than the granted time slice", event, t)
	}

	t.SetState(simtypes.READY, event.Time)
	if err := burst.Sub(timeSlice.Ticks); err != nil {
		violate(err.Error(), event, t)
	}
	e.scheduler.Enqueue(event, t)

	e.prevThread = e.activeThread
	e.activeThread = nil
	e.invokeDispatcher(event.Time)
}

func (e *Engine) handleThreadCompleted(event *simtypes.Event) {
	t := event.Thread
	if t.CurrentState != simtypes.RUNNING {
		violate(fmt.Sprintf("THREAD_COMPLETED requires state RUNNING, got %s", t.CurrentState), event, t)
	}
	t.SetState(simtypes.EXIT, event.Time)
	// The dispatcher is not invoked here; CPU_BURST_COMPLETED already
	// invoked it before posting this event.
}
