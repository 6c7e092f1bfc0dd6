// Package tracesink implements the engine.Sink contract: observers that
// consume state-transition notifications and the final statistics record
// without the engine knowing how they're used.
package tracesink

import (
	"log"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// ConsoleSink prints every state transition and dispatch decision, and a
// final statistics summary, through a *log.Logger (by default the
// standard logger, which writes to stderr).
type ConsoleSink struct {
	logger *log.Logger
}

// NewConsoleSink returns a sink writing through logger. A nil logger falls
// back to log.Default().
func NewConsoleSink(logger *log.Logger) *ConsoleSink {
	if logger == nil {
		logger = log.Default()
	}
	return &ConsoleSink{logger: logger}
}

func (c *ConsoleSink) StateTransition(event *simtypes.Event, from, to simtypes.ThreadState) {
	c.logger.Printf("t=%-5d thread=%-3d %-24s %s -> %s", event.Time, event.Thread.ID, event.Type, from, to)
}

func (c *ConsoleSink) Dispatch(event *simtypes.Event, decision *simtypes.SchedulingDecision) {
	c.logger.Printf("t=%-5d dispatch thread=%d: %s", event.Time, decision.Thread.ID, decision.Explanation)
}

func (c *ConsoleSink) Final(processes []*simtypes.Process, stats *simtypes.Stats) {
	for _, p := range processes {
		for _, th := range p.Threads {
			c.logger.Printf("process %d (%s) thread %d: arrival=%d start=%d end=%d service=%d io=%d response=%d turnaround=%d",
				p.PID, p.Type, th.ID, th.ArrivalTime, th.StartTime, th.EndTime, th.ServiceTime, th.IOTime,
				th.ResponseTime(), th.TurnaroundTime())
		}
	}
	c.logger.Printf("total_time=%d service_time=%d dispatch_time=%d io_time=%d idle_time=%d cpu_utilization=%.2f cpu_efficiency=%.2f",
		stats.TotalTime, stats.ServiceTime, stats.DispatchTime, stats.IOTime, stats.TotalIdleTime,
		stats.CPUUtilization, stats.CPUEfficiency)
}

// MultiSink fans every notification out to a set of sinks, in order, so a
// single run can both print and persist.
type MultiSink struct {
	sinks []Sink
}

// Sink matches engine.Sink, restated here so this package doesn't need to
// import engine just to reference the interface.
type Sink interface {
	StateTransition(event *simtypes.Event, from, to simtypes.ThreadState)
	Dispatch(event *simtypes.Event, decision *simtypes.SchedulingDecision)
	Final(processes []*simtypes.Process, stats *simtypes.Stats)
}

// NewMultiSink fans notifications out to every non-nil sink given.
func NewMultiSink(sinks ...Sink) *MultiSink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			filtered = append(filtered, s)
		}
	}
	return &MultiSink{sinks: filtered}
}

func (m *MultiSink) StateTransition(event *simtypes.Event, from, to simtypes.ThreadState) {
	for _, s := range m.sinks {
		s.StateTransition(event, from, to)
	}
}

func (m *MultiSink) Dispatch(event *simtypes.Event, decision *simtypes.SchedulingDecision) {
	for _, s := range m.sinks {
		s.Dispatch(event, decision)
	}
}

func (m *MultiSink) Final(processes []*simtypes.Process, stats *simtypes.Stats) {
	for _, s := range m.sinks {
		s.Final(processes, stats)
	}
}
