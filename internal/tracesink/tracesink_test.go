package tracesink

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdub555/schedsim/internal/simtypes"
)

func TestConsoleSinkStateTransitionWritesLogLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(log.New(&buf, "", 0))

	proc := &simtypes.Process{PID: 0, Type: simtypes.NORMAL}
	th := simtypes.NewThread(1, proc, 0, []simtypes.Burst{{Kind: simtypes.CPU, Length: 5}})
	event := &simtypes.Event{Type: simtypes.ThreadArrived, Time: 3, Thread: th}

	sink.StateTransition(event, simtypes.NEW, simtypes.READY)

	out := buf.String()
	assert.Contains(t, out, "t=3")
	assert.Contains(t, out, "NEW -> READY")
}

func TestConsoleSinkFinalSummarizesEachThread(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(log.New(&buf, "", 0))

	proc := &simtypes.Process{PID: 0, Type: simtypes.BATCH}
	th := simtypes.NewThread(1, proc, 0, []simtypes.Burst{{Kind: simtypes.CPU, Length: 5}})
	th.SetState(simtypes.READY, 0)
	th.SetState(simtypes.RUNNING, 0)
	th.SetState(simtypes.EXIT, 5)
	proc.Threads = append(proc.Threads, th)

	stats := &simtypes.Stats{TotalTime: 5, ServiceTime: 5, CPUUtilization: 100}
	sink.Final([]*simtypes.Process{proc}, stats)

	out := buf.String()
	assert.True(t, strings.Contains(out, "thread 1"))
	assert.True(t, strings.Contains(out, "total_time=5"))
}

type fakeSink struct {
	transitions int
	dispatches  int
	finals      int
}

func (f *fakeSink) StateTransition(*simtypes.Event, simtypes.ThreadState, simtypes.ThreadState) {
	f.transitions++
}
func (f *fakeSink) Dispatch(*simtypes.Event, *simtypes.SchedulingDecision) { f.dispatches++ }
func (f *fakeSink) Final([]*simtypes.Process, *simtypes.Stats)            { f.finals++ }

func TestMultiSinkFansOutToEverySink(t *testing.T) {
	a, b := &fakeSink{}, &fakeSink{}
	multi := NewMultiSink(a, b, nil)

	multi.StateTransition(&simtypes.Event{}, simtypes.NEW, simtypes.READY)
	multi.Dispatch(&simtypes.Event{}, &simtypes.SchedulingDecision{})
	multi.Final(nil, &simtypes.Stats{})

	assert.Equal(t, 1, a.transitions)
	assert.Equal(t, 1, b.transitions)
	assert.Equal(t, 1, a.dispatches)
	assert.Equal(t, 1, a.finals)
}
