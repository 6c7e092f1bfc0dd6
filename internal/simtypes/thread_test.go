package simtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadStateMachineLegalTransitions(t *testing.T) {
	proc := &Process{PID: 1, Type: NORMAL}
	th := NewThread(1, proc, 0, []Burst{{Kind: CPU, Length: 10}})

	th.SetState(READY, 0)
	assert.Equal(t, READY, th.CurrentState)
	assert.Equal(t, NEW, th.PreviousState)

	th.SetState(RUNNING, 2)
	assert.True(t, th.HasStarted)
	assert.Equal(t, 2, th.StartTime)

	th.SetState(BLOCKED, 5)
	assert.Equal(t, 3, th.ServiceTime)

	th.SetState(READY, 8)
	assert.Equal(t, 3, th.IOTime)

	th.SetState(RUNNING, 8)
	th.SetState(EXIT, 12)
	assert.Equal(t, 7, th.ServiceTime)
	assert.Equal(t, 12, th.EndTime)
}

func TestThreadStateMachineIllegalTransitionPanics(t *testing.T) {
	proc := &Process{PID: 1, Type: NORMAL}
	th := NewThread(1, proc, 0, []Burst{{Kind: CPU, Length: 10}})

	require.Panics(t, func() {
		th.SetState(RUNNING, 0) // NEW -> RUNNING is illegal
	})
}

func TestThreadResponseTimeZeroWhenDispatchedOnArrival(t *testing.T) {
	proc := &Process{PID: 1, Type: NORMAL}
	th := NewThread(1, proc, 5, []Burst{{Kind: CPU, Length: 1}})
	th.SetState(READY, 5)
	th.SetState(RUNNING, 5) // dispatched at its own arrival tick
	th.SetState(EXIT, 6)

	assert.Equal(t, 0, th.ResponseTime())
	assert.Equal(t, 1, th.TurnaroundTime())
}

func TestValidateBurstSequence(t *testing.T) {
	require.NoError(t, ValidateBurstSequence([]Burst{{Kind: CPU, Length: 5}}))
	require.NoError(t, ValidateBurstSequence([]Burst{
		{Kind: CPU, Length: 4}, {Kind: IO, Length: 3}, {Kind: CPU, Length: 4},
	}))

	require.Error(t, ValidateBurstSequence(nil))
	require.Error(t, ValidateBurstSequence([]Burst{
		{Kind: CPU, Length: 4}, {Kind: IO, Length: 3},
	}))
	require.Error(t, ValidateBurstSequence([]Burst{
		{Kind: IO, Length: 4},
	}))
	require.Error(t, ValidateBurstSequence([]Burst{
		{Kind: CPU, Length: -1},
	}))
}

func TestFrontAndPopBurst(t *testing.T) {
	proc := &Process{PID: 1, Type: NORMAL}
	th := NewThread(1, proc, 0, []Burst{
		{Kind: CPU, Length: 4}, {Kind: IO, Length: 3}, {Kind: CPU, Length: 4},
	})

	require.Equal(t, 3, th.RemainingBursts())
	b := th.FrontBurst()
	require.NotNil(t, b)
	assert.Equal(t, CPU, b.Kind)

	th.PopBurst()
	require.Equal(t, 2, th.RemainingBursts())
	assert.Equal(t, IO, th.FrontBurst().Kind)
}
