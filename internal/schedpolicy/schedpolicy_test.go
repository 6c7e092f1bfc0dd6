package schedpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdub555/schedsim/internal/simtypes"
)

func thread(id int, typ simtypes.ProcessType) *simtypes.Thread {
	proc := &simtypes.Process{PID: id, Type: typ}
	return simtypes.NewThread(id, proc, 0, []simtypes.Burst{{Kind: simtypes.CPU, Length: 1}})
}

func TestEnqueueThenDequeueIsIdempotentAcrossPolicies(t *testing.T) {
	policies := []Scheduler{NewFCFS(), NewRoundRobin(DefaultQuantum), NewPriority(), NewMLFQ(DefaultQuantum)}
	for _, p := range policies {
		th := thread(1, simtypes.NORMAL)
		p.Enqueue(nil, th)
		dec := p.Next(nil)
		require.NotNil(t, dec)
		assert.Same(t, th, dec.Thread)
		assert.Equal(t, 0, p.Size())
		assert.Nil(t, p.Next(nil))
	}
}

func TestFCFSOrderingAndInfiniteQuantum(t *testing.T) {
	f := NewFCFS()
	t1, t2 := thread(1, simtypes.NORMAL), thread(2, simtypes.NORMAL)
	f.Enqueue(nil, t1)
	f.Enqueue(nil, t2)

	dec := f.Next(nil)
	assert.Same(t, t1, dec.Thread)
	assert.True(t, dec.TimeSlice.Unlimited)
	assert.Contains(t, dec.Explanation, "Selected from 2 threads")

	dec = f.Next(nil)
	assert.Same(t, t2, dec.Thread)
}

func TestRoundRobinOverwritesTimeSlice(t *testing.T) {
	rr := NewRoundRobin(3)
	t1 := thread(1, simtypes.NORMAL)
	rr.Enqueue(nil, t1)

	dec := rr.Next(nil)
	require.NotNil(t, dec)
	assert.False(t, dec.TimeSlice.Unlimited)
	assert.Equal(t, 3, dec.TimeSlice.Ticks)
	assert.Contains(t, dec.Explanation, "at most 3 ticks")
}

func TestPriorityPicksHighestTypeFirst(t *testing.T) {
	p := NewPriority()
	normal := thread(1, simtypes.NORMAL)
	sys := thread(2, simtypes.SYSTEM)
	p.Enqueue(nil, normal)
	p.Enqueue(nil, sys)

	dec := p.Next(nil)
	require.NotNil(t, dec)
	assert.Same(t, sys, dec.Thread)

	dec = p.Next(nil)
	assert.Same(t, normal, dec.Thread)
}

func TestPriorityTiesAreFIFOWithinType(t *testing.T) {
	p := NewPriority()
	a := thread(1, simtypes.BATCH)
	b := thread(2, simtypes.BATCH)
	p.Enqueue(nil, a)
	p.Enqueue(nil, b)

	assert.Same(t, a, p.Next(nil).Thread)
	assert.Same(t, b, p.Next(nil).Thread)
}

func TestMLFQDemotesOnEveryReEnqueue(t *testing.T) {
	m := NewMLFQ(3)
	th := thread(1, simtypes.SYSTEM) // starts at level 0

	m.Enqueue(nil, th)
	assert.Equal(t, 0, m.LevelOf(th.ID))

	m.Enqueue(nil, th) // re-enqueue (e.g. after preemption or I/O)
	assert.Equal(t, 1, m.LevelOf(th.ID))

	m.Enqueue(nil, th)
	assert.Equal(t, 2, m.LevelOf(th.ID))
}

func TestMLFQLevelClampsAtLastQueue(t *testing.T) {
	m := NewMLFQ(3)
	th := thread(1, simtypes.SYSTEM)
	for i := 0; i < NumLevels+5; i++ {
		m.Enqueue(nil, th)
		m.Next(nil) // drain so the thread is queued at one level at a time
	}
	assert.Equal(t, NumLevels-1, m.LevelOf(th.ID))
}

func TestMLFQStartsAtProcessTypeLevelClamped(t *testing.T) {
	m := NewMLFQ(3)
	batch := thread(1, simtypes.BATCH) // type 3
	m.Enqueue(nil, batch)
	assert.Equal(t, int(simtypes.BATCH), m.LevelOf(batch.ID))
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	_, err := New("nonexistent", 3)
	require.Error(t, err)
}

func TestNewConstructsEachKnownPolicy(t *testing.T) {
	for _, name := range []string{"fcfs", "rr", "priority", "mlfq"} {
		s, err := New(name, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Size())
	}
}
