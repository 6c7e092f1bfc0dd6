package simtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsFinalize(t *testing.T) {
	p0 := &Process{PID: 0, Type: SYSTEM}
	t0 := NewThread(0, p0, 0, []Burst{{Kind: CPU, Length: 5}})
	t0.SetState(READY, 0)
	t0.SetState(RUNNING, 2)
	t0.SetState(EXIT, 7)
	p0.Threads = []*Thread{t0}

	stats := &Stats{TotalTime: 7, ServiceTime: 5, DispatchTime: 2}
	stats.Finalize([]*Process{p0})

	assert.Equal(t, 7, stats.TotalCPUTime)
	assert.Equal(t, 0, stats.TotalIdleTime)
	assert.InDelta(t, 100.0, stats.CPUUtilization, 0.001)
	assert.InDelta(t, 5.0/7.0*100, stats.CPUEfficiency, 0.001)
	assert.Equal(t, 1, stats.ThreadCounts[SYSTEM])
	assert.InDelta(t, 2.0, stats.AvgThreadResponseTimes[SYSTEM], 0.001)
	assert.InDelta(t, 7.0, stats.AvgThreadTurnaroundTimes[SYSTEM], 0.001)
}

func TestStatsFinalizeGuardsDivisionByZero(t *testing.T) {
	stats := &Stats{TotalTime: 0}
	assert.NotPanics(t, func() {
		stats.Finalize(nil)
	})
	assert.Equal(t, 0.0, stats.CPUUtilization)
}
