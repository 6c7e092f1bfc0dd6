package simtypes

// Stats accumulates system-wide utilization figures and per-process-type
// averages over the course of a run.
type Stats struct {
	TotalTime      int
	DispatchTime   int
	ServiceTime    int
	IOTime         int
	TotalCPUTime   int
	TotalIdleTime  int
	CPUUtilization float64
	CPUEfficiency  float64

	ThreadCounts             [NumProcessTypes]int
	AvgThreadResponseTimes   [NumProcessTypes]float64
	AvgThreadTurnaroundTimes [NumProcessTypes]float64
}

// Finalize computes the derived scalars and per-type averages from the
// accumulated counters and the final process/thread graph: response and
// turnaround times are summed per type then divided by that type's thread
// count, guarding division by zero.
func (s *Stats) Finalize(processes []*Process) {
	s.TotalCPUTime = s.ServiceTime + s.DispatchTime
	s.TotalIdleTime = s.TotalTime - s.TotalCPUTime

	if s.TotalTime > 0 {
		s.CPUUtilization = 100 * float64(s.TotalCPUTime) / float64(s.TotalTime)
		s.CPUEfficiency = 100 * float64(s.ServiceTime) / float64(s.TotalTime)
	}

	for _, p := range processes {
		typ := int(p.Type)
		for _, th := range p.Threads {
			s.ThreadCounts[typ]++
			s.AvgThreadResponseTimes[typ] += float64(th.ResponseTime())
			s.AvgThreadTurnaroundTimes[typ] += float64(th.TurnaroundTime())
		}
	}

	for i := 0; i < NumProcessTypes; i++ {
		if s.ThreadCounts[i] > 0 {
			s.AvgThreadResponseTimes[i] /= float64(s.ThreadCounts[i])
			s.AvgThreadTurnaroundTimes[i] /= float64(s.ThreadCounts[i])
		}
	}
}
