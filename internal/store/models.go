// Package store persists simulation runs to SQLite via GORM, so multiple
// runs can be compared later through the read-only HTTP API.
package store

import "time"

// Run is one simulation invocation: the policy and overheads it used, and
// its final system-wide statistics.
type Run struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Policy    string
	Quantum   int
	CreatedAt time.Time

	ThreadSwitchOverhead  int
	ProcessSwitchOverhead int

	TotalTime      int
	ServiceTime    int
	DispatchTime   int
	IOTime         int
	TotalIdleTime  int
	TotalCPUTime   int
	CPUUtilization float64
	CPUEfficiency  float64

	Threads []ThreadResult `gorm:"foreignKey:RunID"`
}

// ThreadResult is one thread's final timing record for a Run.
type ThreadResult struct {
	ID    uint   `gorm:"primaryKey"`
	RunID string `gorm:"index"`

	ThreadID    int
	ProcessID   int
	ProcessType int

	ArrivalTime    int
	StartTime      int
	EndTime        int
	ServiceTime    int
	IOTime         int
	ResponseTime   int
	TurnaroundTime int
}
