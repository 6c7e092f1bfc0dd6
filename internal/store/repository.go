package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// Repository persists and retrieves completed simulation runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps an already-open, already-migrated database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveRun converts the final process graph and statistics into a Run
// record (and one ThreadResult per thread) and inserts them in a single
// transaction.
func (r *Repository) SaveRun(runID, name, policy string, quantum int, cfg RunConfig, processes []*simtypes.Process, stats *simtypes.Stats) error {
	run := &Run{
		ID:                    runID,
		Name:                  name,
		Policy:                policy,
		Quantum:               quantum,
		ThreadSwitchOverhead:  cfg.ThreadSwitchOverhead,
		ProcessSwitchOverhead: cfg.ProcessSwitchOverhead,
		TotalTime:             stats.TotalTime,
		ServiceTime:           stats.ServiceTime,
		DispatchTime:          stats.DispatchTime,
		IOTime:                stats.IOTime,
		TotalIdleTime:         stats.TotalIdleTime,
		TotalCPUTime:          stats.TotalCPUTime,
		CPUUtilization:        stats.CPUUtilization,
		CPUEfficiency:         stats.CPUEfficiency,
	}

	for _, p := range processes {
		for _, th := range p.Threads {
			run.Threads = append(run.Threads, ThreadResult{
				RunID:          runID,
				ThreadID:       th.ID,
				ProcessID:      p.PID,
				ProcessType:    int(p.Type),
				ArrivalTime:    th.ArrivalTime,
				StartTime:      th.StartTime,
				EndTime:        th.EndTime,
				ServiceTime:    th.ServiceTime,
				IOTime:         th.IOTime,
				ResponseTime:   th.ResponseTime(),
				TurnaroundTime: th.TurnaroundTime(),
			})
		}
	}

	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("store: save run %s: %w", runID, err)
	}
	return nil
}

// RunConfig mirrors engine.Config, duplicated here so store stays
// independent of the engine package.
type RunConfig struct {
	ThreadSwitchOverhead  int
	ProcessSwitchOverhead int
}

// ListRuns returns every persisted run, newest first, without its threads.
func (r *Repository) ListRuns() ([]Run, error) {
	var runs []Run
	if err := r.db.Order("created_at desc").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by ID, without its threads.
func (r *Repository) GetRun(id string) (*Run, error) {
	var run Run
	if err := r.db.First(&run, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("store: get run %s: %w", id, err)
	}
	return &run, nil
}

// GetRunThreads returns every ThreadResult belonging to a run.
func (r *Repository) GetRunThreads(id string) ([]ThreadResult, error) {
	var threads []ThreadResult
	if err := r.db.Where("run_id = ?", id).Find(&threads).Error; err != nil {
		return nil, fmt.Errorf("store: get threads for run %s: %w", id, err)
	}
	return threads, nil
}
