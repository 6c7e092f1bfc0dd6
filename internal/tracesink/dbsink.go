package tracesink

import (
	"log"

	"github.com/google/uuid"

	"github.com/mdub555/schedsim/internal/simtypes"
	"github.com/mdub555/schedsim/internal/store"
)

// DBSink persists a run's final per-thread timings and system statistics
// to the SQLite store once the run completes. It ignores every
// intermediate StateTransition/Dispatch notification: the store models a
// finished run, not a live trace.
type DBSink struct {
	repo    *store.Repository
	runID   string
	name    string
	policy  string
	quantum int
	cfg     store.RunConfig
}

// NewDBSink returns a sink that will persist exactly one run, identified
// by a freshly generated UUID, once Final is called.
func NewDBSink(repo *store.Repository, name, policy string, quantum int, cfg store.RunConfig) *DBSink {
	return &DBSink{
		repo:    repo,
		runID:   uuid.NewString(),
		name:    name,
		policy:  policy,
		quantum: quantum,
		cfg:     cfg,
	}
}

// RunID reports the UUID this sink will persist its run under.
func (d *DBSink) RunID() string { return d.runID }

func (d *DBSink) StateTransition(*simtypes.Event, simtypes.ThreadState, simtypes.ThreadState) {}
func (d *DBSink) Dispatch(*simtypes.Event, *simtypes.SchedulingDecision)                       {}

func (d *DBSink) Final(processes []*simtypes.Process, stats *simtypes.Stats) {
	if err := d.repo.SaveRun(d.runID, d.name, d.policy, d.quantum, d.cfg, processes, stats); err != nil {
		log.Printf("tracesink: failed to persist run %s: %v", d.runID, err)
	}
}
