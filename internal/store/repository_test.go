package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mdub555/schedsim/internal/simtypes"
)

func openTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "schedsim.db"))
	require.NoError(t, err)
	return NewRepository(db)
}

func sampleProcesses() []*simtypes.Process {
	proc := &simtypes.Process{PID: 0, Type: simtypes.NORMAL}
	th := simtypes.NewThread(0, proc, 0, []simtypes.Burst{{Kind: simtypes.CPU, Length: 10}})
	th.SetState(simtypes.READY, 0)
	th.SetState(simtypes.RUNNING, 2)
	th.SetState(simtypes.EXIT, 12)
	proc.Threads = append(proc.Threads, th)
	return []*simtypes.Process{proc}
}

func TestSaveAndGetRun(t *testing.T) {
	repo := openTestDB(t)
	stats := &simtypes.Stats{TotalTime: 12, ServiceTime: 10, DispatchTime: 2}
	cfg := RunConfig{ThreadSwitchOverhead: 1, ProcessSwitchOverhead: 2}

	err := repo.SaveRun("run-1", "demo", "fcfs", 3, cfg, sampleProcesses(), stats)
	require.NoError(t, err)

	run, err := repo.GetRun("run-1")
	require.NoError(t, err)
	require.Equal(t, "demo", run.Name)
	require.Equal(t, "fcfs", run.Policy)
	require.Equal(t, 12, run.TotalTime)

	threads, err := repo.GetRunThreads("run-1")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.Equal(t, 2, threads[0].StartTime)
	require.Equal(t, 12, threads[0].EndTime)
}

func TestListRunsReturnsEverySavedRun(t *testing.T) {
	repo := openTestDB(t)
	stats := &simtypes.Stats{}
	cfg := RunConfig{}

	require.NoError(t, repo.SaveRun("run-a", "", "fcfs", 0, cfg, sampleProcesses(), stats))
	require.NoError(t, repo.SaveRun("run-b", "", "rr", 3, cfg, sampleProcesses(), stats))

	runs, err := repo.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

func TestGetRunMissingReturnsError(t *testing.T) {
	repo := openTestDB(t)
	_, err := repo.GetRun("nonexistent")
	require.Error(t, err)
}
