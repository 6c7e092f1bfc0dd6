// Command schedsim runs a discrete-event CPU-scheduling simulation over a
// workload file and prints the resulting per-thread timings and
// system-wide statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mdub555/schedsim/internal/engine"
	"github.com/mdub555/schedsim/internal/queuestats"
	"github.com/mdub555/schedsim/internal/schedpolicy"
	"github.com/mdub555/schedsim/internal/simtypes"
	"github.com/mdub555/schedsim/internal/store"
	"github.com/mdub555/schedsim/internal/tracesink"
	"github.com/mdub555/schedsim/internal/workload"
)

func main() {
	var (
		policyName    = flag.String("policy", "fcfs", "scheduling policy: fcfs, rr, priority, or mlfq")
		quantum       = flag.Int("quantum", schedpolicy.DefaultQuantum, "time slice in ticks for rr/mlfq")
		threadSwitch  = flag.Int("thread-switch", -1, "override the workload file's thread-switch overhead")
		processSwitch = flag.Int("process-switch", -1, "override the workload file's process-switch overhead")
		dbPath        = flag.String("db", "", "optional path to a SQLite database to also persist this run")
		runName       = flag.String("name", "", "optional run name, used only when --db is set")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <workload-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	wl, err := workload.Load(path)
	if err != nil {
		log.Printf("failed to load workload: %v", err)
		os.Exit(1)
	}

	if *threadSwitch >= 0 {
		wl.ThreadSwitchOverhead = *threadSwitch
	}
	if *processSwitch >= 0 {
		wl.ProcessSwitchOverhead = *processSwitch
	}

	sched, err := schedpolicy.New(*policyName, *quantum)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	cfg := engine.Config{
		ThreadSwitchOverhead:  wl.ThreadSwitchOverhead,
		ProcessSwitchOverhead: wl.ProcessSwitchOverhead,
	}
	eng := engine.New(cfg, sched, wl.Processes)

	sinks := []tracesink.Sink{tracesink.NewConsoleSink(nil)}

	var dbSink *tracesink.DBSink
	if *dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
			log.Printf("failed to create database directory: %v", err)
			os.Exit(1)
		}
		db, err := store.Open(*dbPath)
		if err != nil {
			log.Printf("failed to open database: %v", err)
			os.Exit(1)
		}
		repo := store.NewRepository(db)
		dbSink = tracesink.NewDBSink(repo, *runName, *policyName, *quantum, store.RunConfig{
			ThreadSwitchOverhead:  wl.ThreadSwitchOverhead,
			ProcessSwitchOverhead: wl.ProcessSwitchOverhead,
		})
		sinks = append(sinks, dbSink)
	}
	eng.SetSink(tracesink.NewMultiSink(sinks...))

	tracker := queuestats.New()
	eng.SetQueueObserver(tracker)

	eng.Seed(wl.Arrivals)
	runSimulation(eng)

	log.Printf("peak ready-queue depth: %d, mean depth: %.2f", tracker.PeakDepth(), tracker.MeanDepth())
	if dbSink != nil {
		log.Printf("run persisted to %s with id %s", *dbPath, dbSink.RunID())
	}
}

// runSimulation runs the engine to completion, recovering an
// InvariantViolation as a reported diagnostic rather than letting the
// panic reach the runtime's default handler. The one point in this
// program where that panic is caught.
func runSimulation(eng *engine.Engine) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(simtypes.InvariantViolation); ok {
				log.Printf("invariant violation: %v", iv)
				os.Exit(1)
			}
			panic(r)
		}
	}()
	eng.Run()
}
