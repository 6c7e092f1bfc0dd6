// Package workload parses the simulator's input-file format into the
// initial process/thread/burst graph and the corresponding THREAD_ARRIVED
// events, and validates it before the engine ever sees it.
//
// Format: whitespace-separated integer tokens. N, thread_switch_overhead,
// process_switch_overhead, then for each of the N processes: pid type
// num_threads, then for each thread: arrival_time num_cpu_bursts, then
// 2*num_cpu_bursts-1 burst lengths alternating CPU, IO, CPU, ..., CPU.
package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/mdub555/schedsim/internal/simtypes"
)

// Workload is the parsed input: the process/thread graph, the initial
// arrival events in file order, and the configured dispatch overheads.
type Workload struct {
	ThreadSwitchOverhead  int `validate:"gte=0"`
	ProcessSwitchOverhead int `validate:"gte=0"`

	Processes []*simtypes.Process
	Arrivals  []*simtypes.Event
}

// InputError wraps a malformed or unreadable workload file. The CLI
// surfaces it and refuses to run rather than letting the engine start
// against a broken graph.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("workload: %s", e.Reason)
}

var validate = validator.New()

// Load opens path and parses it as a workload file.
func Load(path string) (*Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Reason: err.Error()}
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a workload from r.
func Parse(r io.Reader) (*Workload, error) {
	toks := newTokenizer(r)

	n, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing process count: " + err.Error()}
	}
	if n < 0 {
		return nil, &InputError{Reason: fmt.Sprintf("process count must be non-negative, got %d", n)}
	}

	threadSwitch, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing thread_switch_overhead: " + err.Error()}
	}
	processSwitch, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing process_switch_overhead: " + err.Error()}
	}

	wl := &Workload{ThreadSwitchOverhead: threadSwitch, ProcessSwitchOverhead: processSwitch}

	threadID := 0
	for i := 0; i < n; i++ {
		proc, err := parseProcess(toks, &threadID)
		if err != nil {
			return nil, err
		}
		wl.Processes = append(wl.Processes, proc)
		for _, th := range proc.Threads {
			wl.Arrivals = append(wl.Arrivals, &simtypes.Event{
				Type:   simtypes.ThreadArrived,
				Time:   th.ArrivalTime,
				Thread: th,
			})
		}
	}

	if err := wl.Validate(); err != nil {
		return nil, err
	}
	return wl, nil
}

func parseProcess(toks *tokenizer, nextThreadID *int) (*simtypes.Process, error) {
	pid, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing pid: " + err.Error()}
	}
	typ, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing process type: " + err.Error()}
	}
	if !simtypes.ProcessType(typ).IsValid() {
		return nil, &InputError{Reason: fmt.Sprintf("process %d: invalid type %d", pid, typ)}
	}
	numThreads, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing num_threads: " + err.Error()}
	}
	if numThreads < 1 {
		return nil, &InputError{Reason: fmt.Sprintf("process %d: must have at least one thread", pid)}
	}

	proc := &simtypes.Process{PID: pid, Type: simtypes.ProcessType(typ)}
	for i := 0; i < numThreads; i++ {
		th, err := parseThread(toks, *nextThreadID, proc)
		if err != nil {
			return nil, err
		}
		*nextThreadID++
		proc.Threads = append(proc.Threads, th)
	}
	return proc, nil
}

func parseThread(toks *tokenizer, id int, proc *simtypes.Process) (*simtypes.Thread, error) {
	arrival, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing arrival_time: " + err.Error()}
	}
	if arrival < 0 {
		return nil, &InputError{Reason: fmt.Sprintf("thread %d: arrival_time must be non-negative, got %d", id, arrival)}
	}
	numCPUBursts, err := toks.nextInt()
	if err != nil {
		return nil, &InputError{Reason: "missing num_cpu_bursts: " + err.Error()}
	}
	if numCPUBursts < 1 {
		return nil, &InputError{Reason: fmt.Sprintf("thread %d: must have at least one CPU burst", id)}
	}

	total := 2*numCPUBursts - 1
	bursts := make([]simtypes.Burst, 0, total)
	for i := 0; i < total; i++ {
		length, err := toks.nextInt()
		if err != nil {
			return nil, &InputError{Reason: fmt.Sprintf("thread %d: missing burst length %d: %s", id, i, err.Error())}
		}
		if length < 0 {
			return nil, &InputError{Reason: fmt.Sprintf("thread %d: burst length must be non-negative, got %d", id, length)}
		}
		kind := simtypes.CPU
		if i%2 == 1 {
			kind = simtypes.IO
		}
		bursts = append(bursts, simtypes.Burst{Kind: kind, Length: length})
	}
	if err := simtypes.ValidateBurstSequence(bursts); err != nil {
		return nil, &InputError{Reason: fmt.Sprintf("thread %d: %s", id, err.Error())}
	}

	return simtypes.NewThread(id, proc, arrival, bursts), nil
}

// Validate runs struct-tag validation over the scalar overhead fields and
// the hand-rolled cross-field checks a tag alone cannot express (at least
// one process, every process non-empty).
func (w *Workload) Validate() error {
	if err := validate.Struct(w); err != nil {
		return &InputError{Reason: err.Error()}
	}

	var errs simtypes.ValidationErrors
	errs.AddIf(len(w.Processes) == 0, "Processes", len(w.Processes), "workload must contain at least one process")
	for _, p := range w.Processes {
		if procErr := p.Validate(); procErr != nil {
			errs = append(errs, procErr.(simtypes.ValidationErrors)...)
		}
	}
	if errs.HasErrors() {
		return &InputError{Reason: errs.Error()}
	}
	return nil
}

// tokenizer pulls whitespace-separated integer tokens off a reader without
// loading the whole file into memory.
type tokenizer struct {
	sc *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) nextInt() (int, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	var v int
	_, err := fmt.Sscanf(t.sc.Text(), "%d", &v)
	if err != nil {
		return 0, fmt.Errorf("expected integer, got %q", t.sc.Text())
	}
	return v, nil
}
