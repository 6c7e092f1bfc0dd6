// Package queuestats tracks ready-queue depth over the course of a
// simulation run and derives velocity and acceleration from it, the same
// way a queue-pressure autoscaler would watch a work queue. Adapted here
// from wall-clock sampling to the simulator's virtual clock tick.
//
// This is purely observational: a Tracker is fed samples through
// engine.QueueObserver and never influences a scheduling decision.
package queuestats

// PressureLevel classifies how loaded the ready queue currently looks.
type PressureLevel int

const (
	Low PressureLevel = iota
	Moderate
	High
	Critical
)

func (p PressureLevel) String() string {
	switch p {
	case Low:
		return "low"
	case Moderate:
		return "moderate"
	case High:
		return "high"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Sample is one ready-queue depth observation at a given virtual tick.
type Sample struct {
	Tick  int
	Depth int
}

// defaultWindow bounds how many recent samples feed the velocity and
// acceleration estimates, so a long-running simulation doesn't smear its
// current trend across its entire history.
const defaultWindow = 8

// Tracker accumulates depth samples and derives the queue's rate of change
// (velocity, items/tick) and its rate of change of rate of change
// (acceleration, items/tick^2) over a trailing window of samples.
type Tracker struct {
	window  int
	samples []Sample

	peakDepth  int
	totalDepth int64
	count      int64
}

// New returns a Tracker using the default trailing-window size.
func New() *Tracker {
	return &Tracker{window: defaultWindow}
}

// NewWithWindow returns a Tracker that retains the given number of trailing
// samples for its velocity/acceleration estimate.
func NewWithWindow(window int) *Tracker {
	if window < 2 {
		window = 2
	}
	return &Tracker{window: window}
}

// Observe records a ready-queue depth sample at the given virtual tick.
// Implements engine.QueueObserver.
func (t *Tracker) Observe(now int, depth int) {
	t.samples = append(t.samples, Sample{Tick: now, Depth: depth})
	if len(t.samples) > t.window {
		t.samples = t.samples[len(t.samples)-t.window:]
	}

	if depth > t.peakDepth {
		t.peakDepth = depth
	}
	t.totalDepth += int64(depth)
	t.count++
}

// Depth returns the most recently observed queue depth, or 0 if nothing
// has been observed yet.
func (t *Tracker) Depth() int {
	if len(t.samples) == 0 {
		return 0
	}
	return t.samples[len(t.samples)-1].Depth
}

// PeakDepth returns the largest depth observed across the run so far.
func (t *Tracker) PeakDepth() int {
	return t.peakDepth
}

// MeanDepth returns the average depth across every sample observed.
func (t *Tracker) MeanDepth() float64 {
	if t.count == 0 {
		return 0
	}
	return float64(t.totalDepth) / float64(t.count)
}

// Velocity estimates items/tick using the oldest and newest samples in the
// trailing window. Returns 0 with fewer than two samples or when the
// window spans zero ticks (several DISPATCHER_INVOKED events can land on
// the same tick).
func (t *Tracker) Velocity() float64 {
	if len(t.samples) < 2 {
		return 0
	}
	first, last := t.samples[0], t.samples[len(t.samples)-1]
	dt := last.Tick - first.Tick
	if dt == 0 {
		return 0
	}
	return float64(last.Depth-first.Depth) / float64(dt)
}

// Acceleration estimates items/tick^2 by comparing the velocity across the
// first and second halves of the trailing window. Returns 0 with fewer
// than four samples.
func (t *Tracker) Acceleration() float64 {
	n := len(t.samples)
	if n < 4 {
		return 0
	}
	mid := n / 2

	firstHalf := t.samples[:mid+1]
	secondHalf := t.samples[mid:]

	v1 := velocityOf(firstHalf)
	v2 := velocityOf(secondHalf)

	t1 := midTick(firstHalf)
	t2 := midTick(secondHalf)
	dt := t2 - t1
	if dt == 0 {
		return 0
	}
	return (v2 - v1) / float64(dt)
}

func velocityOf(samples []Sample) float64 {
	if len(samples) < 2 {
		return 0
	}
	first, last := samples[0], samples[len(samples)-1]
	dt := last.Tick - first.Tick
	if dt == 0 {
		return 0
	}
	return float64(last.Depth-first.Depth) / float64(dt)
}

func midTick(samples []Sample) int {
	return samples[len(samples)/2].Tick
}

// Pressure classifies the current queue state from depth and trend: a
// deep queue that is still growing is worse than an equally deep queue
// that is draining.
func (t *Tracker) Pressure() PressureLevel {
	depth := t.Depth()
	velocity := t.Velocity()

	switch {
	case depth == 0:
		return Low
	case depth >= 8 && velocity > 0:
		return Critical
	case depth >= 4:
		return High
	case depth >= 1 && velocity > 0:
		return Moderate
	default:
		return Low
	}
}
