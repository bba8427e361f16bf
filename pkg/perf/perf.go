// Package perf records call latencies for named operations.
//
// Instrumented functions start with:
//
//	defer perf.Track("provenance.Tracker.ArtifactResolved")()
//
// Tracking is off until Enable is called; the disabled path costs one atomic load.
package perf

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	// Histogram bounds in microseconds: 1µs to 1 minute, 3 significant figures.
	minTrackable = 1
	maxTrackable = int64(time.Minute / time.Microsecond)
	sigFigures   = 3
)

var (
	enabled atomic.Bool

	mu         sync.Mutex
	histograms = map[string]*hdrhistogram.Histogram{}
)

// Stat summarizes the recorded latencies of one operation.
type Stat struct {
	Name  string
	Count int64
	P50   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Enable turns tracking on.
func Enable() {
	enabled.Store(true)
}

// Disable turns tracking off. Recorded data is kept until Reset.
func Disable() {
	enabled.Store(false)
}

// Enabled reports whether tracking is on.
func Enabled() bool {
	return enabled.Load()
}

// Track starts timing name and returns the function that stops it.
func Track(name string) func() {
	if !enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		record(name, time.Since(start))
	}
}

func record(name string, elapsed time.Duration) {
	v := elapsed.Microseconds()
	if v < minTrackable {
		v = minTrackable
	}
	if v > maxTrackable {
		v = maxTrackable
	}

	mu.Lock()
	defer mu.Unlock()

	h, ok := histograms[name]
	if !ok {
		h = hdrhistogram.New(minTrackable, maxTrackable, sigFigures)
		histograms[name] = h
	}
	// Values are clamped to the trackable range above.
	_ = h.RecordValue(v)
}

// Snapshot returns the stats of every tracked operation, sorted by name.
func Snapshot() []Stat {
	mu.Lock()
	defer mu.Unlock()

	stats := make([]Stat, 0, len(histograms))
	for name, h := range histograms {
		stats = append(stats, Stat{
			Name:  name,
			Count: h.TotalCount(),
			P50:   time.Duration(h.ValueAtQuantile(50)) * time.Microsecond,
			P99:   time.Duration(h.ValueAtQuantile(99)) * time.Microsecond,
			Max:   time.Duration(h.Max()) * time.Microsecond,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// Reset drops all recorded data.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	histograms = map[string]*hdrhistogram.Histogram{}
}
