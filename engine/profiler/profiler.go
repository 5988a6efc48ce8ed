// Package profiler reports render-loop throughput and memory pressure while
// the visualizer runs.
package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Profiler accumulates frame counts between reports and samples the runtime's
// memory statistics each time a report is due.
type Profiler struct {
	frames         int
	windowStart    time.Time
	reportInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler that reports once per second.
//
// Returns:
//   - *Profiler: the profiler, ready to tick
func NewProfiler() *Profiler {
	return &Profiler{
		windowStart:    time.Now(),
		reportInterval: time.Second,
	}
}

// Tick records one rendered frame and emits a report when the reporting
// interval has elapsed. The report carries the frame rate, live heap size,
// allocation rate, and GC pause figures as structured fields.
//
// Returns:
//   - bool: true when a report was emitted this tick
func (p *Profiler) Tick() bool {
	p.frames++
	now := time.Now()
	elapsed := now.Sub(p.windowStart)
	if elapsed < p.reportInterval {
		return false
	}

	fps := float64(p.frames) / elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	gcCount := p.memStats.NumGC

	// PauseNs is a 256-entry ring; scan only the pauses that landed in this
	// reporting window.
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	slog.Info("frame stats",
		"fps", fps,
		"heap_mb", float64(p.memStats.Alloc)/1024/1024,
		"alloc_mb_per_s", float64(allocDelta)/1024/1024/elapsed.Seconds(),
		"gc_runs", gcCount,
		"gc_last_pause_us", lastPauseUs,
		"gc_max_pause_us", maxPauseUs,
		"sys_mb", float64(p.memStats.Sys)/1024/1024,
	)

	p.frames = 0
	p.windowStart = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
