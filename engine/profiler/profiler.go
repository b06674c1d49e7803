package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Profiler tracks render frame rate, simulation step timing, and heap usage.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	mu sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration

	stepCount int
	stepTotal time.Duration
	stepMax   time.Duration

	memStats runtime.MemStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// RecordStep records the wall time of one simulation tick. Call once per tick
// from the tick loop; the aggregated average and maximum are logged by Tick.
//
// Parameters:
//   - d: the tick's duration
func (p *Profiler) RecordStep(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stepCount++
	p.stepTotal += d
	if d > p.stepMax {
		p.stepMax = d
	}
}

// Tick should be called once per render frame to track frame timing.
// Logs performance statistics when the update interval has elapsed:
// FPS, average and worst simulation step time, and heap usage.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	var stepAvgUs, stepMaxUs int64
	if p.stepCount > 0 {
		stepAvgUs = p.stepTotal.Microseconds() / int64(p.stepCount)
		stepMaxUs = p.stepMax.Microseconds()
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024

	log.Printf("[Profiler] FPS: %.2f | Step: avg %d µs, max %d µs (%d ticks) | Heap: %.2f MB",
		fps, stepAvgUs, stepMaxUs, p.stepCount, allocMB)

	p.frameCount = 0
	p.stepCount = 0
	p.stepTotal = 0
	p.stepMax = 0
	p.lastTime = currentTime
	return true
}
