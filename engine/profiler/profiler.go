package profiler

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Profiler tracks frame rate, trace activity, and memory statistics for
// performance monitoring. Because frames are only re-traced when the camera
// or framebuffer changes, the traced/reused split shows how much work the
// frame cache is saving. Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	tracedCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		frameCount:     0,
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
}

// Tick should be called once per presented frame.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, traced vs reused frame counts, camera position,
// heap usage, allocation rate, and GC count.
//
// Parameters:
//   - traced: whether this frame was freshly traced or served from the cache
//   - position: the camera's world position this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(traced bool, position mgl32.Vec3) bool {
	p.frameCount++
	if traced {
		p.tracedCount++
	}
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	reused := p.frameCount - p.tracedCount

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	// Calculate allocation rate (MB/sec)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC

	log.Printf("[Profiler] FPS: %.2f | Traced: %d | Reused: %d | Cam: (%.1f, %.1f, %.1f) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d | Sys: %.2f MB",
		fps, p.tracedCount, reused, position.X(), position.Y(), position.Z(), allocMB, allocRateMB, gcCount, sysMB)

	p.frameCount = 0
	p.tracedCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
