package profiler

import (
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
)

// Stats is one sampling window of frame and memory statistics.
type Stats struct {
	Frames    int
	FPS       float64
	FrameTime time.Duration // average over the window

	HeapMB      float64
	AllocRateMB float64 // MB allocated per second during the window
	SysMB       float64

	GCCount   uint32
	LastPause time.Duration
	MaxPause  time.Duration // longest pause since the previous window
}

// LogValue implements slog.LogValuer so a Stats can be logged as one grouped attribute.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("fps", formatFloat(s.FPS)),
		slog.Duration("frame_time", s.FrameTime),
		slog.String("heap_mb", formatFloat(s.HeapMB)),
		slog.String("alloc_rate_mb", formatFloat(s.AllocRateMB)),
		slog.String("sys_mb", formatFloat(s.SysMB)),
		slog.Uint64("gc", uint64(s.GCCount)),
		slog.Duration("gc_last", s.LastPause),
		slog.Duration("gc_max", s.MaxPause),
	)
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Stats are sampled and logged at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last   Stats
	logger *slog.Logger
	now    func() time.Time
	quiet  bool
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = logger.Core()
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// When the update interval has elapsed a new Stats window is sampled and logged.
//
// Returns:
//   - Stats: the sampled window, or the previous one if the interval has not elapsed
//   - bool: true if a new window was sampled this tick
func (p *Profiler) Tick() (Stats, bool) {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return p.last, false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()
	s := Stats{
		Frames:    p.frameCount,
		FPS:       float64(p.frameCount) / seconds,
		FrameTime: elapsed / time.Duration(p.frameCount),
		// Alloc is live heap, Sys is the process footprint obtained from the OS.
		HeapMB:      toMB(p.memStats.Alloc),
		SysMB:       toMB(p.memStats.Sys),
		AllocRateMB: toMB(p.memStats.TotalAlloc-p.lastTotalAlloc) / seconds,
		GCCount:     p.memStats.NumGC,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		s.LastPause = time.Duration(p.memStats.PauseNs[(gcCount-1)%256])
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPause = max(s.MaxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	if !p.quiet {
		p.logger.Info("profiler", slog.Any("stats", s))
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return s, true
}

// Last returns the most recently sampled window.
func (p *Profiler) Last() Stats {
	return p.last
}

func toMB(b uint64) float64 {
	return float64(b) / 1024 / 1024
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
