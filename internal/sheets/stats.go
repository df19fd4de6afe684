package sheets

import (
	"context"
	"slices"
	"sync"
	"time"
)

type writeSample struct {
	at       time.Time
	duration time.Duration
	failed   bool
}

// WriteStatsSnapshot aggregates the batch writes inside the window.
type WriteStatsSnapshot struct {
	Count  int     `json:"count"`
	Failed int     `json:"failed"`
	MinMs  int64   `json:"min_ms"`
	MaxMs  int64   `json:"max_ms"`
	AvgMs  float64 `json:"avg_ms"`
	P50Ms  float64 `json:"p50_ms"`
	P95Ms  float64 `json:"p95_ms"`
}

// WriteStats keeps recent batch-write latencies within a rolling window.
type WriteStats struct {
	mu      sync.Mutex
	samples []writeSample
	window  time.Duration
	now     func() time.Time
}

func NewWriteStats(window time.Duration) *WriteStats {
	if window <= 0 {
		window = time.Hour
	}
	return &WriteStats{window: window, now: time.Now}
}

// Observe records one write. Negative durations count as zero.
func (s *WriteStats) Observe(d time.Duration, failed bool) {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	s.samples = append(s.samples, writeSample{at: now, duration: d, failed: failed})
}

func (s *WriteStats) Snapshot() WriteStatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	if len(s.samples) == 0 {
		return WriteStatsSnapshot{}
	}

	ms := make([]int64, 0, len(s.samples))
	var sum int64
	failed := 0
	for _, sm := range s.samples {
		v := sm.duration.Milliseconds()
		ms = append(ms, v)
		sum += v
		if sm.failed {
			failed++
		}
	}
	slices.Sort(ms)

	return WriteStatsSnapshot{
		Count:  len(ms),
		Failed: failed,
		MinMs:  ms[0],
		MaxMs:  ms[len(ms)-1],
		AvgMs:  float64(sum) / float64(len(ms)),
		P50Ms:  percentile(ms, 50),
		P95Ms:  percentile(ms, 95),
	}
}

func (s *WriteStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm writeSample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(rank-float64(lower))
}

// TimedWriter feeds the duration and outcome of every BatchWrite into Stats.
type TimedWriter struct {
	Writer
	Stats *WriteStats
}

func (t TimedWriter) BatchWrite(ctx context.Context, target Target, writes []CellWrite) error {
	start := time.Now()
	err := t.Writer.BatchWrite(ctx, target, writes)
	t.Stats.Observe(time.Since(start), err != nil)
	return err
}
