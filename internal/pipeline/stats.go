package pipeline

import (
	"slices"
	"sync"
	"time"
)

// StatsSnapshot is a point-in-time aggregate of extraction latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

type extractSample struct {
	at time.Time
	ms int64
}

// ExtractStats tracks how long recent text extractions took, within a
// rolling window.
type ExtractStats struct {
	mu      sync.Mutex
	samples []extractSample
	window  time.Duration
}

// NewExtractStats keeps samples for window (one hour when window <= 0).
func NewExtractStats(window time.Duration) *ExtractStats {
	if window <= 0 {
		window = time.Hour
	}
	return &ExtractStats{
		samples: make([]extractSample, 0, 64),
		window:  window,
	}
}

// Record adds one extraction duration. Negative values count as zero.
func (s *ExtractStats) Record(d time.Duration) {
	ms := max(d.Milliseconds(), 0)
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(now)
	s.samples = append(s.samples, extractSample{at: now, ms: ms})
}

// Snapshot aggregates the samples still inside the window.
func (s *ExtractStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	s.expireLocked(now)
	values := make([]int64, len(s.samples))
	for i, sm := range s.samples {
		values[i] = sm.ms
	}
	s.mu.Unlock()

	if len(values) == 0 {
		return StatsSnapshot{}
	}
	slices.Sort(values)

	var sum int64
	for _, v := range values {
		sum += v
	}
	return StatsSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

// expireLocked drops samples older than the window. Samples are appended in
// time order, so the expired ones form a prefix.
func (s *ExtractStats) expireLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.samples) && s.samples[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.samples = slices.Delete(s.samples, 0, i)
	}
}

// percentile interpolates linearly between the closest ranks of sorted.
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
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}
