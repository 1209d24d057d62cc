package embedding

import (
	"sort"
	"sync"
	"time"
)

// CallKind separates query-time single encodes from index-build batches.
type CallKind int

const (
	CallQuery CallKind = iota
	CallBatch
)

// Call describes one finished encoder call.
type Call struct {
	Kind       CallKind
	Texts      int
	DurationMs int64
	Failed     bool
}

type sample struct {
	timestamp time.Time
	call      Call
}

// KindSnapshot aggregates the calls of one kind.
type KindSnapshot struct {
	Count     int     `json:"count"`
	Texts     int     `json:"texts"`
	Errors    int     `json:"errors"`
	AvgMs     float64 `json:"avg_ms"`
	P95Ms     float64 `json:"p95_ms"`
	MsPerText float64 `json:"ms_per_text"`
}

// StatsSnapshot is a point-in-time aggregate of encoder calls. The top-level
// latency fields cover every call; Query and Batch break them down by kind.
type StatsSnapshot struct {
	Count  int          `json:"count"`
	Errors int          `json:"errors"`
	MinMs  int64        `json:"min_ms"`
	MaxMs  int64        `json:"max_ms"`
	AvgMs  float64      `json:"avg_ms"`
	P50Ms  float64      `json:"p50_ms"`
	P95Ms  float64      `json:"p95_ms"`
	P99Ms  float64      `json:"p99_ms"`
	Query  KindSnapshot `json:"query"`
	Batch  KindSnapshot `json:"batch"`
}

// Stats tracks recent encoder calls within a rolling window.
type Stats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewStats(maxAge time.Duration) *Stats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Stats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *Stats) Record(c Call) {
	if c.DurationMs < 0 {
		c.DurationMs = 0
	}
	if c.Texts < 0 {
		c.Texts = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, call: c})
}

func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	if len(s.samples) == 0 {
		return StatsSnapshot{}
	}

	all := make([]int64, 0, len(s.samples))
	var sum int64
	var errs int
	byKind := map[CallKind][]Call{}
	for _, sm := range s.samples {
		all = append(all, sm.call.DurationMs)
		sum += sm.call.DurationMs
		if sm.call.Failed {
			errs++
		}
		byKind[sm.call.Kind] = append(byKind[sm.call.Kind], sm.call)
	}
	sortInt64s(all)

	return StatsSnapshot{
		Count:  len(all),
		Errors: errs,
		MinMs:  all[0],
		MaxMs:  all[len(all)-1],
		AvgMs:  float64(sum) / float64(len(all)),
		P50Ms:  percentile(all, 50),
		P95Ms:  percentile(all, 95),
		P99Ms:  percentile(all, 99),
		Query:  summarize(byKind[CallQuery]),
		Batch:  summarize(byKind[CallBatch]),
	}
}

func summarize(calls []Call) KindSnapshot {
	if len(calls) == 0 {
		return KindSnapshot{}
	}
	out := KindSnapshot{Count: len(calls)}
	values := make([]int64, 0, len(calls))
	var sum int64
	for _, c := range calls {
		values = append(values, c.DurationMs)
		sum += c.DurationMs
		out.Texts += c.Texts
		if c.Failed {
			out.Errors++
		}
	}
	sortInt64s(values)
	out.AvgMs = float64(sum) / float64(len(values))
	out.P95Ms = percentile(values, 95)
	if out.Texts > 0 {
		out.MsPerText = float64(sum) / float64(out.Texts)
	}
	return out
}

func (s *Stats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	keep := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			keep = append(keep, sm)
		}
	}
	s.samples = keep
}

func sortInt64s(v []int64) {
	sort.Slice(v, func(i, j int) bool { return v[i] < v[j] })
}

func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	rank := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := rank - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}
