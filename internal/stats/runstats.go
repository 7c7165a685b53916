// Package stats tracks rolling population statistics over a simulation run.
package stats

import (
	"math"
	"time"
)

// RunStats accumulates per-generation population figures. The simulation
// loop is its only writer; once the run ends it is read-only.
type RunStats struct {
	generation int
	initial    int
	population int
	peak       int
	cumulative int
	history    []int
	reason     string
	startedAt  time.Time
	nowFunc    func() time.Time // injectable clock for testing
}

// New creates an empty RunStats whose runtime is measured from now.
func New() *RunStats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *RunStats {
	return &RunStats{startedAt: now(), nowFunc: now}
}

// Update records the population of the next generation.
func (s *RunStats) Update(population int) {
	s.generation++
	s.population = population
	if s.generation == 1 {
		s.initial = population
	}
	if population > s.peak {
		s.peak = population
	}
	s.cumulative += population
	s.history = append(s.history, population)
}

// Generation returns the number of recorded generations. The seeded board
// is generation 1.
func (s *RunStats) Generation() int { return s.generation }

// Initial returns the population of generation 1.
func (s *RunStats) Initial() int { return s.initial }

// Population returns the most recent population.
func (s *RunStats) Population() int { return s.population }

// Peak returns the highest population seen.
func (s *RunStats) Peak() int { return s.peak }

// History returns a copy of the recorded populations in order.
func (s *RunStats) History() []int {
	out := make([]int, len(s.history))
	copy(out, s.history)
	return out
}

// Average returns the mean population, or 0 before the first update.
func (s *RunStats) Average() float64 {
	if s.generation == 0 {
		return 0
	}
	return float64(s.cumulative) / float64(s.generation)
}

// Runtime returns the wall-clock time since the stats were created.
func (s *RunStats) Runtime() time.Duration {
	return s.nowFunc().Sub(s.startedAt)
}

// StdDev returns the population standard deviation of the history. The
// second return value is false when fewer than two samples exist.
func (s *RunStats) StdDev() (float64, bool) {
	n := len(s.history)
	if n < 2 {
		return 0, false
	}
	mean := 0.0
	for _, v := range s.history {
		mean += float64(v)
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range s.history {
		d := float64(v) - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(n)), true
}

// Trend renders the last width samples as a block sparkline.
func (s *RunStats) Trend(width int) string {
	if width <= 0 || len(s.history) == 0 {
		return ""
	}
	window := s.history
	if len(window) > width {
		window = window[len(window)-width:]
	}
	return Sparkline(window)
}

// SetReason records why the run ended. Only the first call has an effect;
// it reports whether the reason was set.
func (s *RunStats) SetReason(reason string) bool {
	if s.reason != "" || reason == "" {
		return false
	}
	s.reason = reason
	return true
}

// Reason returns the terminal reason, or "" while the run is live.
func (s *RunStats) Reason() string { return s.reason }
