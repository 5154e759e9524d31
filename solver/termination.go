package solver

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// RefinementContext is the state a Termination predicate inspects each
// generation: how many have elapsed, how long the run has taken, the
// external Quota, and a rolling history of best-fitness values for the
// coefficient-of-variation predicate.
type RefinementContext struct {
	Generation int
	StartedAt  time.Time
	Quota      Quota
	history    []float64
}

// recordFitness appends the latest best-fitness value to the rolling
// history, capping it at windowSize entries (oldest dropped) so the
// coefficient-of-variation predicate always looks at a fixed recent window
// rather than the whole run's history.
func (rc *RefinementContext) recordFitness(value float64, windowSize int) {
	rc.history = append(rc.history, value)
	if len(rc.history) > windowSize {
		rc.history = rc.history[len(rc.history)-windowSize:]
	}
}

// Termination decides whether the evolution loop should stop after the
// generation just completed.
type Termination interface {
	IsTerminated(rc *RefinementContext) bool
}

// MaxGenerations stops once rc.Generation reaches Max.
type MaxGenerations struct {
	Max int
}

// IsTerminated implements Termination.
func (t MaxGenerations) IsTerminated(rc *RefinementContext) bool {
	return rc.Generation >= t.Max
}

// MaxElapsed stops once the run has been going for at least Duration.
type MaxElapsed struct {
	Duration time.Duration
}

// IsTerminated implements Termination.
func (t MaxElapsed) IsTerminated(rc *RefinementContext) bool {
	return time.Since(rc.StartedAt) >= t.Duration
}

// QuotaExhausted stops once rc.Quota reports exhaustion (a nil Quota never
// terminates the run).
type QuotaExhausted struct{}

// IsTerminated implements Termination.
func (QuotaExhausted) IsTerminated(rc *RefinementContext) bool {
	return rc.Quota != nil && rc.Quota.IsExhausted()
}

// VariationCoefficient stops once the best-fitness history's coefficient of
// variation (stddev/mean) over the last WindowSize generations drops below
// Threshold, signaling the search has stagnated: further generations are
// unlikely to improve the incumbent meaningfully. The window is
// materialized as a slice, so stddev/mean come from gonum/stat rather than
// a streaming accumulator.
type VariationCoefficient struct {
	WindowSize int
	Threshold  float64
}

// IsTerminated implements Termination.
func (t VariationCoefficient) IsTerminated(rc *RefinementContext) bool {
	if len(rc.history) < t.WindowSize {
		return false
	}
	window := rc.history[len(rc.history)-t.WindowSize:]

	mean := stat.Mean(window, nil)
	if mean == 0 {
		return false
	}
	sd := stat.StdDev(window, nil)
	cv := sd / mean
	if cv < 0 {
		cv = -cv
	}
	return cv < t.Threshold
}

// Any stops as soon as any of its predicates would, short-circuiting in
// order.
type Any []Termination

// IsTerminated implements Termination.
func (a Any) IsTerminated(rc *RefinementContext) bool {
	for _, t := range a {
		if t.IsTerminated(rc) {
			return true
		}
	}
	return false
}
