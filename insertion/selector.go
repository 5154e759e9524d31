package insertion

import "github.com/vrplab/engine/randutil"

// ResultSelector picks one BestJobRoute among candidates scored for the
// same job, each already the winner within its own route. Abstracted so
// recreate operators can swap deterministic greedy selection for a
// noise-perturbed one without touching the fold machinery.
type ResultSelector interface {
	Select(candidates []BestJobRoute) BestJobRoute
}

// BestSelector always picks the lowest-cost feasible candidate, breaking
// ties by the first one encountered (deterministic given a deterministic
// candidate order).
type BestSelector struct{}

// Select implements ResultSelector.
func (BestSelector) Select(candidates []BestJobRoute) BestJobRoute {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Result.Feasible && (!best.Result.Feasible || c.Result.Cost < best.Result.Cost) {
			best = c
		}
	}
	return best
}

// NoiseSelector perturbs each candidate's cost by a multiplicative noise
// factor before comparing, so the recreate phase occasionally accepts a
// slightly-worse-than-best insertion and can escape local optima.
type NoiseSelector struct {
	Random    *randutil.Random
	Amplitude float64
}

// NewNoiseSelector returns a NoiseSelector drawing from random with the
// given noise amplitude (0 disables perturbation, degenerating to
// BestSelector's behavior).
func NewNoiseSelector(random *randutil.Random, amplitude float64) *NoiseSelector {
	return &NoiseSelector{Random: random, Amplitude: amplitude}
}

// Select implements ResultSelector.
func (s *NoiseSelector) Select(candidates []BestJobRoute) BestJobRoute {
	best := candidates[0]
	bestScore := s.score(best)
	for _, c := range candidates[1:] {
		if !c.Result.Feasible {
			continue
		}
		score := s.score(c)
		if !best.Result.Feasible || score < bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

func (s *NoiseSelector) score(c BestJobRoute) float64 {
	if !c.Result.Feasible {
		return c.Result.Cost
	}
	return c.Result.Cost * s.Random.Noise(s.Amplitude)
}
