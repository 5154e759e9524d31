package ruin

import "github.com/vrplab/engine/model"

// decayFactor shrinks every operator's weight after a round that did not
// improve the incumbent, so a recently-unlucky operator gradually loses
// influence without ever being pinned to zero (a single bad generation
// should not permanently exile an operator that might work well later in
// the search).
const decayFactor = 0.98

// rewardFactor is the multiplicative boost an operator's weight receives
// after a round that strictly improved the incumbent fitness.
const rewardFactor = 1.2

// AdaptiveSelector is a weighted multi-armed bandit over a fixed set of
// ruin Operators: Select draws one operator with probability proportional
// to its current weight, and Reward/Penalize adjust that weight after the
// caller observes whether the resulting solution improved.
type AdaptiveSelector struct {
	operators []Operator
	weights   []float64
	lastIdx   int
}

// NewAdaptiveSelector returns an AdaptiveSelector over operators, all
// starting with equal weight 1.0.
func NewAdaptiveSelector(operators []Operator) *AdaptiveSelector {
	weights := make([]float64, len(operators))
	for i := range weights {
		weights[i] = 1.0
	}
	return &AdaptiveSelector{operators: operators, weights: weights, lastIdx: -1}
}

// Select draws one operator from ctx.Random weighted by current scores and
// runs it, recording which operator was used so a later Reward/Penalize
// call knows which weight to adjust.
func (s *AdaptiveSelector) Select(ctx *model.InsertionContext) []*model.Job {
	idx := ctx.Random.Weighted(s.weights)
	s.lastIdx = idx
	return s.operators[idx].Ruin(ctx)
}

// Reward boosts the most recently selected operator's weight after an
// improving round.
func (s *AdaptiveSelector) Reward() {
	if s.lastIdx < 0 {
		return
	}
	s.weights[s.lastIdx] *= rewardFactor
}

// Penalize decays the most recently selected operator's weight after a
// non-improving round.
func (s *AdaptiveSelector) Penalize() {
	if s.lastIdx < 0 {
		return
	}
	s.weights[s.lastIdx] *= decayFactor
	if s.weights[s.lastIdx] < 1e-6 {
		s.weights[s.lastIdx] = 1e-6
	}
}

// Weights returns a defensive copy of the current operator weights, for
// telemetry reporting.
func (s *AdaptiveSelector) Weights() map[string]float64 {
	out := make(map[string]float64, len(s.operators))
	for i, op := range s.operators {
		out[op.Name()] = s.weights[i]
	}
	return out
}
