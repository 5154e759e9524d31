package recreate

import (
	"context"

	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/randutil"
)

// AdaptiveSelector picks one Operator per call, weighted the same way
// ruin.AdaptiveSelector does (equal start weight, reward on improvement,
// decay otherwise), letting the evolution loop learn which recreate
// strategy pays off for a given problem instance instead of fixing one
// upfront.
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

const recreateRewardFactor = 1.2
const recreateDecayFactor = 0.98

// Recreate draws one operator weighted by current scores, via ic.Random,
// and runs it.
func (s *AdaptiveSelector) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	idx := ic.Random.Weighted(s.weights)
	s.lastIdx = idx
	return s.operators[idx].Recreate(ctx, problem, ic)
}

// Name implements Operator.
func (s *AdaptiveSelector) Name() string { return "adaptive" }

// Reward boosts the most recently selected operator's weight.
func (s *AdaptiveSelector) Reward() {
	if s.lastIdx < 0 {
		return
	}
	s.weights[s.lastIdx] *= recreateRewardFactor
}

// Penalize decays the most recently selected operator's weight.
func (s *AdaptiveSelector) Penalize() {
	if s.lastIdx < 0 {
		return
	}
	s.weights[s.lastIdx] *= recreateDecayFactor
	if s.weights[s.lastIdx] < 1e-6 {
		s.weights[s.lastIdx] = 1e-6
	}
}

// shuffleRequired randomly reorders sol.Required in place before a recreate
// pass runs, using r. This is an intentional, observable mutation (not a
// hidden side effect on a defensive copy): operators that process Required
// in slice order would otherwise always favor whichever job happened to
// land first after ruin, biasing construction toward the original job
// ordering call after call.
func shuffleRequired(sol *model.SolutionContext, r *randutil.Random) {
	n := len(sol.Required)
	if n <= 1 {
		return
	}
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		sol.Required[i], sol.Required[j] = sol.Required[j], sol.Required[i]
	}
}
