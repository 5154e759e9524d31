// Package population implements the NSGA-II-style population container the
// evolution loop selects parents from and inserts offspring into: a bounded
// Pareto archive rather than a single incumbent.
package population

import (
	"sort"

	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/nsga2"
	"github.com/vrplab/engine/randutil"
)

// DominancePopulation holds up to MaxSize solutions, ranked by Pareto front
// and, within a front, by crowding distance (larger is better - more
// isolated solutions are kept preferentially, to maintain spread across the
// Pareto frontier rather than clustering around one region of it).
type DominancePopulation struct {
	Objective model.MultiObjective
	MaxSize   int
	solutions []*model.InsertionContext
}

// NewDominancePopulation returns an empty DominancePopulation bounded to
// maxSize solutions, ranked under objective.
func NewDominancePopulation(objective model.MultiObjective, maxSize int) *DominancePopulation {
	return &DominancePopulation{Objective: objective, MaxSize: maxSize}
}

// Add inserts ctx into the population and immediately re-ranks/truncates to
// MaxSize, so the population is always sorted best-first after Add returns.
func (p *DominancePopulation) Add(ctx *model.InsertionContext) {
	p.solutions = append(p.solutions, ctx)
	p.rank()
}

// AddAll inserts every ctx in ctxs, ranking once at the end.
func (p *DominancePopulation) AddAll(ctxs []*model.InsertionContext) {
	p.solutions = append(p.solutions, ctxs...)
	p.rank()
}

// Best returns the single best-ranked solution, or nil if the population is
// empty.
func (p *DominancePopulation) Best() *model.InsertionContext {
	if len(p.solutions) == 0 {
		return nil
	}
	return p.solutions[0]
}

// Select draws one parent from the population, weighted toward better
// ranks: solutions are already ordered by front then crowding (see rank),
// so each rank's draw weight decays geometrically from the head of the
// list. Returns nil on an empty population.
func (p *DominancePopulation) Select(r *randutil.Random) *model.InsertionContext {
	if len(p.solutions) == 0 {
		return nil
	}
	weights := make([]float64, len(p.solutions))
	w := 1.0
	for i := range weights {
		weights[i] = w
		w *= selectionDecay
	}
	return p.solutions[r.Weighted(weights)]
}

// selectionDecay is the per-rank weight falloff Select applies: each rank
// is drawn 0.75x as often as the rank above it.
const selectionDecay = 0.75

// Ranked returns every solution in global NSGA-II order: front index first,
// then descending crowding distance within each front. Alias of All, named
// for callers that care about the ordering contract rather than the
// snapshot.
func (p *DominancePopulation) Ranked() []*model.InsertionContext { return p.All() }

// All returns every solution currently retained, best-first.
func (p *DominancePopulation) All() []*model.InsertionContext {
	out := make([]*model.InsertionContext, len(p.solutions))
	copy(out, p.solutions)
	return out
}

// Size returns the number of solutions currently retained.
func (p *DominancePopulation) Size() int { return len(p.solutions) }

// rank runs fast-non-dominated-sort and crowding distance over the current
// solutions, reorders them front-by-front (each front internally sorted by
// descending crowding distance), and truncates to MaxSize.
func (p *DominancePopulation) rank() {
	fronts := nsga2.FastNonDominatedSort(p.Objective, p.solutions)

	ordered := make([]*model.InsertionContext, 0, len(p.solutions))
	for _, front := range fronts {
		distances := nsga2.CrowdingDistance(p.Objective, front)
		sort.SliceStable(front, func(i, j int) bool {
			return distances[front[i]] > distances[front[j]]
		})
		ordered = append(ordered, front...)
	}

	if p.MaxSize > 0 && len(ordered) > p.MaxSize {
		ordered = ordered[:p.MaxSize]
	}
	p.solutions = ordered
}
