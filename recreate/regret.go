package recreate

import (
	"context"
	"math"
	"sort"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

// RegretInsertion orders required jobs by "regret": the gap between each
// job's best and K-th best insertion cost across open routes. Jobs with
// high regret are placed first, since delaying them risks losing their
// cheap position to a competing job; a job whose every route is roughly
// equally (in)convenient can safely wait.
//
// K is arbitrary; the default of 2 is classic regret-2 insertion.
type RegretInsertion struct {
	K        int
	Selector insertion.ResultSelector
}

// NewRegretInsertion returns a RegretInsertion comparing each job's best
// insertion against its k-th best (k=2 for classic regret insertion).
func NewRegretInsertion(k int, selector insertion.ResultSelector) *RegretInsertion {
	if k < 2 {
		k = 2
	}
	return &RegretInsertion{K: k, Selector: selector}
}

// Name implements Operator.
func (r *RegretInsertion) Name() string { return "regret" }

type regretCandidate struct {
	job     *model.Job
	results []insertion.BestJobRoute
	regret  float64
}

// Recreate implements Operator.
func (r *RegretInsertion) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	shuffleRequired(ic.Solution, ic.Random)
	pending := ic.Solution.Required
	ic.Solution.Required = nil

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		candidates := make([]regretCandidate, 0, len(pending))
		for _, job := range pending {
			var results []insertion.BestJobRoute
			for idx, rc := range ic.Solution.Routes {
				res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, job)
				if res.Feasible {
					results = append(results, insertion.BestJobRoute{Job: job, RouteIdx: idx, Result: res})
				}
			}
			sort.SliceStable(results, func(i, j int) bool { return results[i].Result.Cost < results[j].Result.Cost })
			candidates = append(candidates, regretCandidate{job: job, results: results, regret: regretOf(results, r.K)})
		}

		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].regret > candidates[j].regret })

		placed := candidates[0]
		var remaining []*model.Job
		handled := false
		for i, c := range candidates {
			if i == 0 {
				continue
			}
			remaining = append(remaining, c.job)
		}

		if len(placed.results) > 0 {
			best := placed.results[0]
			if r.Selector != nil {
				best = r.Selector.Select(placed.results)
			}
			insertion.Apply(problem, ic.Solution, best.RouteIdx, placed.job, best.Result)
			handled = true
		} else if rc, opened := openNewRoute(ic); opened {
			res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, placed.job)
			if res.Feasible {
				insertion.Apply(problem, ic.Solution, len(ic.Solution.Routes)-1, placed.job, res)
				handled = true
			}
		}
		if !handled {
			ic.Solution.MarkUnassigned(placed.job, reasonNoFeasiblePosition)
		}

		pending = remaining
	}

	problem.Constraint.AcceptSolutionState(ic.Solution)
	return nil
}

func regretOf(results []insertion.BestJobRoute, k int) float64 {
	if len(results) == 0 {
		return math.Inf(1) // unplaced-so-far jobs get top priority
	}
	if len(results) < k {
		return results[len(results)-1].Result.Cost - results[0].Result.Cost
	}
	return results[k-1].Result.Cost - results[0].Result.Cost
}
