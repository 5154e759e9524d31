package recreate

import (
	"context"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

// BlinkInsertion is cheapest insertion with a per-candidate "blink": each
// route's result has a Probability chance of being skipped entirely before
// ranking, so the operator occasionally accepts a worse-but-still-feasible
// placement instead of always taking the global best. Run across many
// generations this diversifies the search without the cost of a full
// regret-k computation every step.
type BlinkInsertion struct {
	Probability float64
}

// NewBlinkInsertion returns a BlinkInsertion skipping each candidate route
// with probability p (0 degenerates to plain cheapest insertion).
func NewBlinkInsertion(p float64) *BlinkInsertion {
	return &BlinkInsertion{Probability: p}
}

// Name implements Operator.
func (b *BlinkInsertion) Name() string { return "blink" }

// Recreate implements Operator.
func (b *BlinkInsertion) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	shuffleRequired(ic.Solution, ic.Random)
	pending := ic.Solution.Required
	ic.Solution.Required = nil

	for _, job := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}

		var candidates []insertion.BestJobRoute
		for idx, rc := range ic.Solution.Routes {
			if ic.Random.Float64() < b.Probability {
				continue
			}
			res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, job)
			if res.Feasible {
				candidates = append(candidates, insertion.BestJobRoute{Job: job, RouteIdx: idx, Result: res})
			}
		}

		if len(candidates) == 0 {
			if rc, opened := openNewRoute(ic); opened {
				res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, job)
				if res.Feasible {
					insertion.Apply(problem, ic.Solution, len(ic.Solution.Routes)-1, job, res)
					continue
				}
			}
			ic.Solution.MarkUnassigned(job, reasonNoFeasiblePosition)
			continue
		}

		best := insertion.BestSelector{}.Select(candidates)
		insertion.Apply(problem, ic.Solution, best.RouteIdx, job, best.Result)
	}

	problem.Constraint.AcceptSolutionState(ic.Solution)
	return nil
}
