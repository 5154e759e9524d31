// Package recreate implements the constructive half of ruin-and-recreate:
// operators that take the jobs left in a SolutionContext's Required list
// after a ruin operator ran, and reinsert them via the insertion package's
// best-position search, differing only in the order jobs are considered and
// how much the evaluator's result is perturbed before committing.
//
// Every operator builds a feasible solution first and leaves optimization
// to later generations; infeasible leftovers stay in Required rather than
// failing the pass.
package recreate

import (
	"context"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

// Operator reinserts every job in ctx.Solution.Required (as far as
// feasible), mutating ctx.Solution in place and leaving any job that could
// not be placed in Required with an UnassignedReason recorded.
type Operator interface {
	Name() string
	Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error
}

// reasonNoFeasiblePosition is recorded when every open route (and opening a
// new one) rejected a job outright.
const reasonNoFeasiblePosition = 1

// openNewRoute pulls the next available actor from the registry and opens
// an empty route for it, or returns false if none remain.
func openNewRoute(ic *model.InsertionContext) (*model.RouteContext, bool) {
	available := ic.Solution.Registry.Available()
	if len(available) == 0 {
		return nil, false
	}
	actor := available[0]
	ic.Solution.Registry.Use(actor)
	rc := model.NewRouteContext(model.NewRoute(actor))
	ic.Solution.Routes = append(ic.Solution.Routes, rc)
	return rc, true
}

// CheapestInsertion places each required job, one at a time, into whichever
// open route (or freshly opened route) yields the lowest total cost. Ties
// are broken by route order, making results reproducible given a
// reproducible job order.
type CheapestInsertion struct {
	Selector insertion.ResultSelector
}

// NewCheapestInsertion returns a CheapestInsertion using selector to break
// near-ties (pass insertion.BestSelector{} for pure greedy behavior).
func NewCheapestInsertion(selector insertion.ResultSelector) *CheapestInsertion {
	return &CheapestInsertion{Selector: selector}
}

// Name implements Operator.
func (c *CheapestInsertion) Name() string { return "cheapest" }

// Recreate implements Operator.
func (c *CheapestInsertion) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	shuffleRequired(ic.Solution, ic.Random)
	pending := ic.Solution.Required
	ic.Solution.Required = nil

	for _, job := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		best, ok := bestAcrossOpenAndNewRoutes(problem, ic, job, c.Selector)
		if !ok {
			ic.Solution.MarkUnassigned(job, reasonNoFeasiblePosition)
			continue
		}
		insertion.Apply(problem, ic.Solution, best.RouteIdx, job, best.Result)
	}
	problem.Constraint.AcceptSolutionState(ic.Solution)
	return nil
}

// bestAcrossOpenAndNewRoutes evaluates job against every currently open
// route and returns the selector's pick among the feasible results. If no
// open route admits it, it tries a fresh route per remaining available actor
// in order and opens and returns the first one that admits the job.
func bestAcrossOpenAndNewRoutes(problem *model.Problem, ic *model.InsertionContext, job *model.Job, selector insertion.ResultSelector) (insertion.BestJobRoute, bool) {
	var candidates []insertion.BestJobRoute
	for idx, rc := range ic.Solution.Routes {
		res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, job)
		if res.Feasible {
			candidates = append(candidates, insertion.BestJobRoute{Job: job, RouteIdx: idx, Result: res})
		}
	}

	if len(candidates) == 0 {
		for _, actor := range ic.Solution.Registry.Available() {
			rc := model.NewRouteContext(model.NewRoute(actor))
			res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, job)
			if !res.Feasible {
				continue
			}
			ic.Solution.Registry.Use(actor)
			ic.Solution.Routes = append(ic.Solution.Routes, rc)
			idx := len(ic.Solution.Routes) - 1
			return insertion.BestJobRoute{Job: job, RouteIdx: idx, Result: res}, true
		}
		return insertion.BestJobRoute{}, false
	}

	if selector == nil {
		selector = insertion.BestSelector{}
	}
	return selector.Select(candidates), true
}
