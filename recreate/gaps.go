package recreate

import (
	"context"
	"sort"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

// GapFillInsertion prefers inserting each pending job into whichever open
// route currently carries the most accumulated waiting time (idle time
// between time-windowed stops), on the theory that idle slack is wasted
// capacity a new job can absorb for free; only once every route's slack has
// been considered does it fall back to plain cheapest insertion across all
// routes and freshly opened ones.
type GapFillInsertion struct {
	Selector insertion.ResultSelector
}

// NewGapFillInsertion returns a GapFillInsertion.
func NewGapFillInsertion(selector insertion.ResultSelector) *GapFillInsertion {
	return &GapFillInsertion{Selector: selector}
}

// Name implements Operator.
func (g *GapFillInsertion) Name() string { return "gaps" }

func routeSlack(rc *model.RouteContext) float64 {
	var total float64
	for _, act := range rc.Route.Activities {
		total += act.WaitingTime
	}
	return total
}

// Recreate implements Operator.
func (g *GapFillInsertion) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	shuffleRequired(ic.Solution, ic.Random)
	pending := ic.Solution.Required
	ic.Solution.Required = nil

	for _, job := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}

		order := append([]*model.RouteContext(nil), ic.Solution.Routes...)
		sort.SliceStable(order, func(i, j int) bool { return routeSlack(order[i]) > routeSlack(order[j]) })

		placed := false
		for _, rc := range order {
			res := insertion.EvaluateJobRoute(problem, ic.Solution, rc, job)
			if !res.Feasible {
				continue
			}
			idx := indexOfRoute(ic.Solution.Routes, rc)
			insertion.Apply(problem, ic.Solution, idx, job, res)
			placed = true
			break
		}
		if placed {
			continue
		}

		best, ok := bestAcrossOpenAndNewRoutes(problem, ic, job, g.Selector)
		if !ok {
			ic.Solution.MarkUnassigned(job, reasonNoFeasiblePosition)
			continue
		}
		insertion.Apply(problem, ic.Solution, best.RouteIdx, job, best.Result)
	}

	problem.Constraint.AcceptSolutionState(ic.Solution)
	return nil
}

func indexOfRoute(routes []*model.RouteContext, target *model.RouteContext) int {
	for i, rc := range routes {
		if rc == target {
			return i
		}
	}
	return -1
}
