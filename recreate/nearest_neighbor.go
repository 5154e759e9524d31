package recreate

import (
	"context"
	"sort"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

// NearestNeighborInsertion orders required jobs by transport distance from
// the nearest start location of an open route's actor or a still-available
// actor (nearest first) before
// running cheapest insertion on each in turn, so routes grow outward from
// their depot rather than jumping to a far job early and dragging the rest
// of the route out of shape.
type NearestNeighborInsertion struct {
	Selector insertion.ResultSelector
}

// NewNearestNeighborInsertion returns a NearestNeighborInsertion.
func NewNearestNeighborInsertion(selector insertion.ResultSelector) *NearestNeighborInsertion {
	return &NearestNeighborInsertion{Selector: selector}
}

// Name implements Operator.
func (n *NearestNeighborInsertion) Name() string { return "nearest_neighbor" }

// Recreate implements Operator.
func (n *NearestNeighborInsertion) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	return orderedCheapestInsertion(ctx, problem, ic, n.Selector, true)
}

// FarthestFirstInsertion is NearestNeighborInsertion's mirror: required jobs
// are placed farthest-from-depot first, a classic construction heuristic
// that tends to anchor route extremes before filling in closer jobs.
type FarthestFirstInsertion struct {
	Selector insertion.ResultSelector
}

// NewFarthestFirstInsertion returns a FarthestFirstInsertion.
func NewFarthestFirstInsertion(selector insertion.ResultSelector) *FarthestFirstInsertion {
	return &FarthestFirstInsertion{Selector: selector}
}

// Name implements Operator.
func (f *FarthestFirstInsertion) Name() string { return "farthest_first" }

// Recreate implements Operator.
func (f *FarthestFirstInsertion) Recreate(ctx context.Context, problem *model.Problem, ic *model.InsertionContext) error {
	return orderedCheapestInsertion(ctx, problem, ic, f.Selector, false)
}

// nearestOpenDistance returns job's minimum transport distance to the start
// location of any currently open route's actor or any still-available (not
// yet opened) actor, or 0 if there is neither.
func nearestOpenDistance(problem *model.Problem, sol *model.SolutionContext, job *model.Job) float64 {
	loc := job.Places[0].Location
	best := -1.0
	consider := func(profile model.Profile, from model.Location) {
		d := problem.Transport.Distance(profile, from, loc)
		if best < 0 || d < best {
			best = d
		}
	}
	for _, rc := range sol.Routes {
		consider(rc.Route.Actor.Profile, rc.Route.Actor.StartLocation)
	}
	for _, actor := range sol.Registry.Available() {
		consider(actor.Profile, actor.StartLocation)
	}
	if best < 0 {
		return 0
	}
	return best
}

func orderedCheapestInsertion(ctx context.Context, problem *model.Problem, ic *model.InsertionContext, selector insertion.ResultSelector, nearestFirst bool) error {
	pending := append([]*model.Job(nil), ic.Solution.Required...)
	ic.Solution.Required = nil

	sort.SliceStable(pending, func(i, j int) bool {
		di := nearestOpenDistance(problem, ic.Solution, pending[i])
		dj := nearestOpenDistance(problem, ic.Solution, pending[j])
		if nearestFirst {
			return di < dj
		}
		return di > dj
	})

	for _, job := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		best, ok := bestAcrossOpenAndNewRoutes(problem, ic, job, selector)
		if !ok {
			ic.Solution.MarkUnassigned(job, reasonNoFeasiblePosition)
			continue
		}
		insertion.Apply(problem, ic.Solution, best.RouteIdx, job, best.Result)
	}
	problem.Constraint.AcceptSolutionState(ic.Solution)
	return nil
}
