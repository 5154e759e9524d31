package insertion

import (
	"math"

	"github.com/vrplab/engine/model"
)

// JobRouteResult is the outcome of searching every feasible position for one
// job within one route: whether any position is feasible, the best one
// found, its total soft cost, and (for a multi-place job) the insertion
// index chosen for each of its places, in place order.
type JobRouteResult struct {
	Feasible  bool
	Cost      float64
	Positions []int
}

// infeasibleResult is returned for a route that rejects the job outright at the
// hard-route stage, so callers can compare it against any other result with
// ordinary float comparison (+Inf never wins a minimization).
var infeasibleResult = JobRouteResult{Feasible: false, Cost: math.Inf(1)}

// activityType returns the ActivityType a route activity servicing job
// should carry: DepotVisit for a job tagged as a synthetic depot re-visit
// (model.NewDepotVisitJob), Service otherwise.
func activityType(job *model.Job) model.ActivityType {
	if job.Dimensions.IsDepotVisit() {
		return model.DepotVisit
	}
	return model.Service
}

// EvaluateJobRoute searches route for the best feasible set of insertion
// positions for job, respecting problem's constraint pipeline. Multi-place
// jobs are placed greedily in place order: each place's search starts no
// earlier than the index chosen for the previous place, preserving relative
// order without an exponential search over position tuples.
func EvaluateJobRoute(problem *model.Problem, sol *model.SolutionContext, route *model.RouteContext, job *model.Job) JobRouteResult {
	if _, violated := problem.Constraint.EvaluateHardRoute(sol, route, job); violated {
		return infeasibleResult
	}

	total := problem.Constraint.EstimateSoftRoute(sol, route, job)
	positions := make([]int, len(job.Places))
	searchFrom := 1

	for placeIdx, place := range job.Places {
		target := &model.Activity{
			Type:     activityType(job),
			Job:      job,
			PlaceIdx: placeIdx,
			Location: place.Location,
		}

		bestIdx := -1
		bestCost := math.Inf(1)
		acts := route.Route.Activities

		for idx := searchFrom; idx < len(acts); idx++ {
			ctx := &model.ActivityContext{
				Route:  route,
				Prev:   acts[idx-1],
				Target: target,
				Next:   acts[idx],
				Index:  idx,
			}
			_, stopped, violated := problem.Constraint.EvaluateHardActivity(route, ctx)
			if violated {
				if stopped {
					break
				}
				continue
			}
			cost := problem.Constraint.EstimateSoftActivity(route, ctx)
			if cost < bestCost {
				bestCost = cost
				bestIdx = idx
			}
		}

		if bestIdx < 0 {
			return infeasibleResult
		}
		positions[placeIdx] = bestIdx
		total += bestCost
		searchFrom = bestIdx
	}

	return JobRouteResult{Feasible: true, Cost: total, Positions: positions}
}

// Apply commits result's positions into route, inserting job's places in
// order and notifying the constraint pipeline. Callers must have obtained
// result from EvaluateJobRoute against the same route version; a stale
// result silently produces a semantically wrong (but not out-of-bounds)
// insertion, since indices only ever shift forward as earlier places are
// inserted.
func Apply(problem *model.Problem, sol *model.SolutionContext, routeIndex int, job *model.Job, result JobRouteResult) {
	rc := sol.Routes[routeIndex]
	offset := 0
	for placeIdx, idx := range result.Positions {
		place := job.Places[placeIdx]
		act := &model.Activity{
			Type:     activityType(job),
			Job:      job,
			PlaceIdx: placeIdx,
			Location: place.Location,
		}
		insertAt := idx + offset
		acts := rc.Route.Activities
		acts = append(acts, nil)
		copy(acts[insertAt+1:], acts[insertAt:])
		acts[insertAt] = act
		rc.Route.Activities = acts
		offset++
	}
	problem.Constraint.AcceptRouteState(rc)
	problem.Constraint.AcceptInsertion(sol, routeIndex, job)
}
