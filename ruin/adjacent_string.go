package ruin

import "github.com/vrplab/engine/model"

// AdjacentStringRemoval removes a contiguous run of job activities from a
// single randomly chosen route, between MinLength and MaxLength jobs long.
// This is the "string removal" move of the ruin-and-recreate literature:
// destroying a spatially/temporally contiguous segment of a route gives the
// recreate phase a realistic chance at finding a cheaper arrangement of
// that segment, unlike independently scattered random removals.
type AdjacentStringRemoval struct {
	MinLength, MaxLength int
}

// NewAdjacentStringRemoval returns an AdjacentStringRemoval targeting string
// lengths in [minLength, maxLength].
func NewAdjacentStringRemoval(minLength, maxLength int) *AdjacentStringRemoval {
	return &AdjacentStringRemoval{MinLength: minLength, MaxLength: maxLength}
}

// Name implements Operator.
func (r *AdjacentStringRemoval) Name() string { return "adjacent_string" }

// removableRouteJobs returns rc's jobs in route order with any locked job
// dropped, since a locked job can neither anchor nor fall inside a removed
// string.
func removableRouteJobs(sol *model.SolutionContext, rc *model.RouteContext) []*model.Job {
	jobs := rc.Route.Jobs()
	out := make([]*model.Job, 0, len(jobs))
	for _, job := range jobs {
		if isLocked(sol, job) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// Ruin implements Operator.
func (r *AdjacentStringRemoval) Ruin(ctx *model.InsertionContext) []*model.Job {
	routes := ctx.Solution.Routes
	candidates := make([]*model.RouteContext, 0, len(routes))
	for _, rc := range routes {
		if len(removableRouteJobs(ctx.Solution, rc)) > 0 {
			candidates = append(candidates, rc)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	rc := candidates[ctx.Random.Intn(len(candidates))]
	jobs := removableRouteJobs(ctx.Solution, rc)
	length := pickCount(ctx.Random, r.MinLength, r.MaxLength, len(jobs))
	if length == 0 {
		return nil
	}
	start := ctx.Random.Intn(len(jobs) - length + 1)
	removed := append([]*model.Job(nil), jobs[start:start+length]...)

	removeJobs(ctx.Solution, removed)
	ctx.Solution.PruneEmptyRoutes()
	return removed
}
