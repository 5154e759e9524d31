package ruin

import "github.com/vrplab/engine/model"

// RouteRemoval discards one or more entire routes, returning every job they
// carried to Required and releasing their actors back to the registry. This
// is the coarsest operator: useful when the fleet is over-provisioned and
// the search needs to try consolidating onto fewer vehicles.
type RouteRemoval struct {
	Count int
}

// NewRouteRemoval returns a RouteRemoval discarding up to count routes per
// call.
func NewRouteRemoval(count int) *RouteRemoval {
	return &RouteRemoval{Count: count}
}

// Name implements Operator.
func (r *RouteRemoval) Name() string { return "route" }

// routeHasLockedJob reports whether any job currently on rc is locked, which
// disqualifies the whole route from RouteRemoval's candidate set - a locked
// job must remain pinned to its route, not be discarded back to Required.
func routeHasLockedJob(sol *model.SolutionContext, rc *model.RouteContext) bool {
	for _, job := range rc.Route.Jobs() {
		if isLocked(sol, job) {
			return true
		}
	}
	return false
}

// Ruin implements Operator.
func (r *RouteRemoval) Ruin(ctx *model.InsertionContext) []*model.Job {
	sol := ctx.Solution
	candidates := make([]int, 0, len(sol.Routes))
	for i, rc := range sol.Routes {
		if !routeHasLockedJob(sol, rc) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	count := r.Count
	if count > len(candidates) {
		count = len(candidates)
	}
	perm := ctx.Random.Rand().Perm(len(candidates))

	chosen := make(map[int]struct{}, count)
	for _, p := range perm[:count] {
		chosen[candidates[p]] = struct{}{}
	}

	var removed []*model.Job
	var kept []*model.RouteContext
	for i, rc := range sol.Routes {
		if _, drop := chosen[i]; drop {
			removed = append(removed, rc.Route.Jobs()...)
			sol.Registry.Release(rc.Route.Actor)
			continue
		}
		kept = append(kept, rc)
	}
	sol.Routes = kept
	sol.Required = append(sol.Required, removed...)
	return removed
}
