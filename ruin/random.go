// Package ruin implements the destructive half of ruin-and-recreate: a set
// of operators that each remove a subset of assigned jobs from a
// SolutionContext's routes, returning them to Required so a recreate
// operator can reinsert them differently next generation.
//
// Every operator draws exclusively from its context's deterministic RNG
// stream, so a run is reproducible seed-for-seed.
package ruin

import (
	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/randutil"
)

// Operator removes a batch of jobs from ctx's solution, in place, returning
// the jobs it removed. Implementations must call ctx.Solution.PruneEmptyRoutes
// and problem.Constraint.AcceptSolutionState is the caller's responsibility
// (the simulator batches acceptance after running several operators).
type Operator interface {
	Name() string
	Ruin(ctx *model.InsertionContext) []*model.Job
}

// removeJobFromRoute deletes every activity belonging to job from route's
// activity list, leaving Departure/Arrival untouched.
func removeJobFromRoute(route *model.Route, job *model.Job) {
	kept := route.Activities[:0]
	for _, act := range route.Activities {
		if act.Job == job {
			continue
		}
		kept = append(kept, act)
	}
	route.Activities = kept
}

// removeJobs deletes job from whichever route currently carries it and
// appends it to sol.Required, for every job in jobs. No-op for a job not
// currently assigned. Locked jobs are never removed, even if passed in,
// since a locked job must remain pinned to its route.
func removeJobs(sol *model.SolutionContext, jobs []*model.Job) {
	for _, job := range jobs {
		if isLocked(sol, job) {
			continue
		}
		assigned := false
		for _, rc := range sol.Routes {
			for _, act := range rc.Route.Activities {
				if act.Job == job {
					removeJobFromRoute(rc.Route, job)
					assigned = true
					break
				}
			}
		}
		if assigned {
			sol.Required = append(sol.Required, job)
		}
	}
}

// isLocked reports whether job must remain pinned to its current route per
// a model.Lock, and so must never enter an operator's removal pool.
func isLocked(sol *model.SolutionContext, job *model.Job) bool {
	_, locked := sol.Locked[job]
	return locked
}

// removableJobs returns every currently assigned job that is not locked, the
// candidate pool every ruin operator draws its removal set from.
func removableJobs(sol *model.SolutionContext) []*model.Job {
	assigned := sol.AssignedJobs()
	out := make([]*model.Job, 0, len(assigned))
	for _, job := range assigned {
		if isLocked(sol, job) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// RandomRemoval removes a uniformly random subset of currently assigned
// jobs, sized between Min and Max (clamped to the number assigned).
type RandomRemoval struct {
	Min, Max int
}

// NewRandomRemoval returns a RandomRemoval targeting between min and max
// jobs per call.
func NewRandomRemoval(min, max int) *RandomRemoval {
	return &RandomRemoval{Min: min, Max: max}
}

// Name implements Operator.
func (r *RandomRemoval) Name() string { return "random" }

// Ruin implements Operator.
func (r *RandomRemoval) Ruin(ctx *model.InsertionContext) []*model.Job {
	assigned := removableJobs(ctx.Solution)
	if len(assigned) == 0 {
		return nil
	}
	count := pickCount(ctx.Random, r.Min, r.Max, len(assigned))
	perm := randutil.PermRange(len(assigned), ctx.Random)

	removed := make([]*model.Job, 0, count)
	for _, idx := range perm[:count] {
		removed = append(removed, assigned[idx])
	}
	removeJobs(ctx.Solution, removed)
	ctx.Solution.PruneEmptyRoutes()
	return removed
}

// pickCount clamps [min,max] to the available population size and draws a
// uniform count within the clamped range.
func pickCount(r *randutil.Random, min, max, available int) int {
	if max > available {
		max = available
	}
	if min > max {
		min = max
	}
	if min < 0 {
		min = 0
	}
	if max <= min {
		return max
	}
	return min + r.Intn(max-min+1)
}
