package ruin

import (
	"sort"

	"github.com/vrplab/engine/model"
)

// WorstCostRemoval removes the Count jobs whose removal would save the most
// transport cost (their marginal contribution to their route's total
// distance), targeting the jobs the current solution is paying the most for
// rather than a uniformly random subset.
type WorstCostRemoval struct {
	Count int
}

// NewWorstCostRemoval returns a WorstCostRemoval targeting count jobs.
func NewWorstCostRemoval(count int) *WorstCostRemoval {
	return &WorstCostRemoval{Count: count}
}

// Name implements Operator.
func (r *WorstCostRemoval) Name() string { return "worst_cost" }

type jobSaving struct {
	job    *model.Job
	saving float64
}

// marginalSaving returns the transport-distance cost removing job's activity
// at position i in route would save: dist(prev,job)+dist(job,next) -
// dist(prev,next).
func marginalSaving(transport model.TransportCost, profile model.Profile, route *model.Route, i int) float64 {
	acts := route.Activities
	prev, target, next := acts[i-1], acts[i], acts[i+1]
	direct := transport.Distance(profile, prev.Location, next.Location)
	detour := transport.Distance(profile, prev.Location, target.Location) +
		transport.Distance(profile, target.Location, next.Location)
	return detour - direct
}

// Ruin implements Operator.
func (r *WorstCostRemoval) Ruin(ctx *model.InsertionContext) []*model.Job {
	var savings []jobSaving
	transport := ctx.Problem.Transport

	for _, rc := range ctx.Solution.Routes {
		profile := rc.Route.Actor.Profile
		acts := rc.Route.Activities
		seen := make(map[*model.Job]struct{})
		for i := 1; i < len(acts)-1; i++ {
			job := acts[i].Job
			if job == nil {
				continue
			}
			if isLocked(ctx.Solution, job) {
				continue
			}
			if _, dup := seen[job]; dup {
				continue
			}
			seen[job] = struct{}{}
			savings = append(savings, jobSaving{job: job, saving: marginalSaving(transport, profile, rc.Route, i)})
		}
	}
	if len(savings) == 0 {
		return nil
	}

	sort.SliceStable(savings, func(i, j int) bool { return savings[i].saving > savings[j].saving })

	count := r.Count
	if count > len(savings) {
		count = len(savings)
	}
	removed := make([]*model.Job, 0, count)
	for _, s := range savings[:count] {
		removed = append(removed, s.job)
	}

	removeJobs(ctx.Solution, removed)
	ctx.Solution.PruneEmptyRoutes()
	return removed
}
