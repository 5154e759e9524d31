package constraint

import "github.com/vrplab/engine/model"

// VicinityOptions parameterizes ClusterJobs: jobs whose moving duration
// from a cluster's seed is at most Threshold collapse into one visit.
// Depot anchors which member hosts the visit (the one farthest from it, so
// the tour serves the cluster's far point once and walks back through the
// near ones).
type VicinityOptions struct {
	Threshold float64
	Profile   model.Profile
	Depot     model.Location
}

// ClusterJobs collapses groups of nearby single-place jobs into merged
// multi-activity visit jobs, running every candidate pair through the
// pipeline's merge gates. It is a problem-construction preprocessing step:
// callers apply it to the job list before model.NewJobs/model.NewProblem,
// so the merged jobs ARE the problem's jobs and the solution partition
// invariant holds without special cases.
//
// For each cluster the visit is hosted at the member farthest from
// opts.Depot; the remaining members chain from the host by nearest
// neighbor. Every merged place is relocated to the host's location with
// its service duration extended by the commute it absorbs (the leg from
// the previous member, plus the leg back to the host for the member served
// last); the original jobs and their commutes are recorded under
// model.DimCluster for solution writers to re-expand.
//
// Jobs a merge gate refuses, multi-place jobs, and depot visits pass
// through unchanged. Output order is deterministic given input order.
func ClusterJobs(jobs []*model.Job, pipeline model.ConstraintPipeline, transport model.TransportCost, opts VicinityOptions) []*model.Job {
	if opts.Threshold <= 0 || len(jobs) < 2 {
		return jobs
	}

	clusterable := func(j *model.Job) bool {
		return j.Kind == model.Single && len(j.Places) == 1 && !j.Dimensions.IsDepotVisit()
	}
	duration := func(from, to model.Location) float64 {
		return transport.Duration(opts.Profile, from, to)
	}

	used := make(map[*model.Job]bool, len(jobs))
	out := make([]*model.Job, 0, len(jobs))

	for i, seed := range jobs {
		if used[seed] {
			continue
		}
		used[seed] = true
		if !clusterable(seed) {
			out = append(out, seed)
			continue
		}

		members := []*model.Job{seed}
		for _, cand := range jobs[i+1:] {
			if used[cand] || !clusterable(cand) {
				continue
			}
			if duration(seed.Places[0].Location, cand.Places[0].Location) <= opts.Threshold {
				members = append(members, cand)
				used[cand] = true
			}
		}
		if len(members) == 1 {
			out = append(out, seed)
			continue
		}

		merged, leftover := mergeCluster(members, pipeline, duration, opts.Depot)
		out = append(out, merged)
		out = append(out, leftover...)
	}
	return out
}

// mergeCluster folds members into one visit job through pipeline.Merge,
// returning the merged job plus any members a gate refused (those stay
// standalone). members has at least two entries.
func mergeCluster(members []*model.Job, pipeline model.ConstraintPipeline, duration func(from, to model.Location) float64, depot model.Location) (*model.Job, []*model.Job) {
	host := members[0]
	for _, m := range members[1:] {
		if duration(depot, m.Places[0].Location) > duration(depot, host.Places[0].Location) {
			host = m
		}
	}

	chain := []*model.Job{host}
	remaining := make([]*model.Job, 0, len(members)-1)
	for _, m := range members {
		if m != host {
			remaining = append(remaining, m)
		}
	}
	for len(remaining) > 0 {
		last := chain[len(chain)-1].Places[0].Location
		nearest := 0
		for k := 1; k < len(remaining); k++ {
			if duration(last, remaining[k].Places[0].Location) < duration(last, remaining[nearest].Places[0].Location) {
				nearest = k
			}
		}
		chain = append(chain, remaining[nearest])
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
	}

	merged := host
	entries := []model.ClusterEntry{{Job: host}}
	var leftover []*model.Job
	prev := host.Places[0].Location
	for _, m := range chain[1:] {
		next, _, ok := pipeline.Merge(merged, m)
		if !ok {
			leftover = append(leftover, m)
			continue
		}
		entries = append(entries, model.ClusterEntry{Job: m, Forward: duration(prev, m.Places[0].Location)})
		prev = m.Places[0].Location
		merged = next
	}
	if len(entries) == 1 {
		// every gate refused; the host stays an ordinary job
		return host, leftover
	}
	entries[len(entries)-1].Backward = duration(prev, host.Places[0].Location)

	visit := host.Places[0].Location
	places := make([]model.JobPlace, len(merged.Places))
	copy(places, merged.Places)
	for k := range places {
		places[k].Location = visit
		places[k].Duration += entries[k].Forward + entries[k].Backward
	}
	merged.Places = places
	merged.Dimensions[model.DimCluster] = entries
	return merged, leftover
}
