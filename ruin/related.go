package ruin

import (
	"math"
	"sort"

	"github.com/vrplab/engine/model"
)

// RelatedRemoval removes the Count jobs most "related" to a randomly chosen
// seed job, where relatedness is the Dynamic Time Warping distance between
// each job's feature sequence (its places' [lat, lon, earliest start]
// flattened in place order) and the seed's. Unlike
// ClusterRemoval's pure Euclidean MST, DTW tolerates jobs with a different
// number of places (single vs multi-place) by warping the shorter sequence
// against the longer one instead of requiring equal length, which is what
// recommends it over plain Euclidean distance for this operator.
type RelatedRemoval struct {
	Count int
}

// NewRelatedRemoval returns a RelatedRemoval targeting count jobs per call.
func NewRelatedRemoval(count int) *RelatedRemoval {
	return &RelatedRemoval{Count: count}
}

// Name implements Operator.
func (r *RelatedRemoval) Name() string { return "related" }

// featureSequence flattens job's places into a single float64 series:
// [lat0, lon0, start0, lat1, lon1, start1, ...], the shape
// jobSequenceDistance expects.
func featureSequence(job *model.Job) []float64 {
	out := make([]float64, 0, len(job.Places)*3)
	for _, p := range job.Places {
		earliest := 0.0
		if len(p.TimeWindows) > 0 {
			earliest = p.TimeWindows[0].Start
		}
		out = append(out, p.Location.Lat, p.Location.Lon, earliest)
	}
	return out
}

// jobSequenceDistance computes the Dynamic Time Warping distance between two
// job feature sequences with an unconstrained warping band and zero
// insertion/deletion penalty: free to stretch either sequence arbitrarily,
// charging only the pointwise |a[i]-b[j]| cost along the cheapest alignment.
// No path is reconstructed - only the scalar distance this operator ranks
// jobs by - so this keeps a two-row rolling DP rather than the full matrix a
// backtrace would need.
//
// This operator never varies a search window or slope penalty and never
// asks for an alignment path, so the recurrence carries none of the
// machinery a general DTW implementation would need for those cases.
func jobSequenceDistance(a, b []float64) float64 {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	prevRow := make([]float64, m+1)
	currRow := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prevRow[j] = math.Inf(1)
	}

	for i := 1; i <= n; i++ {
		currRow[0] = math.Inf(1)
		for j := 1; j <= m; j++ {
			localCost := math.Abs(a[i-1] - b[j-1])
			matchCost := prevRow[j-1]
			insertCost := prevRow[j]
			deleteCost := currRow[j-1]
			currRow[j] = localCost + min3(matchCost, insertCost, deleteCost)
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[m]
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

type jobDistance struct {
	job  *model.Job
	dist float64
}

// Ruin implements Operator.
func (r *RelatedRemoval) Ruin(ctx *model.InsertionContext) []*model.Job {
	assigned := removableJobs(ctx.Solution)
	if len(assigned) < 2 {
		return nil
	}
	seed := assigned[ctx.Random.Intn(len(assigned))]
	seedSeq := featureSequence(seed)

	distances := make([]jobDistance, 0, len(assigned))
	for _, job := range assigned {
		if job == seed {
			continue
		}
		distances = append(distances, jobDistance{job: job, dist: jobSequenceDistance(seedSeq, featureSequence(job))})
	}
	sort.SliceStable(distances, func(i, j int) bool { return distances[i].dist < distances[j].dist })

	count := r.Count
	if count > len(distances) {
		count = len(distances)
	}
	removed := make([]*model.Job, 0, count+1)
	removed = append(removed, seed)
	for _, jd := range distances[:count] {
		removed = append(removed, jd.job)
	}

	removeJobs(ctx.Solution, removed)
	ctx.Solution.PruneEmptyRoutes()
	return removed
}
