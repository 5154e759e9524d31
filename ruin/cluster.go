package ruin

import (
	"math"
	"sort"

	"github.com/vrplab/engine/model"
)

// ClusterRemoval removes a whole spatial cluster of jobs: it builds a
// minimum spanning tree over the currently assigned jobs' primary location
// (Euclidean, not the routing matrix - clustering cares about geometry, not
// drive time), cuts the globally heaviest edge, and removes every
// job in whichever resulting component contains a randomly chosen seed job
// - capped at MaxSize so one cut never empties the whole solution.
//
// The MST is Kruskal's: sort the dense edge list, union-find with path
// compression, stop one edge short of spanning.
type ClusterRemoval struct {
	MaxSize int
}

// NewClusterRemoval returns a ClusterRemoval capping a single cut's removed
// set at maxSize jobs.
func NewClusterRemoval(maxSize int) *ClusterRemoval {
	return &ClusterRemoval{MaxSize: maxSize}
}

// Name implements Operator.
func (r *ClusterRemoval) Name() string { return "cluster" }

type clusterEdge struct {
	u, v   int
	weight float64
}

func euclidean(a, b model.Location) float64 {
	dx, dy := a.Lat-b.Lat, a.Lon-b.Lon
	return math.Sqrt(dx*dx + dy*dy)
}

// find/union implement path-compressed, union-by-rank disjoint sets over
// dense integer vertex ids.
type disjointSet struct {
	parent, rank []int
}

func newDisjointSet(n int) *disjointSet {
	ds := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

func (ds *disjointSet) find(x int) int {
	for ds.parent[x] != x {
		ds.parent[x] = ds.parent[ds.parent[x]]
		x = ds.parent[x]
	}
	return x
}

func (ds *disjointSet) union(a, b int) bool {
	ra, rb := ds.find(a), ds.find(b)
	if ra == rb {
		return false
	}
	if ds.rank[ra] < ds.rank[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	if ds.rank[ra] == ds.rank[rb] {
		ds.rank[ra]++
	}
	return true
}

// Ruin implements Operator.
func (r *ClusterRemoval) Ruin(ctx *model.InsertionContext) []*model.Job {
	jobs := removableJobs(ctx.Solution)
	n := len(jobs)
	if n < 2 {
		return nil
	}

	edges := make([]clusterEdge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, clusterEdge{u: i, v: j, weight: euclidean(jobs[i].Places[0].Location, jobs[j].Places[0].Location)})
		}
	}
	sort.SliceStable(edges, func(a, b int) bool { return edges[a].weight < edges[b].weight })

	ds := newDisjointSet(n)
	var mst []clusterEdge
	for _, e := range edges {
		if ds.union(e.u, e.v) {
			mst = append(mst, e)
			if len(mst) == n-1 {
				break
			}
		}
	}
	if len(mst) == 0 {
		return nil
	}

	// rebuild connectivity without the heaviest MST edge; the two resulting
	// components are the cut
	sort.SliceStable(mst, func(a, b int) bool { return mst[a].weight > mst[b].weight })
	cutSet := newDisjointSet(n)
	for _, e := range mst[1:] {
		cutSet.union(e.u, e.v)
	}

	seed := ctx.Random.Intn(n)
	root := cutSet.find(seed)
	var cluster []*model.Job
	for i := 0; i < n; i++ {
		if cutSet.find(i) == root {
			cluster = append(cluster, jobs[i])
			if len(cluster) >= r.MaxSize {
				break
			}
		}
	}

	removeJobs(ctx.Solution, cluster)
	ctx.Solution.PruneEmptyRoutes()
	return cluster
}
