package nsga2

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vrplab/engine/model"
)

// CrowdingDistance assigns each solution in front a measure of how
// isolated it is from its neighbors in objective space: solutions at the
// extremes of any objective get +Inf (always preserved), and interior
// solutions get the normalized sum of their neighbor gaps across every
// objective term.
//
// Normalization divides each gap by termSpread, which is built on
// gonum.org/v1/gonum/stat's StdDev; a term whose fitness values happen to be
// degenerate (zero variance) gets a spread of 0 and contributes nothing
// rather than dividing by zero.
func CrowdingDistance(objective model.MultiObjective, front []*model.InsertionContext) map[*model.InsertionContext]float64 {
	n := len(front)
	distances := make(map[*model.InsertionContext]float64, n)
	if n == 0 {
		return distances
	}
	for _, s := range front {
		distances[s] = 0
	}
	if n <= 2 {
		for _, s := range front {
			distances[s] = math.Inf(1)
		}
		return distances
	}

	for _, term := range objective.Terms() {
		fitness := make([]float64, n)
		for i, s := range front {
			fitness[i] = term.Fitness(s)
		}

		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return fitness[order[a]] < fitness[order[b]] })

		distances[front[order[0]]] = math.Inf(1)
		distances[front[order[n-1]]] = math.Inf(1)

		spread := termSpread(fitness)
		if spread == 0 {
			continue
		}
		for k := 1; k < n-1; k++ {
			s := front[order[k]]
			if math.IsInf(distances[s], 1) {
				continue
			}
			gap := fitness[order[k+1]] - fitness[order[k-1]]
			distances[s] += gap / spread
		}
	}

	return distances
}

// termSpread returns a robust normalization denominator for one objective
// term's fitness values across a front: the sample standard deviation
// scaled to approximate the full range for a roughly uniform distribution,
// or the raw max-min spread when that standard deviation is not positive.
// Fewer than two values give 0.
func termSpread(fitness []float64) float64 {
	if len(fitness) < 2 {
		return 0
	}
	sd := stat.StdDev(fitness, nil)
	if sd > 0 {
		return sd * math.Sqrt(12) // uniform-distribution range ≈ stddev·sqrt(12)
	}
	min, max := fitness[0], fitness[0]
	for _, f := range fitness {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	return max - min
}
