package nsga2

import "github.com/vrplab/engine/model"

// FastNonDominatedSort partitions solutions into Pareto fronts: front 0 is
// the set no other solution dominates, front 1 is the set dominated only by
// front 0, and so on. The classic O(M*N^2) algorithm (Deb et al., 2002):
// for each solution, count how many others dominate it and track which
// others it dominates; peel off the zero-count layer repeatedly.
func FastNonDominatedSort(objective model.MultiObjective, solutions []*model.InsertionContext) [][]*model.InsertionContext {
	n := len(solutions)
	if n == 0 {
		return nil
	}

	dominatedBy := make([][]int, n)  // dominatedBy[i] = indices i dominates
	dominationCount := make([]int, n) // how many solutions dominate i

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			switch Dominance(objective, solutions[i], solutions[j]) {
			case Less:
				dominatedBy[i] = append(dominatedBy[i], j)
			case Greater:
				dominationCount[i]++
			}
		}
	}

	var fronts [][]*model.InsertionContext
	current := make([]int, 0)
	for i := 0; i < n; i++ {
		if dominationCount[i] == 0 {
			current = append(current, i)
		}
	}

	for len(current) > 0 {
		front := make([]*model.InsertionContext, 0, len(current))
		var next []int
		for _, i := range current {
			front = append(front, solutions[i])
			for _, j := range dominatedBy[i] {
				dominationCount[j]--
				if dominationCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		fronts = append(fronts, front)
		current = next
	}

	return fronts
}
