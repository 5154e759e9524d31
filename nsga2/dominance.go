// Package nsga2 implements multi-objective dominance ranking and crowding
// distance over model.MultiObjective populations, the selection machinery
// the population package's DominancePopulation drives: two solutions are
// compared term-by-term across a MultiObjective's Terms(), never collapsed
// to one scalar.
package nsga2

import "github.com/vrplab/engine/model"

// Order is the three-way result of comparing two solutions under a
// MultiObjective: Less means a dominates b, Greater means b dominates a,
// Equal means neither dominates the other (they differ, if at all, only in
// directions that cancel out).
type Order int

const (
	// Equal: a and b are mutually non-dominating.
	Equal Order = iota
	// Less: a dominates b.
	Less
	// Greater: b dominates a.
	Greater
)

// Dominance compares a and b across every term of objective, returning
// which (if either) dominates. a dominates b iff a is no worse than b on
// every term and strictly better on at least one - the standard Pareto
// dominance relation.
func Dominance(objective model.MultiObjective, a, b *model.InsertionContext) Order {
	terms := objective.Terms()
	aBetter, bBetter := false, false

	for _, term := range terms {
		switch term.TotalOrder(a, b) {
		case -1:
			aBetter = true
		case 1:
			bBetter = true
		}
		if aBetter && bBetter {
			return Equal
		}
	}

	switch {
	case aBetter:
		return Less
	case bBetter:
		return Greater
	default:
		return Equal
	}
}
