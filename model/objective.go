package model

// Objective defines a total ordering relation and a distance metric over
// InsertionContext solutions. Declared here rather than in the nsga2 package
// so Problem can hold a MultiObjective without nsga2 needing to import
// model's siblings - nsga2 implements dominance/crowding logic against this
// interface instead of owning it (avoids a model<->nsga2 import cycle, since
// nsga2 needs *InsertionContext, which lives here).
//
// An objective answers "which solution is better" (TotalOrder) and "how
// similar are they" (Distance), both derived from a single Fitness scalar.
type Objective interface {
	// Fitness returns this objective's scalar value for ctx (lower is
	// better by convention, e.g. unassigned job count, tour count,
	// transport cost).
	Fitness(ctx *InsertionContext) float64

	// TotalOrder compares a and b, returning -1, 0 or 1. The default
	// definition (Fitness(a) vs Fitness(b) via randutil.CompareFloats) is
	// what every standard objective term uses; a custom objective may
	// override it to compare structurally instead of by a derived scalar.
	TotalOrder(a, b *InsertionContext) int

	// Distance returns how similar a and b are according to this
	// objective; zero means identical, larger magnitudes mean less similar.
	Distance(a, b *InsertionContext) float64
}

// MultiObjective is an ordered collection of Objective terms. Its own
// Fitness/TotalOrder/Distance, required to satisfy Objective, delegate to
// the primary (first) term - population-level comparisons must use
// dominance (see the nsga2 package), not this fallback.
type MultiObjective interface {
	Objective
	Terms() []Objective
}
