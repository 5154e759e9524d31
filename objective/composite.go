package objective

import "github.com/vrplab/engine/model"

// Composite is an ordered list of objective terms satisfying
// model.MultiObjective. Its own Fitness/TotalOrder/Distance (required by
// model.Objective) delegate to the first term; anything that needs the full
// multi-criteria picture (population ranking) goes through nsga2.Dominance
// against Terms() instead.
type Composite struct {
	terms []model.Objective
}

// NewComposite returns a Composite over terms in priority order (the first
// term is primary for TotalOrder/Fitness fallback purposes).
func NewComposite(terms ...model.Objective) *Composite {
	return &Composite{terms: terms}
}

// Terms implements model.MultiObjective.
func (c *Composite) Terms() []model.Objective { return c.terms }

// Fitness implements model.Objective by delegating to the primary term.
func (c *Composite) Fitness(ctx *model.InsertionContext) float64 {
	return c.terms[0].Fitness(ctx)
}

// TotalOrder implements model.Objective by delegating to the primary term.
func (c *Composite) TotalOrder(a, b *model.InsertionContext) int {
	return c.terms[0].TotalOrder(a, b)
}

// Distance implements model.Objective by delegating to the primary term.
func (c *Composite) Distance(a, b *model.InsertionContext) float64 {
	return c.terms[0].Distance(a, b)
}

// Standard returns the conventional VRP composite: unassigned jobs first,
// then tour count, then transport cost.
func Standard(transport model.TransportCost, activity model.ActivityCost) *Composite {
	return NewComposite(
		NewUnassignedJobs(),
		NewTourCount(),
		NewTransportCost(transport, activity),
	)
}
