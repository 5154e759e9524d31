// Package objective provides the standard VRP objective terms (unassigned
// job count, tour count, transport cost) and a MultiObjective composite over
// them, implementing the model.Objective/model.MultiObjective interfaces
// declared in the model package. Each term's TotalOrder and Distance
// default to comparing/subtracting its single fitness scalar.
package objective

import (
	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/randutil"
)

// funcTerm adapts a plain fitness function into a model.Objective, since
// every standard term shares the same total-order/distance definition
// (compare/subtract the fitness scalar) and differs only in how fitness is
// computed.
type funcTerm struct {
	name    string
	fitness func(ctx *model.InsertionContext) float64
}

// Fitness implements model.Objective.
func (t funcTerm) Fitness(ctx *model.InsertionContext) float64 { return t.fitness(ctx) }

// TotalOrder implements model.Objective via randutil.CompareFloats on the
// two solutions' fitness values.
func (t funcTerm) TotalOrder(a, b *model.InsertionContext) int {
	return randutil.CompareFloats(t.fitness(a), t.fitness(b))
}

// Distance implements model.Objective.
func (t funcTerm) Distance(a, b *model.InsertionContext) float64 {
	return t.fitness(a) - t.fitness(b)
}

// NewUnassignedJobs counts jobs the solution failed to place, the term every
// VRP objective composite leads with: a solution that drops jobs is always
// worse than one that doesn't, regardless of how cheap its routes are.
func NewUnassignedJobs() model.Objective {
	return funcTerm{
		name: "unassigned_jobs",
		fitness: func(ctx *model.InsertionContext) float64 {
			return float64(len(ctx.Solution.Required))
		},
	}
}

// NewTourCount counts non-empty routes, the classic secondary VRP term
// (fewer vehicles used is better, all else equal).
func NewTourCount() model.Objective {
	return funcTerm{
		name: "tour_count",
		fitness: func(ctx *model.InsertionContext) float64 {
			var n float64
			for _, rc := range ctx.Solution.Routes {
				if !rc.Route.Empty() {
					n++
				}
			}
			return n
		},
	}
}

// NewTransportCost sums each route's fixed cost (if used) plus the
// actor-weighted transport distance/duration and per-activity cost along its
// visit sequence, the term that actually drives route shape once the
// unassigned-jobs and tour-count terms are tied.
func NewTransportCost(transport model.TransportCost, activity model.ActivityCost) model.Objective {
	return funcTerm{
		name: "transport_cost",
		fitness: func(ctx *model.InsertionContext) float64 {
			var total float64
			for _, rc := range ctx.Solution.Routes {
				total += routeCost(rc, transport, activity)
			}
			return total
		},
	}
}

func routeCost(rc *model.RouteContext, transport model.TransportCost, activity model.ActivityCost) float64 {
	route := rc.Route
	if route.Empty() {
		return 0
	}

	actor := route.Actor
	var total float64
	for i := 1; i < len(route.Activities); i++ {
		prev, cur := route.Activities[i-1], route.Activities[i]
		total += transport.Distance(actor.Profile, prev.Location, cur.Location) * actor.DistanceCost
		total += transport.Duration(actor.Profile, prev.Location, cur.Location) * actor.TimeCost
	}
	if activity != nil {
		for _, act := range route.Activities {
			total += activity.Cost(actor, act)
		}
	}
	total += actor.FixedCost
	return total
}
