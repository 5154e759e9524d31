package constraint

import "github.com/vrplab/engine/model"

// capacityStateKey caches, for each activity index in a route, the
// capacity demand accumulated through that activity: load[i] = load[i-1] +
// Delivery(i) - Pickup(i), starting at zero at Departure. A delivery claims
// capacity for the whole tour (the goods must fit on board when the vehicle
// leaves the depot), a pickup releases it; HardActivityConstraint rejects
// any tentative insertion whose resulting load would exceed the actor's
// capacity on any dimension, at the insertion point or downstream.
const capacityStateKey model.StateKey = "constraint.capacity"

// CapacityModule enforces multi-dimensional vehicle capacity limits by
// tracking a per-activity load vector.
type CapacityModule struct {
	NoopState
}

// NewCapacityModule returns a ready-to-use CapacityModule.
func NewCapacityModule() *CapacityModule { return &CapacityModule{} }

// Name implements Module.
func (m *CapacityModule) Name() string { return "capacity" }

func netDemand(dims int, place model.JobPlace) []float64 {
	out := make([]float64, dims)
	for d := 0; d < dims; d++ {
		var pickup, delivery float64
		if d < len(place.Demand.Pickup) {
			pickup = place.Demand.Pickup[d]
		}
		if d < len(place.Demand.Delivery) {
			delivery = place.Demand.Delivery[d]
		}
		out[d] = delivery - pickup
	}
	return out
}

// AcceptRouteState recomputes the cumulative load vector for every activity
// in route, from Departure (zero load) forward.
func (m *CapacityModule) AcceptRouteState(route *model.RouteContext) {
	actor := route.Route.Actor
	dims := len(actor.Capacity)
	loads := make([][]float64, len(route.Route.Activities))

	running := make([]float64, dims)
	for i, act := range route.Route.Activities {
		if act.Job != nil && act.PlaceIdx < len(act.Job.Places) {
			delta := netDemand(dims, act.Job.Places[act.PlaceIdx])
			for d := 0; d < dims; d++ {
				running[d] += delta[d]
			}
		}
		snapshot := make([]float64, dims)
		copy(snapshot, running)
		loads[i] = snapshot
	}
	route.SetState(capacityStateKey, loads)
}

// EvaluateActivity implements HardActivityConstraint: the tentative
// activity's resulting load (Prev's cached load plus the target's net
// demand) must stay within the actor's capacity on every dimension, and so
// must every activity after the insertion point, since a positive net
// demand raises the load of the whole route tail. stopped=false always:
// capacity violations at one position say nothing about later positions,
// since later jobs may have different (or no) demand.
func (m *CapacityModule) EvaluateActivity(route *model.RouteContext, act *model.ActivityContext) (string, bool, bool) {
	if act.Target.Job == nil || act.Target.PlaceIdx >= len(act.Target.Job.Places) {
		return "", false, false
	}
	actor := route.Route.Actor
	dims := len(actor.Capacity)
	if dims == 0 {
		return "", false, false
	}

	var loads [][]float64
	if raw, ok := route.StateValue(capacityStateKey); ok {
		loads = raw.([][]float64)
	}

	prevLoad := make([]float64, dims)
	if act.Index > 0 && act.Index-1 < len(loads) {
		copy(prevLoad, loads[act.Index-1])
	}

	delta := netDemand(dims, act.Target.Job.Places[act.Target.PlaceIdx])
	for d := 0; d < dims; d++ {
		if prevLoad[d]+delta[d] > actor.Capacity[d] {
			return "capacity", false, true
		}
	}
	// every activity from the insertion point on carries the target's net
	// demand too
	for i := act.Index; i < len(loads); i++ {
		for d := 0; d < dims; d++ {
			if loads[i][d]+delta[d] > actor.Capacity[d] {
				return "capacity", false, true
			}
		}
	}
	return "", false, false
}
