package constraint

import "github.com/vrplab/engine/model"

// FleetUsageModule charges an actor's FixedCost exactly once, the moment a
// route transitions from empty to carrying its first job, so the objective
// prefers consolidating work onto fewer vehicles over spreading it thin.
type FleetUsageModule struct {
	NoopState
}

// NewFleetUsageModule returns a ready-to-use FleetUsageModule.
func NewFleetUsageModule() *FleetUsageModule { return &FleetUsageModule{} }

// Name implements Module.
func (m *FleetUsageModule) Name() string { return "fleet_usage" }

// EstimateJob implements SoftRouteConstraint: only an empty route pays the
// actor's fixed cost, since a route already in use has already paid it.
func (m *FleetUsageModule) EstimateJob(_ *model.SolutionContext, route *model.RouteContext, _ *model.Job) float64 {
	if route.Route.Empty() {
		return route.Route.Actor.FixedCost
	}
	return 0
}
