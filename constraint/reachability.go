package constraint

import (
	"math"

	"github.com/vrplab/engine/model"
)

// ReachabilityModule rejects a job from a route whose actor's profile has no
// finite-cost path to (or from) any of the job's places, per the
// TransportCost "+Inf means no route exists" convention documented in
// model/cost.go.
type ReachabilityModule struct {
	NoopState
	transport model.TransportCost
}

// NewReachabilityModule returns a ReachabilityModule backed by transport.
func NewReachabilityModule(transport model.TransportCost) *ReachabilityModule {
	return &ReachabilityModule{transport: transport}
}

// Name implements Module.
func (m *ReachabilityModule) Name() string { return "reachability" }

// EvaluateJob implements HardRouteConstraint.
func (m *ReachabilityModule) EvaluateJob(_ *model.SolutionContext, route *model.RouteContext, job *model.Job) (string, bool) {
	actor := route.Route.Actor
	for _, place := range job.Places {
		out := m.transport.Duration(actor.Profile, actor.StartLocation, place.Location)
		back := m.transport.Duration(actor.Profile, place.Location, actor.EndLocation)
		if math.IsInf(out, 1) || math.IsInf(back, 1) {
			return "reachability", true
		}
	}
	return "", false
}
