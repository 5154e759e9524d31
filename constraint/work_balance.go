package constraint

import "github.com/vrplab/engine/model"

// WorkBalanceModule is a soft-route constraint that discourages piling work
// onto one route while others sit comparatively idle: its cost grows with
// how far this route's job count already sits above the mean across
// all currently open routes, nudging the insertion evaluator toward
// spreading jobs out when candidate positions are otherwise close in cost.
type WorkBalanceModule struct {
	NoopState
	scale float64
}

// NewWorkBalanceModule returns a WorkBalanceModule scaling the imbalance
// penalty by scale.
func NewWorkBalanceModule(scale float64) *WorkBalanceModule {
	return &WorkBalanceModule{scale: scale}
}

// Name implements Module.
func (m *WorkBalanceModule) Name() string { return "work_balance" }

// EstimateJob implements SoftRouteConstraint.
func (m *WorkBalanceModule) EstimateJob(sol *model.SolutionContext, route *model.RouteContext, _ *model.Job) float64 {
	if len(sol.Routes) == 0 {
		return 0
	}
	total := 0
	for _, rc := range sol.Routes {
		total += len(rc.Route.Jobs())
	}
	mean := float64(total) / float64(len(sol.Routes))
	current := float64(len(route.Route.Jobs()))
	if current <= mean {
		return 0
	}
	return (current - mean) * m.scale
}
