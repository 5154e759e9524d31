package constraint

import "github.com/vrplab/engine/model"

// GroupModule requires every job sharing a Dimensions group tag to be
// served by the same route (e.g. an order split into several jobs that must
// all ride the same vehicle). Checked against the whole SolutionContext
// rather than a single route's cached state, since the constraint spans
// routes.
type GroupModule struct {
	NoopState
}

// NewGroupModule returns a ready-to-use GroupModule.
func NewGroupModule() *GroupModule { return &GroupModule{} }

// Name implements Module.
func (m *GroupModule) Name() string { return "group" }

func groupTag(job *model.Job) (string, bool) {
	raw, ok := job.Dimensions[model.DimGroup]
	if !ok {
		return "", false
	}
	tag, ok := raw.(string)
	return tag, ok
}

// EvaluateJob implements HardRouteConstraint: if another route already
// carries a job from job's group, route must be that same route.
func (m *GroupModule) EvaluateJob(sol *model.SolutionContext, route *model.RouteContext, job *model.Job) (string, bool) {
	tag, tagged := groupTag(job)
	if !tagged {
		return "", false
	}
	for _, rc := range sol.Routes {
		if rc == route {
			continue
		}
		for _, other := range rc.Route.Jobs() {
			if t, ok := groupTag(other); ok && t == tag {
				return "group", true
			}
		}
	}
	return "", false
}
