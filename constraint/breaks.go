package constraint

import "github.com/vrplab/engine/model"

// BreaksModule enforces that a job marked as a driver break (Dimensions
// carrying DimGroup == "break", the convention this module reserves) can
// only be scheduled once at least minWorkDuration has elapsed since the
// route's departure, modeling a minimum-drive-time-before-rest rule.
type BreaksModule struct {
	NoopState
	minWorkDuration float64
}

// breakDimensionTag is the Dimensions value identifying a break job.
const breakDimensionTag = "break"

// NewBreaksModule returns a BreaksModule requiring minWorkDuration seconds
// of elapsed shift time before any break job may be scheduled.
func NewBreaksModule(minWorkDuration float64) *BreaksModule {
	return &BreaksModule{minWorkDuration: minWorkDuration}
}

// Name implements Module.
func (m *BreaksModule) Name() string { return "breaks" }

func isBreakJob(job *model.Job) bool {
	if job == nil {
		return false
	}
	tag, ok := job.Dimensions[model.DimGroup]
	if !ok {
		return false
	}
	s, ok := tag.(string)
	return ok && s == breakDimensionTag
}

// EvaluateActivity implements HardActivityConstraint: a break job's target
// activity must start no earlier than minWorkDuration after the route's
// departure activity.
func (m *BreaksModule) EvaluateActivity(route *model.RouteContext, act *model.ActivityContext) (string, bool, bool) {
	if !isBreakJob(act.Target.Job) {
		return "", false, false
	}
	departure := route.Route.Activities[0].DepartureTime
	if act.Prev.DepartureTime-departure < m.minWorkDuration {
		return "breaks", false, true
	}
	return "", false, false
}
