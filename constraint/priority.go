package constraint

import "github.com/vrplab/engine/model"

// priorityWeight converts a job's priority dimension into a soft cost
// multiplier: priority 0 (default, most urgent) contributes nothing, and
// every step away from 0 adds one unit of weight times the configured
// scale, so lower-priority jobs are preferentially placed late/cheaply
// rather than forced into the first feasible slot.
const priorityWeight = 1.0

// PriorityModule is a soft-route constraint that penalizes delaying
// high-priority (low Dimensions.priority value) jobs relative to
// low-priority ones, nudging the insertion heuristic toward urgent jobs
// first without making priority a hard constraint.
type PriorityModule struct {
	NoopState
	scale float64
}

// NewPriorityModule returns a PriorityModule scaling each priority unit by
// scale (use 1.0 for "one unit of priority costs the same as one unit of
// distance/time", tune per problem instance).
func NewPriorityModule(scale float64) *PriorityModule {
	return &PriorityModule{scale: scale}
}

// Name implements Module.
func (m *PriorityModule) Name() string { return "priority" }

// EstimateJob implements SoftRouteConstraint: cost grows linearly with how
// unfavorable the job's priority is, so the insertion evaluator's cost
// comparison prefers placing low-priority-number (urgent) jobs.
func (m *PriorityModule) EstimateJob(_ *model.SolutionContext, _ *model.RouteContext, job *model.Job) float64 {
	return float64(job.Dimensions.Priority()) * m.scale * priorityWeight
}
