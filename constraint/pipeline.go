package constraint

import "github.com/vrplab/engine/model"

// Pipeline is the concrete model.ConstraintPipeline: an ordered list of
// modules, pre-sorted once at construction into per-variant slices so the
// insertion evaluator's hot path never type-asserts inside a loop.
type Pipeline struct {
	modules      []Module
	hardRoute    []HardRouteConstraint
	hardActivity []HardActivityConstraint
	softRoute    []SoftRouteConstraint
	softActivity []SoftActivityConstraint
	mergeGates   []MergeGate
}

// NewPipeline builds a Pipeline from modules, in the given order. Order
// matters for HardRoute/HardActivity short-circuiting: a cheap module
// (e.g. skills) placed before an expensive one (e.g. transport/time) avoids
// unnecessary work.
func NewPipeline(modules ...Module) *Pipeline {
	p := &Pipeline{modules: modules}
	for _, m := range modules {
		if hr, ok := m.(HardRouteConstraint); ok {
			p.hardRoute = append(p.hardRoute, hr)
		}
		if ha, ok := m.(HardActivityConstraint); ok {
			p.hardActivity = append(p.hardActivity, ha)
		}
		if sr, ok := m.(SoftRouteConstraint); ok {
			p.softRoute = append(p.softRoute, sr)
		}
		if sa, ok := m.(SoftActivityConstraint); ok {
			p.softActivity = append(p.softActivity, sa)
		}
		if mg, ok := m.(MergeGate); ok {
			p.mergeGates = append(p.mergeGates, mg)
		}
	}
	return p
}

// EvaluateHardRoute implements model.ConstraintPipeline.
func (p *Pipeline) EvaluateHardRoute(sol *model.SolutionContext, route *model.RouteContext, job *model.Job) (string, bool) {
	for _, c := range p.hardRoute {
		if code, violated := c.EvaluateJob(sol, route, job); violated {
			return code, true
		}
	}
	return "", false
}

// EvaluateHardActivity implements model.ConstraintPipeline.
func (p *Pipeline) EvaluateHardActivity(route *model.RouteContext, act *model.ActivityContext) (string, bool, bool) {
	for _, c := range p.hardActivity {
		if code, stopped, violated := c.EvaluateActivity(route, act); violated {
			return code, stopped, true
		}
	}
	return "", false, false
}

// EstimateSoftRoute implements model.ConstraintPipeline.
func (p *Pipeline) EstimateSoftRoute(sol *model.SolutionContext, route *model.RouteContext, job *model.Job) float64 {
	var total float64
	for _, c := range p.softRoute {
		total += c.EstimateJob(sol, route, job)
	}
	return total
}

// EstimateSoftActivity implements model.ConstraintPipeline.
func (p *Pipeline) EstimateSoftActivity(route *model.RouteContext, act *model.ActivityContext) float64 {
	var total float64
	for _, c := range p.softActivity {
		total += c.EstimateActivity(route, act)
	}
	return total
}

// AcceptInsertion implements model.ConstraintPipeline.
func (p *Pipeline) AcceptInsertion(sol *model.SolutionContext, routeIndex int, job *model.Job) {
	for _, m := range p.modules {
		m.AcceptInsertion(sol, routeIndex, job)
	}
}

// AcceptRouteState implements model.ConstraintPipeline: every module
// recomputes its cached state, then the route's version counter is bumped
// exactly once so InsertionCache entries invalidate.
func (p *Pipeline) AcceptRouteState(route *model.RouteContext) {
	for _, m := range p.modules {
		m.AcceptRouteState(route)
	}
	route.Touch()
}

// AcceptSolutionState implements model.ConstraintPipeline.
func (p *Pipeline) AcceptSolutionState(sol *model.SolutionContext) {
	for _, m := range p.modules {
		m.AcceptSolutionState(sol)
	}
}

// Merge implements model.ConstraintPipeline: every gate must allow the
// merge; the default combiner then folds cand's places into src, unioning
// their Dimensions.Skills.
func (p *Pipeline) Merge(src, cand *model.Job) (*model.Job, string, bool) {
	for _, g := range p.mergeGates {
		if code, ok := g.AllowMerge(src, cand); !ok {
			return nil, code, false
		}
	}
	return combineJobs(src, cand), "", true
}

func combineJobs(src, cand *model.Job) *model.Job {
	places := make([]model.JobPlace, 0, len(src.Places)+len(cand.Places))
	places = append(places, src.Places...)
	places = append(places, cand.Places...)

	dims := model.NewDimensions()
	for k, v := range src.Dimensions {
		dims[k] = v
	}
	skillSet := make(map[string]struct{})
	for _, s := range src.Dimensions.Skills() {
		skillSet[s] = struct{}{}
	}
	for _, s := range cand.Dimensions.Skills() {
		skillSet[s] = struct{}{}
	}
	if len(skillSet) > 0 {
		merged := make([]string, 0, len(skillSet))
		for s := range skillSet {
			merged = append(merged, s)
		}
		dims[model.DimSkills] = merged
	}

	return &model.Job{
		ID:         src.ID,
		Kind:       model.MultiPlace,
		Places:     places,
		Dimensions: dims,
	}
}
