// Package constraint implements the hard/soft check pipeline: an ordered
// list of modules, each owning disjoint state keys, composed into the
// model.ConstraintPipeline interface that model.Problem holds and the
// insertion evaluator calls.
//
// One module = one state key + one or more constraint variants + an
// optional merge gate.
package constraint

import "github.com/vrplab/engine/model"

// HardRouteConstraint answers "can job go into route at all", evaluated
// once per (route, job) before any position is considered.
type HardRouteConstraint interface {
	EvaluateJob(sol *model.SolutionContext, route *model.RouteContext, job *model.Job) (code string, violated bool)
}

// HardActivityConstraint answers "can this tentative activity placement
// stand", evaluated once per candidate position. stopped=true tells the
// evaluator no later position in this route can succeed either.
type HardActivityConstraint interface {
	EvaluateActivity(route *model.RouteContext, act *model.ActivityContext) (code string, stopped, violated bool)
}

// SoftRouteConstraint contributes a cost delta for inserting job into route,
// independent of the chosen position.
type SoftRouteConstraint interface {
	EstimateJob(sol *model.SolutionContext, route *model.RouteContext, job *model.Job) float64
}

// SoftActivityConstraint contributes a cost delta for one tentative
// activity placement.
type SoftActivityConstraint interface {
	EstimateActivity(route *model.RouteContext, act *model.ActivityContext) float64
}

// MergeGate optionally gates whether two jobs may be folded into one
// clustered job (vicinity clustering).
type MergeGate interface {
	AllowMerge(src, cand *model.Job) (code string, ok bool)
}

// Module is the full capability surface every constraint module
// implements, regardless of which variant interfaces it also satisfies.
// NoopState gives concrete modules a zero-cost default for the three
// lifecycle hooks so a module that only needs, say, HardRouteConstraint
// does not have to write three empty methods by hand.
type Module interface {
	Name() string
	AcceptInsertion(sol *model.SolutionContext, routeIndex int, job *model.Job)
	AcceptRouteState(route *model.RouteContext)
	AcceptSolutionState(sol *model.SolutionContext)
}

// NoopState is embedded by modules that do not need one or more lifecycle
// hooks.
type NoopState struct{}

func (NoopState) AcceptInsertion(*model.SolutionContext, int, *model.Job) {}
func (NoopState) AcceptRouteState(*model.RouteContext)                    {}
func (NoopState) AcceptSolutionState(*model.SolutionContext)              {}
