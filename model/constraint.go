package model

// ConstraintPipeline is the capability surface Problem and the insertion
// evaluator rely on. Declared here (rather than in the constraint package)
// for the same cycle-avoidance reason as Objective/MultiObjective: Problem
// holds one, and the insertion/ruin/recreate packages only need to call it,
// never to construct one, so they depend on model instead of on the
// concrete constraint package. The constraint package implements this
// interface (constraint.Pipeline).
type ConstraintPipeline interface {
	// EvaluateHardRoute runs every HardRoute module against (route, job).
	// violated is true iff any module refused the job outright, in which
	// case code names the first refusal.
	EvaluateHardRoute(sol *SolutionContext, route *RouteContext, job *Job) (code string, violated bool)

	// EvaluateHardActivity runs every HardActivity module against a
	// tentative activity placement. stopped=true means no later position in
	// this route can succeed either, so the caller should abandon scanning
	// the route rather than just skipping this position.
	EvaluateHardActivity(route *RouteContext, act *ActivityContext) (code string, stopped, violated bool)

	// EstimateSoftRoute sums every SoftRoute module's cost delta for
	// inserting job into route.
	EstimateSoftRoute(sol *SolutionContext, route *RouteContext, job *Job) float64

	// EstimateSoftActivity sums every SoftActivity module's cost delta for
	// the tentative activity placement.
	EstimateSoftActivity(route *RouteContext, act *ActivityContext) float64

	// AcceptInsertion notifies every module that job was committed into
	// sol's route at routeIndex, so modules can update their per-route
	// state.
	AcceptInsertion(sol *SolutionContext, routeIndex int, job *Job)

	// AcceptRouteState recomputes every module's cached derived state for
	// route and bumps its version counter.
	AcceptRouteState(route *RouteContext)

	// AcceptSolutionState recomputes cross-route invariants (e.g. total
	// unassigned counts) after a batch of mutations.
	AcceptSolutionState(sol *SolutionContext)

	// Merge decides whether cand can be folded into src for vicinity
	// clustering. ok=false means refused, with code naming the reason.
	Merge(src, cand *Job) (job *Job, code string, ok bool)
}
