package model

// ActivityType distinguishes the synthetic depot activities every route
// begins/ends with from job services and other synthetic stops a constraint
// module may insert (a break, a reload).
type ActivityType int

const (
	// Departure is always the first activity in a route.
	Departure ActivityType = iota
	// Arrival is always the last activity in a route.
	Arrival
	// Service is a job's sub-activity (one JobPlace).
	Service
	// Break is a synthetic driver-break stop. The insertion evaluator places
	// break jobs as Service activities and never assigns this type.
	Break
	// Reload is a synthetic depot revisit that resets carried load.
	Reload
	// DepotVisit is any other synthetic depot stop (e.g. an intermediate
	// waiting point with its own time window).
	DepotVisit
)

// Activity is one stop in a route.
type Activity struct {
	Type      ActivityType
	Job       *Job // nil for synthetic activities
	PlaceIdx  int  // index into Job.Places, meaningful only when Job != nil
	Location  Location

	ArrivalTime   float64
	DepartureTime float64
	WaitingTime   float64
}

// EndTime returns the time service finishes at this activity (arrival +
// waiting + duration), used by HardActivity/SoftActivity checks that need
// the activity's departure-equivalent instant.
func (a *Activity) EndTime() float64 { return a.DepartureTime }

// Route is an ordered sequence of activities for exactly one actor,
// beginning with Departure and ending with Arrival.
type Route struct {
	Actor      *Actor
	Activities []*Activity
}

// NewRoute returns an empty route for actor: just Departure and Arrival at
// the actor's start/end depot, with Departure's time set to the actor's
// shift start.
func NewRoute(actor *Actor) *Route {
	dep := &Activity{
		Type:          Departure,
		Location:      actor.StartLocation,
		ArrivalTime:   actor.TimeWindow.Start,
		DepartureTime: actor.TimeWindow.Start,
	}
	arr := &Activity{
		Type:     Arrival,
		Location: actor.EndLocation,
	}
	return &Route{Actor: actor, Activities: []*Activity{dep, arr}}
}

// Jobs returns every distinct job currently served by this route, in visit
// order, with each multi-activity job listed once.
func (r *Route) Jobs() []*Job {
	seen := make(map[*Job]struct{})
	var out []*Job
	for _, a := range r.Activities {
		if a.Job == nil {
			continue
		}
		if _, ok := seen[a.Job]; !ok {
			seen[a.Job] = struct{}{}
			out = append(out, a.Job)
		}
	}
	return out
}

// Empty reports whether the route carries no job activities (only
// Departure/Arrival), the condition under which a ruin operator must return
// the route's actor to the registry.
func (r *Route) Empty() bool {
	for _, a := range r.Activities {
		if a.Job != nil {
			return false
		}
	}
	return true
}

// DeepCopy returns an independent Route with freshly-allocated Activities,
// so mutating the copy never affects r.
func (r *Route) DeepCopy() *Route {
	acts := make([]*Activity, len(r.Activities))
	for i, a := range r.Activities {
		cp := *a
		acts[i] = &cp
	}
	return &Route{Actor: r.Actor, Activities: acts}
}

// StateKey identifies one constraint module's cached derived state on a
// RouteContext. Keys are owned by exactly one module; writes by any other
// module are a programmer error.
type StateKey string

// RouteContext is a Route plus derived per-activity state (arrival,
// waiting, latest feasible departure, accumulated load, ...) and a state map
// keyed by constraint-module identifier. The version counter is bumped every
// time the route's activity sequence changes, so InsertionCache entries keyed
// by an earlier version are known-stale without re-walking the route.
type RouteContext struct {
	Route   *Route
	State   map[StateKey]interface{}
	version uint64
}

// NewRouteContext wraps route in a fresh RouteContext with empty state.
func NewRouteContext(route *Route) *RouteContext {
	return &RouteContext{Route: route, State: make(map[StateKey]interface{})}
}

// Version returns the current mutation counter, used by InsertionCache to
// detect staleness.
func (rc *RouteContext) Version() uint64 { return rc.version }

// Touch bumps the version counter. Called by the constraint pipeline's
// AcceptRouteState once per committed mutation - never by read-only queries.
func (rc *RouteContext) Touch() { rc.version++ }

// StateValue fetches a module's cached value, if present.
func (rc *RouteContext) StateValue(key StateKey) (interface{}, bool) {
	v, ok := rc.State[key]
	return v, ok
}

// SetState stores a module's cached value. Does not bump the version counter
// by itself: callers mutating the route sequence must call Touch
// separately, since a module may update its own cached value without the
// sequence having changed (e.g. re-deriving the same answer).
func (rc *RouteContext) SetState(key StateKey, value interface{}) {
	rc.State[key] = value
}

// DeepCopy returns an independent RouteContext: a deep-copied Route, a
// shallow-copied state map (module state values are themselves treated as
// immutable once written - a module that needs deep-copy semantics for its
// own state value is responsible for providing it), and the same version
// counter (the copy has not been mutated yet).
func (rc *RouteContext) DeepCopy() *RouteContext {
	state := make(map[StateKey]interface{}, len(rc.State))
	for k, v := range rc.State {
		state[k] = v
	}
	return &RouteContext{
		Route:   rc.Route.DeepCopy(),
		State:   state,
		version: rc.version,
	}
}

// ActivityContext is the (prev, target, next) triple a HardActivity or
// SoftActivity check evaluates: target is the tentative activity being
// inserted at Index, between Prev and Next.
type ActivityContext struct {
	Route  *RouteContext
	Prev   *Activity
	Target *Activity
	Next   *Activity
	Index  int
}
