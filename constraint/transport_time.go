package constraint

import "github.com/vrplab/engine/model"

// timingStateKey caches, for every activity index in a route, the actual
// (arrival, departure) pair computed by the last AcceptRouteState pass.
const timingStateKey model.StateKey = "constraint.timing"

type timingSnapshot struct {
	arrival   float64
	departure float64
}

// TransportTimeModule is the workhorse hard/soft activity constraint: it
// derives arrival/departure/waiting times from the transport cost matrix and
// rejects placements that violate a job's time windows or the actor's shift
// window, charging distance/duration/waiting as a soft cost otherwise.
type TransportTimeModule struct {
	NoopState
	transport model.TransportCost
	activity  model.ActivityCost
}

// NewTransportTimeModule returns a TransportTimeModule backed by transport
// (distance/duration lookups) and activity (waiting/service cost).
func NewTransportTimeModule(transport model.TransportCost, activity model.ActivityCost) *TransportTimeModule {
	return &TransportTimeModule{transport: transport, activity: activity}
}

// Name implements Module.
func (m *TransportTimeModule) Name() string { return "transport_time" }

func (m *TransportTimeModule) placeWindows(act *model.Activity) []model.TimeWindow {
	if act.Job == nil || act.PlaceIdx >= len(act.Job.Places) {
		return nil
	}
	return act.Job.Places[act.PlaceIdx].TimeWindows
}

func (m *TransportTimeModule) placeDuration(act *model.Activity) float64 {
	if act.Job == nil || act.PlaceIdx >= len(act.Job.Places) {
		return 0
	}
	return act.Job.Places[act.PlaceIdx].Duration
}

// earliestStart returns the earliest instant service could start at act,
// given it's reached from prev, and whether any time window could still
// admit it at all (false means every window for this place has already
// closed relative to the earliest possible arrival).
func (m *TransportTimeModule) earliestStart(profile model.Profile, prevDeparture float64, prevLoc, loc model.Location, windows []model.TimeWindow) (float64, bool) {
	arrival := prevDeparture + m.transport.Duration(profile, prevLoc, loc)
	if len(windows) == 0 {
		return arrival, true
	}
	best := -1.0
	admits := false
	for _, w := range windows {
		if arrival > w.End {
			continue
		}
		start := arrival
		if start < w.Start {
			start = w.Start
		}
		if !admits || start < best {
			best = start
			admits = true
		}
	}
	if !admits {
		return arrival, false
	}
	return best, true
}

// EvaluateActivity implements HardActivityConstraint. stopped=true once the
// tentative arrival is already past every window's close, since route
// activities are visited in non-decreasing time order, so no later position
// in this route can recover feasibility either.
func (m *TransportTimeModule) EvaluateActivity(route *model.RouteContext, act *model.ActivityContext) (string, bool, bool) {
	profile := route.Route.Actor.Profile
	windows := m.placeWindows(act.Target)

	start, admits := m.earliestStart(profile, act.Prev.DepartureTime, act.Prev.Location, act.Target.Location, windows)
	if !admits {
		return "time_window", true, true
	}
	if start > route.Route.Actor.TimeWindow.End {
		return "shift_window", true, true
	}

	finish := start + m.placeDuration(act.Target)
	if act.Next != nil {
		nextStart, nextAdmits := m.earliestStart(profile, finish, act.Target.Location, act.Next.Location, m.placeWindows(act.Next))
		if !nextAdmits {
			return "time_window", false, true
		}
		_ = nextStart
	}
	return "", false, false
}

// EstimateActivity implements SoftActivityConstraint: transport distance
// cost plus waiting-time/service cost charged via the ActivityCost.
func (m *TransportTimeModule) EstimateActivity(route *model.RouteContext, act *model.ActivityContext) float64 {
	profile := route.Route.Actor.Profile
	actor := route.Route.Actor

	distCost := m.transport.Distance(profile, act.Prev.Location, act.Target.Location) * actor.DistanceCost
	windows := m.placeWindows(act.Target)
	start, _ := m.earliestStart(profile, act.Prev.DepartureTime, act.Prev.Location, act.Target.Location, windows)
	arrival := act.Prev.DepartureTime + m.transport.Duration(profile, act.Prev.Location, act.Target.Location)
	waiting := start - arrival
	if waiting < 0 {
		waiting = 0
	}
	timeCost := (start - act.Prev.DepartureTime) * actor.TimeCost

	snapshot := &model.Activity{
		Type:          act.Target.Type,
		ArrivalTime:   arrival,
		DepartureTime: start + m.placeDuration(act.Target),
		WaitingTime:   waiting,
	}
	return distCost + timeCost + m.activity.Cost(actor, snapshot)
}

// AcceptRouteState walks the full route forward, recomputing each
// activity's actual arrival/departure/waiting time and caching the
// snapshot, and writes the resolved times back onto the Activity values
// themselves so later soft-objective evaluation can read them directly.
func (m *TransportTimeModule) AcceptRouteState(route *model.RouteContext) {
	actor := route.Route.Actor
	acts := route.Route.Activities
	snapshots := make([]timingSnapshot, len(acts))

	for i, act := range acts {
		if i == 0 {
			act.ArrivalTime = actor.TimeWindow.Start
			act.DepartureTime = actor.TimeWindow.Start
			act.WaitingTime = 0
			snapshots[i] = timingSnapshot{arrival: act.ArrivalTime, departure: act.DepartureTime}
			continue
		}
		prev := acts[i-1]
		arrival := prev.DepartureTime + m.transport.Duration(actor.Profile, prev.Location, act.Location)
		windows := m.placeWindows(act)
		start := arrival
		if len(windows) > 0 {
			best := arrival
			found := false
			for _, w := range windows {
				if arrival > w.End {
					continue
				}
				s := arrival
				if s < w.Start {
					s = w.Start
				}
				if !found || s < best {
					best = s
					found = true
				}
			}
			if found {
				start = best
			}
		}
		waiting := start - arrival
		if waiting < 0 {
			waiting = 0
		}
		act.ArrivalTime = arrival
		act.WaitingTime = waiting
		act.DepartureTime = start + m.placeDuration(act)
		snapshots[i] = timingSnapshot{arrival: arrival, departure: act.DepartureTime}
	}
	route.SetState(timingStateKey, snapshots)
}
