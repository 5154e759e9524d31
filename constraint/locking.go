package constraint

import "github.com/vrplab/engine/model"

// LockingModule enforces model.Lock assignments: a locked job may only be
// placed on a route whose actor satisfies the lock's Condition, and
// LockPosition/LockOrder further constrain where within the route it may
// sit.
type LockingModule struct {
	NoopState
	byJob map[*model.Job]*model.Lock
}

// NewLockingModule indexes every job referenced by locks for O(1) lookup.
func NewLockingModule(locks []*model.Lock) *LockingModule {
	byJob := make(map[*model.Job]*model.Lock)
	for _, lock := range locks {
		for _, j := range lock.Jobs() {
			byJob[j] = lock
		}
	}
	return &LockingModule{byJob: byJob}
}

// Name implements Module.
func (m *LockingModule) Name() string { return "locking" }

// EvaluateJob implements HardRouteConstraint: a locked job may only enter a
// route whose actor satisfies its lock's Condition.
func (m *LockingModule) EvaluateJob(_ *model.SolutionContext, route *model.RouteContext, job *model.Job) (string, bool) {
	lock, locked := m.byJob[job]
	if !locked {
		return "", false
	}
	if lock.Condition != nil && !lock.Condition(route.Route.Actor) {
		return "locking", true
	}
	return "", false
}

func lockDetailFor(lock *model.Lock, job *model.Job) (model.LockDetail, bool) {
	for _, d := range lock.Details {
		for _, j := range d.Jobs {
			if j == job {
				return d, true
			}
		}
	}
	return model.LockDetail{}, false
}

// detailFor returns the LockDetail governing job, if job is locked at all.
func (m *LockingModule) detailFor(job *model.Job) (model.LockDetail, bool) {
	if job == nil {
		return model.LockDetail{}, false
	}
	lock, locked := m.byJob[job]
	if !locked {
		return model.LockDetail{}, false
	}
	return lockDetailFor(lock, job)
}

// memberIndex returns job's position within detail.Jobs, if present.
func memberIndex(detail model.LockDetail, job *model.Job) (int, bool) {
	if job == nil {
		return 0, false
	}
	for i, j := range detail.Jobs {
		if j == job {
			return i, true
		}
	}
	return 0, false
}

// evaluateOrder enforces LockDetail.Order at the point act.Target is
// tentatively inserted between act.Prev and act.Next:
//
//   - LockOrderSequence and LockOrderStrict both forbid reshuffling a
//     detail's jobs relative to each other: if the inserted job is itself a
//     member, its immediate neighbor in the route must be its declared
//     predecessor/successor whenever that neighbor belongs to the same
//     detail at all.
//   - LockOrderStrict additionally forbids inserting anything between two
//     jobs that are already adjacent members of the same Strict detail.
func (m *LockingModule) evaluateOrder(act *model.ActivityContext) (string, bool, bool) {
	prevJob := act.Prev.Job
	var nextJob *model.Job
	if act.Next != nil {
		nextJob = act.Next.Job
	}

	if detail, ok := m.detailFor(act.Target.Job); ok && detail.Order != model.LockOrderAny {
		idx, _ := memberIndex(detail, act.Target.Job)
		if prevIdx, isMember := memberIndex(detail, prevJob); isMember && prevIdx != idx-1 {
			return "locking_order", false, true
		}
		if nextIdx, isMember := memberIndex(detail, nextJob); isMember && nextIdx != idx+1 {
			return "locking_order", false, true
		}
	}

	if prevDetail, ok := m.detailFor(prevJob); ok && prevDetail.Order == model.LockOrderStrict {
		prevIdx, _ := memberIndex(prevDetail, prevJob)
		if nextIdx, isMember := memberIndex(prevDetail, nextJob); isMember && nextIdx == prevIdx+1 {
			return "locking_order", false, true
		}
	}

	return "", false, false
}

// EvaluateActivity implements HardActivityConstraint: enforces
// LockOrder (reshuffle/insertion-between restrictions, see evaluateOrder)
// plus LockPositionDeparture/Arrival (the locked job must be the first/last
// activity in the route) for the target job, when it is the boundary job
// of its lock detail's sequence.
func (m *LockingModule) EvaluateActivity(route *model.RouteContext, act *model.ActivityContext) (string, bool, bool) {
	if code, soft, hard := m.evaluateOrder(act); hard {
		return code, soft, hard
	}

	job := act.Target.Job
	if job == nil {
		return "", false, false
	}
	lock, locked := m.byJob[job]
	if !locked {
		return "", false, false
	}
	detail, ok := lockDetailFor(lock, job)
	if !ok || len(detail.Jobs) == 0 {
		return "", false, false
	}

	isFirst := detail.Jobs[0] == job
	isLast := detail.Jobs[len(detail.Jobs)-1] == job

	switch detail.Position {
	case model.LockPositionDeparture:
		if isFirst && act.Prev.Type != model.Departure {
			return "locking_position", false, true
		}
	case model.LockPositionArrival:
		if isLast && act.Next != nil && act.Next.Type != model.Arrival {
			return "locking_position", false, true
		}
	case model.LockPositionFixed:
		if (isFirst && act.Prev.Type == model.Departure) ||
			(isLast && act.Next != nil && act.Next.Type == model.Arrival) {
			return "locking_position", false, true
		}
	}
	return "", false, false
}
