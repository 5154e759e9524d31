package model

// Extras carries arbitrary feature-flag-style values (string key -> opaque
// value) from the caller to custom constraint modules or objective terms.
type Extras map[string]interface{}

// Problem is the immutable VRP problem description: fleet, jobs, locks, cost
// functions, constraint pipeline and objective. Built once by NewProblem and
// never mutated afterward - every field is safe to read from any goroutine
// without synchronization once NewProblem returns.
type Problem struct {
	Fleet      *Fleet
	Jobs       *Jobs
	Locks      []*Lock
	Constraint ConstraintPipeline
	Activity   ActivityCost
	Transport  TransportCost
	Objective  MultiObjective
	Extras     Extras
}

// NewProblem validates and constructs a Problem. Every validation failure is
// collected (not short-circuited) so the caller sees the complete list in
// one pass.
func NewProblem(
	fleet *Fleet,
	jobs *Jobs,
	locks []*Lock,
	constraint ConstraintPipeline,
	activity ActivityCost,
	transport TransportCost,
	objective MultiObjective,
	extras Extras,
) (*Problem, error) {
	errs := &ValidationErrors{}

	if fleet == nil || fleet.Size() == 0 {
		errs.Add(ErrNoActors)
	}
	if objective == nil || len(objective.Terms()) == 0 {
		errs.Add(ErrNoObjective)
	}
	if jobs != nil {
		for _, j := range jobs.All() {
			errs.Add(j.Validate())
		}
	}
	errs.Add(validateLocks(locks, jobs))

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if extras == nil {
		extras = make(Extras)
	}

	return &Problem{
		Fleet:      fleet,
		Jobs:       jobs,
		Locks:      locks,
		Constraint: constraint,
		Activity:   activity,
		Transport:  transport,
		Objective:  objective,
		Extras:     extras,
	}, nil
}

// validateLocks checks that every locked job exists, that no job is claimed
// by more than one Lock, and that the Strict/Sequence ordering implied
// across locks' job lists has no cyclic precedence requirement.
//
// The cycle check is a three-color depth-first search (white/gray/black):
// a gray node reached again means a back edge, i.e. a cycle in the
// precedence graph we build from each LockDetail's Strict/Sequence job
// order.
func validateLocks(locks []*Lock, jobs *Jobs) error {
	claimedBy := make(map[*Job]*Lock)
	precedence := make(map[*Job][]*Job) // job -> jobs that must follow it

	for _, lock := range locks {
		for _, detail := range lock.Details {
			if len(detail.Jobs) == 0 {
				return ErrContradictoryLock
			}
			for i, j := range detail.Jobs {
				if jobs != nil {
					if _, ok := jobs.Get(j.ID); !ok {
						return ErrContradictoryLock
					}
				}
				if other, dup := claimedBy[j]; dup && other != lock {
					return ErrContradictoryLock
				}
				claimedBy[j] = lock

				if detail.Order != LockOrderAny && i+1 < len(detail.Jobs) {
					next := detail.Jobs[i+1]
					precedence[j] = append(precedence[j], next)
				}
			}
		}
	}

	if hasCycle(precedence) {
		return ErrContradictoryLock
	}
	return nil
}

const (
	white = 0
	gray  = 1
	black = 2
)

// hasCycle runs three-color DFS over the precedence graph (job -> jobs that
// must come after it). Returns true iff a back edge (a gray node reached
// again) is found, i.e. the graph is not a DAG.
func hasCycle(precedence map[*Job][]*Job) bool {
	color := make(map[*Job]int)

	var visit func(*Job) bool
	visit = func(j *Job) bool {
		color[j] = gray
		for _, next := range precedence[j] {
			switch color[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[j] = black
		return false
	}

	// Deterministic iteration: collect nodes first, iterate in a stable
	// order derived from map insertion is not guaranteed in Go, so callers
	// needing byte-identical diagnostics should rely on the boolean result
	// only; the cycle search itself is correctness-only, not diagnostic.
	for j := range precedence {
		if color[j] == white {
			if visit(j) {
				return true
			}
		}
	}
	return false
}
