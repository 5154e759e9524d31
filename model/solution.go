package model

import "github.com/vrplab/engine/randutil"

// SolutionContext is the mutable scaffold the evolutionary search builds:
// unassigned (required) jobs, ignored jobs, locked jobs, the active routes,
// and the registry of actors not yet used.
//
// Invariants (verified by Partition and tested in model/solution_test.go):
//   - Every job in the problem is accounted for exactly once across
//     {assigned in some route, Required, Ignored}. Locked is not a separate
//     category: a locked job is also in one of those three sets.
//   - No actor appears both in Registry.Available() and in an active Route.
//   - Locked jobs are placed only in routes whose actor satisfies the
//     lock's Condition, respecting LockOrder and LockPosition.
type SolutionContext struct {
	Required         []*Job
	Ignored          []*Job
	Locked           map[*Job]struct{}
	Routes           []*RouteContext
	Registry         *Registry
	UnassignedReason map[*Job]int
}

// NewSolutionContext returns an empty SolutionContext for problem: every job
// starts out Required, every actor starts out available, and no routes
// exist yet. Locked jobs (referenced by problem.Locks) are moved into
// Required too - a route is opened for them only once the insertion
// evaluator places them, same as any other job; the Locked set here tracks
// which jobs a Lock governs, not whether they have been placed.
func NewSolutionContext(problem *Problem) *SolutionContext {
	locked := make(map[*Job]struct{})
	for _, lock := range problem.Locks {
		for _, j := range lock.Jobs() {
			locked[j] = struct{}{}
		}
	}

	required := problem.Jobs.All()

	return &SolutionContext{
		Required:         required,
		Locked:           locked,
		Registry:         NewRegistry(problem.Fleet.Actors()),
		UnassignedReason: make(map[*Job]int),
	}
}

// AssignedJobs returns every job currently placed in some route.
func (s *SolutionContext) AssignedJobs() []*Job {
	var out []*Job
	for _, rc := range s.Routes {
		out = append(out, rc.Route.Jobs()...)
	}
	return out
}

// RemoveRequired removes job from Required, returning true if it was
// present.
func (s *SolutionContext) RemoveRequired(job *Job) bool {
	for i, j := range s.Required {
		if j == job {
			s.Required = append(s.Required[:i], s.Required[i+1:]...)
			return true
		}
	}
	return false
}

// MarkUnassigned appends job to Required (unless it is already there) and
// records why it could not be placed, for the unassigned-jobs
// objective term.
func (s *SolutionContext) MarkUnassigned(job *Job, reasonCode int) {
	s.UnassignedReason[job] = reasonCode
	for _, j := range s.Required {
		if j == job {
			return
		}
	}
	s.Required = append(s.Required, job)
}

// Partition checks the job-accounting invariant: every job in
// problem.Jobs appears in exactly one of {assigned in some route, Required,
// Ignored}. Locked is an annotation over jobs in the other three sets, not a
// fourth exclusive category (a locked job still lives in Required until an
// insertion places it), so it is not part of this partition. Returns
// ErrInvariantViolation naming the first job found in zero or more than one
// category.
func (s *SolutionContext) Partition(problem *Problem) error {
	counts := make(map[*Job]int)
	for _, j := range s.AssignedJobs() {
		counts[j]++
	}
	for _, j := range s.Required {
		counts[j]++
	}
	for _, j := range s.Ignored {
		counts[j]++
	}

	for _, j := range problem.Jobs.All() {
		if counts[j] != 1 {
			return ErrInvariantViolation
		}
	}
	return nil
}

// PruneEmptyRoutes drops every route with no job activities, releasing its
// actor back to the registry. Ruin operators that may leave a route empty
// call this after removing jobs.
func (s *SolutionContext) PruneEmptyRoutes() {
	kept := s.Routes[:0]
	for _, rc := range s.Routes {
		if rc.Route.Empty() {
			s.Registry.Release(rc.Route.Actor)
			continue
		}
		kept = append(kept, rc)
	}
	s.Routes = kept
}

// DeepCopy returns an independent SolutionContext: deep-copied routes and
// registry, shallow-copied job slices/sets (Job pointers are immutable
// problem collaborators, never mutated by operators, so sharing them is
// safe and cheap).
func (s *SolutionContext) DeepCopy() *SolutionContext {
	required := make([]*Job, len(s.Required))
	copy(required, s.Required)

	ignored := make([]*Job, len(s.Ignored))
	copy(ignored, s.Ignored)

	locked := make(map[*Job]struct{}, len(s.Locked))
	for j := range s.Locked {
		locked[j] = struct{}{}
	}

	reasons := make(map[*Job]int, len(s.UnassignedReason))
	for j, c := range s.UnassignedReason {
		reasons[j] = c
	}

	routes := make([]*RouteContext, len(s.Routes))
	for i, rc := range s.Routes {
		routes[i] = rc.DeepCopy()
	}

	return &SolutionContext{
		Required:         required,
		Ignored:          ignored,
		Locked:           locked,
		Routes:           routes,
		Registry:         s.Registry.DeepCopy(),
		UnassignedReason: reasons,
	}
}

// InsertionContext owns a SolutionContext plus a random source and an
// environment handle: the atom of evolution. Every ruin/recreate operator
// takes one InsertionContext and returns a mutated one; the evolution loop
// never mutates a parent's InsertionContext in place.
type InsertionContext struct {
	Problem     *Problem
	Solution    *SolutionContext
	Random      *randutil.Random
	Environment map[string]interface{}
}

// NewInsertionContext returns a fresh InsertionContext over an empty
// SolutionContext for problem.
func NewInsertionContext(problem *Problem, random *randutil.Random) *InsertionContext {
	return &InsertionContext{
		Problem:     problem,
		Solution:    NewSolutionContext(problem),
		Random:      random,
		Environment: make(map[string]interface{}),
	}
}

// DeepCopy returns an independent InsertionContext with value semantics:
// Problem is shared by pointer (immutable), Solution is deep-copied, and a
// fresh derived Random stream is attached so concurrent copies never share
// RNG state.
func (ic *InsertionContext) DeepCopy() *InsertionContext {
	env := make(map[string]interface{}, len(ic.Environment))
	for k, v := range ic.Environment {
		env[k] = v
	}
	return &InsertionContext{
		Problem:     ic.Problem,
		Solution:    ic.Solution.DeepCopy(),
		Random:      ic.Random.Derive(0),
		Environment: env,
	}
}
