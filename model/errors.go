// Package model defines the immutable VRP problem description and the
// mutable solution scaffold that the evolutionary search mutates: Problem,
// Fleet, Jobs, Route, RouteContext, SolutionContext and InsertionContext.
//
// Design principles:
//   - Deterministic, side-effect-free constructors.
//   - Strict sentinels: package-level errors.New values, grouped by concern;
//     no fmt.Errorf where a sentinel suffices.
//   - Concurrency model documented per exported method: Problem/Fleet/Jobs
//     are built once and never mutated afterward (Fleet and Jobs accessors
//     take a read lock); Registry is the one collaborator actually mutated
//     during a run.
package model

import (
	"errors"
	"strings"
)

// Validation / input-shape errors (problem rejected pre-solve).
var (
	// ErrDuplicateJobID indicates two jobs share the same identity handle.
	ErrDuplicateJobID = errors.New("model: duplicate job id")

	// ErrDuplicateActorID indicates the fleet derivation produced two actors
	// with the same id (duplicate vehicle/driver/shift combination).
	ErrDuplicateActorID = errors.New("model: duplicate actor id")

	// ErrMalformedTimeWindow indicates a time window with End < Start.
	ErrMalformedTimeWindow = errors.New("model: malformed time window")

	// ErrEmptyJobPlaces indicates a job with zero sub-activities.
	ErrEmptyJobPlaces = errors.New("model: job has no places")

	// ErrUnreachableLocation indicates a required job's location has no
	// finite transport cost from any actor's start depot under any profile
	// the job is compatible with.
	ErrUnreachableLocation = errors.New("model: required location is unreachable")

	// ErrContradictoryLock indicates two locks claim the same job with
	// incompatible orders/positions, or a lock references an unknown job.
	ErrContradictoryLock = errors.New("model: contradictory lock")

	// ErrDimensionMismatch indicates a capacity/demand vector length does not
	// match the fleet's declared dimensionality.
	ErrDimensionMismatch = errors.New("model: capacity dimension mismatch")
)

// Configuration errors (fail fast at construction).
var (
	// ErrNoObjective indicates a Problem was built without any objective term.
	ErrNoObjective = errors.New("model: at least one objective term is required")

	// ErrNoActors indicates a Problem was built with an empty fleet.
	ErrNoActors = errors.New("model: fleet derived zero actors")
)

// Infeasibility / invariant errors (reported during or after a run).
var (
	// ErrInfeasible is the E0003-class condition: no solution could be built
	// for the given constraints within the allotted budget. Non-fatal: the
	// caller still receives the partial best solution, if any.
	ErrInfeasible = errors.New("model: cannot find any solution")

	// ErrInvariantViolation marks a bug, not recoverable user input: a
	// SolutionContext or Population was found to be internally inconsistent
	// (e.g. a job accounted for twice, or an actor double-booked). Callers
	// must never silently recover from this; it should surface along with
	// the problem identifier for diagnosis.
	ErrInvariantViolation = errors.New("model: internal invariant violated")
)

// ValidationErrors aggregates every problem-construction failure so a
// caller sees all of them at once instead of fixing issues one at a time.
// A Problem has many independent collaborators (jobs, fleet, locks,
// matrices) whose validation failures are unrelated, so short-circuiting on
// the first would force fix-rerun round trips.
type ValidationErrors struct {
	Errors []error
}

// Error renders every collected failure's message, one per line, in the
// order they were added.
func (v *ValidationErrors) Error() string {
	var b strings.Builder
	for i, err := range v.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Add appends err to the collection if err is non-nil. Safe to call with a
// nil err so validation call sites can stay one-liners.
func (v *ValidationErrors) Add(err error) {
	if err != nil {
		v.Errors = append(v.Errors, err)
	}
}

// OrNil returns v if it collected at least one error, otherwise nil, so
// callers can `return errs.OrNil()` without an extra length check.
func (v *ValidationErrors) OrNil() error {
	if v == nil || len(v.Errors) == 0 {
		return nil
	}
	return v
}

// Unwrap exposes every collected error so errors.Is/As match any of them.
func (v *ValidationErrors) Unwrap() []error { return v.Errors }

// FormatError is the wire-level error shape: a stable E-prefixed code plus
// human-readable cause and suggested action, as the Pragmatic JSON, HTTP
// and CLI adapters surface failures. It wraps the underlying sentinel (if
// any) so errors.Is still matches through it.
type FormatError struct {
	Code   string
	Cause  string
	Action string
	Err    error
}

func (e *FormatError) Error() string {
	return e.Code + ": " + e.Cause
}

func (e *FormatError) Unwrap() error { return e.Err }

// NewInfeasibleError returns the E0003 wire error: no solution could be
// built for the given constraints within the allotted budget.
func NewInfeasibleError() *FormatError {
	return &FormatError{
		Code:   "E0003",
		Cause:  "cannot find any solution",
		Action: "relax the constraints or increase the termination budget",
		Err:    ErrInfeasible,
	}
}
