// Package solver implements the evolutionary simulator that drives
// ruin-and-recreate generation after generation: seeding the initial
// population, running one ruin+recreate cycle per offspring, inserting
// survivors into the population, and stopping when a Termination predicate
// fires. Cancellation is cooperative throughout: context.Context between
// generations and between recreate steps, Quota at generation boundaries.
package solver

import "context"

// Quota answers whether the external caller has exhausted whatever budget
// it tracks (a request deadline, a cost cap, a manual cancel button),
// independent of the Termination predicates the simulator itself evaluates.
// A nil Quota never exhausts.
type Quota interface {
	IsExhausted() bool
}

// ContextQuota adapts a context.Context's cancellation into a Quota, so a
// caller that already has a deadline/cancel context for the whole solve
// does not need a second bookkeeping mechanism.
type ContextQuota struct {
	ctx context.Context
}

// NewContextQuota wraps ctx as a Quota.
func NewContextQuota(ctx context.Context) *ContextQuota { return &ContextQuota{ctx: ctx} }

// IsExhausted implements Quota.
func (q *ContextQuota) IsExhausted() bool {
	select {
	case <-q.ctx.Done():
		return true
	default:
		return false
	}
}
