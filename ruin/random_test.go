package ruin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrplab/engine/model"
)

func TestRandomRemovalNoAssignedJobsIsNoop(t *testing.T) {
	ic := buildContext(t, nil, 1)
	r := NewRandomRemoval(1, 3)

	removed := r.Ruin(ic)
	assert.Empty(t, removed)
}

func TestRandomRemovalRemovesWithinRequestedRange(t *testing.T) {
	jobs := []*model.Job{jobAt("a", 0, 0), jobAt("b", 1, 1), jobAt("c", 2, 2), jobAt("d", 3, 3)}
	ic := buildContext(t, jobs, 2)
	r := NewRandomRemoval(2, 2)

	removed := r.Ruin(ic)
	assert.Len(t, removed, 2)
	assert.Len(t, ic.Solution.Required, 2)
	assert.Len(t, ic.Solution.AssignedJobs(), 2)
}

func TestRandomRemovalClampsCountToAvailable(t *testing.T) {
	jobs := []*model.Job{jobAt("a", 0, 0)}
	ic := buildContext(t, jobs, 1)
	r := NewRandomRemoval(5, 10)

	removed := r.Ruin(ic)
	assert.Len(t, removed, 1)
}
