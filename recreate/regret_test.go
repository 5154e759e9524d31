package recreate

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

func TestRegretInsertionPlacesEveryJobWhenCapacityAllows(t *testing.T) {
	jobs := []*model.Job{jobAt("a", 0, 0), jobAt("b", 1, 1), jobAt("c", 2, 2)}
	ic := buildContext(t, jobs, 2)
	op := NewRegretInsertion(2, insertion.BestSelector{})

	err := op.Recreate(context.Background(), ic.Problem, ic)
	require.NoError(t, err)

	assert.Empty(t, ic.Solution.Required)
	assert.Len(t, ic.Solution.AssignedJobs(), 3)
}

func TestRegretInsertionKBelowTwoIsClampedToTwo(t *testing.T) {
	op := NewRegretInsertion(0, insertion.BestSelector{})
	assert.Equal(t, 2, op.K)
}

func TestRegretInsertionMarksUnassignedWhenNoActorAvailable(t *testing.T) {
	jobs := []*model.Job{jobAt("a", 0, 0), jobAt("b", 1, 1)}
	ic := buildContext(t, jobs, 1)
	op := NewRegretInsertion(2, insertion.BestSelector{})

	err := op.Recreate(context.Background(), ic.Problem, ic)
	require.NoError(t, err)

	assert.Len(t, ic.Solution.AssignedJobs(), 1)
	assert.Len(t, ic.Solution.UnassignedReason, 1)
}

func TestRegretOfEmptyResultsIsInfinite(t *testing.T) {
	got := regretOf(nil, 2)
	assert.True(t, math.IsInf(got, 1))
}

func TestRegretOfFewerThanKUsesLastAgainstFirst(t *testing.T) {
	results := []insertion.BestJobRoute{
		{Result: insertion.JobRouteResult{Cost: 5, Feasible: true}},
		{Result: insertion.JobRouteResult{Cost: 9, Feasible: true}},
	}
	got := regretOf(results, 5)
	assert.Equal(t, 4.0, got)
}

func TestRegretOfUsesKthAgainstFirst(t *testing.T) {
	results := []insertion.BestJobRoute{
		{Result: insertion.JobRouteResult{Cost: 2, Feasible: true}},
		{Result: insertion.JobRouteResult{Cost: 6, Feasible: true}},
		{Result: insertion.JobRouteResult{Cost: 10, Feasible: true}},
	}
	got := regretOf(results, 2)
	assert.Equal(t, 4.0, got)
}
