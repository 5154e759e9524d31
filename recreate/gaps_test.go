package recreate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrplab/engine/insertion"
	"github.com/vrplab/engine/model"
)

func TestGapFillInsertionPlacesEveryJobWhenCapacityAllows(t *testing.T) {
	jobs := []*model.Job{jobAt("a", 0, 0), jobAt("b", 1, 1), jobAt("c", 2, 2)}
	ic := buildContext(t, jobs, 2)
	op := NewGapFillInsertion(insertion.BestSelector{})

	err := op.Recreate(context.Background(), ic.Problem, ic)
	require.NoError(t, err)

	assert.Empty(t, ic.Solution.Required)
	assert.Len(t, ic.Solution.AssignedJobs(), 3)
}

func TestGapFillInsertionFallsBackToNewRouteWhenNoOpenRouteExists(t *testing.T) {
	jobs := []*model.Job{jobAt("a", 0, 0)}
	ic := buildContext(t, jobs, 1)
	op := NewGapFillInsertion(insertion.BestSelector{})

	err := op.Recreate(context.Background(), ic.Problem, ic)
	require.NoError(t, err)

	assert.Len(t, ic.Solution.AssignedJobs(), 1)
}

func TestRouteSlackSumsWaitingTime(t *testing.T) {
	actor := &model.Actor{ID: "A"}
	route := model.NewRoute(actor)
	route.Activities = []*model.Activity{
		{WaitingTime: 3},
		{WaitingTime: 4},
	}
	rc := model.NewRouteContext(route)

	assert.Equal(t, 7.0, routeSlack(rc))
}

func TestIndexOfRouteFindsExactPointer(t *testing.T) {
	a := model.NewRouteContext(model.NewRoute(&model.Actor{ID: "A"}))
	b := model.NewRouteContext(model.NewRoute(&model.Actor{ID: "B"}))
	routes := []*model.RouteContext{a, b}

	assert.Equal(t, 1, indexOfRoute(routes, b))
	assert.Equal(t, -1, indexOfRoute(routes, model.NewRouteContext(model.NewRoute(&model.Actor{ID: "C"}))))
}
