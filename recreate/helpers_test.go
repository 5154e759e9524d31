package recreate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vrplab/engine/constraint"
	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/randutil"
)

type stubTransport struct{ distance float64 }

func (s stubTransport) Distance(_ model.Profile, from, to model.Location) float64 {
	dx, dy := from.Lat-to.Lat, from.Lon-to.Lon
	if dx == 0 && dy == 0 {
		return 0
	}
	return s.distance
}
func (s stubTransport) Duration(p model.Profile, from, to model.Location) float64 {
	return s.Distance(p, from, to)
}

type stubObjective struct{}

func (stubObjective) Fitness(*model.InsertionContext) float64 { return 0 }
func (stubObjective) TotalOrder(*model.InsertionContext, *model.InsertionContext) int {
	return 0
}
func (stubObjective) Distance(*model.InsertionContext, *model.InsertionContext) float64 { return 0 }

type stubMultiObjective struct{ stubObjective }

func (stubMultiObjective) Terms() []model.Objective { return []model.Objective{stubObjective{}} }

// buildContext returns an InsertionContext with numActors available actors,
// no open routes yet, and every job in jobs sitting in Required, ready for a
// recreate operator to place.
func buildContext(t *testing.T, jobs []*model.Job, numActors int) *model.InsertionContext {
	t.Helper()
	specs := make([]model.VehicleSpec, numActors)
	for i := range specs {
		specs[i] = model.VehicleSpec{ID: string(rune('A' + i)), Shifts: []model.Shift{{}}}
	}
	fleet, err := model.NewFleet(specs)
	require.NoError(t, err)

	registry, err := model.NewJobs(jobs)
	require.NoError(t, err)

	problem, err := model.NewProblem(fleet, registry, nil, constraint.NewPipeline(), nil, stubTransport{distance: 1}, stubMultiObjective{}, nil)
	require.NoError(t, err)

	sol := model.NewSolutionContext(problem)
	return &model.InsertionContext{
		Problem:     problem,
		Solution:    sol,
		Random:      randutil.NewRandom(1),
		Environment: make(map[string]interface{}),
	}
}

func jobAt(id string, lat, lon float64) *model.Job {
	return model.NewSingleJob(id, model.JobPlace{Location: model.Location{Lat: lat, Lon: lon}}, nil)
}
