package ruin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/randutil"
)

// addJobToRoute appends job as a Service activity immediately before route's
// Arrival activity.
func addJobToRoute(route *model.Route, job *model.Job) {
	n := len(route.Activities)
	route.Activities = append(route.Activities[:n-1],
		&model.Activity{Type: model.Service, Job: job, Location: job.Places[0].Location},
		route.Activities[n-1],
	)
}

type stubTransport struct{ distance float64 }

func (s stubTransport) Distance(_ model.Profile, _, _ model.Location) float64 { return s.distance }
func (s stubTransport) Duration(_ model.Profile, _, _ model.Location) float64 { return s.distance }

type stubObjective struct{}

func (stubObjective) Fitness(*model.InsertionContext) float64        { return 0 }
func (stubObjective) TotalOrder(*model.InsertionContext, *model.InsertionContext) int {
	return 0
}
func (stubObjective) Distance(*model.InsertionContext, *model.InsertionContext) float64 { return 0 }

type stubMultiObjective struct{ stubObjective }

func (stubMultiObjective) Terms() []model.Objective { return []model.Objective{stubObjective{}} }

// buildContext distributes jobs round-robin across numRoutes routes of a
// single-vehicle-spec-derived fleet, and returns a ready-to-ruin
// InsertionContext seeded deterministically.
func buildContext(t *testing.T, jobs []*model.Job, numRoutes int) *model.InsertionContext {
	t.Helper()
	specs := make([]model.VehicleSpec, numRoutes)
	for i := range specs {
		specs[i] = model.VehicleSpec{ID: string(rune('A' + i)), Shifts: []model.Shift{{}}}
	}
	fleet, err := model.NewFleet(specs)
	require.NoError(t, err)

	registry, err := model.NewJobs(jobs)
	require.NoError(t, err)

	problem, err := model.NewProblem(fleet, registry, nil, nil, nil, stubTransport{distance: 1}, stubMultiObjective{}, nil)
	require.NoError(t, err)

	sol := model.NewSolutionContext(problem)
	actors := fleet.Actors()
	routes := make([]*model.Route, numRoutes)
	for i, actor := range actors {
		sol.Registry.Use(actor)
		routes[i] = model.NewRoute(actor)
		sol.Routes = append(sol.Routes, model.NewRouteContext(routes[i]))
	}
	for i, job := range jobs {
		addJobToRoute(routes[i%numRoutes], job)
	}
	sol.Required = nil

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
