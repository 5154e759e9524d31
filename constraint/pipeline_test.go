package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrplab/engine/model"
)

func TestPipelineEvaluateHardRouteShortCircuits(t *testing.T) {
	p := NewPipeline(NewSkillsModule(), NewCompatibilityModule())
	actor := &model.Actor{Skills: map[string]struct{}{}}
	rc := model.NewRouteContext(model.NewRoute(actor))
	job := model.NewSingleJob("j1", model.JobPlace{}, model.Dimensions{model.DimSkills: []string{"crane"}})

	code, violated := p.EvaluateHardRoute(nil, rc, job)
	assert.Equal(t, "skills", code)
	assert.True(t, violated)
}

func TestPipelineEstimateSoftRouteSumsAllModules(t *testing.T) {
	p := NewPipeline(NewFleetUsageModule(), NewPriorityModule(1))
	actor := &model.Actor{FixedCost: 10}
	rc := model.NewRouteContext(model.NewRoute(actor))
	job := model.NewSingleJob("j1", model.JobPlace{}, model.Dimensions{model.DimPriority: 3})

	total := p.EstimateSoftRoute(nil, rc, job)
	assert.Equal(t, float64(13), total)
}

func TestPipelineAcceptRouteStateBumpsVersionOnce(t *testing.T) {
	p := NewPipeline(NewCapacityModule())
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{Capacity: []float64{5}}))
	before := rc.Version()

	p.AcceptRouteState(rc)

	assert.Equal(t, before+1, rc.Version())
}

func TestPipelineMergeCombinesJobsWhenGatesAllow(t *testing.T) {
	p := NewPipeline(NewCompatibilityModule())
	src := taggedJob("src", "red")
	cand := taggedJob("cand", "red")

	merged, code, ok := p.Merge(src, cand)
	assert.True(t, ok)
	assert.Empty(t, code)
	assert.Len(t, merged.Places, 2)
}

func TestPipelineMergeRejectsWhenGateDenies(t *testing.T) {
	p := NewPipeline(NewCompatibilityModule())
	src := taggedJob("src", "red")
	cand := taggedJob("cand", "blue")

	merged, code, ok := p.Merge(src, cand)
	assert.False(t, ok)
	assert.Equal(t, "compatibility", code)
	assert.Nil(t, merged)
}
