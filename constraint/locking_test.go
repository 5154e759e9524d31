package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrplab/engine/model"
)

func TestLockingModuleRejectsUnsatisfiedCondition(t *testing.T) {
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)
	lock := model.NewLock(func(a *model.Actor) bool { return a.VehicleID == "v-special" },
		[]model.LockDetail{model.NewLockDetail(model.LockOrderAny, model.LockPositionAny, []*model.Job{job})})
	m := NewLockingModule([]*model.Lock{lock})

	rc := model.NewRouteContext(model.NewRoute(&model.Actor{VehicleID: "v-other"}))
	code, violated := m.EvaluateJob(nil, rc, job)
	assert.Equal(t, "locking", code)
	assert.True(t, violated)
}

func TestLockingModuleAcceptsSatisfiedCondition(t *testing.T) {
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)
	lock := model.NewLock(func(a *model.Actor) bool { return a.VehicleID == "v-special" },
		[]model.LockDetail{model.NewLockDetail(model.LockOrderAny, model.LockPositionAny, []*model.Job{job})})
	m := NewLockingModule([]*model.Lock{lock})

	rc := model.NewRouteContext(model.NewRoute(&model.Actor{VehicleID: "v-special"}))
	_, violated := m.EvaluateJob(nil, rc, job)
	assert.False(t, violated)
}

func TestLockingModuleIgnoresUnlockedJobs(t *testing.T) {
	m := NewLockingModule(nil)
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	_, violated := m.EvaluateJob(nil, rc, model.NewSingleJob("free", model.JobPlace{}, nil))
	assert.False(t, violated)
}

func TestLockingModuleEnforcesDeparturePosition(t *testing.T) {
	job := model.NewSingleJob("first", model.JobPlace{}, nil)
	lock := model.NewLock(nil,
		[]model.LockDetail{model.NewLockDetail(model.LockOrderAny, model.LockPositionDeparture, []*model.Job{job})})
	m := NewLockingModule([]*model.Lock{lock})

	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	target := &model.Activity{Job: job}
	notDeparture := &model.Activity{Type: model.Service}

	_, stopped, violated := m.EvaluateActivity(rc, &model.ActivityContext{Route: rc, Prev: notDeparture, Target: target})
	assert.False(t, stopped)
	assert.True(t, violated)

	departure := &model.Activity{Type: model.Departure}
	_, _, violated = m.EvaluateActivity(rc, &model.ActivityContext{Route: rc, Prev: departure, Target: target})
	assert.False(t, violated)
}

func TestLockingModuleStrictOrderForbidsInsertionBetween(t *testing.T) {
	a := model.NewSingleJob("a", model.JobPlace{}, nil)
	b := model.NewSingleJob("b", model.JobPlace{}, nil)
	other := model.NewSingleJob("other", model.JobPlace{}, nil)
	lock := model.NewLock(nil,
		[]model.LockDetail{model.NewLockDetail(model.LockOrderStrict, model.LockPositionAny, []*model.Job{a, b})})
	m := NewLockingModule([]*model.Lock{lock})

	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	prev := &model.Activity{Job: a}
	next := &model.Activity{Job: b}
	target := &model.Activity{Job: other}

	_, _, violated := m.EvaluateActivity(rc, &model.ActivityContext{Route: rc, Prev: prev, Target: target, Next: next})
	assert.True(t, violated)
}

func TestLockingModuleSequenceOrderAllowsInsertionBetween(t *testing.T) {
	a := model.NewSingleJob("a", model.JobPlace{}, nil)
	b := model.NewSingleJob("b", model.JobPlace{}, nil)
	other := model.NewSingleJob("other", model.JobPlace{}, nil)
	lock := model.NewLock(nil,
		[]model.LockDetail{model.NewLockDetail(model.LockOrderSequence, model.LockPositionAny, []*model.Job{a, b})})
	m := NewLockingModule([]*model.Lock{lock})

	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	prev := &model.Activity{Job: a}
	next := &model.Activity{Job: b}
	target := &model.Activity{Job: other}

	_, _, violated := m.EvaluateActivity(rc, &model.ActivityContext{Route: rc, Prev: prev, Target: target, Next: next})
	assert.False(t, violated)
}

func TestLockingModuleSequenceOrderForbidsReshuffle(t *testing.T) {
	a := model.NewSingleJob("a", model.JobPlace{}, nil)
	b := model.NewSingleJob("b", model.JobPlace{}, nil)
	lock := model.NewLock(nil,
		[]model.LockDetail{model.NewLockDetail(model.LockOrderSequence, model.LockPositionAny, []*model.Job{a, b})})
	m := NewLockingModule([]*model.Lock{lock})

	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	// b is being inserted immediately before a, reversing their declared order.
	target := &model.Activity{Job: b}
	next := &model.Activity{Job: a}
	departure := &model.Activity{Type: model.Departure}

	_, _, violated := m.EvaluateActivity(rc, &model.ActivityContext{Route: rc, Prev: departure, Target: target, Next: next})
	assert.True(t, violated)
}
