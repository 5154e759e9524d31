package insertion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrplab/engine/model"
)

func TestCacheGetMissWhenNeverStored(t *testing.T) {
	c := NewCache()
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)

	_, ok := c.Get(rc, job)
	assert.False(t, ok)
}

func TestCacheHitAfterPut(t *testing.T) {
	c := NewCache()
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)
	want := JobRouteResult{Feasible: true, Cost: 42, Positions: []int{1}}

	c.Put(rc, job, want)
	got, ok := c.Get(rc, job)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheInvalidatedByRouteVersionBump(t *testing.T) {
	c := NewCache()
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)

	c.Put(rc, job, JobRouteResult{Feasible: true, Cost: 1})
	rc.Touch()

	_, ok := c.Get(rc, job)
	assert.False(t, ok, "a version bump must invalidate the cached entry")
}

func TestCacheKeysAreIndependentPerJob(t *testing.T) {
	c := NewCache()
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	j1 := model.NewSingleJob("j1", model.JobPlace{}, nil)
	j2 := model.NewSingleJob("j2", model.JobPlace{}, nil)

	c.Put(rc, j1, JobRouteResult{Cost: 1})
	_, ok := c.Get(rc, j2)
	assert.False(t, ok)
}

func TestCacheMergeDisjointRoutesCombine(t *testing.T) {
	a, b := NewCache(), NewCache()
	rc1 := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	rc2 := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)

	a.Put(rc1, job, JobRouteResult{Feasible: true, Cost: 1})
	b.Put(rc2, job, JobRouteResult{Feasible: true, Cost: 2})

	a.Merge(b)

	got1, ok1 := a.Get(rc1, job)
	got2, ok2 := a.Get(rc2, job)
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, float64(1), got1.Cost)
	assert.Equal(t, float64(2), got2.Cost)
}

func TestCacheMergeNewerVersionWins(t *testing.T) {
	a, b := NewCache(), NewCache()
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)

	a.Put(rc, job, JobRouteResult{Feasible: true, Cost: 1})
	rc.Touch()
	b.Put(rc, job, JobRouteResult{Feasible: true, Cost: 2})

	a.Merge(b)

	got, ok := a.Get(rc, job)
	assert.True(t, ok, "merged entry must carry the current route version")
	assert.Equal(t, float64(2), got.Cost)
}

func TestCacheMergeNilIsNoop(t *testing.T) {
	c := NewCache()
	rc := model.NewRouteContext(model.NewRoute(&model.Actor{}))
	job := model.NewSingleJob("j1", model.JobPlace{}, nil)
	c.Put(rc, job, JobRouteResult{Feasible: true, Cost: 1})

	c.Merge(nil)

	_, ok := c.Get(rc, job)
	assert.True(t, ok)
}
