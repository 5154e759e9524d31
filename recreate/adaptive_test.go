package recreate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrplab/engine/model"
)

type fakeOperator struct {
	name string
	err  error
}

func (f *fakeOperator) Name() string { return f.name }
func (f *fakeOperator) Recreate(context.Context, *model.Problem, *model.InsertionContext) error {
	return f.err
}

func TestAdaptiveSelectorRecreateRunsDrawnOperator(t *testing.T) {
	a := &fakeOperator{name: "a"}
	b := &fakeOperator{name: "b"}
	s := NewAdaptiveSelector([]Operator{a, b})
	ic := buildContext(t, nil, 1)

	err := s.Recreate(context.Background(), ic.Problem, ic)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.lastIdx, 0)
	assert.Less(t, s.lastIdx, 2)
}

func TestAdaptiveSelectorRewardIncreasesWeightOfLastSelected(t *testing.T) {
	a := &fakeOperator{name: "a"}
	b := &fakeOperator{name: "b"}
	s := NewAdaptiveSelector([]Operator{a, b})
	ic := buildContext(t, nil, 1)

	require.NoError(t, s.Recreate(context.Background(), ic.Problem, ic))
	before := s.weights[s.lastIdx]
	s.Reward()
	after := s.weights[s.lastIdx]

	assert.Greater(t, after, before)
}

func TestAdaptiveSelectorPenalizeDecaysButNeverReachesZero(t *testing.T) {
	a := &fakeOperator{name: "a"}
	s := NewAdaptiveSelector([]Operator{a})
	ic := buildContext(t, nil, 1)
	require.NoError(t, s.Recreate(context.Background(), ic.Problem, ic))

	for i := 0; i < 1000; i++ {
		s.Penalize()
	}

	assert.Greater(t, s.weights[s.lastIdx], 0.0)
}

func TestAdaptiveSelectorWeightsStartEqual(t *testing.T) {
	a := &fakeOperator{name: "a"}
	b := &fakeOperator{name: "b"}
	s := NewAdaptiveSelector([]Operator{a, b})

	assert.Equal(t, s.weights[0], s.weights[1])
}

func TestAdaptiveSelectorPropagatesOperatorError(t *testing.T) {
	boom := assert.AnError
	a := &fakeOperator{name: "a", err: boom}
	s := NewAdaptiveSelector([]Operator{a})
	ic := buildContext(t, nil, 1)

	err := s.Recreate(context.Background(), ic.Problem, ic)
	assert.ErrorIs(t, err, boom)
}
