package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrplab/engine/model"
)

func TestPriorityModuleScalesWithPriority(t *testing.T) {
	m := NewPriorityModule(2.0)
	urgent := model.NewSingleJob("urgent", model.JobPlace{}, nil) // priority defaults to 0
	lowPriority := model.NewSingleJob("low", model.JobPlace{}, model.Dimensions{model.DimPriority: 5})

	assert.Equal(t, float64(0), m.EstimateJob(nil, nil, urgent))
	assert.Equal(t, float64(10), m.EstimateJob(nil, nil, lowPriority))
}
