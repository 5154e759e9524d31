// Package transport implements model.TransportCost/model.ActivityCost over
// dense, row-major distance and duration matrices, one (possibly
// asymmetric) pair per routing profile, indexed by model.Location.Index.
package transport

import (
	"errors"
	"fmt"
	"math"

	"github.com/vrplab/engine/model"
)

// ErrInvalidDimensions indicates a requested matrix size is non-positive.
var ErrInvalidDimensions = errors.New("transport: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a Location.Index falls outside a matrix's
// bounds.
var ErrIndexOutOfBounds = errors.New("transport: location index out of bounds")

// ErrUnknownProfile indicates a query referenced a profile with no matrix
// registered.
var ErrUnknownProfile = errors.New("transport: unknown profile")

// dense is a row-major n×n matrix of float64 costs.
type dense struct {
	n    int
	data []float64
}

func newDense(n int) (*dense, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &dense{n: n, data: make([]float64, n*n)}, nil
}

func (d *dense) at(i, j int) (float64, error) {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return 0, fmt.Errorf("transport: at(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}
	return d.data[i*d.n+j], nil
}

func (d *dense) set(i, j int, v float64) error {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		return fmt.Errorf("transport: set(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}
	d.data[i*d.n+j] = v
	return nil
}

// profileMatrices holds one distance/duration pair for a single profile.
type profileMatrices struct {
	distance *dense
	duration *dense
}

// MatrixCost is a model.TransportCost/model.ActivityCost implementation
// backed by one dense distance+duration matrix pair per profile. Built once
// and shared read-only by every goroutine in the evolution loop.
type MatrixCost struct {
	profiles     map[string]*profileMatrices
	waitingCost  float64
	serviceCost  float64
}

// Option configures a MatrixCost at construction.
type Option func(*MatrixCost)

// WithWaitingCost sets the per-second cost charged for waiting time at an
// activity (default 0).
func WithWaitingCost(cost float64) Option {
	return func(m *MatrixCost) { m.waitingCost = cost }
}

// WithServiceCost sets a flat per-second multiplier charged for an
// activity's service duration (default 0, meaning only transport cost
// drives the objective unless the caller opts in).
func WithServiceCost(cost float64) Option {
	return func(m *MatrixCost) { m.serviceCost = cost }
}

// NewMatrixCost constructs an empty MatrixCost; call AddProfile once per
// routing profile before using it as a model.TransportCost.
func NewMatrixCost(opts ...Option) *MatrixCost {
	m := &MatrixCost{profiles: make(map[string]*profileMatrices)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddProfile registers a dense n×n distance/duration matrix pair for
// profile, where row/col i corresponds to model.Location{Index: i}.
func (m *MatrixCost) AddProfile(profile string, distance, duration [][]float64) error {
	n := len(distance)
	if n == 0 || len(duration) != n {
		return ErrInvalidDimensions
	}

	dm, err := newDense(n)
	if err != nil {
		return err
	}
	tm, err := newDense(n)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if len(distance[i]) != n || len(duration[i]) != n {
			return ErrInvalidDimensions
		}
		for j := 0; j < n; j++ {
			if err := dm.set(i, j, distance[i][j]); err != nil {
				return err
			}
			if err := tm.set(i, j, duration[i][j]); err != nil {
				return err
			}
		}
	}

	m.profiles[profile] = &profileMatrices{distance: dm, duration: tm}
	return nil
}

// Distance implements model.TransportCost. Returns +Inf if the profile is
// unknown or either location index is out of range, matching the
// "no route exists" convention.
func (m *MatrixCost) Distance(profile model.Profile, from, to model.Location) float64 {
	pm, ok := m.profiles[profile.Name]
	if !ok {
		return math.Inf(1)
	}
	v, err := pm.distance.at(from.Index, to.Index)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// Duration implements model.TransportCost.
func (m *MatrixCost) Duration(profile model.Profile, from, to model.Location) float64 {
	pm, ok := m.profiles[profile.Name]
	if !ok {
		return math.Inf(1)
	}
	v, err := pm.duration.at(from.Index, to.Index)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// Cost implements model.ActivityCost: waiting-time penalty plus a flat
// per-second service charge, both zero by default.
func (m *MatrixCost) Cost(actor *model.Actor, act *model.Activity) float64 {
	_ = actor
	return act.WaitingTime*m.waitingCost + (act.DepartureTime-act.ArrivalTime-act.WaitingTime)*m.serviceCost
}
