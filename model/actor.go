package model

import (
	"fmt"
	"sort"
	"sync"
)

// Shift is one scheduling window a vehicle can run, with its own start/end
// depot (a vehicle may start one shift at the garage and another at a
// satellite depot).
type Shift struct {
	TimeWindow    TimeWindow
	StartLocation Location
	EndLocation   Location
}

// VehicleSpec is the caller-supplied description of one vehicle: its
// profile, capacity, skills, the shifts it can run, and the drivers eligible
// to run it. Fleet derivation turns every (vehicle, driver, shift) triple
// into one Actor.
type VehicleSpec struct {
	ID       string
	Profile  Profile
	Capacity []float64
	Skills   []string
	Shifts   []Shift
	Drivers  []string

	// Cost coefficients carried onto every derived Actor: a one-time charge
	// for using the vehicle at all, plus per-distance-unit and
	// per-time-unit rates. All default to zero.
	FixedCost    float64
	TimeCost     float64
	DistanceCost float64
}

// Actor is the unit assigned to a route: a unique combination of vehicle,
// driver, and shift. Immutable after Fleet derivation.
type Actor struct {
	ID            string
	VehicleID     string
	DriverID      string
	ShiftIndex    int
	StartLocation Location
	EndLocation   Location
	TimeWindow    TimeWindow
	Capacity      []float64
	Profile       Profile
	Skills        map[string]struct{}
	FixedCost     float64
	TimeCost      float64
	DistanceCost  float64
}

// HasSkills reports whether the actor satisfies every skill in required.
func (a *Actor) HasSkills(required []string) bool {
	for _, s := range required {
		if _, ok := a.Skills[s]; !ok {
			return false
		}
	}
	return true
}

// Fleet is the immutable, deterministically-ordered set of actors derived
// from the caller's vehicle specs. "Deterministically" matters: two runs
// over the same VehicleSpec slice (and the same RNG seed) must produce
// byte-identical population fitness vectors, which in turn requires the
// actor list - and therefore Registry iteration order - to never depend on
// map iteration or goroutine scheduling.
type Fleet struct {
	mu     sync.RWMutex
	actors []*Actor
}

// NewFleet derives actors from vehicles: each vehicle contributes one actor
// per (driver, shift) pair, or one actor per shift with an empty driver id
// when Drivers is empty (unconstrained driver assignment). Actors are sorted
// by (vehicle ID, driver ID, shift index) so derivation order never depends
// on input order or map iteration.
func NewFleet(vehicles []VehicleSpec) (*Fleet, error) {
	var actors []*Actor
	seen := make(map[string]struct{})

	for _, v := range vehicles {
		drivers := v.Drivers
		if len(drivers) == 0 {
			drivers = []string{""}
		}
		for _, driverID := range drivers {
			for shiftIdx, shift := range v.Shifts {
				id := fmt.Sprintf("%s::%s::%d", v.ID, driverID, shiftIdx)
				if _, dup := seen[id]; dup {
					return nil, ErrDuplicateActorID
				}
				seen[id] = struct{}{}

				skills := make(map[string]struct{}, len(v.Skills))
				for _, s := range v.Skills {
					skills[s] = struct{}{}
				}
				capacity := make([]float64, len(v.Capacity))
				copy(capacity, v.Capacity)

				actors = append(actors, &Actor{
					ID:            id,
					VehicleID:     v.ID,
					DriverID:      driverID,
					ShiftIndex:    shiftIdx,
					StartLocation: shift.StartLocation,
					EndLocation:   shift.EndLocation,
					TimeWindow:    shift.TimeWindow,
					Capacity:      capacity,
					Profile:       v.Profile,
					Skills:        skills,
					FixedCost:     v.FixedCost,
					TimeCost:      v.TimeCost,
					DistanceCost:  v.DistanceCost,
				})
			}
		}
	}

	if len(actors) == 0 {
		return nil, ErrNoActors
	}

	sort.Slice(actors, func(i, j int) bool {
		if actors[i].VehicleID != actors[j].VehicleID {
			return actors[i].VehicleID < actors[j].VehicleID
		}
		if actors[i].DriverID != actors[j].DriverID {
			return actors[i].DriverID < actors[j].DriverID
		}
		return actors[i].ShiftIndex < actors[j].ShiftIndex
	})

	return &Fleet{actors: actors}, nil
}

// Actors returns every derived actor in deterministic order. The returned
// slice is a defensive copy.
func (f *Fleet) Actors() []*Actor {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*Actor, len(f.actors))
	copy(out, f.actors)
	return out
}

// Size returns the total number of derived actors.
func (f *Fleet) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.actors)
}
