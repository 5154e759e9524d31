package model

import "sync"

// Well-known Dimensions keys used by the standard constraint modules
// (constraint package). Custom modules may define their own keys; nothing in
// this package enumerates the full set.
const (
	DimSkills        = "skills"        // []string
	DimCompatibility = "compatibility" // string tag, constraint/compatibility.go
	DimPriority      = "priority"      // int, lower is more urgent
	DimGroup         = "group"         // string, constraint/group.go
	DimDepotVisit    = "depot_visit"   // bool, marks a synthetic depot re-visit
	DimCluster       = "cluster"       // []ClusterEntry, constraint.ClusterJobs
)

// ClusterEntry records one constituent of a clustered visit: the original
// job, the moving duration from the previous cluster member to it
// (Forward), and the moving duration from it back to the visit location
// (Backward, nonzero only for the member served last). Solution writers use
// these to re-expand a clustered stop into its original jobs.
type ClusterEntry struct {
	Job      *Job
	Forward  float64
	Backward float64
}

// Dimensions carries arbitrary, typed-by-convention metadata on a Job: skill
// requirements, a compatibility tag, priority, group, or custom keys a
// plugged-in constraint module reads. The zero value is a usable empty map
// after a single Dimensions{} literal; callers should still prefer
// NewDimensions for clarity.
type Dimensions map[string]interface{}

// NewDimensions returns an empty, ready-to-use Dimensions map.
func NewDimensions() Dimensions { return make(Dimensions) }

// Skills returns the skill set requested by this Dimensions map, or nil if
// none was set.
func (d Dimensions) Skills() []string {
	if v, ok := d[DimSkills]; ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

// Cluster returns the cluster membership recorded on a merged visit job, or
// nil for an ordinary job.
func (d Dimensions) Cluster() []ClusterEntry {
	if v, ok := d[DimCluster]; ok {
		if c, ok := v.([]ClusterEntry); ok {
			return c
		}
	}
	return nil
}

// Priority returns the job priority (lower is more urgent), defaulting to 0
// when unset.
func (d Dimensions) Priority() int {
	if v, ok := d[DimPriority]; ok {
		if p, ok := v.(int); ok {
			return p
		}
	}
	return 0
}

// JobKind distinguishes a single-activity service job from a multi-activity
// job (e.g. a pickup-delivery pair) whose sub-activities must preserve
// relative order.
type JobKind int

const (
	// Single is a job with exactly one place (one location/time
	// window/demand).
	Single JobKind = iota
	// MultiPlace is a job with an ordered sequence of sub-activities, e.g.
	// pickup followed by delivery. Insertion must preserve their relative
	// order within a route.
	MultiPlace
)

// JobPlace is one sub-activity of a Job: a location, how long servicing it
// takes, the time windows during which service may start, and the capacity
// change it applies.
type JobPlace struct {
	Location    Location
	Duration    float64
	TimeWindows []TimeWindow
	Demand      Demand
}

// Job is either a single service or a multi-activity job. Equality is by
// identity: two *Job pointers are the same job iff they are the same
// pointer, never by comparing field values, since two distinct jobs may
// legitimately share every field (e.g. two identical deliveries at the same
// address).
type Job struct {
	ID         string
	Kind       JobKind
	Places     []JobPlace
	Dimensions Dimensions
}

// NewSingleJob constructs a Single job with one place.
func NewSingleJob(id string, place JobPlace, dims Dimensions) *Job {
	if dims == nil {
		dims = NewDimensions()
	}
	return &Job{ID: id, Kind: Single, Places: []JobPlace{place}, Dimensions: dims}
}

// NewMultiJob constructs a MultiPlace job from an ordered list of
// sub-activities (e.g. [pickup, delivery]).
func NewMultiJob(id string, places []JobPlace, dims Dimensions) *Job {
	if dims == nil {
		dims = NewDimensions()
	}
	return &Job{ID: id, Kind: MultiPlace, Places: places, Dimensions: dims}
}

// NewDepotVisitJob constructs a Single job modeling an intermediate depot
// stop: zero demand, the given location and time window. The insertion
// package tags the resulting route activity DepotVisit rather than Service
// (see Dimensions.IsDepotVisit).
func NewDepotVisitJob(id string, location Location, duration float64, window TimeWindow) *Job {
	dims := NewDimensions()
	dims[DimDepotVisit] = true
	return NewSingleJob(id, JobPlace{Location: location, Duration: duration, TimeWindows: []TimeWindow{window}}, dims)
}

// IsDepotVisit reports whether this Dimensions map tags its job as a
// synthetic depot re-visit.
func (d Dimensions) IsDepotVisit() bool {
	v, ok := d[DimDepotVisit]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Validate checks structural invariants that do not depend on the rest of
// the Problem (non-empty places, well-formed time windows). Cross-job checks
// (duplicate IDs, reachability) live in Jobs.Validate and Problem.validate.
func (j *Job) Validate() error {
	if len(j.Places) == 0 {
		return ErrEmptyJobPlaces
	}
	for _, p := range j.Places {
		for _, tw := range p.TimeWindows {
			if !tw.Valid() {
				return ErrMalformedTimeWindow
			}
		}
	}
	return nil
}

// Jobs is the immutable, deduplicated registry of every job in the problem.
// It is built once by NewJobs and never mutated afterward; NewJobs takes no
// lock, and every accessor takes the read lock.
type Jobs struct {
	mu    sync.RWMutex
	all   []*Job
	byID  map[string]*Job
}

// NewJobs builds a Jobs registry from jobs, rejecting duplicate IDs.
func NewJobs(jobs []*Job) (*Jobs, error) {
	byID := make(map[string]*Job, len(jobs))
	for _, j := range jobs {
		if _, exists := byID[j.ID]; exists {
			return nil, ErrDuplicateJobID
		}
		byID[j.ID] = j
	}
	all := make([]*Job, len(jobs))
	copy(all, jobs)
	return &Jobs{all: all, byID: byID}, nil
}

// Size returns the total number of jobs in the problem.
func (j *Jobs) Size() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.all)
}

// All returns the full job list in construction order. The returned slice is
// a defensive copy; callers may reorder or filter it freely.
func (j *Jobs) All() []*Job {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]*Job, len(j.all))
	copy(out, j.all)
	return out
}

// Get looks up a job by its stable ID handle.
func (j *Jobs) Get(id string) (*Job, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	job, ok := j.byID[id]
	return job, ok
}
