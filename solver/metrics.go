package solver

import "time"

// GenerationMetrics is a snapshot of one completed generation, handed to
// whatever Telemetry sink is configured (see the telemetry package) and
// consulted by the coefficient-of-variation Termination predicate.
type GenerationMetrics struct {
	Generation     int
	BestFitness    []float64 // one value per MultiObjective term, primary term first
	PopulationSize int
	Elapsed        time.Duration
	OperatorUsed   string
	IsNewBest      bool
}

// InitialMetrics is a snapshot of one startup seeding step: which initial
// solution (Index, zero-based) out of the configured Total was just offered
// to the population, and how long it took to build. Externally supplied
// solutions report Elapsed 0.
type InitialMetrics struct {
	Index   int
	Total   int
	Elapsed time.Duration
}

// InitialReporter is optionally implemented by a Telemetry sink that wants
// to observe startup seeding progress in addition to per-generation reports.
type InitialReporter interface {
	ReportInitial(m InitialMetrics)
}

// Telemetry receives one GenerationMetrics per completed generation. The
// telemetry package carries the prometheus and websocket implementations;
// NoopTelemetry is the default when the caller configures none.
//
// The contract is deliberately push-only: lifecycle hooks (start, freeform
// logging) and pull-style metrics aggregation belong to whatever external
// surface embeds a sink, not to the solver loop, which only ever emits
// per-generation (and, via InitialReporter, per-seed) snapshots.
type Telemetry interface {
	Report(m GenerationMetrics)
}

// NoopTelemetry discards every report, the default when the caller does not
// configure a sink.
type NoopTelemetry struct{}

// Report implements Telemetry.
func (NoopTelemetry) Report(GenerationMetrics) {}
