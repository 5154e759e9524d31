// Package telemetry provides solver.Telemetry implementations that export
// each generation's metrics to an external observer instead of discarding
// them like solver.NoopTelemetry: PrometheusSink for scrape-based metrics,
// WebSocketSink for live dashboards.
package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vrplab/engine/solver"
)

// PrometheusSink reports GenerationMetrics as a small set of prometheus
// gauges/counters registered against a caller-supplied Registerer.
type PrometheusSink struct {
	generation     prometheus.Gauge
	populationSize prometheus.Gauge
	bestFitness    *prometheus.GaugeVec
	elapsedSeconds prometheus.Gauge
	operatorRuns   *prometheus.CounterVec
	improvements   prometheus.Counter
}

// NewPrometheusSink creates and registers the sink's metrics against reg.
// Registration errors (e.g. a name collision) are returned rather than
// panicking.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	s := &PrometheusSink{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrp_solver_generation",
			Help: "Index of the most recently completed generation.",
		}),
		populationSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrp_solver_population_size",
			Help: "Number of solutions retained in the Pareto population.",
		}),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vrp_solver_best_fitness",
			Help: "Objective terms of the current population's best solution.",
		}, []string{"term"}),
		elapsedSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vrp_solver_generation_seconds",
			Help: "Wall-clock duration of the most recently completed generation.",
		}),
		operatorRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vrp_solver_operator_runs_total",
			Help: "Count of generations produced by each ruin/recreate operator pair.",
		}, []string{"operator"}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vrp_solver_improvements_total",
			Help: "Count of generations that produced a new best solution.",
		}),
	}

	collectors := []prometheus.Collector{
		s.generation, s.populationSize, s.bestFitness, s.elapsedSeconds, s.operatorRuns,
		s.improvements,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Report implements solver.Telemetry.
func (s *PrometheusSink) Report(m solver.GenerationMetrics) {
	s.generation.Set(float64(m.Generation))
	s.populationSize.Set(float64(m.PopulationSize))
	s.elapsedSeconds.Set(m.Elapsed.Seconds())
	for i, v := range m.BestFitness {
		s.bestFitness.WithLabelValues(termLabel(i)).Set(v)
	}
	if m.OperatorUsed != "" {
		s.operatorRuns.WithLabelValues(m.OperatorUsed).Inc()
	}
	if m.IsNewBest {
		s.improvements.Inc()
	}
}

func termLabel(i int) string {
	if i == 0 {
		return "primary"
	}
	return "term_" + strconv.Itoa(i)
}
