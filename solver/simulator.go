package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vrplab/engine/model"
	"github.com/vrplab/engine/population"
	"github.com/vrplab/engine/randutil"
	"github.com/vrplab/engine/recreate"
	"github.com/vrplab/engine/ruin"
)

// RuinRecreate pairs one ruin operator selection with one recreate operator
// selection; the Simulator drives exactly one pair per generation.
type RuinRecreate struct {
	Ruin     ruin.Operator
	Recreate recreate.Operator
}

// InitialMethod is one weighted entry in the startup seeding pool: the
// Simulator draws methods by Weight until the population holds
// Config.InitialSize solutions.
type InitialMethod struct {
	Weight   float64
	Operator recreate.Operator
}

// operatorRewardFactor / operatorDecayFactor drive the per-pair weight
// bandit: a pair that just produced a new best gets boosted, every other
// round decays the pair that ran. Same constants as ruin.AdaptiveSelector
// so the two bandit layers age at the same rate.
const (
	operatorRewardFactor = 1.2
	operatorDecayFactor  = 0.98
	operatorWeightFloor  = 1e-6
)

// Simulator runs the generation loop: seed an initial population, then
// repeatedly ruin+recreate a selected parent, insert the offspring into the
// population, and check Termination, reporting a GenerationMetrics per step
// to Telemetry. Operator pairs are drawn weighted-random; weights adapt
// online (boost on a new best, decay otherwise).
type Simulator struct {
	Problem     *model.Problem
	Config      Config
	Operators   []RuinRecreate
	Telemetry   Telemetry
	termination Termination
	initial     []InitialMethod
	seeds       []*model.InsertionContext
	weights     []float64
}

// Option configures a Simulator beyond the required constructor arguments.
type Option func(*Simulator)

// WithInitialMethods replaces the default seeding pool (cheapest insertion,
// weight 1) with methods. Passing an empty pool is a configuration error
// surfaced by NewSimulator.
func WithInitialMethods(methods ...InitialMethod) Option {
	return func(s *Simulator) { s.initial = methods }
}

// WithInitialSolutions offers externally built solutions to the population
// before any seeding method runs (subject to quota, like every other offer).
func WithInitialSolutions(solutions ...*model.InsertionContext) Option {
	return func(s *Simulator) { s.seeds = append(s.seeds, solutions...) }
}

// NewSimulator validates cfg and operators fail-closed and returns a
// Simulator ready to run, building its Termination from cfg and defaulting
// Telemetry to NoopTelemetry if unset.
func NewSimulator(problem *model.Problem, cfg Config, operators []RuinRecreate, telemetry Telemetry, opts ...Option) (*Simulator, error) {
	if problem == nil {
		return nil, errors.New("solver: problem must not be nil")
	}
	if len(operators) == 0 {
		return nil, errors.New("solver: at least one ruin+recreate pair is required")
	}
	if telemetry == nil {
		telemetry = NoopTelemetry{}
	}
	s := &Simulator{
		Problem:     problem,
		Config:      cfg,
		Operators:   operators,
		Telemetry:   telemetry,
		termination: cfg.Termination(),
		initial: []InitialMethod{
			{Weight: 1, Operator: recreate.NewCheapestInsertion(nil)},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.InitialSize < 1 || cfg.InitialSize > cfg.PopulationSize {
		return nil, fmt.Errorf("solver: initial size %d must satisfy 1 <= initial <= population size %d",
			cfg.InitialSize, cfg.PopulationSize)
	}
	if len(s.initial) == 0 {
		return nil, errors.New("solver: at least one initial method is required")
	}
	for _, m := range s.initial {
		if m.Weight <= 0 {
			return nil, fmt.Errorf("solver: initial method %q weight must be > 0", m.Operator.Name())
		}
	}
	s.weights = make([]float64, len(operators))
	for i := range s.weights {
		s.weights[i] = 1.0
	}
	return s, nil
}

// Run executes the evolution loop until Termination fires or ctx is
// canceled, returning the best solution found.
func (s *Simulator) Run(ctx context.Context, quota Quota) (*model.InsertionContext, error) {
	random := randutil.NewRandom(s.Config.Seed)
	pop := population.NewDominancePopulation(s.Problem.Objective, s.Config.PopulationSize)

	rc := &RefinementContext{StartedAt: time.Now(), Quota: quota}

	if err := s.seedPopulation(ctx, rc, pop, random); err != nil {
		return nil, err
	}
	if pop.Size() == 0 {
		return nil, model.NewInfeasibleError()
	}
	rc.recordFitness(s.Problem.Objective.Fitness(pop.Best()), s.Config.StagnationWindow)

	for !s.termination.IsTerminated(rc) {
		if err := ctx.Err(); err != nil {
			return pop.Best(), err
		}

		start := time.Now()
		parent := pop.Select(random)
		pairIdx := random.Weighted(s.weights)
		pair := s.Operators[pairIdx]

		offspring := parent.DeepCopy()
		pair.Ruin.Ruin(offspring)
		if err := pair.Recreate.Recreate(ctx, s.Problem, offspring); err != nil {
			return pop.Best(), err
		}

		previousBest := pop.Best()
		pop.Add(offspring)
		newBest := pop.Best()
		improved := newBest != previousBest &&
			s.Problem.Objective.TotalOrder(newBest, previousBest) < 0
		s.adjustWeight(pairIdx, improved)

		rc.Generation++
		rc.recordFitness(s.Problem.Objective.Fitness(newBest), s.Config.StagnationWindow)

		s.Telemetry.Report(GenerationMetrics{
			Generation:     rc.Generation,
			BestFitness:    fitnessVector(s.Problem.Objective, newBest),
			PopulationSize: pop.Size(),
			Elapsed:        time.Since(start),
			OperatorUsed:   pair.Ruin.Name() + "+" + pair.Recreate.Name(),
			IsNewBest:      improved,
		})
	}

	return pop.Best(), nil
}

// seedPopulation fills pop up to Config.InitialSize: externally supplied
// solutions first, then weighted draws from the initial method pool against
// a fresh empty context, stopping early if termination or quota fires.
func (s *Simulator) seedPopulation(ctx context.Context, rc *RefinementContext, pop *population.DominancePopulation, random *randutil.Random) error {
	offer := func(index int, sol *model.InsertionContext, built time.Duration) {
		pop.Add(sol)
		if ir, ok := s.Telemetry.(InitialReporter); ok {
			ir.ReportInitial(InitialMetrics{Index: index, Total: s.Config.InitialSize, Elapsed: built})
		}
	}

	index := 0
	for _, seed := range s.seeds {
		if rc.Quota != nil && rc.Quota.IsExhausted() {
			return nil
		}
		offer(index, seed, 0)
		index++
	}

	for stream := uint64(0); pop.Size() < s.Config.InitialSize; stream++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.termination.IsTerminated(rc) {
			return nil
		}

		start := time.Now()
		method := s.initial[random.Weighted(initialWeights(s.initial))]
		ic := model.NewInsertionContext(s.Problem, random.Derive(stream))
		if err := method.Operator.Recreate(ctx, s.Problem, ic); err != nil {
			return err
		}
		offer(index, ic, time.Since(start))
		index++
	}
	return nil
}

func (s *Simulator) adjustWeight(idx int, improved bool) {
	if improved {
		s.weights[idx] *= operatorRewardFactor
		return
	}
	s.weights[idx] *= operatorDecayFactor
	if s.weights[idx] < operatorWeightFloor {
		s.weights[idx] = operatorWeightFloor
	}
}

func initialWeights(methods []InitialMethod) []float64 {
	out := make([]float64, len(methods))
	for i, m := range methods {
		out[i] = m.Weight
	}
	return out
}

func fitnessVector(objective model.MultiObjective, ctx *model.InsertionContext) []float64 {
	terms := objective.Terms()
	out := make([]float64, len(terms))
	for i, t := range terms {
		out[i] = t.Fitness(ctx)
	}
	return out
}
