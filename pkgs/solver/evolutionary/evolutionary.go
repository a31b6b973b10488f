// Package evolutionary implements the GA-driven search back end: a thin
// adapter between the solver contract and github.com/MaxHalford/eaopt,
// the external genetic-algorithm collaborator spec'd as narrow-interface
// and substitutable for an equivalent library. Population-level min/avg
// fitness come straight from eaopt's Individuals stats; max-ever fitness
// is tracked locally rather than delegated to the library, so it survives
// exactly as long as the solver does.
package evolutionary

import (
	"context"
	"math/rand"

	"github.com/MaxHalford/eaopt"

	"github.com/fastsatsolver/fss/pkgs/assignment"
	"github.com/fastsatsolver/fss/pkgs/problem"
	"github.com/fastsatsolver/fss/pkgs/process"
	"github.com/fastsatsolver/fss/pkgs/seed"
	"github.com/fastsatsolver/fss/pkgs/solver"
)

// GAParams carries the GA-library-native options that pass through to
// eaopt essentially unexamined: population size, mutation/crossover
// rates, and the convergence terminator flag the original GAlib-based
// solver exposed via registerDefaultParameters.
type GAParams struct {
	PopSize             uint
	MutationRate        float64
	CrossoverRate       float64
	TermUponConvergence bool
	Seed                string
}

// DefaultGAParams returns reasonable defaults for a small-to-medium
// problem; callers normally load these from pkgs/config instead.
func DefaultGAParams() GAParams {
	return GAParams{PopSize: 64, MutationRate: 0.05, CrossoverRate: 0.7}
}

// genomeView is a borrowed, non-owning Assignment over a genome's bit
// slice, used for the read-only SatisfiedCount call inside Evaluate. It is
// never retained: a solution worth keeping is always Clone()d into an
// Owned assignment before it is added to the solution set.
type genomeView struct {
	bits []bool
}

func (v genomeView) Length() int    { return len(v.bits) }
func (v genomeView) Bit(i int) bool { return v.bits[i] }
func (v genomeView) Clone() assignment.Assignment {
	return assignment.NewOwned(v)
}

// genome is the eaopt.Genome implementation: a flat bit string plus a
// back-reference to the owning Solver, mirroring the original
// GA1DBinaryStringGenome's userData-carried Private* callback closure.
type genome struct {
	bits   []bool
	solver *Solver
}

func newRandomGenome(n int, s *Solver, rng *rand.Rand) *genome {
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}
	return &genome{bits: bits, solver: s}
}

// Evaluate computes the fraction of satisfied formulas under this
// genome's bits, updates the owning solver's max-ever fitness and
// solution set as a side effect and calls s.proc.Notify() at each one
// (exactly where the original's static Private::fitness callback called
// solver->notify(), once per fitness improvement and once per solution
// found, rather than once per generation), and returns the NEGATED
// fraction, since eaopt's Model minimizes fitness while our domain
// maximizes it.
func (g *genome) Evaluate() (float64, error) {
	s := g.solver
	view := genomeView{bits: g.bits}
	nSats := s.problem.SatisfiedCount(view)
	fitness := float64(nSats) / float64(s.problem.FormulaCount())

	if fitness > s.maxFitness {
		s.maxFitness = fitness
		s.proc.Notify()
	}
	if nSats == s.problem.FormulaCount() {
		s.solutions.Add(view)
		s.proc.Notify()
	}
	return -fitness, nil
}

// Mutate flips a single uniformly-chosen bit, the bit-string analogue of
// GAlib's default 1D binary string mutator.
func (g *genome) Mutate(rng *rand.Rand) {
	i := rng.Intn(len(g.bits))
	g.bits[i] = !g.bits[i]
}

// Crossover performs single-point crossover with other, the bit-string
// analogue of GAlib's default 1D binary string crossover.
func (g *genome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	o := other.(*genome)
	point := rng.Intn(len(g.bits))
	for i := point; i < len(g.bits); i++ {
		g.bits[i], o.bits[i] = o.bits[i], g.bits[i]
	}
}

// Clone returns an independent copy sharing the same solver back-reference.
func (g *genome) Clone() eaopt.Genome {
	cp := make([]bool, len(g.bits))
	copy(cp, g.bits)
	return &genome{bits: cp, solver: g.solver}
}

// Solver is the GA-driven search back end.
type Solver struct {
	problem *problem.Problem
	params  GAParams

	model eaopt.ModGenerational
	rng   *rand.Rand
	pop   eaopt.Population

	generation int64
	maxFitness float64

	solutions *solver.SolutionSet
	proc      *process.Process

	converged bool
}

// New constructs a Solver over p. The population is seeded deterministically
// from params.Seed via pkgs/seed, so identical params and problem text
// reproduce an identical run.
func New(ctx context.Context, p *problem.Problem, params GAParams) *Solver {
	rngSeed := seed.FromString(params.Seed)
	s := &Solver{
		problem: p,
		params:  params,
		rng:     rand.New(rand.NewSource(rngSeed)),
		model: eaopt.ModGenerational{
			Selector:  eaopt.SelTournament{NContestants: 3},
			MutRate:   params.MutationRate,
			CrossRate: params.CrossoverRate,
		},
		solutions: solver.NewSolutionSet(),
	}
	// proc must exist before initialize(): seeding the first population
	// evaluates every genome, and Evaluate() calls s.proc.Notify() for
	// each spec-mandated event (see the Notify calls below).
	s.proc = process.New(ctx, s)
	s.initialize()
	return s
}

// initialize (re)seeds a fresh random population and zeroes per-run
// statistics. The solution set is deliberately left untouched: GA
// solutions persist across Reset, per the solver's own contract — a
// later, shorter run should not have to rediscover what an earlier run
// already found.
func (s *Solver) initialize() {
	s.generation = 0
	s.maxFitness = 0
	s.converged = false

	individuals := make(eaopt.Individuals, s.params.PopSize)
	for i := range individuals {
		g := newRandomGenome(s.problem.VarCount(), s, s.rng)
		fit, _ := g.Evaluate()
		individuals[i] = eaopt.Individual{Genome: g, Fitness: fit}
	}
	s.pop = eaopt.Population{Individuals: individuals}
}

// Problem implements solver.Solver.
func (s *Solver) Problem() *problem.Problem { return s.problem }

// Solutions implements solver.Solver.
func (s *Solver) Solutions() *solver.SolutionSet { return s.solutions }

// Process implements solver.Solver.
func (s *Solver) Process() *process.Process { return s.proc }

// Stats implements solver.Solver. MinFitness/AvgFitness are derived from
// the current population's fitness values (negated back out of eaopt's
// minimize-oriented sign convention); MaxFitness is the locally-tracked
// best-ever value, never reset except by Reset.
func (s *Solver) Stats() solver.Stats {
	min, sum := 1.0, 0.0
	for _, ind := range s.pop.Individuals {
		f := -ind.Fitness
		if f < min {
			min = f
		}
		sum += f
	}
	avg := 0.0
	if n := len(s.pop.Individuals); n > 0 {
		avg = sum / float64(n)
	}
	return solver.Stats{
		StepsCount:     s.proc.StepsCount(),
		SolutionsCount: s.solutions.Len(),
		Generation:     s.generation,
		MinFitness:     min,
		AvgFitness:     avg,
		MaxFitness:     s.maxFitness,
		TimeElapsedMs:  s.proc.Elapsed().Milliseconds(),
	}
}

// Reset re-seeds the population and statistics but preserves the solution
// set accumulated so far.
func (s *Solver) Reset() {
	s.initialize()
	s.proc.Reset()
}

// DoStep implements process.Stepper: it evolves the population by exactly
// one generation via the configured eaopt.Model, the step-driven analogue
// of the original's ga.step() call, and stops the process once the
// population's fitness spread has collapsed, when TermUponConvergence
// is set.
func (s *Solver) DoStep() error {
	next, err := s.model.Evolve(s.pop, s.rng)
	if err != nil {
		return err
	}
	s.pop = next
	s.generation++

	if s.params.TermUponConvergence && s.hasConverged() {
		s.converged = true
		s.proc.Stop()
	}
	return nil
}

// hasConverged reports whether every individual in the current population
// shares the same fitness value, the bit-string analogue of GAlib's
// TerminateUponConvergence.
func (s *Solver) hasConverged() bool {
	if len(s.pop.Individuals) == 0 {
		return false
	}
	first := s.pop.Individuals[0].Fitness
	for _, ind := range s.pop.Individuals[1:] {
		if ind.Fitness != first {
			return false
		}
	}
	return true
}

// Converged reports whether the last DoStep stopped the process because
// the population converged (only meaningful when TermUponConvergence is
// set).
func (s *Solver) Converged() bool {
	return s.converged
}
