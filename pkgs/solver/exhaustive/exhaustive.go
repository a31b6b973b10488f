// Package exhaustive implements the enumeration back end: it walks every
// one of the 2^n possible assignments of an n-variable problem in
// ascending numeric order, 2^stepWidth assignments at a time.
package exhaustive

import (
	"context"
	"math"

	"github.com/fastsatsolver/fss/pkgs/assignment"
	"github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/problem"
	"github.com/fastsatsolver/fss/pkgs/process"
	"github.com/fastsatsolver/fss/pkgs/solver"
)

// wordBits is the width of the uint64 LongSatItem backing store; a problem
// needs varsCount+2 bits of headroom below it (mirroring the original
// LONG_BIT guard) to avoid wraparound in the end-of-space sentinel.
const wordBits = 64

// Solver enumerates assignments 0..2^n-1 of problem.VarCount() bits,
// 2^stepWidth assignments per DoStep call.
type Solver struct {
	problem   *problem.Problem
	stepWidth int

	current uint64
	end     uint64

	minFitness float64
	maxFitness float64
	sumFitness float64

	solutions *solver.SolutionSet
	proc      *process.Process
}

// New constructs a Solver over p, batching 2^stepWidth assignments per step.
// It returns a *errors.SatError of category ErrCapacity if p.VarCount()+2
// does not fit under the solver's word width — the same guard the
// original blind solver applies before allocating its LONG_BIT-wide
// counter.
func New(ctx context.Context, p *problem.Problem, stepWidth int) (*Solver, error) {
	varsCount := p.VarCount()
	if varsCount+2 >= wordBits {
		return nil, errors.NewCapacityError("too many variables for the exhaustive solver on this machine")
	}
	s := &Solver{
		problem:   p,
		stepWidth: stepWidth,
		end:       uint64(1) << uint(varsCount),
		solutions: solver.NewSolutionSet(),
	}
	s.initialize()
	s.proc = process.New(ctx, s)
	return s, nil
}

func (s *Solver) initialize() {
	s.current = 0
	s.minFitness = math.Inf(1)
	s.maxFitness = 0
	s.sumFitness = 0
}

// Problem implements solver.Solver.
func (s *Solver) Problem() *problem.Problem { return s.problem }

// Solutions implements solver.Solver.
func (s *Solver) Solutions() *solver.SolutionSet { return s.solutions }

// Process implements solver.Solver.
func (s *Solver) Process() *process.Process { return s.proc }

// Stats implements solver.Solver. AvgFitness divides the running fitness
// sum by the number of assignments evaluated so far, exactly as the
// original computed avgFitness = sumFitness / current.
func (s *Solver) Stats() solver.Stats {
	avg := 0.0
	if s.current > 0 {
		avg = s.sumFitness / float64(s.current)
	}
	return solver.Stats{
		StepsCount:     s.proc.StepsCount(),
		SolutionsCount: s.solutions.Len(),
		MinFitness:     s.minFitness,
		AvgFitness:     avg,
		MaxFitness:     s.maxFitness,
		TimeElapsedMs:  s.proc.Elapsed().Milliseconds(),
	}
}

// Reset returns the solver to its initial state: zeroed statistics, an
// empty solution set, and the enumeration cursor back at 0. It also
// resets the underlying process.Process.
func (s *Solver) Reset() {
	s.initialize()
	s.solutions.Reset()
	s.proc.Reset()
}

// DoStep implements process.Stepper: it evaluates up to 2^stepWidth
// assignments starting at the current cursor, updating fitness statistics
// and the solution set, then stops the process once the whole space has
// been explored. Each strict max-fitness improvement and each newly found
// solution calls s.proc.Notify() right there in the loop, so observers
// see every such event within a step rather than only the net change
// visible once the whole batch has finished.
func (s *Solver) DoStep() error {
	varsCount := s.problem.VarCount()
	formsCount := s.problem.FormulaCount()
	countPerStep := 1 << uint(s.stepWidth)

	for i := 0; i < countPerStep; i++ {
		if s.current >= s.end {
			s.proc.Stop()
			break
		}

		data := assignment.NewLong(varsCount, s.current)
		s.current++

		nSats := s.problem.SatisfiedCount(data)
		fitness := float64(nSats) / float64(formsCount)

		s.sumFitness += fitness
		if fitness < s.minFitness {
			s.minFitness = fitness
		}
		if fitness > s.maxFitness {
			s.maxFitness = fitness
			s.proc.Notify()
		}
		if nSats == formsCount {
			s.solutions.Add(data)
			s.proc.Notify()
		}
	}
	return nil
}
