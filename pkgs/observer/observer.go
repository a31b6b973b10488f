// Package observer implements the stock process.Observer implementations:
// two stop conditions (wall-clock deadline, solution-count threshold) and
// three watchers that render progress to an io.Writer.
package observer

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/message"

	"github.com/fastsatsolver/fss/pkgs/process"
	"github.com/fastsatsolver/fss/pkgs/solver"
)

// noopObserver gives every concrete observer below a default OnStart/
// OnStop/OnReset so each only has to override what it actually needs,
// matching the original's observer base class, which no-op'd everything
// but the one hook a subclass cared about.
type noopObserver struct{}

func (noopObserver) OnStart(*process.Process) {}
func (noopObserver) OnStop(*process.Process)  {}
func (noopObserver) OnReset(*process.Process) {}
func (noopObserver) OnStep(*process.Process)  {}

// TimedStop calls Stop once the process has run for at least Limit, as
// measured by process.Process.Elapsed, which accumulates across Start/Stop
// cycles since the last Reset. The observer holds no state of its own, so
// a Process Reset restarts its deadline too. Limit <= 0 means unbounded.
type TimedStop struct {
	noopObserver
	Limit time.Duration
}

// OnStep implements process.Observer.
func (t *TimedStop) OnStep(p *process.Process) {
	if t.Limit > 0 && p.Elapsed() >= t.Limit {
		p.Stop()
	}
}

// SolutionsCountStop calls Stop once a Solver's solution set has reached
// at least Limit distinct solutions.
type SolutionsCountStop struct {
	noopObserver
	Solver solver.Solver
	Limit  int
}

// OnStep implements process.Observer. Limit <= 0 means unbounded: the
// observer never stops the process on its own.
func (s *SolutionsCountStop) OnStep(p *process.Process) {
	if s.Limit > 0 && s.Solver.Solutions().Len() >= s.Limit {
		p.Stop()
	}
}

// FitnessWatch prints one line to W every time the solver's max fitness
// strictly increases, showing min/avg/max fitness as percentages, the GA
// generation (suppressed when 0, i.e. for the exhaustive solver or before
// the GA has advanced a generation), and elapsed wall-clock time. Reset
// clears the high-water mark, so a later run prints again from its first
// improvement rather than staying silent because an earlier run already
// reached the same fitness.
type FitnessWatch struct {
	noopObserver
	Solver  solver.Solver
	W       io.Writer
	printer *message.Printer

	highWater float64
	seen      bool
}

// NewFitnessWatch returns a FitnessWatch writing to w.
func NewFitnessWatch(s solver.Solver, w io.Writer) *FitnessWatch {
	return &FitnessWatch{Solver: s, W: w, printer: message.NewPrinter(message.MatchLanguage("en"))}
}

// OnStep implements process.Observer.
func (f *FitnessWatch) OnStep(*process.Process) {
	st := f.Solver.Stats()
	if f.seen && st.MaxFitness <= f.highWater {
		return
	}
	f.highWater = st.MaxFitness
	f.seen = true

	if st.Generation > 0 {
		f.printer.Fprintf(f.W, "max %6.2f%%  avg %6.2f%%  min %6.2f%%  gen %d  elapsed %dms\n",
			st.MaxFitness*100, st.AvgFitness*100, st.MinFitness*100, st.Generation, st.TimeElapsedMs)
		return
	}
	f.printer.Fprintf(f.W, "max %6.2f%%  avg %6.2f%%  min %6.2f%%  elapsed %dms\n",
		st.MaxFitness*100, st.AvgFitness*100, st.MinFitness*100, st.TimeElapsedMs)
}

// OnReset implements process.Observer: clears the high-water mark.
func (f *FitnessWatch) OnReset(*process.Process) {
	f.highWater = 0
	f.seen = false
}

// ResultsWatch prints one line every time the solution set grows, giving
// the new total and elapsed wall-clock time.
type ResultsWatch struct {
	noopObserver
	Solver solver.Solver
	W      io.Writer
	seen   int
}

// NewResultsWatch returns a ResultsWatch writing to w.
func NewResultsWatch(s solver.Solver, w io.Writer) *ResultsWatch {
	return &ResultsWatch{Solver: s, W: w}
}

// OnStep implements process.Observer.
func (r *ResultsWatch) OnStep(p *process.Process) {
	n := r.Solver.Solutions().Len()
	if n <= r.seen {
		return
	}
	r.seen = n
	fmt.Fprintf(r.W, "%d solution(s), elapsed %dms\n", n, p.Elapsed().Milliseconds())
}

// OnReset implements process.Observer: a fresh run's solution-count
// watermark starts over. Note the GA solution set itself persists across
// Reset (see solver/evolutionary) — this only resets when ResultsWatch
// next prints, not what it has to report.
func (r *ResultsWatch) OnReset(*process.Process) {
	r.seen = 0
}

// ProgressWatch prints a line whenever the integer percentage of
// StepsTotal completed changes, a coarser heartbeat than FitnessWatch for
// long exhaustive runs with a known step budget.
type ProgressWatch struct {
	noopObserver
	Solver     solver.Solver
	W          io.Writer
	StepsTotal int64

	lastPct int64
}

// NewProgressWatch returns a ProgressWatch writing to w, reporting
// progress against stepsTotal declared steps.
func NewProgressWatch(s solver.Solver, w io.Writer, stepsTotal int64) *ProgressWatch {
	return &ProgressWatch{Solver: s, W: w, StepsTotal: stepsTotal}
}

// OnStep implements process.Observer.
func (pw *ProgressWatch) OnStep(p *process.Process) {
	if pw.StepsTotal <= 0 {
		return
	}
	pct := p.StepsCount() * 100 / pw.StepsTotal
	if pct == pw.lastPct {
		return
	}
	pw.lastPct = pct
	fmt.Fprintf(pw.W, "%3d%%\n", pct)
}

// OnReset implements process.Observer.
func (pw *ProgressWatch) OnReset(*process.Process) {
	pw.lastPct = -1
}
