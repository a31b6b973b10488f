// Package process implements the step-driven cooperative execution core
// shared by every solver back end: a single-threaded run loop, an
// observer fan-out list, and a wall-clock stopwatch. Nothing here spawns a
// goroutine — do_step is always called by whatever loop (CLI, test, or
// future server handler) owns the Process.
package process

import (
	"context"
	"sync/atomic"
	"time"
)

// Stepper performs one unit of search work. Implemented by a solver back
// end; Process knows nothing about what a step actually does.
type Stepper interface {
	DoStep() error
}

// Observer is notified after every step and on start/stop/reset. Process
// owns the observer list but never the observer instances themselves — an
// Observer typically holds a non-owning back-reference to the Process (or
// the Solver wrapping it) so it can read stats or call Stop.
type Observer interface {
	OnStep(p *Process)
	OnStart(p *Process)
	OnStop(p *Process)
	OnReset(p *Process)
}

// Process is the cooperative run loop: Start repeatedly calls the
// Stepper's DoStep until Stop is called (typically by an Observer) or
// DoStep returns an error. Cancellation is cooperative only — ctx is
// carried for request-scoped values (a diagnostics writer, a deadline an
// Observer chooses to read) and is never polled inside the step loop
// itself; embedding it here mirrors the teacher's ExecutionContext
// pattern of carrying a context.Context as a plain field rather than a
// second, competing cancellation mechanism.
type Process struct {
	ctx context.Context

	stepper   Stepper
	observers []Observer

	running    atomic.Bool
	stepsCount int64

	started time.Time
	elapsed time.Duration
}

// New returns a Process driving stepper, with ctx carried for
// request-scoped values only.
func New(ctx context.Context, stepper Stepper) *Process {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Process{ctx: ctx, stepper: stepper}
}

// Context returns the context.Context this process was constructed with.
func (p *Process) Context() context.Context {
	return p.ctx
}

// Register appends obs to the observer list. Observers are notified in
// registration order.
func (p *Process) Register(obs Observer) {
	p.observers = append(p.observers, obs)
}

// StepsCount returns the number of completed steps since the last Reset.
func (p *Process) StepsCount() int64 {
	return p.stepsCount
}

// Notify re-enters the observer fan-out without advancing StepsCount or
// touching the running flag. A Stepper calls this directly, from inside
// its own DoStep, at each spec-mandated event within a step (a strict
// fitness improvement, a newly found solution) -- a batched step such as
// the exhaustive solver's 2^stepWidth-assignments-per-call or one GA
// generation's population can raise several such events before DoStep
// returns, and each must reach FitnessWatch/ResultsWatch as its own
// notification rather than only the net change visible once the whole
// step has finished.
func (p *Process) Notify() {
	for _, obs := range p.observers {
		obs.OnStep(p)
	}
}

// Elapsed returns wall-clock time spent inside Start, across all runs
// since the last Reset (a Process may be Stopped and Started again
// without losing its accumulated elapsed time or steps_count).
func (p *Process) Elapsed() time.Duration {
	if p.running.Load() {
		return p.elapsed + time.Since(p.started)
	}
	return p.elapsed
}

// Running reports whether the process is between Start and Stop. Safe to
// call from a goroutine other than the one running Start (e.g. a
// signal handler deciding whether Stop is still worth calling).
func (p *Process) Running() bool {
	return p.running.Load()
}

// Start begins the step loop. It returns when Stop has been called
// (typically from within an Observer's OnStep, in direct reentrant
// fashion — no goroutine separates the call to Stop from the loop
// noticing it) or when DoStep returns an error, which Start propagates
// after stopping and notifying observers.
func (p *Process) Start() error {
	p.running.Store(true)
	p.started = time.Now()
	for _, obs := range p.observers {
		obs.OnStart(p)
	}

	for p.running.Load() {
		if err := p.stepper.DoStep(); err != nil {
			p.running.Store(false)
			p.elapsed += time.Since(p.started)
			for _, obs := range p.observers {
				obs.OnStop(p)
			}
			return err
		}
		p.stepsCount++
		for _, obs := range p.observers {
			obs.OnStep(p)
			if !p.running.Load() {
				break
			}
		}
	}

	p.elapsed += time.Since(p.started)
	for _, obs := range p.observers {
		obs.OnStop(p)
	}
	return nil
}

// Stop ends the run loop after the current step. Safe to call from
// within an Observer callback (the common case: a TimedStop or
// SolutionsCountStop observer calling Stop from OnStep) or from a
// separate goroutine (e.g. cmd/fss's signal handler) — the running flag
// is the only state Stop touches, and it's updated atomically.
func (p *Process) Stop() {
	p.running.Store(false)
}

// Reset zeroes steps_count and elapsed time and notifies observers, but
// does not touch the Stepper's own state (a solver's Reset, e.g.
// evolutionary.Solver.Reset, calls both this and its own state reset; the
// GA solution set purposefully persists across process.Reset, per the
// solver's own contract, not this one).
func (p *Process) Reset() {
	p.running.Store(false)
	p.stepsCount = 0
	p.elapsed = 0
	for _, obs := range p.observers {
		obs.OnReset(p)
	}
}
