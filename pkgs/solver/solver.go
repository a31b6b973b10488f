// Package solver defines the contract shared by every search back end
// (exhaustive enumeration, evolutionary search) plus the solution-set and
// statistics types both back ends report through.
package solver

import (
	"io"

	"github.com/fastsatsolver/fss/pkgs/assignment"
	"github.com/fastsatsolver/fss/pkgs/problem"
	"github.com/fastsatsolver/fss/pkgs/process"
)

// Stats is a snapshot of one back end's progress. Not every field is
// meaningful for every back end: the exhaustive solver's fitness fields
// are fractions of satisfied formulas over the assignments enumerated so
// far, and Generation stays 0 for it; the evolutionary solver's
// are whatever the GA collaborator's population reports, plus the
// locally-tracked MaxFitness (max-ever across the run, never delegated to
// the library — see solver/evolutionary).
type Stats struct {
	StepsCount     int64
	SolutionsCount int
	Generation     int64
	MinFitness     float64
	AvgFitness     float64
	MaxFitness     float64
	TimeElapsedMs  int64
}

// Solver is the capability set both back ends implement: access to the
// Problem being solved, the running Stats, the accumulated SolutionSet,
// and the process.Process driving the step loop.
type Solver interface {
	Problem() *problem.Problem
	Stats() Stats
	Solutions() *SolutionSet
	Process() *process.Process
}

// SolutionSet is a deduplicated, lexicographically-ordered collection of
// satisfying assignments (per assignment.Compare: bit 0 most significant,
// false < true). Insertion order is not preserved; iteration order is
// always sorted order.
type SolutionSet struct {
	items []assignment.Assignment
}

// NewSolutionSet returns an empty set.
func NewSolutionSet() *SolutionSet {
	return &SolutionSet{}
}

// Add inserts a.Clone() in sorted position unless an equal assignment is
// already present. Returns true if a new solution was added.
func (s *SolutionSet) Add(a assignment.Assignment) bool {
	lo, hi := 0, len(s.items)
	for lo < hi {
		mid := (lo + hi) / 2
		c := assignment.Compare(s.items[mid], a)
		switch {
		case c == 0:
			return false
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	cloned := a.Clone()
	s.items = append(s.items, nil)
	copy(s.items[lo+1:], s.items[lo:])
	s.items[lo] = cloned
	return true
}

// Len returns the number of distinct solutions held.
func (s *SolutionSet) Len() int {
	return len(s.items)
}

// At returns the i'th solution in sorted order.
func (s *SolutionSet) At(i int) assignment.Assignment {
	return s.items[i]
}

// Reset discards every held solution.
func (s *SolutionSet) Reset() {
	s.items = nil
}

// WriteTo writes the set, one assignment per line via p.Describe, to w.
// Recovered from the original implementation's SatItemSet dump; used by
// cmd/fss's plain listing and by tests (pkgs/exportfmt reads the set
// through Len/At instead).
func (s *SolutionSet) WriteTo(w io.Writer, p *problem.Problem) (int64, error) {
	var total int64
	for _, a := range s.items {
		n, err := io.WriteString(w, p.Describe(a)+"---\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
