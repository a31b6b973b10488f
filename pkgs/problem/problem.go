// Package problem assembles a variable table and a collection of compiled
// formulas into the single facade every solver back end operates against.
package problem

import (
	"fmt"
	"io"
	"strings"

	"github.com/fastsatsolver/fss/pkgs/assignment"
	"github.com/fastsatsolver/fss/pkgs/compiler"
	"github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/scanner"
)

// Problem owns the variable table and the compiled formula list produced
// by parsing one input document. Neither field is mutated after New
// returns; a Problem is safe to share read-only across solver runs.
type Problem struct {
	vars     *scanner.VariableTable
	formulas []compiler.CommandList
	warnings []string
}

// New compiles r's contents (the raw text of a SAT input document) into a
// Problem. It returns a *errors.SatError of category ErrDomain if the
// document contains zero formulas or zero variables once parsing
// completes, even if every individual formula parsed without error —
// domain validity is a property of the whole document, not of any one
// formula. Per-formula lexical/expression diagnostics are never fatal to
// New; they are returned alongside a (possibly empty) Problem so the
// caller can still inspect what did parse.
func New(r io.Reader) (*Problem, []error, error) {
	raw, err := scanner.NewRawScanner(r)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrDomain, "reading input", err)
	}
	vars := scanner.NewVariableTable()
	resolver := scanner.NewResolver(raw, vars)
	comp := compiler.NewCompiler(resolver)

	formulas, diags := comp.Compile()

	p := &Problem{vars: vars, formulas: formulas, warnings: vars.Warnings()}

	if len(formulas) == 0 {
		return p, diags, errors.NewDomainError("input contains zero valid formulas")
	}
	if vars.Count() == 0 {
		return p, diags, errors.NewDomainError("input contains zero variables")
	}
	return p, diags, nil
}

// VarCount returns the number of distinct variables across the problem.
func (p *Problem) VarCount() int {
	return p.vars.Count()
}

// VarName returns the name of variable i.
func (p *Problem) VarName(i int) string {
	return p.vars.Name(i)
}

// FormulaCount returns the number of compiled formulas.
func (p *Problem) FormulaCount() int {
	return len(p.formulas)
}

// Warnings returns non-fatal diagnostics accumulated while parsing (e.g.
// keyword-typo hints), independent of any per-formula error.
func (p *Problem) Warnings() []string {
	return p.warnings
}

// SatisfiedCount returns how many of the problem's formulas evaluate to
// true under data. data.Length() must equal p.VarCount().
func (p *Problem) SatisfiedCount(data assignment.Assignment) int {
	count := 0
	for _, f := range p.formulas {
		if compiler.Eval(f, data) {
			count++
		}
	}
	return count
}

// IsSatisfied reports whether every formula evaluates to true under data —
// the per-assignment acceptance test every solver back end drives.
func (p *Problem) IsSatisfied(data assignment.Assignment) bool {
	return p.SatisfiedCount(data) == len(p.formulas)
}

// Describe renders a human-readable variable-name -> bit-value table for
// data, in variable-index order. Recovered from the original C++
// implementation's writeOut dump; used by diagnostics and tests, never by
// a solver's hot path.
func (p *Problem) Describe(data assignment.Assignment) string {
	var b strings.Builder
	for i := 0; i < p.vars.Count(); i++ {
		fmt.Fprintf(&b, "%s = %t\n", p.vars.Name(i), data.Bit(i))
	}
	return b.String()
}
