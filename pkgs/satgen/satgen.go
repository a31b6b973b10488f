// Package satgen preserves the interface shape of the original project's
// separate random-problem generator binary (fss-satgen / randsat.cpp)
// without shipping its logic: spec.md places the input-generator utility
// out of scope. Generator exists only as an unexported-by-convention hook
// point a future CLI subcommand could wire up.
package satgen

import "io"

// Generator produces a random SAT input document (the same text format
// pkgs/problem.New parses) and writes it to w. No implementation ships;
// this type exists only so a future generator can be registered without
// changing any caller of it.
type Generator func(w io.Writer, varCount, formulaCount int) error
