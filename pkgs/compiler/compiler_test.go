package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastsatsolver/fss/pkgs/assignment"
	"github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/scanner"
)

// compileAll parses src end to end through the raw scanner and resolver,
// returning the compiled formulas, diagnostics, and the variable table
// populated along the way (needed to build test assignments by name).
func compileAll(t *testing.T, src string) ([]CommandList, []error, *scanner.VariableTable) {
	t.Helper()
	raw, err := scanner.NewRawScanner(strings.NewReader(src))
	require.NoError(t, err)
	vars := scanner.NewVariableTable()
	resolver := scanner.NewResolver(raw, vars)
	c := NewCompiler(resolver)
	formulas, diags := c.Compile()
	return formulas, diags, vars
}

// assignFromBits builds a Long assignment from a map of variable name to
// value, using vt to resolve names to indices.
func assignFromBits(vt *scanner.VariableTable, bits map[string]bool) assignment.Long {
	var n uint64
	for name, v := range bits {
		if !v {
			continue
		}
		id, ok := vt.Lookup(name)
		if !ok {
			continue
		}
		n |= 1 << uint(id)
	}
	return assignment.NewLong(vt.Count(), n)
}

func TestCompile_SingleVariable(t *testing.T) {
	formulas, diags, vars := compileAll(t, "a;")
	require.Empty(t, diags)
	require.Len(t, formulas, 1)
	assert.True(t, Eval(formulas[0], assignFromBits(vars, map[string]bool{"a": true})))
	assert.False(t, Eval(formulas[0], assignFromBits(vars, map[string]bool{"a": false})))
}

func TestCompile_ImplicitTerminatorAtEOF(t *testing.T) {
	formulas, diags, _ := compileAll(t, "a")
	require.Empty(t, diags)
	require.Len(t, formulas, 1)
}

func TestCompile_MultipleFormulas(t *testing.T) {
	formulas, diags, _ := compileAll(t, "a; b; a & b;")
	require.Empty(t, diags)
	assert.Len(t, formulas, 3)
}

func TestCompile_TruthTable(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want func(a, b bool) bool
	}{
		{"and", "a & b;", func(a, b bool) bool { return a && b }},
		{"or", "a | b;", func(a, b bool) bool { return a || b }},
		{"xor", "a ^ b;", func(a, b bool) bool { return a != b }},
		{"not", "~a;", func(a, b bool) bool { return !a }},
		{"keyword ops", "a AND b;", func(a, b bool) bool { return a && b }},
		{"keyword or", "a OR b;", func(a, b bool) bool { return a || b }},
		{"keyword xor", "a XOR b;", func(a, b bool) bool { return a != b }},
		{"keyword not", "NOT a;", func(a, b bool) bool { return !a }},
		{"grouping", "(a & b) | (~a & ~b);", func(a, b bool) bool { return (a && b) || (!a && !b) }},
		{"double paren", "((a & b));", func(a, b bool) bool { return a && b }},
		{"nested not", "~~a;", func(a, b bool) bool { return a }},
		{"not binds tighter", "~a & b;", func(a, b bool) bool { return !a && b }},
		{"const true", "1;", func(a, b bool) bool { return true }},
		{"const false", "0;", func(a, b bool) bool { return false }},
		{"tautology", "a | ~a;", func(a, b bool) bool { return true }},
		{"contradiction", "a & ~a;", func(a, b bool) bool { return false }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formulas, diags, vars := compileAll(t, tt.expr)
			require.Empty(t, diags)
			require.Len(t, formulas, 1)
			for _, a := range []bool{false, true} {
				for _, b := range []bool{false, true} {
					got := Eval(formulas[0], assignFromBits(vars, map[string]bool{"a": a, "b": b}))
					assert.Equal(t, tt.want(a, b), got, "a=%v b=%v", a, b)
				}
			}
		})
	}
}

func TestCompile_LeftToRightAssociativityAtEqualPrecedence(t *testing.T) {
	// a | b ^ c must parse as (a | b) ^ c, not a | (b ^ c); with
	// a=true, b=false, c=true those two groupings disagree (false vs
	// true), so this pins down the left-to-right reading the unified
	// precedence table produces for mixed equal-precedence operators.
	formulas, diags, vars := compileAll(t, "a | b ^ c;")
	require.Empty(t, diags)
	require.Len(t, formulas, 1)
	data := assignFromBits(vars, map[string]bool{"a": true, "b": false, "c": true})
	want := (true || false) != true // (a | b) ^ c, not a | (b ^ c)
	assert.Equal(t, want, Eval(formulas[0], data))
}

func TestCompile_ParenthesizationClosure(t *testing.T) {
	// For any valid F, (F) is also valid and evaluates identically.
	inner := "a & b | ~a;"
	wrapped := "(a & b | ~a);"
	formulas1, diags1, vars1 := compileAll(t, inner)
	formulas2, diags2, vars2 := compileAll(t, wrapped)
	require.Empty(t, diags1)
	require.Empty(t, diags2)
	require.Len(t, formulas1, 1)
	require.Len(t, formulas2, 1)
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			v1 := assignFromBits(vars1, map[string]bool{"a": a, "b": b})
			v2 := assignFromBits(vars2, map[string]bool{"a": a, "b": b})
			assert.Equal(t, Eval(formulas1[0], v1), Eval(formulas2[0], v2))
		}
	}
}

func TestCompile_UnmatchedParenIsError(t *testing.T) {
	formulas, diags, _ := compileAll(t, "(a & b;")
	assert.Empty(t, formulas)
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], errors.ErrExpression))
}

func TestCompile_DanglingOperatorIsError(t *testing.T) {
	formulas, diags, _ := compileAll(t, "a & ;")
	assert.Empty(t, formulas)
	require.Len(t, diags, 1)
}

func TestCompile_MalformedFormulaThenValidFormula(t *testing.T) {
	// "a & ; b;" -- the first formula is malformed, but compilation
	// recovers at the next DELIM and the second formula compiles fine.
	formulas, diags, _ := compileAll(t, "a & ; b;")
	require.Len(t, diags, 1)
	require.Len(t, formulas, 1)
}

func TestCompile_InvalidCharacterRecovers(t *testing.T) {
	formulas, diags, _ := compileAll(t, "a @ b; c;")
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], errors.ErrLexical))
	require.Len(t, formulas, 1)
}

func TestCompile_EmptyInputYieldsNoFormulas(t *testing.T) {
	formulas, diags, _ := compileAll(t, "")
	assert.Empty(t, formulas)
	assert.Empty(t, diags)
}

func TestCompile_EmptyFormulaSlotIsSyntaxError(t *testing.T) {
	// Two delimiters in a row describe an empty formula slot, reported as
	// a syntax error; it must not produce a zero-command CommandList that
	// would later panic at Eval (stack depth 0, not 1), and the formulas
	// on either side of it must still compile.
	formulas, diags, _ := compileAll(t, "a;;b;")
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], errors.ErrSyntax))
	require.Len(t, formulas, 2)
	assert.Equal(t, 1, formulas[0].Len())
	assert.Equal(t, 1, formulas[1].Len())
}

func TestCompile_TrailingDelimiterProducesNoPhantomFormula(t *testing.T) {
	formulas, diags, _ := compileAll(t, "a;b;")
	assert.Empty(t, diags)
	require.Len(t, formulas, 2)
}
