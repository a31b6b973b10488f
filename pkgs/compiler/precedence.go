package compiler

import "github.com/fastsatsolver/fss/pkgs/token"

// rel is a precedence-table cell: shift-with-marker (Lt), shift (Eq),
// reduce (Gt), invalid (Inv), or accept (Eof). These reuse token.Kind's
// parser-internal sentinels so the table and the parser stack share one
// vocabulary, as spec'd: parser markers never leak past this package.
type rel = token.Kind

const (
	relLt  = token.Lt
	relEq  = token.Eq
	relGt  = token.Gt
	relInv = token.Inv
	relEOF = token.EOF
)

// tableIndex maps a terminal Kind to its row/column in the 8x8 precedence
// table. NOT has a row and column of its own like the binary operators;
// this is the "unified" table the spec resolves its associativity open
// question with (NOT participates as a regular operator rather than being
// handled out of band). The three binary operators share one priority and
// reduce left-to-right; NOT binds tighter than all of them.
func tableIndex(k token.Kind) int {
	switch k {
	case token.XOR:
		return 0
	case token.OR:
		return 1
	case token.AND:
		return 2
	case token.NOT:
		return 3
	case token.LPAR:
		return 4
	case token.RPAR:
		return 5
	case token.VAR, token.FALSE, token.TRUE:
		return 6
	case token.DELIM, token.EOF, token.Bottom:
		return 7
	default:
		return -1
	}
}

// precedenceTable is transcribed verbatim from the operator-precedence
// grammar: rows are the stack-top terminal, columns are the input
// terminal, in the order XOR, OR, AND, NOT, (, ), i, $.
var precedenceTable = [8][8]rel{
	/*XOR*/ {relGt, relGt, relGt, relLt, relLt, relGt, relLt, relGt},
	/*OR */ {relGt, relGt, relGt, relLt, relLt, relGt, relLt, relGt},
	/*AND*/ {relGt, relGt, relGt, relLt, relLt, relGt, relLt, relGt},
	/*NOT*/ {relGt, relGt, relGt, relLt, relLt, relGt, relLt, relGt},
	/*( */ {relLt, relLt, relLt, relLt, relLt, relEq, relLt, relInv},
	/*) */ {relGt, relGt, relGt, relGt, relInv, relGt, relInv, relGt},
	/*i */ {relGt, relGt, relGt, relGt, relInv, relGt, relInv, relGt},
	/*$ */ {relLt, relLt, relLt, relLt, relLt, relInv, relLt, relEOF},
}

// lookup returns the table cell for (stack-top terminal, input terminal).
// Out-of-range terminals (e.g. an already-reduced EXPR mistakenly passed in)
// are treated as invalid.
func lookup(top, input token.Kind) rel {
	i, j := tableIndex(top), tableIndex(input)
	if i < 0 || j < 0 {
		return relInv
	}
	return precedenceTable[i][j]
}
