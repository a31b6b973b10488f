package scanner

import (
	"github.com/fastsatsolver/fss/pkgs/token"
)

// keywordKinds maps the reserved-identifier spellings to their token kind.
// Case-sensitive, as required by the input language.
var keywordKinds = map[string]token.Kind{
	"NOT":   token.NOT,
	"AND":   token.AND,
	"OR":    token.OR,
	"XOR":   token.XOR,
	"FALSE": token.FALSE,
	"TRUE":  token.TRUE,
}

// TokenSource is the narrow interface every layer of the scanner pipeline
// implements, mirroring the decorator-style chaining of the original
// scanner (raw scanner → string resolver → formula compiler).
type TokenSource interface {
	ReadNext() token.Token
}

// Resolver wraps a TokenSource and reclassifies every STRING token against
// the keyword table, interning anything else as a variable reference. All
// other token kinds pass through unchanged. It owns the VariableTable for
// the lifetime of a parse.
type Resolver struct {
	src  TokenSource
	vars *VariableTable
}

// NewResolver wraps src, populating (or reusing) vars as STRING tokens are
// seen.
func NewResolver(src TokenSource, vars *VariableTable) *Resolver {
	return &Resolver{src: src, vars: vars}
}

// Variables returns the table this resolver populates.
func (r *Resolver) Variables() *VariableTable {
	return r.vars
}

// ReadNext implements TokenSource.
func (r *Resolver) ReadNext() token.Token {
	t := r.src.ReadNext()
	if t.Kind != token.STRING {
		return t
	}
	if kind, isKeyword := keywordKinds[t.Text]; isKeyword {
		return token.New(kind, t.Line)
	}
	id := r.vars.Intern(t.Text)
	return token.NewVar(id, t.Line)
}
