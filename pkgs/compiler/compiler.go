package compiler

import (
	"github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/token"
)

// TokenSource is the narrow interface the compiler consumes, matching the
// resolver's shape without importing the scanner package directly.
type TokenSource interface {
	ReadNext() token.Token
}

// Compiler turns a stream of resolved tokens into a sequence of compiled
// formulas. Formulas are delimited by DELIM or terminated by EOF. Any
// lexical or expression error discards the formula under construction and
// recovers by skipping tokens through the next DELIM or EOF, so one bad
// formula never prevents the rest of the input from compiling.
type Compiler struct {
	src TokenSource
}

// NewCompiler wraps src.
func NewCompiler(src TokenSource) *Compiler {
	return &Compiler{src: src}
}

// Compile consumes the entire token stream and returns every formula that
// compiled without error, plus one diagnostic per formula (or lexical span)
// that did not.
func (c *Compiler) Compile() (formulas []CommandList, diags []error) {
	for {
		cmds, err, reachedEOF := c.compileOne()
		if cmds != nil {
			formulas = append(formulas, *cmds)
		}
		if err != nil {
			diags = append(diags, err)
		}
		if reachedEOF {
			return formulas, diags
		}
	}
}

// compileOne compiles tokens up through the next DELIM/EOF into one
// CommandList. On error it also performs recovery, so the caller never
// needs to call recover() itself.
func (c *Compiler) compileOne() (cmds *CommandList, err error, reachedEOF bool) {
	p := NewFormulaParser()
	sawToken := false
	for {
		t := c.src.ReadNext()

		if t.Kind == token.ErrLex {
			lexErr := errors.NewLexicalError(t.Line, badByte(t.Text))
			return nil, lexErr, c.recover()
		}

		if t.Kind == token.DELIM || t.Kind == token.EOF {
			if !sawToken {
				// A trailing delimiter followed immediately by EOF is just
				// the last formula's optional terminator -- a no-op. Two
				// delimiters in a row, though, describe a genuinely empty
				// formula slot between them, which the original scanner
				// reports as T_ERR_PARSE (a syntax error), not silently.
				if t.Kind == token.EOF {
					return nil, nil, true
				}
				return nil, errors.NewSyntaxError(t.Line, "empty formula"), false
			}
			if _, perr := p.Parse(t); perr != nil {
				return nil, perr, t.Kind == token.EOF
			}
			list := p.CommandList()
			return &list, nil, t.Kind == token.EOF
		}

		sawToken = true
		done, perr := p.Parse(t)
		if perr != nil {
			return nil, perr, c.recover()
		}
		if done {
			return nil, errors.NewInternalError("formula compiler: parser finished before a DELIM or EOF"), false
		}
	}
}

// recover discards tokens until (and including) the next DELIM or EOF,
// reporting whether it stopped at EOF.
func (c *Compiler) recover() (reachedEOF bool) {
	for {
		t := c.src.ReadNext()
		switch t.Kind {
		case token.DELIM:
			return false
		case token.EOF:
			return true
		}
	}
}

func badByte(text string) byte {
	if len(text) == 0 {
		return 0
	}
	return text[0]
}
