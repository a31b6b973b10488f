package compiler

import (
	"github.com/fastsatsolver/fss/pkgs/errors"
	"github.com/fastsatsolver/fss/pkgs/token"
)

// parserStack is the operator-precedence parser's explicit stack. It holds
// a mix of real input tokens (operators, operands, parentheses) and two
// parser-internal sentinels: the LT shift marker and the EXPR
// non-terminal produced by a reduction. Neither sentinel ever reaches the
// CommandList or crosses back out of this package.
type parserStack struct {
	items []token.Token
}

func (s *parserStack) push(t token.Token) {
	s.items = append(s.items, t)
}

func (s *parserStack) pop() token.Token {
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last
}

func (s *parserStack) top() token.Token {
	return s.items[len(s.items)-1]
}

func (s *parserStack) popAndCompare(k token.Kind) bool {
	return s.pop().Kind == k
}

// acceptable reports whether the stack is exactly [$, EXPR] -- the only
// shape the EOF cell may accept per the precedence table: stack top
// terminal is $ and the element above it is EXPR.
func (s *parserStack) acceptable() bool {
	return len(s.items) == 2 && s.items[0].Kind == token.Bottom && s.items[1].Kind == token.Expr
}

// insertLt inserts the LT marker after the last terminal on the stack: if
// the top is already a terminal, the marker simply goes on top; if the top
// is the EXPR non-terminal, the marker is spliced in just below it.
func (s *parserStack) insertLt(line int) {
	last := s.top()
	if last.Kind.IsTerminal() {
		s.push(token.New(token.Lt, line))
		return
	}
	expr := s.pop()
	s.push(token.New(token.Lt, line))
	s.push(expr)
}

// topTerm returns the terminal a precedence lookup should use: the actual
// top of the stack, unless that is the EXPR non-terminal, in which case
// the element just below it (always a terminal, by construction).
func (s *parserStack) topTerm() token.Token {
	last := s.top()
	if last.Kind.IsTerminal() {
		return last
	}
	return s.items[len(s.items)-2]
}

// FormulaParser drives one formula through the operator-precedence grammar,
// accumulating a CommandList as reductions fire. A sticky error flag means
// isValid() reports false for the remainder of the formula even though
// further tokens may still be fed in (the outer compiler decides when to
// stop feeding and start recovery).
type FormulaParser struct {
	stack   parserStack
	cmds    []Cmd
	errored bool
	line    int
}

// NewFormulaParser returns a parser primed with the bottom-of-stack
// sentinel, ready to receive the first token of a new formula.
func NewFormulaParser() *FormulaParser {
	p := &FormulaParser{}
	p.stack.push(token.New(token.Bottom, 0))
	return p
}

// IsValid reports whether the formula parsed so far has not hit an error.
func (p *FormulaParser) IsValid() bool {
	return !p.errored
}

// CommandList returns the compiled command list. Only meaningful once
// Parse has returned true (accepted) for the synthetic EOF token.
func (p *FormulaParser) CommandList() CommandList {
	return CommandList{cmds: p.cmds}
}

func (p *FormulaParser) emit(t token.Token) {
	switch t.Kind {
	case token.FALSE:
		p.cmds = append(p.cmds, PushConst(false))
	case token.TRUE:
		p.cmds = append(p.cmds, PushConst(true))
	case token.VAR:
		p.cmds = append(p.cmds, PushVar(t.VarID))
	case token.NOT:
		p.cmds = append(p.cmds, Not())
	case token.AND:
		p.cmds = append(p.cmds, Binop(OpAnd))
	case token.OR:
		p.cmds = append(p.cmds, Binop(OpOr))
	case token.XOR:
		p.cmds = append(p.cmds, Binop(OpXor))
	default:
		panic(errors.NewInternalError("formula compiler: emit() of non-operand/operator token").Error())
	}
}

// Parse feeds one token to the parser. It returns (done, err): done is true
// once the formula has either been accepted (the caller fed a synthetic
// EOF and the stack held $ EXPR) or an error was raised; err is non-nil
// only in the error case. The caller must stop feeding tokens to this
// parser once done is true.
func (p *FormulaParser) Parse(t token.Token) (done bool, err error) {
	p.line = t.Line
	for {
		top := p.stack.topTerm()
		mode := lookup(top.Kind, t.Kind)

		switch mode {
		case relLt:
			p.stack.insertLt(t.Line)
			p.stack.push(t)
			return false, nil

		case relEq:
			p.stack.push(t)
			return false, nil

		case relGt:
			if err := p.reduce(top); err != nil {
				p.errored = true
				return true, err
			}
			// Loop: re-derive topTerm against the same input token, since
			// a reduction may expose a further reducible handle before the
			// input token is finally shifted.
			continue

		case relEOF:
			if !p.IsValid() || !p.stack.acceptable() {
				p.errored = true
				return true, errors.NewExpressionError(t.Line, "expression error")
			}
			return true, nil

		case relInv:
			p.errored = true
			return true, errors.NewExpressionError(t.Line, "invalid token sequence")

		default:
			p.errored = true
			return true, errors.NewInternalError("formula compiler: unexpected precedence-table cell")
		}
	}
}

// reduce performs exactly one reduction, driven by the terminal topTerm
// identified the handle's rule by (the kind used for the precedence
// lookup that triggered this reduce).
func (p *FormulaParser) reduce(top token.Token) error {
	switch top.Kind {
	case token.FALSE, token.TRUE, token.VAR:
		// < i -> EXPR
		opTok := p.stack.pop()
		if !p.stack.popAndCompare(token.Lt) {
			return errors.NewExpressionError(top.Line, "malformed operand handle")
		}
		p.emit(opTok)

	case token.RPAR:
		// < ( EXPR ) -> EXPR
		p.stack.pop() // RPAR
		if !p.stack.popAndCompare(token.Expr) {
			return errors.NewExpressionError(top.Line, "expected expression before ')'")
		}
		if !p.stack.popAndCompare(token.LPAR) {
			return errors.NewExpressionError(top.Line, "unmatched ')'")
		}
		if !p.stack.popAndCompare(token.Lt) {
			return errors.NewExpressionError(top.Line, "malformed parenthesis handle")
		}

	case token.NOT:
		// < NOT EXPR -> EXPR
		if !p.stack.popAndCompare(token.Expr) {
			return errors.NewExpressionError(top.Line, "operand expected after NOT")
		}
		opTok := p.stack.pop()
		p.emit(opTok)
		if !p.stack.popAndCompare(token.Lt) {
			return errors.NewExpressionError(top.Line, "malformed NOT handle")
		}

	default:
		// < EXPR <op> EXPR -> EXPR  (top.Kind is XOR, OR or AND)
		if !p.stack.popAndCompare(token.Expr) {
			return errors.NewExpressionError(top.Line, "operand expected")
		}
		opTok := p.stack.pop()
		p.emit(opTok)
		if !p.stack.popAndCompare(token.Expr) {
			return errors.NewExpressionError(top.Line, "operand expected")
		}
		if !p.stack.popAndCompare(token.Lt) {
			return errors.NewExpressionError(top.Line, "malformed binary handle")
		}
	}
	p.stack.push(token.New(token.Expr, top.Line))
	return nil
}
