// Package scanner implements the layered lexical front end: a raw
// byte-stream scanner and a string resolver that folds identifiers into
// keywords or variable references.
package scanner

import (
	"io"

	"github.com/fastsatsolver/fss/pkgs/token"
)

// state is the raw scanner's internal state machine. Only two states are
// needed: the scanner is either between tokens (init) or mid-identifier.
type state int

const (
	stateInit state = iota
	stateBuildingIdent
)

// single-character token mapping in stateInit.
var charTokens = map[byte]token.Kind{
	'0': token.FALSE,
	'1': token.TRUE,
	'~': token.NOT,
	'&': token.AND,
	'|': token.OR,
	'^': token.XOR,
	'(': token.LPAR,
	')': token.RPAR,
	';': token.DELIM,
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// RawScanner consumes a byte stream and emits exactly one token per
// ReadNext call. On end of input it emits EOF indefinitely; it never
// returns a Go error, only ERR_LEX tokens, and stays usable afterwards.
type RawScanner struct {
	buf   []byte
	pos   int
	line  int
	state state
}

// NewRawScanner reads all of r eagerly (formula specifications are small
// text files or piped stdin; the scanner does not need to be streaming to
// satisfy the step-driven process model, since parsing completes entirely
// before any solver runs).
func NewRawScanner(r io.Reader) (*RawScanner, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &RawScanner{buf: data, pos: 0, line: 1, state: stateInit}, nil
}

func (s *RawScanner) peek() (byte, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	return s.buf[s.pos], true
}

func (s *RawScanner) advance() byte {
	c := s.buf[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c
}

// ReadNext returns the next token. See RawScanner and the state type for
// state-machine behavior.
func (s *RawScanner) ReadNext() token.Token {
	for {
		c, ok := s.peek()
		if !ok {
			return token.New(token.EOF, s.line)
		}

		switch s.state {
		case stateInit:
			if isSpace(c) {
				s.advance()
				continue
			}
			if isIdentStart(c) {
				s.state = stateBuildingIdent
				continue
			}
			if kind, known := charTokens[c]; known {
				line := s.line
				s.advance()
				return token.New(kind, line)
			}
			line := s.line
			s.advance()
			bad := token.New(token.ErrLex, line)
			bad.Text = string(c)
			return bad

		case stateBuildingIdent:
			return s.readIdent()
		}
	}
}

// readIdent accumulates [A-Za-z0-9_]* starting at the current position
// (already known to start with an identifier character) and emits a
// STRING token, returning the scanner to stateInit.
func (s *RawScanner) readIdent() token.Token {
	start := s.pos
	line := s.line
	for {
		c, ok := s.peek()
		if !ok || !isIdentCont(c) {
			break
		}
		s.advance()
	}
	s.state = stateInit
	return token.NewString(string(s.buf[start:s.pos]), line)
}
