package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastsatsolver/fss/pkgs/token"
)

func scanAll(t *testing.T, input string) []token.Token {
	t.Helper()
	s, err := NewRawScanner(strings.NewReader(input))
	require.NoError(t, err)
	var toks []token.Token
	for {
		tok := s.ReadNext()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
		if len(toks) > 1000 {
			t.Fatal("scanner did not terminate")
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestRawScanner_SingleCharTokens(t *testing.T) {
	toks := scanAll(t, "01~&|^();")
	assert.Equal(t, []token.Kind{
		token.FALSE, token.TRUE, token.NOT, token.AND, token.OR, token.XOR,
		token.LPAR, token.RPAR, token.DELIM, token.EOF,
	}, kinds(toks))
}

func TestRawScanner_Identifier(t *testing.T) {
	toks := scanAll(t, "foo_Bar123")
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "foo_Bar123", toks[0].Text)
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestRawScanner_IdentifierStartingWithUnderscore(t *testing.T) {
	toks := scanAll(t, "_x1")
	require.Len(t, toks, 2)
	assert.Equal(t, "_x1", toks[0].Text)
}

func TestRawScanner_WhitespaceIgnored(t *testing.T) {
	toks := scanAll(t, "  a \t b\n")
	require.Len(t, toks, 3)
	assert.Equal(t, "a", toks[0].Text)
	assert.Equal(t, "b", toks[1].Text)
}

func TestRawScanner_LineTracking(t *testing.T) {
	toks := scanAll(t, "a\nb\nc")
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func TestRawScanner_LexError(t *testing.T) {
	toks := scanAll(t, "a @ b")
	require.Len(t, toks, 4)
	assert.Equal(t, token.ErrLex, toks[1].Kind)
	assert.Equal(t, "@", toks[1].Text)
	// Scanner remains usable after an ERR_LEX token.
	assert.Equal(t, "b", toks[2].Text)
}

func TestRawScanner_EOFRepeats(t *testing.T) {
	s, err := NewRawScanner(strings.NewReader(""))
	require.NoError(t, err)
	first := s.ReadNext()
	second := s.ReadNext()
	require.Equal(t, token.EOF, first.Kind)
	require.Equal(t, token.EOF, second.Kind)
	assert.Equal(t, first.Line, second.Line)
}

func TestRawScanner_EmptyInput(t *testing.T) {
	toks := scanAll(t, "")
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}
