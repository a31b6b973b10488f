package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{AND, "AND"},
		{VAR, "VAR"},
		{EOF, "EOF"},
		{Bottom, "BOTTOM"},
		{Expr, "EXPR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestKind_String_Unknown(t *testing.T) {
	assert.Contains(t, Kind(999).String(), "Kind(999)")
}

func TestKind_IsTerminal(t *testing.T) {
	assert.True(t, AND.IsTerminal())
	assert.True(t, VAR.IsTerminal())
	assert.False(t, Expr.IsTerminal())
}

func TestNew(t *testing.T) {
	tok := New(AND, 3)
	require.Equal(t, AND, tok.Kind)
	assert.Equal(t, 3, tok.Line)
	assert.Equal(t, "", tok.Text)
}

func TestNewString(t *testing.T) {
	tok := NewString("foo", 7)
	require.Equal(t, STRING, tok.Kind)
	assert.Equal(t, "foo", tok.Text)
	assert.Equal(t, 7, tok.Line)
}

func TestNewVar(t *testing.T) {
	tok := NewVar(4, 2)
	require.Equal(t, VAR, tok.Kind)
	assert.Equal(t, 4, tok.VarID)
	assert.Equal(t, 2, tok.Line)
}

func TestToken_String(t *testing.T) {
	assert.Contains(t, NewString("x", 1).String(), `"x"`)
	assert.Contains(t, NewVar(2, 1).String(), "#2")
	assert.Contains(t, New(AND, 1).String(), "AND")
}
