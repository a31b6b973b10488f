package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrDomain, "reading input", cause)
	assert.ErrorIs(t, err, cause)
}

func TestWithContext_AttachesLine(t *testing.T) {
	err := NewSyntaxError(7, "unexpected token").WithContext("offending", "~")
	assert.Equal(t, 7, err.Line())
	assert.Equal(t, "~", err.Context["offending"])
}

func TestIs_MatchesCategory(t *testing.T) {
	err := NewLexicalError(3, '@')
	assert.True(t, Is(err, ErrLexical))
	assert.False(t, Is(err, ErrSyntax))
}

func TestIs_FalseForNonSatError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), ErrDomain))
}

func TestFormatDiagnostic_MatchesWireFormat(t *testing.T) {
	err := NewExpressionError(12, "invalid token sequence")
	got := FormatDiagnostic("input.sat", err)
	assert.Equal(t, "input.sat:12: error: expression error", got)
}

func TestFormatDiagnostic_SyntaxAndLexicalKinds(t *testing.T) {
	require.Equal(t, "f:1: error: syntax error", FormatDiagnostic("f", NewSyntaxError(1, "x")))
	require.Equal(t, "f:2: error: lexical error", FormatDiagnostic("f", NewLexicalError(2, 'x')))
}

func TestFormatDiagnostic_NonSatErrorFallsBack(t *testing.T) {
	got := FormatDiagnostic("f", errors.New("plain failure"))
	assert.Equal(t, "f: error: plain failure", got)
}

func TestError_IncludesCauseWhenPresent(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(ErrInternal, "stack underflow", cause)
	assert.Contains(t, err.Error(), "underlying")
	assert.Contains(t, err.Error(), "stack underflow")
}
