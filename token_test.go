package scheme

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenKinds(t *testing.T, src string) []TokenKind {
	t.Helper()
	tok, err := NewTokenizer(src)
	require.NoError(t, err)
	var kinds []TokenKind
	for !tok.Eof() {
		kinds = append(kinds, tok.Current().Kind)
		require.NoError(t, tok.Next())
	}
	return kinds
}

func TestTokenizerPunctuation(t *testing.T) {
	kinds := tokenKinds(t, "('.)")
	assert.Equal(t, []TokenKind{TokOpenParen, TokQuote, TokDot, TokCloseParen}, kinds)
}

func TestTokenizerBooleans(t *testing.T) {
	tok, err := NewTokenizer("#t #f")
	require.NoError(t, err)
	assert.Equal(t, Token{Kind: TokBoolean, Bool: true}, tok.Current())
	require.NoError(t, tok.Next())
	assert.Equal(t, Token{Kind: TokBoolean, Bool: false}, tok.Current())
}

func TestTokenizerIntegers(t *testing.T) {
	tok, err := NewTokenizer("42 -7 +3")
	require.NoError(t, err)
	assert.Equal(t, int64(42), tok.Current().Int)
	require.NoError(t, tok.Next())
	assert.Equal(t, int64(-7), tok.Current().Int)
	require.NoError(t, tok.Next())
	assert.Equal(t, int64(3), tok.Current().Int)
}

func TestTokenizerIntegerOverflowWrapsSilently(t *testing.T) {
	// One past math.MaxInt64 should wrap around to the minimum int64
	// rather than erroring or saturating.
	tok, err := NewTokenizer("9223372036854775808")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), tok.Current().Int)
}

func TestTokenizerSymbols(t *testing.T) {
	kinds := tokenKinds(t, "foo bar? set! <= list->vector")
	for _, k := range kinds {
		assert.Equal(t, TokSymbol, k)
	}
}

func TestTokenizerEmptyInput(t *testing.T) {
	tok, err := NewTokenizer("   ")
	require.NoError(t, err)
	assert.True(t, tok.Eof())
}

func TestTokenizerInvalidCharacter(t *testing.T) {
	_, err := NewTokenizer("@")
	require.Error(t, err)
	var syn *SyntaxError
	assert.ErrorAs(t, err, &syn)
}
