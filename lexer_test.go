package cinit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStream_Tokenizes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []TokenKind
	}{
		{
			name:  "array designator list",
			input: "{[4]=9, [1]=2}",
			kinds: []TokenKind{TokLBrace, TokLBracket, TokInt, TokRBracket, TokEquals, TokInt, TokComma,
				TokLBracket, TokInt, TokRBracket, TokEquals, TokInt, TokRBrace, TokEOF},
		},
		{
			name:  "member designator",
			input: ".q = 3",
			kinds: []TokenKind{TokDot, TokIdent, TokEquals, TokInt, TokEOF},
		},
		{
			name:  "char literal",
			input: "'a'",
			kinds: []TokenKind{TokChar, TokEOF},
		},
		{
			name:  "string literal",
			input: `"Hi"`,
			kinds: []TokenKind{TokString, TokEOF},
		},
		{
			name:  "signed index",
			input: "[-1]",
			kinds: []TokenKind{TokLBracket, TokMinus, TokInt, TokRBracket, TokEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenStream(tt.input)
			for _, k := range tt.kinds {
				assert.Equal(t, k, ts.Next().Kind)
			}
		})
	}
}

func TestTokenStream_PeekNDoesNotConsume(t *testing.T) {
	ts := NewTokenStream("{1, 2}")
	require.Equal(t, TokLBrace, ts.Peek().Kind)
	require.Equal(t, TokInt, ts.PeekN(2).Kind)
	assert.Equal(t, TokLBrace, ts.Peek().Kind) // unchanged by PeekN

	assert.Equal(t, TokLBrace, ts.Next().Kind)
	assert.Equal(t, TokInt, ts.Next().Kind)
}

func TestCharEscapes(t *testing.T) {
	ts := NewTokenStream(`'\n'`)
	tok := ts.Next()
	require.Equal(t, TokChar, tok.Kind)
	assert.EqualValues(t, '\n', tok.Int)
}
