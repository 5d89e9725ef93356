package lexer_test

import (
	"testing"

	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func TestSingleCharTokens(t *testing.T) {
	toks := lexer.New("(){},.-+;*").Tokens()
	require.Equal(t, []lexer.Kind{
		lexer.LeftParen, lexer.RightParen, lexer.LeftBrace, lexer.RightBrace,
		lexer.Comma, lexer.Dot, lexer.Minus, lexer.Plus, lexer.Semicolon, lexer.Star,
		lexer.EOF,
	}, kinds(toks))
}

func TestTwoCharOperatorsMaximalMunch(t *testing.T) {
	toks := lexer.New("! != = == < <= > >=").Tokens()
	require.Equal(t, []lexer.Kind{
		lexer.Bang, lexer.BangEqual, lexer.Equal, lexer.EqualEqual,
		lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual, lexer.EOF,
	}, kinds(toks))
}

func TestLineCommentDiscarded(t *testing.T) {
	toks := lexer.New("1 // a comment\n2").Tokens()
	require.Equal(t, []lexer.Kind{lexer.Number, lexer.Number, lexer.EOF}, kinds(toks))
}

func TestBlockCommentDiscarded(t *testing.T) {
	toks := lexer.New("1 /* multi\nline */ 2").Tokens()
	require.Equal(t, []lexer.Kind{lexer.Number, lexer.Number, lexer.EOF}, kinds(toks))
}

func TestUnterminatedBlockCommentIsInvalidToEOF(t *testing.T) {
	toks := lexer.New("1 /* never closed").Tokens()
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.Invalid, toks[1].Kind)
}

func TestSlashNotFollowedByCommentIsDivision(t *testing.T) {
	toks := lexer.New("6 / 2").Tokens()
	require.Equal(t, []lexer.Kind{lexer.Number, lexer.Slash, lexer.Number, lexer.EOF}, kinds(toks))
}

func TestStringLiteral(t *testing.T) {
	toks := lexer.New(`"hello"`).Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.String, toks[0].Kind)
	assert.Equal(t, `"hello"`, toks[0].Lexeme)
}

func TestStringWithEscapedQuote(t *testing.T) {
	toks := lexer.New(`"a\"b"`).Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.String, toks[0].Kind)
}

func TestUnterminatedStringIsInvalidToEOF(t *testing.T) {
	toks := lexer.New(`"never closed`).Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.Invalid, toks[0].Kind)
}

func TestNumberLiteral(t *testing.T) {
	toks := lexer.New("123 3.14").Tokens()
	require.Len(t, toks, 3)
	assert.InDelta(t, 123.0, toks[0].Number, 0)
	assert.InDelta(t, 3.14, toks[1].Number, 0.0000001)
}

func TestTrailingDotNotConsumedByNumber(t *testing.T) {
	toks := lexer.New("1.").Tokens()
	require.Equal(t, []lexer.Kind{lexer.Number, lexer.Dot, lexer.EOF}, kinds(toks))
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := lexer.New("and class else false fun for if nil or print return super this true var while break myVar").Tokens()
	want := []lexer.Kind{
		lexer.And, lexer.Class, lexer.Else, lexer.False, lexer.Fun, lexer.For,
		lexer.If, lexer.Nil, lexer.Or, lexer.Print, lexer.Return, lexer.Super,
		lexer.This, lexer.True, lexer.Var, lexer.While, lexer.Break, lexer.Identifier, lexer.EOF,
	}
	require.Equal(t, want, kinds(toks))
}

func TestInvalidCharacterToken(t *testing.T) {
	toks := lexer.New("@#").Tokens()
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.Invalid, toks[0].Kind)
}

// Lex round-trip (spec §8): concatenating lexemes reproduces the
// source with comments and whitespace removed.
func TestLexRoundTrip(t *testing.T) {
	src := "var a = 1 + 2; // trailing comment\nprint a;"
	toks := lexer.New(src).Tokens()
	var got string
	for _, tok := range toks {
		if tok.Kind == lexer.EOF {
			continue
		}
		got += tok.Lexeme
	}
	assert.Equal(t, "vara=1+2;printa;", got)
}

func TestLineAndColumnComputedOnDemand(t *testing.T) {
	toks := lexer.New("var a\n= 1;").Tokens()
	// "a" is on line 1.
	assert.Equal(t, 1, toks[1].Line())
	// "=" is on line 2, column 1.
	assert.Equal(t, 2, toks[2].Line())
	assert.Equal(t, 1, toks[2].Column())
}
