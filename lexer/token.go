// Package lexer turns Lox source text into a token stream.
//
// The scanner is hand-written and single-pass: it never backtracks past
// the current byte, filters out comments and whitespace before they
// reach the parser, and never aborts on bad input — malformed runs of
// text become Invalid tokens instead, so the parser (not the scanner)
// decides when a lexical error is fatal.
package lexer

import "fmt"

// Kind identifies the lexical category of a Token. Lox has a small,
// closed token set, so Kind is a dense int enum rather than go-mix's
// string-keyed TokenType; the bytecode compiler's Pratt rule table (see
// bytecode.rules) is a map keyed by Kind.
type Kind int

const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One-or-two-character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
	Break

	// Sentinels.
	EOF
	Comment
	BlockComment
	Invalid
)

var kindNames = map[Kind]string{
	LeftParen: "LeftParen", RightParen: "RightParen",
	LeftBrace: "LeftBrace", RightBrace: "RightBrace",
	Comma: "Comma", Dot: "Dot", Minus: "Minus", Plus: "Plus",
	Semicolon: "Semicolon", Slash: "Slash", Star: "Star",
	Bang: "Bang", BangEqual: "BangEqual",
	Equal: "Equal", EqualEqual: "EqualEqual",
	Greater: "Greater", GreaterEqual: "GreaterEqual",
	Less: "Less", LessEqual: "LessEqual",
	Identifier: "Identifier", String: "String", Number: "Number",
	And: "And", Class: "Class", Else: "Else", False: "False",
	Fun: "Fun", For: "For", If: "If", Nil: "Nil", Or: "Or",
	Print: "Print", Return: "Return", Super: "Super", This: "This",
	True: "True", Var: "Var", While: "While", Break: "Break",
	EOF: "EOF", Comment: "Comment", BlockComment: "BlockComment",
	Invalid: "Invalid",
}

// String renders a Kind for diagnostics and test failure messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved identifiers to their Kind. Anything not in
// this set that starts with a letter or underscore lexes as Identifier.
var Keywords = map[string]Kind{
	"and": And, "class": Class, "else": Else, "false": False,
	"fun": Fun, "for": For, "if": If, "nil": Nil, "or": Or,
	"print": Print, "return": Return, "super": Super, "this": This,
	"true": True, "var": Var, "while": While, "break": Break,
}

// Token is a single lexical unit. It carries a handle to the shared,
// immutable source plus a byte offset and length instead of an eagerly
// computed line/column (spec: "line/column are computed on demand").
// Identifier and String lexemes are interned (see lexer.go) so repeated
// names across a file share one backing string.
type Token struct {
	Kind   Kind
	Lexeme string
	Number float64 // valid iff Kind == Number
	Src    *Source
	Offset int
	Length int
	ID     int // stable identity, assigned by the lexer in scan order
}

// Line returns the 1-indexed source line the token starts on, computed
// on demand from the shared source's line index (built on first use).
func (t Token) Line() int {
	line, _ := t.Src.lineCol(t.Offset)
	return line
}

// Column returns the 1-indexed source column the token starts at.
func (t Token) Column() int {
	_, col := t.Src.lineCol(t.Offset)
	return col
}

// Span returns the raw source text this token covers.
func (t Token) Span() string {
	if t.Src == nil {
		return t.Lexeme
	}
	return t.Src.Text[t.Offset : t.Offset+t.Length]
}
